package services

import (
  "context"
  "fmt"
  "strconv"
  "strings"

  "github.com/edusync/edusync-backend/internal/apperr"
  "github.com/edusync/edusync-backend/internal/catalog"
  "github.com/edusync/edusync-backend/internal/logger"
  "github.com/edusync/edusync-backend/internal/repos"
  "github.com/edusync/edusync-backend/internal/types"
)

// RecommendationResult is the outcome of a recommend_courses call: the
// filtered course list plus the generated explanation text.
type RecommendationResult struct {
  Courses     []string `json:"courses"`
  Explanation string   `json:"recommendation_explanation"`
}

type AdvisingService interface {
  RecommendCourses(ctx context.Context, username string, semester int, predictedGrade *float64) (*RecommendationResult, error)
  PredictGrades(ctx context.Context, username string, semester int, targetGrade *float64) (string, error)
}

type advisingService struct {
  log                *logger.Logger
  userRepo           repos.UserRepo
  historyRepo        repos.HistoryRepo
  recommendationRepo repos.RecommendationRepo
  catalog            *catalog.Catalog
  generator          TextGenerator
}

func NewAdvisingService(
  log *logger.Logger,
  userRepo repos.UserRepo,
  historyRepo repos.HistoryRepo,
  recommendationRepo repos.RecommendationRepo,
  cat *catalog.Catalog,
  generator TextGenerator,
) AdvisingService {
  serviceLog := log.With("service", "AdvisingService")
  return &advisingService{
    log:                serviceLog,
    userRepo:           userRepo,
    historyRepo:        historyRepo,
    recommendationRepo: recommendationRepo,
    catalog:            cat,
    generator:          generator,
  }
}

// RecommendCourses is only eligible for semesters at or past the one before
// the user's current semester.
func (s *advisingService) RecommendCourses(ctx context.Context, username string, semester int, predictedGrade *float64) (*RecommendationResult, error) {
  user, err := s.userRepo.GetByUsername(ctx, username)
  if err != nil {
    return nil, fmt.Errorf("Failed to look up user: %w", err)
  }
  if user == nil {
    return nil, apperr.NotFound("User not found")
  }

  if semester < user.CurrentSemester-1 {
    return nil, apperr.InvalidArgument("Recommendation is only available for semesters prior to the current semester")
  }

  matched := s.catalog.Filter(user.Discipline, semester)
  if len(matched) == 0 {
    return &RecommendationResult{
      Courses:     []string{},
      Explanation: fmt.Sprintf("No courses found for %s in semester %d.", user.Discipline, semester),
    }, nil
  }

  courseList := make([]string, 0, len(matched))
  var coursesInfo strings.Builder
  for _, course := range matched {
    mandatoryLabel := "Optional"
    if course.Mandatory {
      mandatoryLabel = "Mandatory"
    }
    credits := "N/A"
    if course.CreditsKnown {
      credits = strconv.FormatFloat(course.Credits, 'g', -1, 64)
    }
    detail := fmt.Sprintf("%s - %s (Credits: %s, %s)", course.Code, course.Title, credits, mandatoryLabel)
    courseList = append(courseList, detail)
    coursesInfo.WriteString(detail)
    coursesInfo.WriteString("\n")
  }

  prompt := recommendationPrompt(semester, user.Discipline, user.CareerGoal, coursesInfo.String(), predictedGrade)
  explanation, err := s.generator.Generate(ctx, prompt)
  if err != nil {
    s.log.Warn("Recommendation generation failed", "username", username, "error", err)
    explanation = "No recommendation received."
  }

  record := &types.Recommendation{
    Username:           username,
    Semester:           semester,
    RecommendedCourses: strings.Join(courseList, "; "),
  }
  if err := s.recommendationRepo.Create(ctx, record); err != nil {
    return nil, fmt.Errorf("Failed to persist recommendation: %w", err)
  }

  return &RecommendationResult{Courses: courseList, Explanation: explanation}, nil
}

// PredictGrades composes stored history and the stored recommendation for
// the semester into a table-format prompt. Nothing is persisted; every call
// recomputes.
func (s *advisingService) PredictGrades(ctx context.Context, username string, semester int, targetGrade *float64) (string, error) {
  if username == "" {
    return "", apperr.InvalidArgument("Username and semester are required")
  }

  history, err := s.historyRepo.GetByUsername(ctx, username)
  if err != nil {
    return "", fmt.Errorf("Failed to load history: %w", err)
  }

  var historySummary strings.Builder
  if len(history) > 0 {
    historySummary.WriteString("Past Academic Records:\n")
    for _, rec := range history {
      fmt.Fprintf(&historySummary, "%s - Grade: %s (Semester: %d)\n", rec.SubjectCode, rec.Grade, rec.Semester)
    }
  } else {
    historySummary.WriteString("No past academic records available.\n")
  }

  recommendedCourses := "No recommended courses available for this semester."
  stored, err := s.recommendationRepo.GetByUsernameAndSemester(ctx, username, semester)
  if err != nil {
    return "", fmt.Errorf("Failed to load recommendations: %w", err)
  }
  if stored != nil && stored.RecommendedCourses != "" {
    recommendedCourses = stored.RecommendedCourses
  }

  prompt := gradePredictionPrompt(historySummary.String(), recommendedCourses, semester, targetGrade)
  prediction, err := s.generator.Generate(ctx, prompt)
  if err != nil {
    s.log.Warn("Grade prediction failed", "username", username, "error", err)
    return "No prediction received.", nil
  }
  return prediction, nil
}
