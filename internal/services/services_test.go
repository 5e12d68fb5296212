package services

import (
  "context"
  "path/filepath"
  "sync"
  "testing"

  "github.com/edusync/edusync-backend/internal/catalog"
  "github.com/edusync/edusync-backend/internal/logger"
  "github.com/edusync/edusync-backend/internal/repos"
  "github.com/edusync/edusync-backend/internal/types"
)

func testLogger(t *testing.T) *logger.Logger {
  t.Helper()
  log, err := logger.New("development")
  if err != nil {
    t.Fatalf("logger.New: %v", err)
  }
  return log
}

// fakeGenerator returns queued responses in order, then repeats the last
// one. A non-nil err fails every call.
type fakeGenerator struct {
  mu        sync.Mutex
  responses []string
  prompts   []string
  err       error
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  f.prompts = append(f.prompts, prompt)
  if f.err != nil {
    return "", f.err
  }
  if len(f.responses) == 0 {
    return "generated text", nil
  }
  next := f.responses[0]
  if len(f.responses) > 1 {
    f.responses = f.responses[1:]
  }
  return next, nil
}

func (f *fakeGenerator) promptCount() int {
  f.mu.Lock()
  defer f.mu.Unlock()
  return len(f.prompts)
}

func newUserRepo(t *testing.T) repos.UserRepo {
  t.Helper()
  log := testLogger(t)
  return repos.NewUserRepo(repos.NewUserTable(filepath.Join(t.TempDir(), "users.csv"), log), log)
}

func newHistoryRepo(t *testing.T) repos.HistoryRepo {
  t.Helper()
  log := testLogger(t)
  return repos.NewHistoryRepo(repos.NewHistoryTable(filepath.Join(t.TempDir(), "history.csv"), log), log)
}

func newRecommendationRepo(t *testing.T) repos.RecommendationRepo {
  t.Helper()
  log := testLogger(t)
  return repos.NewRecommendationRepo(repos.NewRecommendationTable(filepath.Join(t.TempDir(), "recommendations.csv"), log), log)
}

func newSkillChartRepo(t *testing.T) repos.SkillChartRepo {
  t.Helper()
  log := testLogger(t)
  return repos.NewSkillChartRepo(repos.NewSkillChartTable(filepath.Join(t.TempDir(), "skillcharts.csv"), log), log)
}

func newPsychEvalRepo(t *testing.T, criteria []string) repos.PsychEvalRepo {
  t.Helper()
  log := testLogger(t)
  columns := CriterionColumns(criteria)
  return repos.NewPsychEvalRepo(repos.NewPsychEvalTable(filepath.Join(t.TempDir(), "psych_eval.csv"), columns, log), columns, log)
}

func testCatalog() *catalog.Catalog {
  return catalog.New([]types.CourseRecord{
    {Code: "CS101", Title: "Intro to Programming", Discipline: "CS", Semester: 2, Credits: 4, CreditsKnown: true, Mandatory: true, Hardness: "Medium"},
    {Code: "CS201", Title: "Data Structures", Discipline: "CS", Semester: 3, Credits: 4, CreditsKnown: true, Mandatory: true, Hardness: "Hard"},
    {Code: "CS202", Title: "Databases", Discipline: "CS", Semester: 3, Credits: 3, CreditsKnown: true},
    {Code: "MA101", Title: "Calculus I", Discipline: "Mathematics", Semester: 2, Credits: 3, CreditsKnown: true},
  })
}

func registerAlice(t *testing.T, auth AuthService) *types.User {
  t.Helper()
  user, err := auth.Register(context.Background(), &types.User{
    Username:        "alice",
    Name:            "Alice",
    Age:             20,
    Discipline:      "CS",
    CurrentSemester: 3,
    CareerGoal:      "Data Science",
  }, "pw1")
  if err != nil {
    t.Fatalf("Register(alice): %v", err)
  }
  return user
}
