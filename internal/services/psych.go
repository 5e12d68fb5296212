package services

import (
  "context"
  "fmt"
  "strconv"
  "strings"

  "github.com/edusync/edusync-backend/internal/apperr"
  "github.com/edusync/edusync-backend/internal/logger"
  "github.com/edusync/edusync-backend/internal/repos"
)

type PsychEvalService interface {
  Question(ctx context.Context, username, criterion string) (string, error)
  Rank(ctx context.Context, username, criterion, response string) error
}

type psychEvalService struct {
  log           *logger.Logger
  userRepo      repos.UserRepo
  psychEvalRepo repos.PsychEvalRepo
  criteria      []string
  generator     TextGenerator
}

func NewPsychEvalService(log *logger.Logger, userRepo repos.UserRepo, psychEvalRepo repos.PsychEvalRepo, criteria []string, generator TextGenerator) PsychEvalService {
  serviceLog := log.With("service", "PsychEvalService")
  return &psychEvalService{
    log:           serviceLog,
    userRepo:      userRepo,
    psychEvalRepo: psychEvalRepo,
    criteria:      criteria,
    generator:     generator,
  }
}

func (s *psychEvalService) knownCriterion(criterion string) bool {
  for _, known := range s.criteria {
    if strings.EqualFold(known, criterion) {
      return true
    }
  }
  return false
}

func (s *psychEvalService) Question(ctx context.Context, username, criterion string) (string, error) {
  if username == "" || criterion == "" {
    return "", apperr.InvalidArgument("Username and current criterion are required")
  }
  if !s.knownCriterion(criterion) {
    return "", apperr.InvalidArgument("Unknown evaluation criterion")
  }

  user, err := s.userRepo.GetByUsername(ctx, username)
  if err != nil {
    return "", fmt.Errorf("Failed to look up user: %w", err)
  }
  if user == nil {
    return "", apperr.NotFound("User not found")
  }

  question, err := s.generator.Generate(ctx, psychQuestionPrompt(criterion, user))
  if err != nil {
    s.log.Warn("Question generation failed", "criterion", criterion, "error", err)
    return "No question available.", nil
  }
  return strings.TrimSpace(question), nil
}

// Rank scores one criterion. Generated text that does not parse as a number
// coerces to 0, matching the degrade-don't-fail policy for upstream output.
func (s *psychEvalService) Rank(ctx context.Context, username, criterion, response string) error {
  if username == "" || criterion == "" || response == "" {
    return apperr.InvalidArgument("Username, criterion, and response are required")
  }
  if !s.knownCriterion(criterion) {
    return apperr.InvalidArgument("Unknown evaluation criterion")
  }

  score := 0
  text, err := s.generator.Generate(ctx, psychRankPrompt(criterion, response))
  if err != nil {
    s.log.Warn("Rank generation failed", "criterion", criterion, "error", err)
  } else {
    if parsed, parseErr := strconv.Atoi(strings.TrimSpace(text)); parseErr == nil {
      score = parsed
    } else {
      s.log.Warn("Rank response is not numeric, coercing to 0", "criterion", criterion, "raw", text)
    }
  }

  if err := s.psychEvalRepo.UpsertScore(ctx, username, CriterionColumn(criterion), score); err != nil {
    return fmt.Errorf("Failed to persist score: %w", err)
  }
  return nil
}
