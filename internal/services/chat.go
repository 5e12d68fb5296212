package services

import (
  "context"
  "fmt"

  "github.com/edusync/edusync-backend/internal/apperr"
  "github.com/edusync/edusync-backend/internal/logger"
  "github.com/edusync/edusync-backend/internal/repos"
)

type ChatService interface {
  Chat(ctx context.Context, username, message string) (string, error)
}

type chatService struct {
  log           *logger.Logger
  userRepo      repos.UserRepo
  psychEvalRepo repos.PsychEvalRepo
  historyRepo   repos.HistoryRepo
  generator     TextGenerator
}

func NewChatService(log *logger.Logger, userRepo repos.UserRepo, psychEvalRepo repos.PsychEvalRepo, historyRepo repos.HistoryRepo, generator TextGenerator) ChatService {
  serviceLog := log.With("service", "ChatService")
  return &chatService{
    log:           serviceLog,
    userRepo:      userRepo,
    psychEvalRepo: psychEvalRepo,
    historyRepo:   historyRepo,
    generator:     generator,
  }
}

// Chat grounds the assistant in the student's profile, psych scores, and
// academic history before forwarding their question.
func (s *chatService) Chat(ctx context.Context, username, message string) (string, error) {
  if username == "" {
    return "", apperr.InvalidArgument("Username is required")
  }

  user, err := s.userRepo.GetByUsername(ctx, username)
  if err != nil {
    return "", fmt.Errorf("Failed to look up user: %w", err)
  }
  if user == nil {
    return "", apperr.NotFound("User not found")
  }

  scores := map[string]string{}
  if row, err := s.psychEvalRepo.GetByUsername(ctx, username); err == nil && row != nil {
    scores = row.Scores
  } else if err != nil {
    s.log.Warn("Failed to load psych scores for chat", "username", username, "error", err)
  }

  history, err := s.historyRepo.GetByUsername(ctx, username)
  if err != nil {
    s.log.Warn("Failed to load history for chat", "username", username, "error", err)
  }

  response, err := s.generator.Generate(ctx, chatPrompt(user, scores, history, message))
  if err != nil {
    s.log.Warn("Chat generation failed", "username", username, "error", err)
    return "No response received.", nil
  }
  return response, nil
}
