package services

import (
  "context"
  "encoding/json"
  "fmt"
  "sort"
  "strings"

  "github.com/edusync/edusync-backend/internal/apperr"
  "github.com/edusync/edusync-backend/internal/logger"
  "github.com/edusync/edusync-backend/internal/repos"
  "github.com/edusync/edusync-backend/internal/types"
)

type SkillChartService interface {
  Generate(ctx context.Context, username string, refresh bool) (map[string]any, error)
}

type skillChartService struct {
  log            *logger.Logger
  userRepo       repos.UserRepo
  skillChartRepo repos.SkillChartRepo
  generator      TextGenerator
}

func NewSkillChartService(log *logger.Logger, userRepo repos.UserRepo, skillChartRepo repos.SkillChartRepo, generator TextGenerator) SkillChartService {
  serviceLog := log.With("service", "SkillChartService")
  return &skillChartService{
    log:            serviceLog,
    userRepo:       userRepo,
    skillChartRepo: skillChartRepo,
    generator:      generator,
  }
}

// Generate returns the saved chart when one exists, unless refresh forces a
// recomputation. A fresh chart is built from two generation calls: current
// skill levels first, then required levels over the same skill keys. The
// result is upserted so the table keeps one row per username.
func (s *skillChartService) Generate(ctx context.Context, username string, refresh bool) (map[string]any, error) {
  user, err := s.userRepo.GetByUsername(ctx, username)
  if err != nil {
    return nil, fmt.Errorf("Failed to look up user: %w", err)
  }
  if user == nil {
    return nil, apperr.NotFound("User not found")
  }

  if !refresh {
    saved, err := s.skillChartRepo.GetByUsername(ctx, username)
    if err != nil {
      return nil, fmt.Errorf("Failed to load saved skill chart: %w", err)
    }
    if saved != nil {
      var chart map[string]any
      if err := json.Unmarshal([]byte(saved.Skills), &chart); err == nil {
        return chart, nil
      }
      s.log.Warn("Saved skill chart is unreadable, regenerating", "username", username)
    }
  }

  current := s.generateSkillSet(ctx, currentSkillsPrompt(user), "current skills")
  required := s.generateSkillSet(ctx, requiredSkillsPrompt(user, skillKeys(current)), "required skills")

  result := map[string]any{
    "current":  current,
    "required": required,
  }

  // Error payloads are returned but never saved, so a failed generation
  // does not shadow a later successful one.
  if isErrorPayload(current) || isErrorPayload(required) {
    return result, nil
  }

  serialized, err := json.Marshal(result)
  if err != nil {
    return nil, fmt.Errorf("Failed to serialize skill chart: %w", err)
  }
  if err := s.skillChartRepo.Upsert(ctx, &types.SkillChart{Username: username, Skills: string(serialized)}); err != nil {
    return nil, fmt.Errorf("Failed to persist skill chart: %w", err)
  }
  return result, nil
}

func isErrorPayload(skills map[string]any) bool {
  _, failed := skills["error"]
  return failed
}

func (s *skillChartService) generateSkillSet(ctx context.Context, prompt, kind string) map[string]any {
  text, err := s.generator.Generate(ctx, prompt)
  if err != nil {
    s.log.Warn("Skill set generation failed", "kind", kind, "error", err)
    return map[string]any{"error": fmt.Sprintf("Failed to generate %s", kind), "raw_response": ""}
  }
  parsed, err := parseLooseJSONObject(text)
  if err != nil {
    s.log.Warn("Skill set response is not JSON", "kind", kind, "error", err)
    return map[string]any{"error": fmt.Sprintf("Failed to parse %s JSON", kind), "raw_response": text}
  }
  return parsed
}

// parseLooseJSONObject first tries a strict parse of the trimmed text, then
// falls back to the first balanced {...} substring.
func parseLooseJSONObject(text string) (map[string]any, error) {
  trimmed := strings.TrimSpace(text)

  var parsed map[string]any
  if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil {
    return parsed, nil
  }

  start := strings.Index(trimmed, "{")
  if start < 0 {
    return nil, fmt.Errorf("no JSON object found in response")
  }
  depth := 0
  inString := false
  escaped := false
  for i := start; i < len(trimmed); i++ {
    ch := trimmed[i]
    if inString {
      switch {
      case escaped:
        escaped = false
      case ch == '\\':
        escaped = true
      case ch == '"':
        inString = false
      }
      continue
    }
    switch ch {
    case '"':
      inString = true
    case '{':
      depth++
    case '}':
      depth--
      if depth == 0 {
        candidate := trimmed[start : i+1]
        if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
          return nil, fmt.Errorf("embedded JSON object is invalid: %w", err)
        }
        return parsed, nil
      }
    }
  }
  return nil, fmt.Errorf("unbalanced JSON object in response")
}

// skillKeys lists a generated skill set's keys in stable order, skipping the
// error payload shape.
func skillKeys(skills map[string]any) []string {
  if isErrorPayload(skills) {
    return []string{}
  }
  keys := make([]string, 0, len(skills))
  for key := range skills {
    keys = append(keys, key)
  }
  sort.Strings(keys)
  return keys
}
