package services

import (
  "context"
  "fmt"
  "strconv"

  "github.com/edusync/edusync-backend/internal/apperr"
  "github.com/edusync/edusync-backend/internal/catalog"
  "github.com/edusync/edusync-backend/internal/logger"
  "github.com/edusync/edusync-backend/internal/repos"
  "github.com/edusync/edusync-backend/internal/types"
)

// EnrichedHistoryRecord is a history row joined against the catalog for
// display. Unknown subject codes fall back to placeholder values.
type EnrichedHistoryRecord struct {
  types.HistoryRecord
  CourseTitle string `json:"course_title"`
  Credits     string `json:"credits"`
}

type HistoryService interface {
  AddHistory(ctx context.Context, record *types.HistoryRecord) error
  GetHistory(ctx context.Context, username string) ([]EnrichedHistoryRecord, error)
}

type historyService struct {
  log         *logger.Logger
  userRepo    repos.UserRepo
  historyRepo repos.HistoryRepo
  catalog     *catalog.Catalog
}

func NewHistoryService(log *logger.Logger, userRepo repos.UserRepo, historyRepo repos.HistoryRepo, cat *catalog.Catalog) HistoryService {
  serviceLog := log.With("service", "HistoryService")
  return &historyService{log: serviceLog, userRepo: userRepo, historyRepo: historyRepo, catalog: cat}
}

func (hs *historyService) AddHistory(ctx context.Context, record *types.HistoryRecord) error {
  if record.Username == "" {
    return apperr.InvalidArgument("Username is required")
  }
  if record.Semester <= 0 {
    return apperr.InvalidArgument("Invalid semester value")
  }

  exists, err := hs.userRepo.UsernameExists(ctx, record.Username)
  if err != nil {
    return fmt.Errorf("Failed to check username: %w", err)
  }
  if !exists {
    return apperr.NotFound("User not found")
  }
  if err := hs.historyRepo.Create(ctx, record); err != nil {
    return fmt.Errorf("Failed to append history record: %w", err)
  }
  return nil
}

func (hs *historyService) GetHistory(ctx context.Context, username string) ([]EnrichedHistoryRecord, error) {
  if username == "" {
    return nil, apperr.InvalidArgument("Username is required")
  }

  records, err := hs.historyRepo.GetByUsername(ctx, username)
  if err != nil {
    return nil, fmt.Errorf("Failed to load history: %w", err)
  }

  enriched := make([]EnrichedHistoryRecord, 0, len(records))
  for _, record := range records {
    row := EnrichedHistoryRecord{
      HistoryRecord: *record,
      CourseTitle:   "Unknown Course",
      Credits:       "N/A",
    }
    if course, ok := hs.catalog.ByCode(record.SubjectCode); ok {
      row.CourseTitle = course.Title
      if course.CreditsKnown {
        row.Credits = strconv.FormatFloat(course.Credits, 'g', -1, 64)
      }
    }
    enriched = append(enriched, row)
  }
  return enriched, nil
}
