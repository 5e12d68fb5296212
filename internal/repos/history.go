package repos

import (
  "context"
  "strconv"

  "github.com/edusync/edusync-backend/internal/logger"
  "github.com/edusync/edusync-backend/internal/store"
  "github.com/edusync/edusync-backend/internal/types"
)

var historyHeader = []string{"username", "subject_code", "grade", "attendance", "semester"}

// HistoryRepo is append-only: records are never updated or deleted.
type HistoryRepo interface {
  Create(ctx context.Context, record *types.HistoryRecord) error
  GetByUsername(ctx context.Context, username string) ([]*types.HistoryRecord, error)
}

type historyRepo struct {
  table *store.Table
  log   *logger.Logger
}

func NewHistoryTable(path string, log *logger.Logger) *store.Table {
  return store.NewTable(path, historyHeader, log)
}

func NewHistoryRepo(table *store.Table, baseLog *logger.Logger) HistoryRepo {
  repoLog := baseLog.With("repo", "HistoryRepo")
  return &historyRepo{table: table, log: repoLog}
}

func (hr *historyRepo) Create(ctx context.Context, record *types.HistoryRecord) error {
  return hr.table.Append(map[string]string{
    "username":     record.Username,
    "subject_code": record.SubjectCode,
    "grade":        record.Grade,
    "attendance":   record.Attendance,
    "semester":     strconv.Itoa(record.Semester),
  })
}

func (hr *historyRepo) GetByUsername(ctx context.Context, username string) ([]*types.HistoryRecord, error) {
  records, err := hr.table.LoadAll()
  if err != nil {
    return nil, err
  }
  results := []*types.HistoryRecord{}
  for _, record := range records {
    if record["username"] != username {
      continue
    }
    semester, _ := strconv.Atoi(record["semester"])
    results = append(results, &types.HistoryRecord{
      Username:    record["username"],
      SubjectCode: record["subject_code"],
      Grade:       record["grade"],
      Attendance:  record["attendance"],
      Semester:    semester,
    })
  }
  return results, nil
}
