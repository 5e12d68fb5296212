package repos

import (
  "context"
  "strconv"

  "github.com/edusync/edusync-backend/internal/logger"
  "github.com/edusync/edusync-backend/internal/store"
  "github.com/edusync/edusync-backend/internal/types"
)

// PsychEvalRepo upserts one criterion score at a time. The table's column
// set is username plus every fixed criterion, whether or not a score has
// been recorded yet.
type PsychEvalRepo interface {
  UpsertScore(ctx context.Context, username, criterionColumn string, score int) error
  GetByUsername(ctx context.Context, username string) (*types.PsychEvalRow, error)
}

type psychEvalRepo struct {
  table   *store.Table
  columns []string
  log     *logger.Logger
}

func NewPsychEvalTable(path string, criterionColumns []string, log *logger.Logger) *store.Table {
  header := append([]string{"username"}, criterionColumns...)
  return store.NewTable(path, header, log)
}

func NewPsychEvalRepo(table *store.Table, criterionColumns []string, baseLog *logger.Logger) PsychEvalRepo {
  repoLog := baseLog.With("repo", "PsychEvalRepo")
  return &psychEvalRepo{table: table, columns: criterionColumns, log: repoLog}
}

func (pr *psychEvalRepo) UpsertScore(ctx context.Context, username, criterionColumn string, score int) error {
  return pr.table.Update(func(records []map[string]string) ([]map[string]string, error) {
    for _, record := range records {
      if record["username"] == username {
        record[criterionColumn] = strconv.Itoa(score)
        return records, nil
      }
    }
    row := map[string]string{"username": username}
    row[criterionColumn] = strconv.Itoa(score)
    return append(records, row), nil
  })
}

func (pr *psychEvalRepo) GetByUsername(ctx context.Context, username string) (*types.PsychEvalRow, error) {
  records, err := pr.table.LoadAll()
  if err != nil {
    return nil, err
  }
  for _, record := range records {
    if record["username"] != username {
      continue
    }
    scores := make(map[string]string, len(pr.columns))
    for _, col := range pr.columns {
      if v := record[col]; v != "" {
        scores[col] = v
      }
    }
    return &types.PsychEvalRow{Username: username, Scores: scores}, nil
  }
  return nil, nil
}
