package repos

import (
  "context"

  "github.com/edusync/edusync-backend/internal/logger"
  "github.com/edusync/edusync-backend/internal/store"
  "github.com/edusync/edusync-backend/internal/types"
)

var skillChartHeader = []string{"username", "skills"}

// SkillChartRepo holds at most one row per username. Upsert drops any prior
// row for the user and appends the replacement inside one locked
// read-modify-write cycle.
type SkillChartRepo interface {
  Upsert(ctx context.Context, chart *types.SkillChart) error
  GetByUsername(ctx context.Context, username string) (*types.SkillChart, error)
}

type skillChartRepo struct {
  table *store.Table
  log   *logger.Logger
}

func NewSkillChartTable(path string, log *logger.Logger) *store.Table {
  return store.NewTable(path, skillChartHeader, log)
}

func NewSkillChartRepo(table *store.Table, baseLog *logger.Logger) SkillChartRepo {
  repoLog := baseLog.With("repo", "SkillChartRepo")
  return &skillChartRepo{table: table, log: repoLog}
}

func (sr *skillChartRepo) Upsert(ctx context.Context, chart *types.SkillChart) error {
  return sr.table.Update(func(records []map[string]string) ([]map[string]string, error) {
    kept := records[:0]
    for _, record := range records {
      if record["username"] != chart.Username {
        kept = append(kept, record)
      }
    }
    kept = append(kept, map[string]string{
      "username": chart.Username,
      "skills":   chart.Skills,
    })
    return kept, nil
  })
}

func (sr *skillChartRepo) GetByUsername(ctx context.Context, username string) (*types.SkillChart, error) {
  records, err := sr.table.LoadAll()
  if err != nil {
    return nil, err
  }
  for _, record := range records {
    if record["username"] == username {
      return &types.SkillChart{Username: username, Skills: record["skills"]}, nil
    }
  }
  return nil, nil
}
