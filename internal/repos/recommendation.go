package repos

import (
  "context"
  "strconv"

  "github.com/edusync/edusync-backend/internal/logger"
  "github.com/edusync/edusync-backend/internal/store"
  "github.com/edusync/edusync-backend/internal/types"
)

var recommendationHeader = []string{"username", "semester", "recommended_courses"}

// RecommendationRepo is an append-only log. Lookups take the first row
// matching a (username, semester) pair; duplicates can accumulate behind it.
type RecommendationRepo interface {
  Create(ctx context.Context, rec *types.Recommendation) error
  GetByUsernameAndSemester(ctx context.Context, username string, semester int) (*types.Recommendation, error)
  GetByUsername(ctx context.Context, username string) ([]*types.Recommendation, error)
}

type recommendationRepo struct {
  table *store.Table
  log   *logger.Logger
}

func NewRecommendationTable(path string, log *logger.Logger) *store.Table {
  return store.NewTable(path, recommendationHeader, log)
}

func NewRecommendationRepo(table *store.Table, baseLog *logger.Logger) RecommendationRepo {
  repoLog := baseLog.With("repo", "RecommendationRepo")
  return &recommendationRepo{table: table, log: repoLog}
}

func (rr *recommendationRepo) Create(ctx context.Context, rec *types.Recommendation) error {
  return rr.table.Append(map[string]string{
    "username":            rec.Username,
    "semester":            strconv.Itoa(rec.Semester),
    "recommended_courses": rec.RecommendedCourses,
  })
}

func (rr *recommendationRepo) GetByUsernameAndSemester(ctx context.Context, username string, semester int) (*types.Recommendation, error) {
  records, err := rr.table.LoadAll()
  if err != nil {
    return nil, err
  }
  for _, record := range records {
    recSemester, err := strconv.Atoi(record["semester"])
    if err != nil {
      continue
    }
    if record["username"] == username && recSemester == semester {
      return &types.Recommendation{
        Username:           record["username"],
        Semester:           recSemester,
        RecommendedCourses: record["recommended_courses"],
      }, nil
    }
  }
  return nil, nil
}

func (rr *recommendationRepo) GetByUsername(ctx context.Context, username string) ([]*types.Recommendation, error) {
  records, err := rr.table.LoadAll()
  if err != nil {
    return nil, err
  }
  results := []*types.Recommendation{}
  for _, record := range records {
    if record["username"] != username {
      continue
    }
    semester, _ := strconv.Atoi(record["semester"])
    results = append(results, &types.Recommendation{
      Username:           record["username"],
      Semester:           semester,
      RecommendedCourses: record["recommended_courses"],
    })
  }
  return results, nil
}
