package repos

import (
  "context"
  "errors"
  "strconv"

  "github.com/edusync/edusync-backend/internal/logger"
  "github.com/edusync/edusync-backend/internal/store"
  "github.com/edusync/edusync-backend/internal/types"
)

var userHeader = []string{"username", "password", "name", "age", "discipline", "current_semester", "career_goal"}

type UserRepo interface {
  Create(ctx context.Context, user *types.User) error
  GetAll(ctx context.Context) ([]*types.User, error)
  GetByUsername(ctx context.Context, username string) (*types.User, error)
  UsernameExists(ctx context.Context, username string) (bool, error)
  ReplaceAll(ctx context.Context, users []*types.User) error
  Update(ctx context.Context, username string, mutate func(user *types.User)) (*types.User, error)
}

var errNoSuchRow = errors.New("no such row")

type userRepo struct {
  table *store.Table
  log   *logger.Logger
}

func NewUserTable(path string, log *logger.Logger) *store.Table {
  return store.NewTable(path, userHeader, log)
}

func NewUserRepo(table *store.Table, baseLog *logger.Logger) UserRepo {
  repoLog := baseLog.With("repo", "UserRepo")
  return &userRepo{table: table, log: repoLog}
}

func (ur *userRepo) Create(ctx context.Context, user *types.User) error {
  return ur.table.Append(userToRecord(user))
}

func (ur *userRepo) GetAll(ctx context.Context) ([]*types.User, error) {
  records, err := ur.table.LoadAll()
  if err != nil {
    return nil, err
  }
  users := make([]*types.User, 0, len(records))
  for _, record := range records {
    users = append(users, userFromRecord(record))
  }
  return users, nil
}

func (ur *userRepo) GetByUsername(ctx context.Context, username string) (*types.User, error) {
  users, err := ur.GetAll(ctx)
  if err != nil {
    return nil, err
  }
  for _, user := range users {
    if user.Username == username {
      return user, nil
    }
  }
  return nil, nil
}

func (ur *userRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
  user, err := ur.GetByUsername(ctx, username)
  if err != nil {
    return false, err
  }
  return user != nil, nil
}

func (ur *userRepo) ReplaceAll(ctx context.Context, users []*types.User) error {
  records := make([]map[string]string, 0, len(users))
  for _, user := range users {
    records = append(records, userToRecord(user))
  }
  return ur.table.ReplaceAll(records)
}

// Update runs a locked read-modify-write cycle over the whole table so
// concurrent profile edits cannot lose updates. Returns (nil, nil) when the
// username has no row.
func (ur *userRepo) Update(ctx context.Context, username string, mutate func(user *types.User)) (*types.User, error) {
  var updated *types.User
  err := ur.table.Update(func(records []map[string]string) ([]map[string]string, error) {
    for i, record := range records {
      if record["username"] != username {
        continue
      }
      user := userFromRecord(record)
      mutate(user)
      user.Username = username
      records[i] = userToRecord(user)
      updated = user
      return records, nil
    }
    return nil, errNoSuchRow
  })
  if errors.Is(err, errNoSuchRow) {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return updated, nil
}

func userToRecord(user *types.User) map[string]string {
  return map[string]string{
    "username":         user.Username,
    "password":         user.Password,
    "name":             user.Name,
    "age":              strconv.Itoa(user.Age),
    "discipline":       user.Discipline,
    "current_semester": strconv.Itoa(user.CurrentSemester),
    "career_goal":      user.CareerGoal,
  }
}

func userFromRecord(record map[string]string) *types.User {
  age, _ := strconv.Atoi(record["age"])
  semester, _ := strconv.Atoi(record["current_semester"])
  return &types.User{
    Username:        record["username"],
    Password:        record["password"],
    Name:            record["name"],
    Age:             age,
    Discipline:      record["discipline"],
    CurrentSemester: semester,
    CareerGoal:      record["career_goal"],
  }
}
