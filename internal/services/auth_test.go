package services

import (
  "context"
  "errors"
  "testing"
  "time"

  "github.com/edusync/edusync-backend/internal/apperr"
  "github.com/edusync/edusync-backend/internal/types"
)

func newAuthService(t *testing.T) AuthService {
  t.Helper()
  return NewAuthService(testLogger(t), newUserRepo(t), "test-secret", time.Hour)
}

func TestRegisterRequiresAllFields(t *testing.T) {
  auth := newAuthService(t)
  ctx := context.Background()

  cases := []struct {
    name     string
    user     types.User
    password string
  }{
    {name: "missing_username", user: types.User{Name: "A", Age: 20, Discipline: "CS", CurrentSemester: 1}, password: "pw"},
    {name: "missing_password", user: types.User{Username: "a", Name: "A", Age: 20, Discipline: "CS", CurrentSemester: 1}},
    {name: "missing_name", user: types.User{Username: "a", Age: 20, Discipline: "CS", CurrentSemester: 1}, password: "pw"},
    {name: "missing_age", user: types.User{Username: "a", Name: "A", Discipline: "CS", CurrentSemester: 1}, password: "pw"},
    {name: "missing_discipline", user: types.User{Username: "a", Name: "A", Age: 20, CurrentSemester: 1}, password: "pw"},
    {name: "missing_semester", user: types.User{Username: "a", Name: "A", Age: 20, Discipline: "CS"}, password: "pw"},
  }
  for _, tc := range cases {
    t.Run(tc.name, func(t *testing.T) {
      u := tc.user
      _, err := auth.Register(ctx, &u, tc.password)
      if !errors.Is(err, apperr.ErrInvalidArgument) {
        t.Fatalf("expected ErrInvalidArgument, got %v", err)
      }
    })
  }
}

func TestRegisterDuplicateUsernameConflicts(t *testing.T) {
  auth := newAuthService(t)
  ctx := context.Background()

  first := registerAlice(t, auth)

  _, err := auth.Register(ctx, &types.User{
    Username:        "alice",
    Name:            "Other Alice",
    Age:             25,
    Discipline:      "EE",
    CurrentSemester: 1,
  }, "other")
  if !errors.Is(err, apperr.ErrConflict) {
    t.Fatalf("expected ErrConflict on duplicate username, got %v", err)
  }

  // the first registration's record is unchanged
  user, token, err := auth.Login(ctx, "alice", "pw1")
  if err != nil {
    t.Fatalf("Login after duplicate attempt: %v", err)
  }
  if token == "" {
    t.Fatalf("expected access token")
  }
  if user.Name != first.Name || user.Discipline != "CS" || user.Age != 20 {
    t.Fatalf("first registration mutated: %+v", user)
  }
}

func TestLoginScenarios(t *testing.T) {
  auth := newAuthService(t)
  ctx := context.Background()
  registerAlice(t, auth)

  user, _, err := auth.Login(ctx, "alice", "pw1")
  if err != nil {
    t.Fatalf("Login(alice, pw1): %v", err)
  }
  if user.Username != "alice" || user.CurrentSemester != 3 {
    t.Fatalf("login returned wrong record: %+v", user)
  }

  if _, _, err := auth.Login(ctx, "alice", "wrong"); !errors.Is(err, apperr.ErrUnauthorized) {
    t.Fatalf("wrong password: expected ErrUnauthorized, got %v", err)
  }
  if _, _, err := auth.Login(ctx, "nobody", "pw1"); !errors.Is(err, apperr.ErrUnauthorized) {
    t.Fatalf("unknown user: expected the same ErrUnauthorized signal, got %v", err)
  }
  if _, _, err := auth.Login(ctx, "", ""); !errors.Is(err, apperr.ErrInvalidArgument) {
    t.Fatalf("missing fields: expected ErrInvalidArgument, got %v", err)
  }
}

func TestPasswordStoredAsHashNotPlaintext(t *testing.T) {
  repo := newUserRepo(t)
  auth := NewAuthService(testLogger(t), repo, "test-secret", time.Hour)
  ctx := context.Background()

  _, err := auth.Register(ctx, &types.User{
    Username: "alice", Name: "Alice", Age: 20, Discipline: "CS", CurrentSemester: 3,
  }, "pw1")
  if err != nil {
    t.Fatalf("Register: %v", err)
  }

  stored, err := repo.GetByUsername(ctx, "alice")
  if err != nil || stored == nil {
    t.Fatalf("GetByUsername: %v, %v", stored, err)
  }
  if stored.Password == "pw1" || stored.Password == "" {
    t.Fatalf("password stored in plaintext or empty: %q", stored.Password)
  }
}

func TestUpdateProfileMergesOverExisting(t *testing.T) {
  auth := newAuthService(t)
  ctx := context.Background()
  registerAlice(t, auth)

  goal := "Machine Learning"
  updated, err := auth.UpdateProfile(ctx, "alice", ProfileUpdate{CareerGoal: &goal})
  if err != nil {
    t.Fatalf("UpdateProfile: %v", err)
  }
  if updated.CareerGoal != "Machine Learning" {
    t.Fatalf("career goal not updated: %+v", updated)
  }
  // omitted fields keep their pre-call values
  if updated.Name != "Alice" || updated.Age != 20 || updated.Discipline != "CS" || updated.CurrentSemester != 3 {
    t.Fatalf("omitted fields mutated: %+v", updated)
  }

  semester := 4
  updated, err = auth.UpdateProfile(ctx, "alice", ProfileUpdate{CurrentSemester: &semester})
  if err != nil {
    t.Fatalf("UpdateProfile: %v", err)
  }
  if updated.CurrentSemester != 4 || updated.CareerGoal != "Machine Learning" {
    t.Fatalf("second update lost prior values: %+v", updated)
  }
}

func TestUpdateProfileUnknownUserNotFound(t *testing.T) {
  auth := newAuthService(t)
  name := "Ghost"
  _, err := auth.UpdateProfile(context.Background(), "ghost", ProfileUpdate{Name: &name})
  if !errors.Is(err, apperr.ErrNotFound) {
    t.Fatalf("expected ErrNotFound, got %v", err)
  }
}

func TestVerifyTokenRoundTrip(t *testing.T) {
  auth := newAuthService(t)
  ctx := context.Background()
  registerAlice(t, auth)

  _, token, err := auth.Login(ctx, "alice", "pw1")
  if err != nil {
    t.Fatalf("Login: %v", err)
  }
  username, err := auth.VerifyToken(ctx, token)
  if err != nil {
    t.Fatalf("VerifyToken: %v", err)
  }
  if username != "alice" {
    t.Fatalf("token subject: got %q want alice", username)
  }

  if _, err := auth.VerifyToken(ctx, token+"tampered"); !errors.Is(err, apperr.ErrUnauthorized) {
    t.Fatalf("tampered token: expected ErrUnauthorized, got %v", err)
  }
}
