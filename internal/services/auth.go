package services

import (
  "context"
  "fmt"
  "strings"
  "time"

  "github.com/golang-jwt/jwt/v5"
  "golang.org/x/crypto/bcrypt"

  "github.com/edusync/edusync-backend/internal/apperr"
  "github.com/edusync/edusync-backend/internal/logger"
  "github.com/edusync/edusync-backend/internal/repos"
  "github.com/edusync/edusync-backend/internal/types"
)

// ProfileUpdate carries the optional fields of an update_profile call. A nil
// field keeps the stored value.
type ProfileUpdate struct {
  Password        *string
  Name            *string
  Age             *int
  Discipline      *string
  CurrentSemester *int
  CareerGoal      *string
}

type AuthService interface {
  Register(ctx context.Context, user *types.User, password string) (*types.User, error)
  Login(ctx context.Context, username, password string) (*types.User, string, error)
  UpdateProfile(ctx context.Context, username string, update ProfileUpdate) (*types.User, error)
  VerifyToken(ctx context.Context, tokenString string) (string, error)
  GetAccessTTL() time.Duration
}

type authService struct {
  log          *logger.Logger
  userRepo     repos.UserRepo
  jwtSecretKey string
  accessTTL    time.Duration
}

func NewAuthService(log *logger.Logger, userRepo repos.UserRepo, jwtSecretKey string, accessTTL time.Duration) AuthService {
  serviceLog := log.With("service", "AuthService")
  return &authService{
    log:          serviceLog,
    userRepo:     userRepo,
    jwtSecretKey: jwtSecretKey,
    accessTTL:    accessTTL,
  }
}

func (as *authService) Register(ctx context.Context, user *types.User, password string) (*types.User, error) {
  user.Username = strings.TrimSpace(user.Username)
  if err := validateRegistration(user, password); err != nil {
    return nil, err
  }

  exists, err := as.userRepo.UsernameExists(ctx, user.Username)
  if err != nil {
    return nil, fmt.Errorf("Failed to check username: %w", err)
  }
  if exists {
    return nil, apperr.Conflict("Username already exists")
  }

  hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
  if err != nil {
    return nil, fmt.Errorf("Failed to hash password: %w", err)
  }
  user.Password = string(hashed)

  if err := as.userRepo.Create(ctx, user); err != nil {
    return nil, fmt.Errorf("Failed to create user: %w", err)
  }
  as.log.Info("User registered", "username", user.Username)
  return user, nil
}

func validateRegistration(user *types.User, password string) error {
  switch {
  case user.Username == "":
    return apperr.InvalidArgument("A username is required to register")
  case password == "":
    return apperr.InvalidArgument("A password is required to register")
  case user.Name == "":
    return apperr.InvalidArgument("A name is required to register")
  case user.Age <= 0:
    return apperr.InvalidArgument("A valid age is required to register")
  case user.Discipline == "":
    return apperr.InvalidArgument("A discipline is required to register")
  case user.CurrentSemester <= 0:
    return apperr.InvalidArgument("A valid current semester is required to register")
  }
  return nil
}

// Login collapses unknown-username and wrong-password into one outward
// signal so the response does not leak which usernames exist.
func (as *authService) Login(ctx context.Context, username, password string) (*types.User, string, error) {
  if username == "" || password == "" {
    return nil, "", apperr.InvalidArgument("Username and password are required")
  }

  user, err := as.userRepo.GetByUsername(ctx, username)
  if err != nil {
    return nil, "", fmt.Errorf("Failed to look up user: %w", err)
  }
  if user == nil {
    return nil, "", apperr.Unauthorized("Invalid credentials")
  }
  if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
    return nil, "", apperr.Unauthorized("Invalid credentials")
  }

  token, err := as.generateAccessToken(user)
  if err != nil {
    return nil, "", fmt.Errorf("Failed to generate access token: %w", err)
  }
  return user, token, nil
}

func (as *authService) UpdateProfile(ctx context.Context, username string, update ProfileUpdate) (*types.User, error) {
  if username == "" {
    return nil, apperr.InvalidArgument("Username is required")
  }

  var hashed string
  if update.Password != nil {
    h, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcrypt.DefaultCost)
    if err != nil {
      return nil, fmt.Errorf("Failed to hash password: %w", err)
    }
    hashed = string(h)
  }

  updated, err := as.userRepo.Update(ctx, username, func(user *types.User) {
    if update.Password != nil {
      user.Password = hashed
    }
    if update.Name != nil {
      user.Name = *update.Name
    }
    if update.Age != nil {
      user.Age = *update.Age
    }
    if update.Discipline != nil {
      user.Discipline = *update.Discipline
    }
    if update.CurrentSemester != nil {
      user.CurrentSemester = *update.CurrentSemester
    }
    if update.CareerGoal != nil {
      user.CareerGoal = *update.CareerGoal
    }
  })
  if err != nil {
    return nil, fmt.Errorf("Failed to update profile: %w", err)
  }
  if updated == nil {
    return nil, apperr.NotFound("User not found")
  }
  as.log.Info("Profile updated", "username", username)
  return updated, nil
}

func (as *authService) VerifyToken(ctx context.Context, tokenString string) (string, error) {
  token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
    if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
      return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
    }
    return []byte(as.jwtSecretKey), nil
  })
  if err != nil || !token.Valid {
    return "", apperr.Unauthorized("Invalid or expired token")
  }
  claims, ok := token.Claims.(jwt.MapClaims)
  if !ok {
    return "", apperr.Unauthorized("Invalid token claims")
  }
  username, _ := claims["sub"].(string)
  if username == "" {
    return "", apperr.Unauthorized("Invalid token subject")
  }
  return username, nil
}

func (as *authService) GetAccessTTL() time.Duration {
  return as.accessTTL
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
  now := time.Now()
  claims := jwt.RegisteredClaims{
    Subject:   user.Username,
    IssuedAt:  jwt.NewNumericDate(now),
    ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
  }
  token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
  return token.SignedString([]byte(as.jwtSecretKey))
}
