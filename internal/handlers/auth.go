package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/edusync/edusync-backend/internal/apperr"
  "github.com/edusync/edusync-backend/internal/repos"
  "github.com/edusync/edusync-backend/internal/requestdata"
  "github.com/edusync/edusync-backend/internal/services"
  "github.com/edusync/edusync-backend/internal/types"
)

type AuthHandler struct {
  authService services.AuthService
  userRepo    repos.UserRepo
}

func NewAuthHandler(authService services.AuthService, userRepo repos.UserRepo) *AuthHandler {
  return &AuthHandler{authService: authService, userRepo: userRepo}
}

func (ah *AuthHandler) Register(c *gin.Context) {
  var req struct {
    Username        string `json:"username"`
    Password        string `json:"password"`
    Name            string `json:"name"`
    Age             any    `json:"age"`
    Discipline      string `json:"discipline"`
    CurrentSemester any    `json:"current_semester"`
    CareerGoal      string `json:"career_goal"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
    return
  }

  age, _ := coerceInt(req.Age)
  semester, _ := coerceInt(req.CurrentSemester)
  user := types.User{
    Username:        req.Username,
    Name:            req.Name,
    Age:             age,
    Discipline:      req.Discipline,
    CurrentSemester: semester,
    CareerGoal:      req.CareerGoal,
  }

  created, err := ah.authService.Register(c.Request.Context(), &user, req.Password)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"message": "Registration successful.", "user": created})
}

func (ah *AuthHandler) Login(c *gin.Context) {
  var req struct {
    Username string `json:"username"`
    Password string `json:"password"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
    return
  }

  user, accessToken, err := ah.authService.Login(c.Request.Context(), req.Username, req.Password)
  if err != nil {
    RespondError(c, err)
    return
  }
  expiresIn := int(ah.authService.GetAccessTTL().Seconds())
  RespondOK(c, gin.H{
    "message":      "Login successful.",
    "user":         user,
    "access_token": accessToken,
    "expires_in":   expiresIn,
  })
}

func (ah *AuthHandler) UpdateProfile(c *gin.Context) {
  var req struct {
    Username        string  `json:"username"`
    Password        *string `json:"password"`
    Name            *string `json:"name"`
    Age             any     `json:"age"`
    Discipline      *string `json:"discipline"`
    CurrentSemester any     `json:"current_semester"`
    CareerGoal      *string `json:"career_goal"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
    return
  }

  update := services.ProfileUpdate{
    Password:   req.Password,
    Name:       req.Name,
    Discipline: req.Discipline,
    CareerGoal: req.CareerGoal,
  }
  if req.Age != nil {
    age, err := coerceInt(req.Age)
    if err != nil {
      c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid age value"})
      return
    }
    update.Age = &age
  }
  if req.CurrentSemester != nil {
    semester, err := coerceInt(req.CurrentSemester)
    if err != nil {
      c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid semester value"})
      return
    }
    update.CurrentSemester = &semester
  }

  updated, err := ah.authService.UpdateProfile(c.Request.Context(), req.Username, update)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"message": "Profile updated.", "user": updated})
}

// GetMe returns the profile of the authenticated user, resolved from the
// verified token rather than a query parameter.
func (ah *AuthHandler) GetMe(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.Username == "" {
    RespondError(c, apperr.Unauthorized("Missing authentication"))
    return
  }
  user, err := ah.userRepo.GetByUsername(c.Request.Context(), rd.Username)
  if err != nil {
    RespondError(c, err)
    return
  }
  if user == nil {
    RespondError(c, apperr.NotFound("User not found"))
    return
  }
  RespondOK(c, gin.H{"user": user})
}
