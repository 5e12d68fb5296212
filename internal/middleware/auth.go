package middleware

import (
  "net/http"
  "strings"

  "github.com/gin-gonic/gin"

  "github.com/edusync/edusync-backend/internal/logger"
  "github.com/edusync/edusync-backend/internal/requestdata"
  "github.com/edusync/edusync-backend/internal/services"
)

type AuthMiddleware struct {
  log         *logger.Logger
  authService services.AuthService
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService) *AuthMiddleware {
  middlewareLog := log.With("middleware", "AuthMiddleware")
  return &AuthMiddleware{log: middlewareLog, authService: authService}
}

func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
  return func(c *gin.Context) {
    tokenString := extractToken(c)
    if tokenString == "" {
      c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid token"})
      return
    }
    username, err := am.authService.VerifyToken(c.Request.Context(), tokenString)
    if err != nil {
      am.log.Debug("Token verification failed", "error", err)
      c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid token"})
      return
    }

    rd := requestdata.GetRequestData(c.Request.Context())
    if rd == nil {
      rd = &requestdata.RequestData{}
      c.Request = c.Request.WithContext(requestdata.WithRequestData(c.Request.Context(), rd))
    }
    rd.TokenString = tokenString
    rd.Username = username
    c.Next()
  }
}

func extractToken(c *gin.Context) string {
  authHeader := c.GetHeader("Authorization")
  if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
    return authHeader[7:]
  }
  return c.Query("token")
}
