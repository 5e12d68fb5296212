package middleware

import (
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/edusync/edusync-backend/internal/requestdata"
)

// RequestID tags every request with a fresh id so log lines across the
// layers can be correlated.
func RequestID() gin.HandlerFunc {
  return func(c *gin.Context) {
    rd := &requestdata.RequestData{RequestID: uuid.NewString()}
    c.Request = c.Request.WithContext(requestdata.WithRequestData(c.Request.Context(), rd))
    c.Header("X-Request-ID", rd.RequestID)
    c.Next()
  }
}
