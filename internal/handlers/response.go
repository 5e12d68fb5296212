package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/edusync/edusync-backend/internal/apperr"
)

// RespondError maps a service error onto its HTTP status and the flat
// {"error": "..."} envelope the frontend expects.
func RespondError(c *gin.Context, err error) {
  status := apperr.HTTPStatus(err)
  msg := apperr.Message(err)
  if status == http.StatusInternalServerError {
    msg = "Internal server error"
  }
  c.JSON(status, gin.H{"error": msg})
}

func RespondOK(c *gin.Context, payload any) {
  c.JSON(http.StatusOK, payload)
}
