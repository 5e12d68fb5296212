package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/edusync/edusync-backend/internal/services"
  "github.com/edusync/edusync-backend/internal/types"
)

type HistoryHandler struct {
  historyService services.HistoryService
}

func NewHistoryHandler(historyService services.HistoryService) *HistoryHandler {
  return &HistoryHandler{historyService: historyService}
}

func (hh *HistoryHandler) AddHistory(c *gin.Context) {
  var req struct {
    Username string `json:"username"`
    Subject  *struct {
      SubjectCode string `json:"subject_code"`
      Grade       any    `json:"grade"`
      Attendance  any    `json:"attendance"`
      Semester    any    `json:"semester"`
    } `json:"subject"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
    return
  }
  if req.Username == "" || req.Subject == nil || req.Subject.Semester == nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "Username, subject data and a valid semester are required."})
    return
  }

  semester, err := coerceInt(req.Subject.Semester)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid semester value."})
    return
  }

  record := types.HistoryRecord{
    Username:    req.Username,
    SubjectCode: req.Subject.SubjectCode,
    Grade:       coerceString(req.Subject.Grade),
    Attendance:  coerceString(req.Subject.Attendance),
    Semester:    semester,
  }
  if err := hh.historyService.AddHistory(c.Request.Context(), &record); err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"message": "Subject history updated.", "record": record})
}

func (hh *HistoryHandler) GetHistory(c *gin.Context) {
  username := c.Query("username")
  records, err := hh.historyService.GetHistory(c.Request.Context(), username)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, records)
}
