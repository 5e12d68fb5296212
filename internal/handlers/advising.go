package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/edusync/edusync-backend/internal/services"
)

type AdvisingHandler struct {
  advisingService services.AdvisingService
}

func NewAdvisingHandler(advisingService services.AdvisingService) *AdvisingHandler {
  return &AdvisingHandler{advisingService: advisingService}
}

func (ah *AdvisingHandler) RecommendCourses(c *gin.Context) {
  var req struct {
    Username       string `json:"username"`
    Semester       any    `json:"semester"`
    PredictedGrade any    `json:"predicted_grade"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
    return
  }
  if req.Username == "" {
    c.JSON(http.StatusBadRequest, gin.H{"error": "Username is required."})
    return
  }
  semester, err := coerceInt(req.Semester)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid semester input."})
    return
  }
  var predictedGrade *float64
  if req.PredictedGrade != nil {
    if grade, err := coerceFloat(req.PredictedGrade); err == nil {
      predictedGrade = &grade
    }
  }

  result, err := ah.advisingService.RecommendCourses(c.Request.Context(), req.Username, semester, predictedGrade)
  if err != nil {
    RespondError(c, err)
    return
  }
  if len(result.Courses) == 0 {
    RespondOK(c, gin.H{"response": result.Explanation})
    return
  }
  RespondOK(c, result)
}

func (ah *AdvisingHandler) PredictGrades(c *gin.Context) {
  var req struct {
    Username    string `json:"username"`
    Semester    any    `json:"semester"`
    TargetGrade any    `json:"target_grade"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
    return
  }
  if req.Username == "" || req.Semester == nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "Username and semester are required."})
    return
  }
  semester, err := coerceInt(req.Semester)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid semester input."})
    return
  }
  var targetGrade *float64
  if req.TargetGrade != nil {
    if grade, err := coerceFloat(req.TargetGrade); err == nil {
      targetGrade = &grade
    }
  }

  details, err := ah.advisingService.PredictGrades(c.Request.Context(), req.Username, semester, targetGrade)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"predicted_grade_details": details})
}
