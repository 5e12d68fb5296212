package handlers

import (
  "net/http"
  "strings"

  "github.com/gin-gonic/gin"

  "github.com/edusync/edusync-backend/internal/services"
)

type SkillChartHandler struct {
  skillChartService services.SkillChartService
}

func NewSkillChartHandler(skillChartService services.SkillChartService) *SkillChartHandler {
  return &SkillChartHandler{skillChartService: skillChartService}
}

func (sh *SkillChartHandler) GenerateSkillChart(c *gin.Context) {
  username := c.Query("username")
  if username == "" {
    c.JSON(http.StatusBadRequest, gin.H{"error": "Username is required."})
    return
  }
  refresh := strings.EqualFold(c.Query("refresh"), "true")

  result, err := sh.skillChartService.Generate(c.Request.Context(), username, refresh)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, result)
}
