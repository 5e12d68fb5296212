package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/edusync/edusync-backend/internal/services"
)

type PsychEvalHandler struct {
  psychEvalService services.PsychEvalService
}

func NewPsychEvalHandler(psychEvalService services.PsychEvalService) *PsychEvalHandler {
  return &PsychEvalHandler{psychEvalService: psychEvalService}
}

func (ph *PsychEvalHandler) Question(c *gin.Context) {
  var req struct {
    Username         string `json:"username"`
    CurrentCriterion string `json:"current_criterion"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
    return
  }

  question, err := ph.psychEvalService.Question(c.Request.Context(), req.Username, req.CurrentCriterion)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"question": question})
}

func (ph *PsychEvalHandler) Rank(c *gin.Context) {
  var req struct {
    Username  string `json:"username"`
    Criterion string `json:"criterion"`
    Response  string `json:"response"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
    return
  }

  if err := ph.psychEvalService.Rank(c.Request.Context(), req.Username, req.Criterion, req.Response); err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"message": "Response recorded successfully."})
}
