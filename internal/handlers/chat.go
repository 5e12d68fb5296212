package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/edusync/edusync-backend/internal/services"
)

type ChatHandler struct {
  chatService services.ChatService
}

func NewChatHandler(chatService services.ChatService) *ChatHandler {
  return &ChatHandler{chatService: chatService}
}

func (ch *ChatHandler) Chat(c *gin.Context) {
  var req struct {
    Username string `json:"username"`
    Message  string `json:"message"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
    return
  }

  response, err := ch.chatService.Chat(c.Request.Context(), req.Username, req.Message)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"response": response})
}
