package handlers

import (
  "io"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/ingredient-copilot-backend/internal/services"
)

// Uploaded label photos above this size are rejected before OCR.
const maxImageBytes = 10 << 20

type ChatHandler struct {
  conversationService   services.ConversationService
}

func NewChatHandler(conversationService services.ConversationService) *ChatHandler {
  return &ChatHandler{conversationService: conversationService}
}

// GET /api/chat/:session/messages
func (ch *ChatHandler) Messages(c *gin.Context) {
  messages := ch.conversationService.Messages(c.Param("session"))
  c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// POST /api/chat/:session/messages
// Multipart form: optional "text" field, optional "image" file. At least one
// must be present for the turn to do anything.
func (ch *ChatHandler) Submit(c *gin.Context) {
  text := c.PostForm("text")

  var img []byte
  mimeType := ""
  fileHeader, err := c.FormFile("image")
  if err == nil {
    if fileHeader.Size > maxImageBytes {
      c.JSON(http.StatusBadRequest, gin.H{"error": "image too large"})
      return
    }
    file, err := fileHeader.Open()
    if err != nil {
      c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
      return
    }
    defer file.Close()
    img, err = io.ReadAll(file)
    if err != nil {
      c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
      return
    }
    mimeType = fileHeader.Header.Get("Content-Type")
    if mimeType == "" {
      mimeType = "image/jpeg"
    }
  }

  messages, err := ch.conversationService.Submit(c.Request.Context(), c.Param("session"), text, img, mimeType)
  if err != nil {
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"messages": messages})
}
