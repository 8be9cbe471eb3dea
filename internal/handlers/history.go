package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/yungbote/ingredient-copilot-backend/internal/services"
)

type HistoryHandler struct {
  historyService    services.HistoryService
}

func NewHistoryHandler(historyService services.HistoryService) *HistoryHandler {
  return &HistoryHandler{historyService: historyService}
}

func (hh *HistoryHandler) List(c *gin.Context) {
  entries, err := hh.historyService.List(c.Request.Context())
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"history": entries})
}

func (hh *HistoryHandler) Delete(c *gin.Context) {
  id, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid history id"})
    return
  }
  if err := hh.historyService.Delete(c.Request.Context(), id); err != nil {
    c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"success": "true"})
}
