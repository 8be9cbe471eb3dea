package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/ingredient-copilot-backend/internal/services"
)

type DashboardHandler struct {
  dashboardService  services.DashboardService
}

func NewDashboardHandler(dashboardService services.DashboardService) *DashboardHandler {
  return &DashboardHandler{dashboardService: dashboardService}
}

func (dh *DashboardHandler) Stats(c *gin.Context) {
  stats, err := dh.dashboardService.Stats(c.Request.Context())
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, stats)
}
