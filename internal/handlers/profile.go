package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/ingredient-copilot-backend/internal/services"
)

type ProfileHandler struct {
  profileService    services.ProfileService
}

func NewProfileHandler(profileService services.ProfileService) *ProfileHandler {
  return &ProfileHandler{profileService: profileService}
}

func (ph *ProfileHandler) Get(c *gin.Context) {
  profile, err := ph.profileService.Get(c.Request.Context())
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (ph *ProfileHandler) Update(c *gin.Context) {
  var req struct {
    DisplayName     string      `json:"displayName"`
    HealthConcerns  []string    `json:"healthConcerns"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  profile, err := ph.profileService.Update(c.Request.Context(), req.DisplayName, req.HealthConcerns)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"profile": profile})
}
