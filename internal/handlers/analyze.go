package handlers

import (
  "errors"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/ingredient-copilot-backend/internal/logger"
  "github.com/yungbote/ingredient-copilot-backend/internal/services"
)

// AnalyzeHandler serves the unauthenticated analysis endpoint the web client
// calls directly. The request and response shapes, and the 429/402 error
// passthrough, are a compatibility contract with that client.
type AnalyzeHandler struct {
  log               *logger.Logger
  analysisService   services.AnalysisService
}

func NewAnalyzeHandler(log *logger.Logger, analysisService services.AnalysisService) *AnalyzeHandler {
  return &AnalyzeHandler{
    log:             log.With("handler", "AnalyzeHandler"),
    analysisService: analysisService,
  }
}

// POST /api/analyze
func (ah *AnalyzeHandler) Analyze(c *gin.Context) {
  var req services.AnalysisRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }

  result, err := ah.analysisService.Analyze(c.Request.Context(), req)
  if err != nil {
    switch {
    case errors.Is(err, services.ErrRateLimited):
      c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
    case errors.Is(err, services.ErrCreditsExhausted):
      c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
    default:
      ah.log.Error("Analysis request failed", "error", err)
      c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze ingredients"})
    }
    return
  }
  c.JSON(http.StatusOK, result)
}
