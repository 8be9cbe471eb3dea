package server

import (
  "github.com/gin-gonic/gin"
  "github.com/gin-contrib/cors"
  "github.com/yungbote/ingredient-copilot-backend/internal/handlers"
  "github.com/yungbote/ingredient-copilot-backend/internal/middleware"
)

type RouterConfig struct {
  AuthHandler          *handlers.AuthHandler
  AuthMiddleware       *middleware.AuthMiddleware
  UserHandler          *handlers.UserHandler
  ProfileHandler       *handlers.ProfileHandler
  AnalyzeHandler       *handlers.AnalyzeHandler
  ChatHandler          *handlers.ChatHandler
  HistoryHandler       *handlers.HistoryHandler
  DashboardHandler     *handlers.DashboardHandler
  HealthcheckHandler   *handlers.HealthcheckHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  // Cors. The analyze endpoint is called cross-origin by the web client with
  // x-client-info and apikey headers, so those must stay in the allow list.
  router.Use(cors.New(cors.Config{
    AllowAllOrigins:  true,
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-Client-Info", "Apikey"},
  }))

// ===============
// || Public    ||
// ===============
  router.GET("/healthcheck", cfg.HealthcheckHandler.Healthcheck)
  api := router.Group("/api")
  {
    api.POST("/register", cfg.AuthHandler.Register)
    api.POST("/login", cfg.AuthHandler.Login)
    api.POST("/analyze", cfg.AnalyzeHandler.Analyze)
  }

// ===============
// || Protected ||
// ===============
  protected := router.Group("/api")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  // Auth
  protected.POST("/refresh", cfg.AuthHandler.Refresh)
  protected.POST("/logout", cfg.AuthHandler.Logout)
  // User
  protected.GET("/user", cfg.UserHandler.GetMe)
  // Profile
  protected.GET("/profile", cfg.ProfileHandler.Get)
  protected.PUT("/profile", cfg.ProfileHandler.Update)
  // Chat
  protected.GET("/chat/:session/messages", cfg.ChatHandler.Messages)
  protected.POST("/chat/:session/messages", cfg.ChatHandler.Submit)
  // History
  protected.GET("/history", cfg.HistoryHandler.List)
  protected.DELETE("/history/:id", cfg.HistoryHandler.Delete)
  // Dashboard
  protected.GET("/dashboard", cfg.DashboardHandler.Stats)

  return router
}
