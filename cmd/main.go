package main

import (
  "fmt"
  "os"
  "time"
  "github.com/yungbote/ingredient-copilot-backend/internal/logger"
  "github.com/yungbote/ingredient-copilot-backend/internal/utils"
  "github.com/yungbote/ingredient-copilot-backend/internal/db"
  "github.com/yungbote/ingredient-copilot-backend/internal/repos"
  "github.com/yungbote/ingredient-copilot-backend/internal/services"
  "github.com/yungbote/ingredient-copilot-backend/internal/handlers"
  "github.com/yungbote/ingredient-copilot-backend/internal/middleware"
  "github.com/yungbote/ingredient-copilot-backend/internal/server"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  log.Info("Loading environment variables from main...")
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
  refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
  ocrLanguageHint := utils.GetEnv("OCR_LANGUAGE_HINT", "en", log)
  offlineMode := utils.GetEnvAsBool("COPILOT_OFFLINE", false, log)

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()

  // Repos
  log.Info("Setting up Repos from main...")
  userRepo := repos.NewUserRepo(thePG, log)
  userTokenRepo := repos.NewUserTokenRepo(thePG, log)
  profileRepo := repos.NewProfileRepo(thePG, log)
  historyRepo := repos.NewAnalysisHistoryRepo(thePG, log)
  aiCallLogRepo := repos.NewAICallLogRepo(thePG, log)

  // Services
  log.Info("Setting up Services from main...")
  visionProvider, err := services.NewVisionProviderService(log)
  if err != nil {
    log.Warn("Could not init VisionProviderService, image OCR disabled", "error", err)
    visionProvider = nil
  }
  gatewayClient, err := services.NewAIGatewayClient(log)
  if err != nil {
    if offlineMode {
      log.Warn("Could not init AIGatewayClient, running offline", "error", err)
      gatewayClient = nil
    } else {
      log.Error("Could not init AIGatewayClient", "error", err)
      os.Exit(1)
    }
  }
  authService := services.NewAuthService(thePG, log, userRepo, userTokenRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
  userService := services.NewUserService(thePG, log, userRepo)
  profileService := services.NewProfileService(thePG, log, profileRepo)
  ocrService := services.NewOCRService(log, visionProvider, ocrLanguageHint)
  analysisService := services.NewAnalysisService(log, gatewayClient, aiCallLogRepo)
  historyService := services.NewHistoryService(historyRepo, log)
  conversationService := services.NewConversationService(log, ocrService, analysisService, profileService, historyService, offlineMode)
  dashboardService := services.NewDashboardService(log, profileService, historyService)

  // Handlers
  log.Info("Setting up Handlers from main...")
  authHandler := handlers.NewAuthHandler(authService)
  userHandler := handlers.NewUserHandler(userService)
  profileHandler := handlers.NewProfileHandler(profileService)
  analyzeHandler := handlers.NewAnalyzeHandler(log, analysisService)
  chatHandler := handlers.NewChatHandler(conversationService)
  historyHandler := handlers.NewHistoryHandler(historyService)
  dashboardHandler := handlers.NewDashboardHandler(dashboardService)
  healthcheckHandler := handlers.NewHealthcheckHandler()

  // Middleware
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router
  router := server.NewRouter(server.RouterConfig{
    AuthHandler:        authHandler,
    AuthMiddleware:     authMiddleware,
    UserHandler:        userHandler,
    ProfileHandler:     profileHandler,
    AnalyzeHandler:     analyzeHandler,
    ChatHandler:        chatHandler,
    HistoryHandler:     historyHandler,
    DashboardHandler:   dashboardHandler,
    HealthcheckHandler: healthcheckHandler,
  })

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Warn("Server failed: %v", err)
  }

  if visionProvider != nil {
    visionProvider.Close()
  }
}
