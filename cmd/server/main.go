package main

import (
  "fmt"
  "os"
  "strings"
  "time"

  "github.com/a-beduc/dh-toolbox/internal/db"
  "github.com/a-beduc/dh-toolbox/internal/handlers"
  "github.com/a-beduc/dh-toolbox/internal/logger"
  "github.com/a-beduc/dh-toolbox/internal/middleware"
  "github.com/a-beduc/dh-toolbox/internal/repos"
  "github.com/a-beduc/dh-toolbox/internal/server"
  "github.com/a-beduc/dh-toolbox/internal/services"
  "github.com/a-beduc/dh-toolbox/internal/utils"
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
  serverPort := utils.GetEnv("SERVER_PORT", "8080", log)
  allowOrigins := utils.GetEnv("CORS_ALLOW_ORIGINS", "", log)

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Error("Postgres migration failed", "error", err)
    os.Exit(1)
  }
  thePG := postgresService.DB()

  // Repos
  log.Info("Setting up repos from main...")
  accountRepo := repos.NewAccountRepo(thePG, log)
  accountTokenRepo := repos.NewAccountTokenRepo(thePG, log)
  adversaryRepo := repos.NewAdversaryRepo(thePG, log)

  // Services
  log.Info("Setting up services from main...")
  authService := services.NewAuthService(
    thePG,
    log,
    accountRepo,
    accountTokenRepo,
    jwtSecretKey,
    time.Duration(accessTokenTTL)*time.Second,
    time.Duration(refreshTokenTTL)*time.Second,
  )
  adversaryService := services.NewAdversaryService(thePG, log, adversaryRepo)
  lookupService := services.NewLookupService(thePG, log)

  // Handlers
  log.Info("Setting up handlers from main...")
  authHandler := handlers.NewAuthHandler(authService)
  adversaryHandler := handlers.NewAdversaryHandler(adversaryService)
  lookupHandler := handlers.NewLookupHandler(lookupService)

  // Middleware
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router
  log.Info("Setting up router from main...")
  var origins []string
  if allowOrigins != "" {
    origins = strings.Split(allowOrigins, ",")
  }
  router := server.NewRouter(server.RouterConfig{
    AuthHandler:      authHandler,
    AuthMiddleware:   authMiddleware,
    AdversaryHandler: adversaryHandler,
    LookupHandler:    lookupHandler,
    AllowOrigins:     origins,
  })

  log.Info("Starting server", "port", serverPort)
  if err := router.Run(":" + serverPort); err != nil {
    log.Fatal("Server stopped", "error", err)
  }
}
