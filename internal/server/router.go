package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"

  "github.com/a-beduc/dh-toolbox/internal/handlers"
  "github.com/a-beduc/dh-toolbox/internal/middleware"
)

type RouterConfig struct {
  AuthHandler      *handlers.AuthHandler
  AuthMiddleware   *middleware.AuthMiddleware
  AdversaryHandler *handlers.AdversaryHandler
  LookupHandler    *handlers.LookupHandler
  AllowOrigins     []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  origins := cfg.AllowOrigins
  if len(origins) == 0 {
    origins = []string{"http://localhost:3000", "http://localhost:5173"}
  }
  router.Use(cors.New(cors.Config{
    AllowOrigins:     origins,
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

  // Public
  router.GET("/healthcheck", handlers.HealthCheck)
  router.POST("/register", cfg.AuthHandler.Register)
  router.POST("/login", cfg.AuthHandler.Login)

  // Protected
  protected := router.Group("/")
  protected.Use(cfg.AuthMiddleware.RequireAuth())

  protected.POST("/refresh", cfg.AuthHandler.Refresh)
  protected.POST("/logout", cfg.AuthHandler.Logout)

  protected.GET("/adversaries", cfg.AdversaryHandler.List)
  protected.POST("/adversaries", cfg.AdversaryHandler.Create)
  protected.GET("/adversaries/:id", cfg.AdversaryHandler.Get)
  protected.PUT("/adversaries/:id", cfg.AdversaryHandler.Put)
  protected.PATCH("/adversaries/:id", cfg.AdversaryHandler.Patch)
  protected.DELETE("/adversaries/:id", cfg.AdversaryHandler.Delete)

  protected.GET("/lookups/experiences", cfg.LookupHandler.Experiences)
  protected.GET("/lookups/choices", cfg.LookupHandler.Choices)

  return router
}
