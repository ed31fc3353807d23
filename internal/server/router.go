package server

import (
  "github.com/gin-gonic/gin"
  "github.com/gin-contrib/cors"
  "github.com/kirdar-ai/kirdar-backend/internal/handlers"
  "github.com/kirdar-ai/kirdar-backend/internal/middleware"
)

type RouterConfig struct {
  AuthHandler       *handlers.AuthHandler
  AuthMiddleware    *middleware.AuthMiddleware
  PersonaHandler    *handlers.PersonaHandler
  ScenarioHandler   *handlers.ScenarioHandler
  AssignmentHandler *handlers.AssignmentHandler
  ChatHandler       *handlers.ChatHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5173",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

// ===============
// || Public    ||
// ===============
  router.GET("/healthcheck", handlers.Healthcheck)
  api := router.Group("/api")
  {
    api.POST("/auth/register", cfg.AuthHandler.Register)
    api.POST("/auth/login", cfg.AuthHandler.Login)
  }

// ===============
// || Protected ||
// ===============
  protected := api.Group("/")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  // Domains
  protected.GET("/domains", handlers.ListDomains)
  // Personas
  protected.GET("/personas", cfg.PersonaHandler.List)
  // Scenarios
  protected.GET("/scenarios", cfg.ScenarioHandler.List)
  // Chat
  protected.POST("/chat", cfg.ChatHandler.Chat)
  protected.POST("/chat/evaluate", cfg.ChatHandler.Evaluate)
  protected.POST("/chat/suggestions", cfg.ChatHandler.Suggestions)

// ===============
// || Admin     ||
// ===============
  admin := protected.Group("/")
  admin.Use(cfg.AuthMiddleware.RequireAdmin())
  // Personas
  admin.POST("/personas/generate", cfg.PersonaHandler.Generate)
  admin.POST("/personas/bulk", cfg.PersonaHandler.CreateBulk)
  admin.PUT("/personas/:id", cfg.PersonaHandler.Update)
  admin.DELETE("/personas/:id", cfg.PersonaHandler.Delete)
  admin.POST("/personas/reset", cfg.PersonaHandler.Reset)
  admin.POST("/personas/refresh/:domain", cfg.PersonaHandler.Refresh)
  // Scenarios
  admin.POST("/scenarios", cfg.ScenarioHandler.Create)
  admin.POST("/scenarios/generate", cfg.ScenarioHandler.Generate)
  admin.POST("/scenarios/bulk", cfg.ScenarioHandler.CreateBulk)
  admin.PUT("/scenarios/:id", cfg.ScenarioHandler.Update)
  admin.DELETE("/scenarios/:id", cfg.ScenarioHandler.Delete)
  admin.POST("/scenarios/reset", cfg.ScenarioHandler.Reset)
  admin.POST("/scenarios/refresh/:domain", cfg.ScenarioHandler.Refresh)
  // Assignments
  admin.POST("/assignments/personas", cfg.AssignmentHandler.AssignPersonas)
  admin.POST("/assignments/scenarios", cfg.AssignmentHandler.AssignScenarios)
  admin.PATCH("/assignments/:kind/:id/deactivate", cfg.AssignmentHandler.Deactivate)

  return router
}
