package app

import (
  "github.com/gin-gonic/gin"

  "github.com/kirdar-ai/kirdar-backend/internal/server"
)

func wireRouter(h Handlers, m Middleware) *gin.Engine {
  return server.NewRouter(server.RouterConfig{
    AuthHandler:       h.Auth,
    AuthMiddleware:    m.Auth,
    PersonaHandler:    h.Persona,
    ScenarioHandler:   h.Scenario,
    AssignmentHandler: h.Assignment,
    ChatHandler:       h.Chat,
  })
}
