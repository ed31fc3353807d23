package app

import (
  "github.com/kirdar-ai/kirdar-backend/internal/handlers"
  "github.com/kirdar-ai/kirdar-backend/internal/logger"
)

type Handlers struct {
  Auth       *handlers.AuthHandler
  Persona    *handlers.PersonaHandler
  Scenario   *handlers.ScenarioHandler
  Assignment *handlers.AssignmentHandler
  Chat       *handlers.ChatHandler
}

func wireHandlers(log *logger.Logger, s Services) Handlers {
  log.Info("Wiring handlers...")
  return Handlers{
    Auth:       handlers.NewAuthHandler(log, s.Auth),
    Persona:    handlers.NewPersonaHandler(log, s.Persona),
    Scenario:   handlers.NewScenarioHandler(log, s.Scenario),
    Assignment: handlers.NewAssignmentHandler(log, s.Assignment),
    Chat:       handlers.NewChatHandler(log, s.Chat),
  }
}
