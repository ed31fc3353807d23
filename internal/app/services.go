package app

import (
  "fmt"

  "github.com/kirdar-ai/kirdar-backend/internal/logger"
  "github.com/kirdar-ai/kirdar-backend/internal/services"
)

type Services struct {
  OpenAI     services.OpenAIClient
  Auth       services.AuthService
  Persona    services.PersonaService
  Scenario   services.ScenarioService
  Assignment services.AssignmentService
  Chat       services.ChatService
}

func wireServices(log *logger.Logger, cfg Config, r Repos) (Services, error) {
  log.Info("Wiring services...")

  openaiClient, err := services.NewOpenAIClient(log)
  if err != nil {
    return Services{}, fmt.Errorf("init openai client: %w", err)
  }

  return Services{
    OpenAI:     openaiClient,
    Auth:       services.NewAuthService(r.User, cfg.JWTSecretKey, cfg.AccessTokenTTL, log),
    Persona:    services.NewPersonaService(r.Persona, r.PersonaAssignment, r.AICallLog, openaiClient, log),
    Scenario:   services.NewScenarioService(r.Scenario, r.ScenarioAssignment, r.AICallLog, openaiClient, log),
    Assignment: services.NewAssignmentService(r.Persona, r.Scenario, r.PersonaAssignment, r.ScenarioAssignment, r.User, log),
    Chat:       services.NewChatService(r.AICallLog, openaiClient, log),
  }, nil
}
