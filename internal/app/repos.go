package app

import (
  "gorm.io/gorm"
  "github.com/kirdar-ai/kirdar-backend/internal/logger"
  "github.com/kirdar-ai/kirdar-backend/internal/repos"
)

type Repos struct {
  User               repos.UserRepo
  Persona            repos.PersonaRepo
  Scenario           repos.ScenarioRepo
  PersonaAssignment  repos.PersonaAssignmentRepo
  ScenarioAssignment repos.ScenarioAssignmentRepo
  AICallLog          repos.AICallLogRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
  log.Info("Wiring repos...")
  return Repos{
    User:               repos.NewUserRepo(db, log),
    Persona:            repos.NewPersonaRepo(db, log),
    Scenario:           repos.NewScenarioRepo(db, log),
    PersonaAssignment:  repos.NewPersonaAssignmentRepo(db, log),
    ScenarioAssignment: repos.NewScenarioAssignmentRepo(db, log),
    AICallLog:          repos.NewAICallLogRepo(db, log),
  }
}
