package services

import (
  "context"
  "fmt"

  "github.com/google/uuid"

  "github.com/kirdar-ai/kirdar-backend/internal/apierr"
  "github.com/kirdar-ai/kirdar-backend/internal/logger"
  "github.com/kirdar-ai/kirdar-backend/internal/repos"
  "github.com/kirdar-ai/kirdar-backend/internal/types"
)

type AssignmentService interface {
  AssignPersonas(ctx context.Context, adminID uuid.UUID, userID uuid.UUID, personaIDs []uuid.UUID) ([]*types.PersonaAssignment, error)
  AssignScenarios(ctx context.Context, adminID uuid.UUID, userID uuid.UUID, scenarioIDs []uuid.UUID) ([]*types.ScenarioAssignment, error)
  DeactivatePersonaAssignment(ctx context.Context, assignmentID uuid.UUID) error
  DeactivateScenarioAssignment(ctx context.Context, assignmentID uuid.UUID) error
}

type assignmentService struct {
  log                    *logger.Logger
  personaRepo            repos.PersonaRepo
  scenarioRepo           repos.ScenarioRepo
  personaAssignmentRepo  repos.PersonaAssignmentRepo
  scenarioAssignmentRepo repos.ScenarioAssignmentRepo
  userRepo               repos.UserRepo
}

func NewAssignmentService(
  personaRepo repos.PersonaRepo,
  scenarioRepo repos.ScenarioRepo,
  personaAssignmentRepo repos.PersonaAssignmentRepo,
  scenarioAssignmentRepo repos.ScenarioAssignmentRepo,
  userRepo repos.UserRepo,
  baseLog *logger.Logger,
) AssignmentService {
  serviceLog := baseLog.With("service", "AssignmentService")
  return &assignmentService{
    log:                    serviceLog,
    personaRepo:            personaRepo,
    scenarioRepo:           scenarioRepo,
    personaAssignmentRepo:  personaAssignmentRepo,
    scenarioAssignmentRepo: scenarioAssignmentRepo,
    userRepo:               userRepo,
  }
}

func (s *assignmentService) AssignPersonas(ctx context.Context, adminID uuid.UUID, userID uuid.UUID, personaIDs []uuid.UUID) ([]*types.PersonaAssignment, error) {
  if len(personaIDs) == 0 {
    return []*types.PersonaAssignment{}, nil
  }
  if _, err := s.userRepo.GetByID(ctx, nil, userID); err != nil {
    return nil, apierr.NotFound(fmt.Errorf("user %s: %w", userID, err))
  }

  personas, err := s.personaRepo.GetByIDs(ctx, nil, personaIDs)
  if err != nil {
    return nil, err
  }
  found := make(map[uuid.UUID]bool, len(personas))
  for _, p := range personas {
    found[p.ID] = true
  }
  for _, id := range personaIDs {
    if !found[id] {
      return nil, apierr.NotFound(fmt.Errorf("persona %s not found", id))
    }
  }

  assignments := make([]*types.PersonaAssignment, 0, len(personaIDs))
  for _, id := range personaIDs {
    assignments = append(assignments, &types.PersonaAssignment{
      UserID:     userID,
      PersonaID:  id,
      Status:     types.AssignmentActive,
      AssignedBy: adminID,
    })
  }
  saved, err := s.personaAssignmentRepo.Create(ctx, nil, assignments)
  if err != nil {
    return nil, err
  }

  s.log.Info("Assigned personas", "user_id", userID, "count", len(saved))
  return saved, nil
}

func (s *assignmentService) AssignScenarios(ctx context.Context, adminID uuid.UUID, userID uuid.UUID, scenarioIDs []uuid.UUID) ([]*types.ScenarioAssignment, error) {
  if len(scenarioIDs) == 0 {
    return []*types.ScenarioAssignment{}, nil
  }
  if _, err := s.userRepo.GetByID(ctx, nil, userID); err != nil {
    return nil, apierr.NotFound(fmt.Errorf("user %s: %w", userID, err))
  }

  scenarios, err := s.scenarioRepo.GetByIDs(ctx, nil, scenarioIDs)
  if err != nil {
    return nil, err
  }
  found := make(map[uuid.UUID]bool, len(scenarios))
  for _, sc := range scenarios {
    found[sc.ID] = true
  }
  for _, id := range scenarioIDs {
    if !found[id] {
      return nil, apierr.NotFound(fmt.Errorf("scenario %s not found", id))
    }
  }

  assignments := make([]*types.ScenarioAssignment, 0, len(scenarioIDs))
  for _, id := range scenarioIDs {
    assignments = append(assignments, &types.ScenarioAssignment{
      UserID:     userID,
      ScenarioID: id,
      Status:     types.AssignmentActive,
      AssignedBy: adminID,
    })
  }
  saved, err := s.scenarioAssignmentRepo.Create(ctx, nil, assignments)
  if err != nil {
    return nil, err
  }

  s.log.Info("Assigned scenarios", "user_id", userID, "count", len(saved))
  return saved, nil
}

// Deactivation flips status only. Assignment rows stay behind as the audit
// trail of who was ever granted what.
func (s *assignmentService) DeactivatePersonaAssignment(ctx context.Context, assignmentID uuid.UUID) error {
  if _, err := s.personaAssignmentRepo.GetByID(ctx, nil, assignmentID); err != nil {
    return apierr.NotFound(fmt.Errorf("persona assignment %s: %w", assignmentID, err))
  }
  return s.personaAssignmentRepo.Deactivate(ctx, nil, assignmentID)
}

func (s *assignmentService) DeactivateScenarioAssignment(ctx context.Context, assignmentID uuid.UUID) error {
  if _, err := s.scenarioAssignmentRepo.GetByID(ctx, nil, assignmentID); err != nil {
    return apierr.NotFound(fmt.Errorf("scenario assignment %s: %w", assignmentID, err))
  }
  return s.scenarioAssignmentRepo.Deactivate(ctx, nil, assignmentID)
}
