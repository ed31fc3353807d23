package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/kirdar-ai/kirdar-backend/internal/logger"
  "github.com/kirdar-ai/kirdar-backend/internal/types"
)

type PersonaAssignmentRepo interface {
  Create(ctx context.Context, tx *gorm.DB, assignments []*types.PersonaAssignment) ([]*types.PersonaAssignment, error)
  GetByID(ctx context.Context, tx *gorm.DB, assignmentID uuid.UUID) (*types.PersonaAssignment, error)
  ListActiveByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.PersonaAssignment, error)
  Deactivate(ctx context.Context, tx *gorm.DB, assignmentID uuid.UUID) error
}

type personaAssignmentRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPersonaAssignmentRepo(db *gorm.DB, baseLog *logger.Logger) PersonaAssignmentRepo {
  repoLog := baseLog.With("repo", "PersonaAssignmentRepo")
  return &personaAssignmentRepo{db: db, log: repoLog}
}

func (r *personaAssignmentRepo) Create(ctx context.Context, tx *gorm.DB, assignments []*types.PersonaAssignment) ([]*types.PersonaAssignment, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(assignments) == 0 {
    return []*types.PersonaAssignment{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&assignments).Error; err != nil {
    return nil, err
  }
  return assignments, nil
}

func (r *personaAssignmentRepo) GetByID(ctx context.Context, tx *gorm.DB, assignmentID uuid.UUID) (*types.PersonaAssignment, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var result types.PersonaAssignment
  if err := transaction.WithContext(ctx).
    Where("id = ?", assignmentID).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (r *personaAssignmentRepo) ListActiveByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.PersonaAssignment, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.PersonaAssignment
  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND status = ?", userID, types.AssignmentActive).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *personaAssignmentRepo) Deactivate(ctx context.Context, tx *gorm.DB, assignmentID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if err := transaction.WithContext(ctx).
    Model(&types.PersonaAssignment{}).
    Where("id = ?", assignmentID).
    Update("status", types.AssignmentInactive).Error; err != nil {
    return err
  }
  return nil
}

type ScenarioAssignmentRepo interface {
  Create(ctx context.Context, tx *gorm.DB, assignments []*types.ScenarioAssignment) ([]*types.ScenarioAssignment, error)
  GetByID(ctx context.Context, tx *gorm.DB, assignmentID uuid.UUID) (*types.ScenarioAssignment, error)
  ListActiveByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ScenarioAssignment, error)
  Deactivate(ctx context.Context, tx *gorm.DB, assignmentID uuid.UUID) error
}

type scenarioAssignmentRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewScenarioAssignmentRepo(db *gorm.DB, baseLog *logger.Logger) ScenarioAssignmentRepo {
  repoLog := baseLog.With("repo", "ScenarioAssignmentRepo")
  return &scenarioAssignmentRepo{db: db, log: repoLog}
}

func (r *scenarioAssignmentRepo) Create(ctx context.Context, tx *gorm.DB, assignments []*types.ScenarioAssignment) ([]*types.ScenarioAssignment, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(assignments) == 0 {
    return []*types.ScenarioAssignment{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&assignments).Error; err != nil {
    return nil, err
  }
  return assignments, nil
}

func (r *scenarioAssignmentRepo) GetByID(ctx context.Context, tx *gorm.DB, assignmentID uuid.UUID) (*types.ScenarioAssignment, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var result types.ScenarioAssignment
  if err := transaction.WithContext(ctx).
    Where("id = ?", assignmentID).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (r *scenarioAssignmentRepo) ListActiveByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ScenarioAssignment, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.ScenarioAssignment
  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND status = ?", userID, types.AssignmentActive).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *scenarioAssignmentRepo) Deactivate(ctx context.Context, tx *gorm.DB, assignmentID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if err := transaction.WithContext(ctx).
    Model(&types.ScenarioAssignment{}).
    Where("id = ?", assignmentID).
    Update("status", types.AssignmentInactive).Error; err != nil {
    return err
  }
  return nil
}
