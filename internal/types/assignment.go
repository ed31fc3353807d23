package types

import (
  "time"
  "github.com/google/uuid"
)

// Assignment rows grant a trainee visibility into an entity. They move
// active -> inactive and are never physically deleted (audit trail).
const (
  AssignmentActive   = "active"
  AssignmentInactive = "inactive"
)

type PersonaAssignment struct {
  ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  UserID     uuid.UUID `gorm:"type:uuid;not null;index:idx_persona_assignment_user;column:user_id" json:"userId"`
  PersonaID  uuid.UUID `gorm:"type:uuid;not null;index;column:persona_id" json:"personaId"`
  Status     string    `gorm:"not null;default:active;index:idx_persona_assignment_user;column:status" json:"status"`
  AssignedBy uuid.UUID `gorm:"type:uuid;not null;column:assigned_by" json:"assignedBy"`
  AssignedAt time.Time `gorm:"not null;default:now();column:assigned_at" json:"assignedAt"`
  UpdatedAt  time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

func (PersonaAssignment) TableName() string { return "persona_assignment" }

type ScenarioAssignment struct {
  ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  UserID     uuid.UUID `gorm:"type:uuid;not null;index:idx_scenario_assignment_user;column:user_id" json:"userId"`
  ScenarioID uuid.UUID `gorm:"type:uuid;not null;index;column:scenario_id" json:"scenarioId"`
  Status     string    `gorm:"not null;default:active;index:idx_scenario_assignment_user;column:status" json:"status"`
  AssignedBy uuid.UUID `gorm:"type:uuid;not null;column:assigned_by" json:"assignedBy"`
  AssignedAt time.Time `gorm:"not null;default:now();column:assigned_at" json:"assignedAt"`
  UpdatedAt  time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

func (ScenarioAssignment) TableName() string { return "scenario_assignment" }
