package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
)

// Knowledge levels a generated persona may carry. Closed set; the validator
// rejects anything else.
const (
  KnowledgeBasic        = "Basic"
  KnowledgeIntermediate = "Intermediate"
  KnowledgeAdvanced     = "Advanced"
)

const (
  PersonaAgeMin = 18
  PersonaAgeMax = 80
)

type Persona struct {
  ID             uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  Name           string         `gorm:"not null;column:name" json:"name"`
  Domain         string         `gorm:"not null;index:idx_persona_query,priority:1;column:domain" json:"domain"`
  Category       string         `gorm:"index:idx_persona_query,priority:2;column:category" json:"category,omitempty"`
  Age            int            `gorm:"not null;column:age" json:"age"`
  Goals          string         `gorm:"not null;column:goals" json:"goals"`
  Concerns       string         `gorm:"not null;column:concerns" json:"concerns"`
  KnowledgeLevel string         `gorm:"not null;column:knowledge_level" json:"knowledgeLevel"`
  DomainFields   datatypes.JSON `gorm:"type:jsonb;column:domain_fields" json:"domainFields"`
  CreatedBy      uuid.UUID      `gorm:"type:uuid;not null;index;column:created_by" json:"createdBy"`
  IsActive       bool           `gorm:"not null;default:true;index;column:is_active" json:"isActive"`
  CreatedAt      time.Time      `gorm:"not null;default:now()" json:"createdAt"`
  UpdatedAt      time.Time      `gorm:"not null;default:now()" json:"updatedAt"`
}

func (Persona) TableName() string { return "persona" }
