package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
)

// Difficulty levels for training scenarios. Closed set.
const (
  DifficultyIntermediate = "Intermediate"
  DifficultyAdvanced     = "Advanced"
  DifficultyExpert       = "Expert"
)

type Scenario struct {
  ID            uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  Title         string         `gorm:"not null;column:title" json:"title"`
  Domain        string         `gorm:"not null;index:idx_scenario_query,priority:1;column:domain" json:"domain"`
  Category      string         `gorm:"not null;index:idx_scenario_query,priority:2;column:category" json:"category"`
  SubCategory   string         `gorm:"index:idx_scenario_query,priority:3;column:sub_category" json:"subCategory,omitempty"`
  Description   string         `gorm:"not null;column:description" json:"description"`
  Difficulty    string         `gorm:"not null;index:idx_scenario_query,priority:4;column:difficulty" json:"difficulty"`
  Objectives    datatypes.JSON `gorm:"type:jsonb;not null;column:objectives" json:"objectives"`
  EstimatedTime string         `gorm:"not null;column:estimated_time" json:"estimatedTime"`
  KeyPoints     datatypes.JSON `gorm:"type:jsonb;column:key_points" json:"keyPoints,omitempty"`
  CreatedBy     uuid.UUID      `gorm:"type:uuid;not null;index;column:created_by" json:"createdBy"`
  IsActive      bool           `gorm:"not null;default:true;index;column:is_active" json:"isActive"`
  CreatedAt     time.Time      `gorm:"not null;default:now()" json:"createdAt"`
  UpdatedAt     time.Time      `gorm:"not null;default:now()" json:"updatedAt"`
}

func (Scenario) TableName() string { return "scenario" }
