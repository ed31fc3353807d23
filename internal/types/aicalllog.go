package types

import (
  "time"
  "github.com/google/uuid"
)

type AICallLog struct {
  ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  UserID    *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
  Purpose   string     `gorm:"column:purpose;not null" json:"purpose"`
  Model     string     `gorm:"column:model;not null" json:"model"`
  Domain    string     `gorm:"column:domain" json:"domain,omitempty"`
  Success   bool       `gorm:"column:success;not null" json:"success"`
  Error     string     `gorm:"column:error" json:"error,omitempty"`
  LatencyMS int64      `gorm:"column:latency_ms" json:"latency_ms"`
  CreatedAt time.Time  `gorm:"not null;default:now()" json:"created_at"`
}

func (AICallLog) TableName() string {
  return "ai_call_log"
}
