package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"
)

// AnalysisHistory is an append-only record of one completed analysis. The
// result payload is stored as an opaque JSON blob and never normalized.
type AnalysisHistory struct {
  gorm.Model
  ID                uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  UserID            uuid.UUID         `gorm:"type:uuid;index;not null" json:"user_id"`
  User              *User             `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
  ProductName       *string           `gorm:"column:product_name" json:"product_name,omitempty"`
  Query             *string           `gorm:"column:query" json:"query,omitempty"`
  AnalysisResult    datatypes.JSON    `gorm:"type:jsonb;column:analysis_result" json:"analysis_result"`
  CreatedAt         time.Time         `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt         time.Time         `gorm:"not null;default:now()" json:"updated_at"`
}

func (AnalysisHistory) TableName() string {
  return "analysis_history"
}
