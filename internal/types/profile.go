package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"
)

// Profile is the per-user health profile row. HealthConcerns holds concern-tag
// ids drawn from the shared catalog, stored as a JSON array.
type Profile struct {
  gorm.Model
  ID                uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  UserID            uuid.UUID         `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
  User              *User             `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
  DisplayName       string            `gorm:"column:display_name" json:"display_name"`
  HealthConcerns    datatypes.JSON    `gorm:"type:jsonb;column:health_concerns" json:"health_concerns"`
  CreatedAt         time.Time         `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt         time.Time         `gorm:"not null;default:now()" json:"updated_at"`
}

func (Profile) TableName() string {
  return "profiles"
}
