package model

import (
	"encoding/json"

	"github.com/google/uuid"
)

// ServiceSetting stores one service instance's configuration on a board.
// Singleton service types use the type key itself as InstanceID, which keeps
// at most one row per board for that type.
type ServiceSetting struct {
	BoardID     uuid.UUID       `gorm:"type:uuid;primaryKey"`
	InstanceID  string          `gorm:"primaryKey"`
	ServiceType string          `gorm:"not null;index"`
	Config      json.RawMessage `gorm:"type:jsonb"`
}
