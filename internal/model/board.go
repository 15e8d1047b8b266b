package model

import (
	"time"

	"github.com/google/uuid"
)

type Board struct {
	ID              uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name            string    `gorm:"uniqueIndex;not null"`
	OwnerID         uuid.UUID `gorm:"type:uuid;not null;index"`
	EnabledServices []string  `gorm:"serializer:json;type:jsonb"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Owner User `gorm:"foreignKey:OwnerID"`
}

// HasService reports whether the given service key is enabled on the board.
func (b *Board) HasService(serviceKey string) bool {
	for _, k := range b.EnabledServices {
		if k == serviceKey {
			return true
		}
	}
	return false
}
