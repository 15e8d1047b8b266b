package model

import (
	"time"

	"github.com/google/uuid"
)

// ServicePermission records that a user has been delegated a service's
// capability on a board. It is pure edge storage: whether the edge actually
// grants anything is decided against the user's current role, not here.
type ServicePermission struct {
	BoardID   uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ServiceID string     `gorm:"primaryKey"`
	UserID    uuid.UUID  `gorm:"type:uuid;primaryKey"`
	GrantedBy *uuid.UUID `gorm:"type:uuid"`
	GrantedAt time.Time  `gorm:"autoCreateTime"`

	Board Board `gorm:"foreignKey:BoardID"`
	User  User  `gorm:"foreignKey:UserID"`
}
