package model

import (
	"time"

	"github.com/google/uuid"
)

// JoinRequest is a pending, time-limited proposal to join a board.
// ExpiresAt is epoch seconds; expired rows are filtered on read rather than
// swept by a background job.
type JoinRequest struct {
	BoardID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Answer    string
	ExpiresAt int64     `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Board Board `gorm:"foreignKey:BoardID"`
	User  User  `gorm:"foreignKey:UserID"`
}
