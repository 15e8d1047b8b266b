package model

import (
	"time"

	"github.com/google/uuid"
)

// Membership is the single role record a user holds on a board.
// The composite primary key enforces at most one row per (board, user) pair.
type Membership struct {
	BoardID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID   uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Role     string    `gorm:"not null;check:role IN ('owner', 'manager', 'member')"`
	JoinedAt time.Time `gorm:"autoCreateTime"`

	Board Board `gorm:"foreignKey:BoardID"`
	User  User  `gorm:"foreignKey:UserID"`
}

// Board roles. The owner row is written once at board creation and never
// transitions; manager and member toggle freely via role updates.
const (
	RoleOwner   = "owner"
	RoleManager = "manager"
	RoleMember  = "member"
)

// ValidAssignableRole reports whether role may be set through a role update.
func ValidAssignableRole(role string) bool {
	return role == RoleManager || role == RoleMember
}
