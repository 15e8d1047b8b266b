// Package service holds the board, membership, join-workflow, and
// permission rules. Every operation takes the acting user id explicitly;
// nothing here reads ambient request state or performs credential checks.
package service

import (
	"context"

	"boardhub/internal/model"

	"github.com/google/uuid"
)

type BoardStore interface {
	Create(ctx context.Context, board *model.Board) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error)
	FindByName(ctx context.Context, name string) (*model.Board, error)
	GetOwned(ctx context.Context, ownerID uuid.UUID) ([]model.Board, error)
	ListAll(ctx context.Context) ([]model.Board, error)
	Update(ctx context.Context, board *model.Board) error
}

type MembershipStore interface {
	Create(ctx context.Context, m *model.Membership) error
	UpdateRole(ctx context.Context, boardID, userID uuid.UUID, role string) error
	Get(ctx context.Context, boardID, userID uuid.UUID) (*model.Membership, error)
	IsMember(ctx context.Context, boardID, userID uuid.UUID) (bool, error)
	ListByRole(ctx context.Context, boardID uuid.UUID, role string) ([]model.Membership, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Membership, error)
	SearchByUserName(ctx context.Context, boardID uuid.UUID, name string) ([]model.Membership, error)
}

type JoinRequestStore interface {
	Create(ctx context.Context, req *model.JoinRequest) error
	Get(ctx context.Context, boardID, userID uuid.UUID) (*model.JoinRequest, error)
	HasPending(ctx context.Context, boardID, userID uuid.UUID) (bool, error)
	ListForBoard(ctx context.Context, boardID uuid.UUID) ([]model.JoinRequest, error)
	Delete(ctx context.Context, boardID, userID uuid.UUID) error
	DeleteAllForBoard(ctx context.Context, boardID uuid.UUID) error
	Approve(ctx context.Context, boardID, userID uuid.UUID) error
}

type SettingStore interface {
	Put(ctx context.Context, setting *model.ServiceSetting) error
	Get(ctx context.Context, boardID uuid.UUID, instanceID string) (*model.ServiceSetting, error)
	List(ctx context.Context, boardID uuid.UUID) ([]model.ServiceSetting, error)
	DeleteByType(ctx context.Context, boardID uuid.UUID, serviceType string) error
}

type PermissionStore interface {
	Grant(ctx context.Context, perm *model.ServicePermission) error
	Revoke(ctx context.Context, boardID uuid.UUID, serviceID string, userID uuid.UUID) error
	Has(ctx context.Context, boardID uuid.UUID, serviceID string, userID uuid.UUID) (bool, error)
	ListForService(ctx context.Context, boardID uuid.UUID, serviceID string) ([]model.ServicePermission, error)
}

type ServiceCatalog interface {
	ListAll(ctx context.Context) ([]model.AvailableService, error)
	GetByID(ctx context.Context, serviceID string) (*model.AvailableService, error)
}
