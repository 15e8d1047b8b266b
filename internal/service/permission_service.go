package service

import (
	"context"

	"boardhub/internal/apperr"
	"boardhub/internal/model"

	"github.com/google/uuid"
)

// PermissionService manages delegated service-capability edges. Grants and
// revokes are owner-only; whether an edge actually takes effect is decided
// by the Authorizer against the subject's current role.
type PermissionService struct {
	boards BoardStore
	perms  PermissionStore
	authz  *Authorizer
}

func NewPermissionService(boards BoardStore, perms PermissionStore, authz *Authorizer) *PermissionService {
	return &PermissionService{boards: boards, perms: perms, authz: authz}
}

func (s *PermissionService) Grant(ctx context.Context, actorID, boardID uuid.UUID, serviceID string, targetID uuid.UUID) error {
	if _, err := s.ownedBoard(ctx, actorID, boardID); err != nil {
		return err
	}
	grantedBy := actorID
	return s.perms.Grant(ctx, &model.ServicePermission{
		BoardID:   boardID,
		ServiceID: serviceID,
		UserID:    targetID,
		GrantedBy: &grantedBy,
	})
}

func (s *PermissionService) Revoke(ctx context.Context, actorID, boardID uuid.UUID, serviceID string, targetID uuid.UUID) error {
	if _, err := s.ownedBoard(ctx, actorID, boardID); err != nil {
		return err
	}
	return s.perms.Revoke(ctx, boardID, serviceID, targetID)
}

// List returns the permission edges for a service on a board. Owner only.
func (s *PermissionService) List(ctx context.Context, actorID, boardID uuid.UUID, serviceID string) ([]model.ServicePermission, error) {
	if _, err := s.ownedBoard(ctx, actorID, boardID); err != nil {
		return nil, err
	}
	return s.perms.ListForService(ctx, boardID, serviceID)
}

// Check answers whether the user currently holds the service capability on
// the board, applying the full owner/role/edge rule.
func (s *PermissionService) Check(ctx context.Context, boardID, userID uuid.UUID, serviceID string) (bool, error) {
	return s.authz.CanUseService(ctx, boardID, userID, serviceID)
}

func (s *PermissionService) ownedBoard(ctx context.Context, actorID, boardID uuid.UUID) (*model.Board, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, apperr.NotFound("board not found")
	}
	if board.OwnerID != actorID {
		return nil, apperr.Forbidden("only the board owner may do this")
	}
	return board, nil
}
