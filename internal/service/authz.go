package service

import (
	"context"

	"boardhub/internal/apperr"
	"boardhub/internal/model"

	"github.com/google/uuid"
)

// Authorizer computes "may user U exercise service S on board B" from
// current state. It never writes.
//
// The rule: the owner always may; anyone without a manager role never may;
// a manager may only with a recorded permission edge. The role is re-read at
// decision time so that demoting a manager voids their delegated
// capabilities immediately, even while stale permission edges remain stored.
type Authorizer struct {
	boards  BoardStore
	members MembershipStore
	perms   PermissionStore
}

func NewAuthorizer(boards BoardStore, members MembershipStore, perms PermissionStore) *Authorizer {
	return &Authorizer{boards: boards, members: members, perms: perms}
}

func (a *Authorizer) CanUseService(ctx context.Context, boardID, userID uuid.UUID, serviceID string) (bool, error) {
	board, err := a.boards.GetByID(ctx, boardID)
	if err != nil {
		return false, err
	}
	if board == nil {
		return false, apperr.NotFound("board not found")
	}
	if board.OwnerID == userID {
		return true, nil
	}

	member, err := a.members.Get(ctx, boardID, userID)
	if err != nil {
		return false, err
	}
	if member == nil || member.Role != model.RoleManager {
		return false, nil
	}

	return a.perms.Has(ctx, boardID, serviceID, userID)
}
