package service

import (
	"context"
	"strings"

	"boardhub/internal/apperr"
	"boardhub/internal/model"

	"github.com/google/uuid"
)

// MembershipService exposes the membership read paths and the single role
// transition the system allows: member <-> manager, owner-initiated.
type MembershipService struct {
	boards  BoardStore
	members MembershipStore
}

func NewMembershipService(boards BoardStore, members MembershipStore) *MembershipService {
	return &MembershipService{boards: boards, members: members}
}

func (s *MembershipService) ListMine(ctx context.Context, userID uuid.UUID) ([]model.Membership, error) {
	return s.members.ListForUser(ctx, userID)
}

// ListMembers lists the board's memberships with the given role. The caller
// must belong to the board.
func (s *MembershipService) ListMembers(ctx context.Context, actorID, boardID uuid.UUID, role string) ([]model.Membership, error) {
	if !model.ValidAssignableRole(role) {
		return nil, apperr.InvalidArg("role must be member or manager")
	}
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, apperr.NotFound("board not found")
	}
	if board.OwnerID != actorID {
		member, err := s.members.IsMember(ctx, boardID, actorID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, apperr.Forbidden("not a member of this board")
		}
	}
	return s.members.ListByRole(ctx, boardID, role)
}

// SearchMembers finds the board's members by user name. The caller must
// belong to the board.
func (s *MembershipService) SearchMembers(ctx context.Context, actorID, boardID uuid.UUID, name string) ([]model.Membership, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.InvalidArg("a search term is required")
	}
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, apperr.NotFound("board not found")
	}
	if board.OwnerID != actorID {
		member, err := s.members.IsMember(ctx, boardID, actorID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, apperr.Forbidden("not a member of this board")
		}
	}
	return s.members.SearchByUserName(ctx, boardID, name)
}

// UpdateRole promotes a member to manager or demotes a manager to member.
// Owner only. The owner's own row never transitions, and no path assigns
// the owner role: demotion is also the moment any delegated capabilities of
// the target stop taking effect, since authorization re-reads the role.
func (s *MembershipService) UpdateRole(ctx context.Context, actorID, boardID, targetID uuid.UUID, role string) error {
	if !model.ValidAssignableRole(role) {
		return apperr.InvalidArg("role must be member or manager")
	}
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return err
	}
	if board == nil {
		return apperr.NotFound("board not found")
	}
	if board.OwnerID != actorID {
		return apperr.Forbidden("only the board owner may change roles")
	}

	target, err := s.members.Get(ctx, boardID, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return apperr.NotFound("membership not found")
	}
	if target.Role == model.RoleOwner {
		return apperr.FailedPrecondition("the owner's role cannot be changed")
	}
	if target.Role == role {
		return nil
	}
	return s.members.UpdateRole(ctx, boardID, targetID, role)
}
