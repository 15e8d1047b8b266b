package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"boardhub/internal/apperr"
	"boardhub/internal/model"
	"boardhub/internal/repository"

	"github.com/google/uuid"
)

// JoinService runs the join workflow: immediate joins on open boards,
// request/approve/reject on boards with the approveJoin service enabled.
type JoinService struct {
	boards   BoardStore
	members  MembershipStore
	requests JoinRequestStore
	settings SettingStore
	now      func() time.Time
}

func NewJoinService(
	boards BoardStore,
	members MembershipStore,
	requests JoinRequestStore,
	settings SettingStore,
) *JoinService {
	return &JoinService{
		boards:   boards,
		members:  members,
		requests: requests,
		settings: settings,
		now:      time.Now,
	}
}

// JoinResult reports which branch of the workflow a join attempt took.
type JoinResult struct {
	Joined    bool `json:"joined"`
	Requested bool `json:"requested"`
}

// Join handles a bare join attempt (no answer). Boards without approveJoin
// admit the user immediately as a member. Boards with approveJoin and no
// configured question get a pending request with an empty answer; a
// configured question redirects the caller to RequestJoin.
func (s *JoinService) Join(ctx context.Context, boardID, userID uuid.UUID) (JoinResult, error) {
	return s.join(ctx, boardID, userID, "", false)
}

// RequestJoin handles a join attempt carrying an answer to the board's
// question.
func (s *JoinService) RequestJoin(ctx context.Context, boardID, userID uuid.UUID, answer string) (JoinResult, error) {
	return s.join(ctx, boardID, userID, answer, true)
}

func (s *JoinService) join(ctx context.Context, boardID, userID uuid.UUID, answer string, answered bool) (JoinResult, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return JoinResult{}, err
	}
	if board == nil {
		return JoinResult{}, apperr.NotFound("board not found")
	}

	member, err := s.members.IsMember(ctx, boardID, userID)
	if err != nil {
		return JoinResult{}, err
	}
	if member {
		return JoinResult{}, apperr.AlreadyExists("already a member of this board")
	}

	if !board.HasService(model.ServiceApproveJoin) {
		err := s.members.Create(ctx, &model.Membership{
			BoardID: boardID,
			UserID:  userID,
			Role:    model.RoleMember,
		})
		if errors.Is(err, repository.ErrDuplicate) {
			return JoinResult{}, apperr.AlreadyExists("already a member of this board")
		}
		if err != nil {
			return JoinResult{}, err
		}
		return JoinResult{Joined: true}, nil
	}

	pending, err := s.requests.HasPending(ctx, boardID, userID)
	if err != nil {
		return JoinResult{}, err
	}
	if pending {
		return JoinResult{}, apperr.AlreadyExists("join request already pending")
	}

	cfg, err := s.approveJoinConfig(ctx, boardID)
	if err != nil {
		return JoinResult{}, err
	}
	if cfg.RequiresAnswer() {
		if !answered {
			return JoinResult{}, apperr.InvalidArg("this board requires an answer; submit a join request with one")
		}
		if strings.TrimSpace(answer) == "" {
			return JoinResult{}, apperr.InvalidArg("an answer to the board's question is required")
		}
	}

	nowTime := s.now()
	req := &model.JoinRequest{
		BoardID:   boardID,
		UserID:    userID,
		Answer:    answer,
		ExpiresAt: nowTime.Unix() + int64(cfg.EffectiveTTLDays())*24*3600,
	}
	if err := s.requests.Create(ctx, req); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return JoinResult{}, apperr.AlreadyExists("join request already pending")
		}
		return JoinResult{}, err
	}
	return JoinResult{Requested: true}, nil
}

// ListPending returns the board's pending join requests. Owner only.
func (s *JoinService) ListPending(ctx context.Context, actorID, boardID uuid.UUID) ([]model.JoinRequest, error) {
	if _, err := s.ownedBoard(ctx, actorID, boardID); err != nil {
		return nil, err
	}
	return s.requests.ListForBoard(ctx, boardID)
}

// Approve admits the requester as a member and removes the pending record.
// Owner only.
func (s *JoinService) Approve(ctx context.Context, actorID, boardID, userID uuid.UUID) error {
	if _, err := s.ownedBoard(ctx, actorID, boardID); err != nil {
		return err
	}
	req, err := s.requests.Get(ctx, boardID, userID)
	if err != nil {
		return err
	}
	if req == nil {
		return apperr.NotFound("join request not found")
	}
	if err := s.requests.Approve(ctx, boardID, userID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return apperr.AlreadyExists("already a member of this board")
		}
		return err
	}
	return nil
}

// Reject removes the pending record without creating a membership. Owner only.
func (s *JoinService) Reject(ctx context.Context, actorID, boardID, userID uuid.UUID) error {
	if _, err := s.ownedBoard(ctx, actorID, boardID); err != nil {
		return err
	}
	req, err := s.requests.Get(ctx, boardID, userID)
	if err != nil {
		return err
	}
	if req == nil {
		return apperr.NotFound("join request not found")
	}
	return s.requests.Delete(ctx, boardID, userID)
}

func (s *JoinService) approveJoinConfig(ctx context.Context, boardID uuid.UUID) (model.ApproveJoinConfig, error) {
	setting, err := s.settings.Get(ctx, boardID, model.ServiceApproveJoin)
	if err != nil {
		return model.ApproveJoinConfig{}, err
	}
	if setting == nil {
		return model.ApproveJoinConfig{}, nil
	}
	cfg, err := model.DecodeApproveJoinConfig(setting.Config)
	if err != nil {
		// A corrupt stored config must not block joins; fall back to the
		// defaults, which clamp the TTL to the minimum.
		return model.ApproveJoinConfig{}, nil
	}
	return cfg, nil
}

func (s *JoinService) ownedBoard(ctx context.Context, actorID, boardID uuid.UUID) (*model.Board, error) {
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
