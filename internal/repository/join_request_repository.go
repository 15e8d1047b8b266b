package repository

import (
	"context"
	"errors"
	"time"

	"boardhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JoinRequestRepository struct {
	db *gorm.DB
}

func NewJoinRequestRepository(db *gorm.DB) *JoinRequestRepository {
	return &JoinRequestRepository{db: db}
}

// Create inserts a pending request. The composite primary key makes a second
// live request for the same pair fail with ErrDuplicate. An expired row for
// the pair still occupies the key, so it is purged in the same transaction
// before the insert.
func (r *JoinRequestRepository) Create(ctx context.Context, req *model.JoinRequest) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("board_id = ? AND user_id = ? AND expires_at <= ?",
			req.BoardID, req.UserID, time.Now().Unix()).
			Delete(&model.JoinRequest{}).Error; err != nil {
			return err
		}
		return tx.Create(req).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

// Get returns the pending request for the pair, ignoring expired rows.
func (r *JoinRequestRepository) Get(ctx context.Context, boardID, userID uuid.UUID) (*model.JoinRequest, error) {
	var req model.JoinRequest
	err := r.db.WithContext(ctx).
		Where("board_id = ? AND user_id = ? AND expires_at > ?", boardID, userID, time.Now().Unix()).
		First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *JoinRequestRepository) HasPending(ctx context.Context, boardID, userID uuid.UUID) (bool, error) {
	req, err := r.Get(ctx, boardID, userID)
	if err != nil {
		return false, err
	}
	return req != nil, nil
}

func (r *JoinRequestRepository) ListForBoard(ctx context.Context, boardID uuid.UUID) ([]model.JoinRequest, error) {
	var reqs []model.JoinRequest
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("board_id = ? AND expires_at > ?", boardID, time.Now().Unix()).
		Find(&reqs).Error
	return reqs, err
}

func (r *JoinRequestRepository) Delete(ctx context.Context, boardID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		Delete(&model.JoinRequest{}).Error
}

func (r *JoinRequestRepository) DeleteAllForBoard(ctx context.Context, boardID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Delete(&model.JoinRequest{}).Error
}

// Approve turns the pending request into a member row and removes the
// request. Both effects run in one transaction; the membership insert comes
// first so a partial apply still leaves the stronger state (member without a
// lingering request is recoverable, the reverse loses the approval).
func (r *JoinRequestRepository) Approve(ctx context.Context, boardID, userID uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := model.Membership{
			BoardID: boardID,
			UserID:  userID,
			Role:    model.RoleMember,
		}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		return tx.Where("board_id = ? AND user_id = ?", boardID, userID).
			Delete(&model.JoinRequest{}).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}
