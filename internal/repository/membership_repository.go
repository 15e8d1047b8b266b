package repository

import (
	"context"
	"errors"

	"boardhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MembershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// Create is the conditional write for a (board, user) pair: the composite
// primary key rejects a second row, which surfaces as ErrDuplicate.
func (r *MembershipRepository) Create(ctx context.Context, m *model.Membership) error {
	err := r.db.WithContext(ctx).Create(m).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

// UpdateRole overwrites the role unconditionally; no history is kept.
func (r *MembershipRepository) UpdateRole(ctx context.Context, boardID, userID uuid.UUID, role string) error {
	return r.db.WithContext(ctx).
		Model(&model.Membership{}).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		Update("role", role).Error
}

func (r *MembershipRepository) Get(ctx context.Context, boardID, userID uuid.UUID) (*model.Membership, error) {
	var m model.Membership
	err := r.db.WithContext(ctx).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MembershipRepository) IsMember(ctx context.Context, boardID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Membership{}).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *MembershipRepository) ListByRole(ctx context.Context, boardID uuid.UUID, role string) ([]model.Membership, error) {
	var memberships []model.Membership
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("board_id = ? AND role = ?", boardID, role).
		Find(&memberships).Error
	return memberships, err
}

// SearchByUserName finds board members whose user name contains the term,
// case-insensitively.
func (r *MembershipRepository) SearchByUserName(ctx context.Context, boardID uuid.UUID, name string) ([]model.Membership, error) {
	var memberships []model.Membership
	err := r.db.WithContext(ctx).
		Preload("User").
		Joins("JOIN users ON users.id = memberships.user_id").
		Where("memberships.board_id = ? AND users.user_name ILIKE ?", boardID, "%"+name+"%").
		Find(&memberships).Error
	return memberships, err
}

func (r *MembershipRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Membership, error) {
	var memberships []model.Membership
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&memberships).Error
	return memberships, err
}
