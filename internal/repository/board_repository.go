package repository

import (
	"context"
	"errors"

	"boardhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

// Create inserts the board together with the owner's membership row. Board
// creation is not complete without the owner row, so both writes share one
// transaction. A duplicate board name surfaces as ErrDuplicate via the
// unique index on boards.name.
func (r *BoardRepository) Create(ctx context.Context, board *model.Board) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(board).Error; err != nil {
			return err
		}
		owner := model.Membership{
			BoardID: board.ID,
			UserID:  board.OwnerID,
			Role:    model.RoleOwner,
		}
		return tx.Create(&owner).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

func (r *BoardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	var board model.Board
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&board).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &board, nil
}

func (r *BoardRepository) FindByName(ctx context.Context, name string) (*model.Board, error) {
	var board model.Board
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&board).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &board, nil
}

func (r *BoardRepository) GetOwned(ctx context.Context, ownerID uuid.UUID) ([]model.Board, error) {
	var boards []model.Board
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Find(&boards).Error
	return boards, err
}

func (r *BoardRepository) ListAll(ctx context.Context) ([]model.Board, error) {
	var boards []model.Board
	err := r.db.WithContext(ctx).Find(&boards).Error
	return boards, err
}

// Update persists the board. The name unique index guards renames the same
// way it guards creation.
func (r *BoardRepository) Update(ctx context.Context, board *model.Board) error {
	err := r.db.WithContext(ctx).Save(board).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}
