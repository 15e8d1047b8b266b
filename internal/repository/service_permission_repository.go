package repository

import (
	"context"
	"errors"

	"boardhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ServicePermissionRepository struct {
	db *gorm.DB
}

func NewServicePermissionRepository(db *gorm.DB) *ServicePermissionRepository {
	return &ServicePermissionRepository{db: db}
}

// Grant records the permission edge; granting twice is a no-op.
func (r *ServicePermissionRepository) Grant(ctx context.Context, perm *model.ServicePermission) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(perm).Error
}

func (r *ServicePermissionRepository) Revoke(ctx context.Context, boardID uuid.UUID, serviceID string, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("board_id = ? AND service_id = ? AND user_id = ?", boardID, serviceID, userID).
		Delete(&model.ServicePermission{}).Error
}

func (r *ServicePermissionRepository) Has(ctx context.Context, boardID uuid.UUID, serviceID string, userID uuid.UUID) (bool, error) {
	var perm model.ServicePermission
	err := r.db.WithContext(ctx).
		Where("board_id = ? AND service_id = ? AND user_id = ?", boardID, serviceID, userID).
		First(&perm).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *ServicePermissionRepository) ListForService(ctx context.Context, boardID uuid.UUID, serviceID string) ([]model.ServicePermission, error) {
	var perms []model.ServicePermission
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("board_id = ? AND service_id = ?", boardID, serviceID).
		Find(&perms).Error
	return perms, err
}
