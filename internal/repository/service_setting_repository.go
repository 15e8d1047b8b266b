package repository

import (
	"context"
	"errors"

	"boardhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ServiceSettingRepository struct {
	db *gorm.DB
}

func NewServiceSettingRepository(db *gorm.DB) *ServiceSettingRepository {
	return &ServiceSettingRepository{db: db}
}

// Put creates or replaces the setting row for (board, instance).
func (r *ServiceSettingRepository) Put(ctx context.Context, setting *model.ServiceSetting) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(setting).Error
}

func (r *ServiceSettingRepository) Get(ctx context.Context, boardID uuid.UUID, instanceID string) (*model.ServiceSetting, error) {
	var setting model.ServiceSetting
	err := r.db.WithContext(ctx).
		Where("board_id = ? AND instance_id = ?", boardID, instanceID).
		First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *ServiceSettingRepository) List(ctx context.Context, boardID uuid.UUID) ([]model.ServiceSetting, error) {
	var settings []model.ServiceSetting
	err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Find(&settings).Error
	return settings, err
}

func (r *ServiceSettingRepository) DeleteByType(ctx context.Context, boardID uuid.UUID, serviceType string) error {
	return r.db.WithContext(ctx).
		Where("board_id = ? AND service_type = ?", boardID, serviceType).
		Delete(&model.ServiceSetting{}).Error
}
