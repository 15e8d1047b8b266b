package repository

import (
	"context"
	"errors"

	"boardhub/internal/model"

	"gorm.io/gorm"
)

type AvailableServiceRepository struct {
	db *gorm.DB
}

func NewAvailableServiceRepository(db *gorm.DB) *AvailableServiceRepository {
	return &AvailableServiceRepository{db: db}
}

func (r *AvailableServiceRepository) ListAll(ctx context.Context) ([]model.AvailableService, error) {
	var services []model.AvailableService
	err := r.db.WithContext(ctx).Find(&services).Error
	return services, err
}

func (r *AvailableServiceRepository) GetByID(ctx context.Context, serviceID string) (*model.AvailableService, error) {
	var svc model.AvailableService
	err := r.db.WithContext(ctx).Where("id = ?", serviceID).First(&svc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &svc, nil
}
