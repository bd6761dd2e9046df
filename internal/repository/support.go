package repository

import (
	"context"
	"errors"

	"esperanca/internal/models"

	"gorm.io/gorm"
)

// SupportRepository defines persistence operations for support options.
type SupportRepository interface {
	GetByID(ctx context.Context, id uint) (*models.SupportOption, error)
	List(ctx context.Context) ([]models.SupportOption, error)
	Create(ctx context.Context, option *models.SupportOption) error
	Update(ctx context.Context, option *models.SupportOption) error
	Delete(ctx context.Context, id uint) error
}

type supportRepository struct {
	db *gorm.DB
}

// NewSupportRepository returns a new SupportRepository implementation.
func NewSupportRepository(db *gorm.DB) SupportRepository {
	return &supportRepository{db: db}
}

func (r *supportRepository) GetByID(ctx context.Context, id uint) (*models.SupportOption, error) {
	var option models.SupportOption
	if err := r.db.WithContext(ctx).First(&option, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Apoio", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &option, nil
}

func (r *supportRepository) List(ctx context.Context) ([]models.SupportOption, error) {
	var options []models.SupportOption
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&options).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return options, nil
}

func (r *supportRepository) Create(ctx context.Context, option *models.SupportOption) error {
	if err := r.db.WithContext(ctx).Create(option).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *supportRepository) Update(ctx context.Context, option *models.SupportOption) error {
	if err := r.db.WithContext(ctx).Save(option).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *supportRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.SupportOption{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
