package repository

import (
	"context"
	"errors"

	"esperanca/internal/models"

	"gorm.io/gorm"
)

// PartnerRepository defines persistence operations for partners.
type PartnerRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Partner, error)
	List(ctx context.Context) ([]models.Partner, error)
	Create(ctx context.Context, partner *models.Partner) error
	Update(ctx context.Context, partner *models.Partner) error
	Delete(ctx context.Context, id uint) error
}

type partnerRepository struct {
	db *gorm.DB
}

// NewPartnerRepository returns a new PartnerRepository implementation.
func NewPartnerRepository(db *gorm.DB) PartnerRepository {
	return &partnerRepository{db: db}
}

func (r *partnerRepository) GetByID(ctx context.Context, id uint) (*models.Partner, error) {
	var partner models.Partner
	if err := r.db.WithContext(ctx).First(&partner, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Parceiro", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &partner, nil
}

func (r *partnerRepository) List(ctx context.Context) ([]models.Partner, error) {
	var partners []models.Partner
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&partners).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return partners, nil
}

func (r *partnerRepository) Create(ctx context.Context, partner *models.Partner) error {
	if err := r.db.WithContext(ctx).Create(partner).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("slug", "Este slug já está em uso. Escolha outro.")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *partnerRepository) Update(ctx context.Context, partner *models.Partner) error {
	if err := r.db.WithContext(ctx).Save(partner).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("slug", "Este slug já está em uso. Escolha outro.")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *partnerRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Partner{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
