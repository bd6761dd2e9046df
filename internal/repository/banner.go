package repository

import (
	"context"
	"errors"

	"esperanca/internal/models"

	"gorm.io/gorm"
)

// BannerRepository defines persistence operations for homepage banners.
type BannerRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Banner, error)
	List(ctx context.Context) ([]models.Banner, error)
	Create(ctx context.Context, banner *models.Banner) error
	Update(ctx context.Context, banner *models.Banner) error
	Delete(ctx context.Context, id uint) error
}

type bannerRepository struct {
	db *gorm.DB
}

// NewBannerRepository returns a new BannerRepository implementation.
func NewBannerRepository(db *gorm.DB) BannerRepository {
	return &bannerRepository{db: db}
}

func (r *bannerRepository) GetByID(ctx context.Context, id uint) (*models.Banner, error) {
	var banner models.Banner
	if err := r.db.WithContext(ctx).First(&banner, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Banner", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &banner, nil
}

// List returns banners in carousel order: explicit order first, newest wins
// among ties.
func (r *bannerRepository) List(ctx context.Context) ([]models.Banner, error) {
	var banners []models.Banner
	if err := r.db.WithContext(ctx).
		Order("display_order asc").
		Order("created_at desc").
		Find(&banners).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return banners, nil
}

func (r *bannerRepository) Create(ctx context.Context, banner *models.Banner) error {
	if err := r.db.WithContext(ctx).Create(banner).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *bannerRepository) Update(ctx context.Context, banner *models.Banner) error {
	if err := r.db.WithContext(ctx).Save(banner).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *bannerRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Banner{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
