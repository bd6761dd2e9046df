package repository

import (
	"context"
	"errors"

	"esperanca/internal/models"

	"gorm.io/gorm"
)

// GalleryRepository defines persistence operations for gallery items.
type GalleryRepository interface {
	GetByID(ctx context.Context, id uint) (*models.GalleryItem, error)
	List(ctx context.Context) ([]models.GalleryItem, error)
	Create(ctx context.Context, item *models.GalleryItem) error
	Update(ctx context.Context, item *models.GalleryItem) error
	Delete(ctx context.Context, id uint) error
}

type galleryRepository struct {
	db *gorm.DB
}

// NewGalleryRepository returns a new GalleryRepository implementation.
func NewGalleryRepository(db *gorm.DB) GalleryRepository {
	return &galleryRepository{db: db}
}

func (r *galleryRepository) GetByID(ctx context.Context, id uint) (*models.GalleryItem, error) {
	var item models.GalleryItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Item da galeria", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &item, nil
}

// List returns gallery items newest first.
func (r *galleryRepository) List(ctx context.Context) ([]models.GalleryItem, error) {
	var items []models.GalleryItem
	if err := r.db.WithContext(ctx).Order("published_at desc").Find(&items).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return items, nil
}

func (r *galleryRepository) Create(ctx context.Context, item *models.GalleryItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("slug", "Este slug já está em uso. Escolha outro.")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *galleryRepository) Update(ctx context.Context, item *models.GalleryItem) error {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("slug", "Este slug já está em uso. Escolha outro.")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *galleryRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.GalleryItem{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
