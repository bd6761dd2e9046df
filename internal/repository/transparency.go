package repository

import (
	"context"
	"errors"

	"esperanca/internal/models"

	"gorm.io/gorm"
)

// TransparencyRepository defines persistence operations for transparency documents.
type TransparencyRepository interface {
	GetByID(ctx context.Context, id uint) (*models.TransparencyDoc, error)
	List(ctx context.Context) ([]models.TransparencyDoc, error)
	Create(ctx context.Context, doc *models.TransparencyDoc) error
	Update(ctx context.Context, doc *models.TransparencyDoc) error
	Delete(ctx context.Context, id uint) error
}

type transparencyRepository struct {
	db *gorm.DB
}

// NewTransparencyRepository returns a new TransparencyRepository implementation.
func NewTransparencyRepository(db *gorm.DB) TransparencyRepository {
	return &transparencyRepository{db: db}
}

func (r *transparencyRepository) GetByID(ctx context.Context, id uint) (*models.TransparencyDoc, error) {
	var doc models.TransparencyDoc
	if err := r.db.WithContext(ctx).First(&doc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Documento", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &doc, nil
}

// List returns documents newest first.
func (r *transparencyRepository) List(ctx context.Context) ([]models.TransparencyDoc, error) {
	var docs []models.TransparencyDoc
	if err := r.db.WithContext(ctx).Order("published_at desc").Find(&docs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return docs, nil
}

func (r *transparencyRepository) Create(ctx context.Context, doc *models.TransparencyDoc) error {
	if err := r.db.WithContext(ctx).Create(doc).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("slug", "Este slug já está em uso. Escolha outro.")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *transparencyRepository) Update(ctx context.Context, doc *models.TransparencyDoc) error {
	if err := r.db.WithContext(ctx).Save(doc).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("slug", "Este slug já está em uso. Escolha outro.")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *transparencyRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.TransparencyDoc{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
