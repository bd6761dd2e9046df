package repository

import (
	"context"
	"errors"

	"esperanca/internal/content"
	"esperanca/internal/models"

	"gorm.io/gorm"
)

// TextRepository defines persistence operations for institutional texts.
type TextRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Text, error)
	GetBySlug(ctx context.Context, slug string) (*models.Text, error)
	List(ctx context.Context) ([]models.Text, error)
	CollectBySlugs(ctx context.Context, slugs []string) (map[string]models.Text, error)
	Create(ctx context.Context, text *models.Text) error
	Update(ctx context.Context, text *models.Text) error
	Delete(ctx context.Context, id uint) error
	EnsureReserved(ctx context.Context) error
}

type textRepository struct {
	db *gorm.DB
}

// NewTextRepository returns a new TextRepository implementation.
func NewTextRepository(db *gorm.DB) TextRepository {
	return &textRepository{db: db}
}

func (r *textRepository) GetByID(ctx context.Context, id uint) (*models.Text, error) {
	var text models.Text
	if err := r.db.WithContext(ctx).First(&text, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Texto", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &text, nil
}

// GetBySlug returns nil, nil when the slug is absent so callers can fall back
// to registry defaults without special-casing the error.
func (r *textRepository) GetBySlug(ctx context.Context, slug string) (*models.Text, error) {
	var text models.Text
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&text).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &text, nil
}

func (r *textRepository) List(ctx context.Context) ([]models.Text, error) {
	var texts []models.Text
	if err := r.db.WithContext(ctx).Order("updated_at desc").Find(&texts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return texts, nil
}

// CollectBySlugs fetches the given slugs in one query and returns them keyed
// by slug. Missing slugs are simply absent from the map.
func (r *textRepository) CollectBySlugs(ctx context.Context, slugs []string) (map[string]models.Text, error) {
	if len(slugs) == 0 {
		return map[string]models.Text{}, nil
	}
	var texts []models.Text
	if err := r.db.WithContext(ctx).Where("slug IN ?", slugs).Find(&texts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	out := make(map[string]models.Text, len(texts))
	for _, t := range texts {
		out[t.Slug] = t
	}
	return out, nil
}

func (r *textRepository) Create(ctx context.Context, text *models.Text) error {
	if err := r.db.WithContext(ctx).Create(text).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("slug", "Este slug já está em uso. Escolha outro.")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *textRepository) Update(ctx context.Context, text *models.Text) error {
	if err := r.db.WithContext(ctx).Save(text).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("slug", "Este slug já está em uso. Escolha outro.")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *textRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Text{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// EnsureReserved creates any missing reserved section rows with their default
// title and the placeholder content. Existing rows are left untouched.
func (r *textRepository) EnsureReserved(ctx context.Context) error {
	existing, err := r.CollectBySlugs(ctx, content.Slugs)
	if err != nil {
		return err
	}
	for _, section := range content.Sections {
		if _, ok := existing[section.Slug]; ok {
			continue
		}
		text := models.Text{
			Title:   section.DefaultTitle,
			Slug:    section.Slug,
			Content: content.Placeholder,
		}
		if err := r.Create(ctx, &text); err != nil {
			// A concurrent seed may have created the row in between.
			var appErr *models.AppError
			if errors.As(err, &appErr) && appErr.Code == "CONFLICT" {
				continue
			}
			return err
		}
	}
	return nil
}
