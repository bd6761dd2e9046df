package repository

import (
	"context"
	"errors"

	"esperanca/internal/models"

	"gorm.io/gorm"
)

// TestimonialRepository defines persistence operations for video testimonials.
type TestimonialRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Testimonial, error)
	List(ctx context.Context) ([]models.Testimonial, error)
	Create(ctx context.Context, testimonial *models.Testimonial) error
	Update(ctx context.Context, testimonial *models.Testimonial) error
	Delete(ctx context.Context, id uint) error
}

type testimonialRepository struct {
	db *gorm.DB
}

// NewTestimonialRepository returns a new TestimonialRepository implementation.
func NewTestimonialRepository(db *gorm.DB) TestimonialRepository {
	return &testimonialRepository{db: db}
}

func (r *testimonialRepository) GetByID(ctx context.Context, id uint) (*models.Testimonial, error) {
	var testimonial models.Testimonial
	if err := r.db.WithContext(ctx).First(&testimonial, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Depoimento", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &testimonial, nil
}

func (r *testimonialRepository) List(ctx context.Context) ([]models.Testimonial, error) {
	var testimonials []models.Testimonial
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&testimonials).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return testimonials, nil
}

func (r *testimonialRepository) Create(ctx context.Context, testimonial *models.Testimonial) error {
	if err := r.db.WithContext(ctx).Create(testimonial).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *testimonialRepository) Update(ctx context.Context, testimonial *models.Testimonial) error {
	if err := r.db.WithContext(ctx).Save(testimonial).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *testimonialRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Testimonial{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
