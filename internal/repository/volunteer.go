package repository

import (
	"context"
	"errors"

	"esperanca/internal/models"

	"gorm.io/gorm"
)

// VolunteerRepository defines persistence operations for volunteers.
type VolunteerRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Volunteer, error)
	List(ctx context.Context) ([]models.Volunteer, error)
	Create(ctx context.Context, volunteer *models.Volunteer) error
	Update(ctx context.Context, volunteer *models.Volunteer) error
	Delete(ctx context.Context, id uint) error
}

type volunteerRepository struct {
	db *gorm.DB
}

// NewVolunteerRepository returns a new VolunteerRepository implementation.
func NewVolunteerRepository(db *gorm.DB) VolunteerRepository {
	return &volunteerRepository{db: db}
}

func (r *volunteerRepository) GetByID(ctx context.Context, id uint) (*models.Volunteer, error) {
	var volunteer models.Volunteer
	if err := r.db.WithContext(ctx).First(&volunteer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Voluntário", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &volunteer, nil
}

func (r *volunteerRepository) List(ctx context.Context) ([]models.Volunteer, error) {
	var volunteers []models.Volunteer
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&volunteers).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return volunteers, nil
}

func (r *volunteerRepository) Create(ctx context.Context, volunteer *models.Volunteer) error {
	if err := r.db.WithContext(ctx).Create(volunteer).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *volunteerRepository) Update(ctx context.Context, volunteer *models.Volunteer) error {
	if err := r.db.WithContext(ctx).Save(volunteer).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *volunteerRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Volunteer{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
