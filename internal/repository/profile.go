package repository

import (
	"context"
	"errors"

	"hiredev/internal/cache"
	"hiredev/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfileRepository defines persistence operations for developer profiles.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.DeveloperProfile, error)
	Create(ctx context.Context, profile *models.DeveloperProfile) error
	Update(ctx context.Context, profile *models.DeveloperProfile) error
	Delete(ctx context.Context, userID uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]models.DeveloperProfile, error)
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository returns a new ProfileRepository implementation.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.DeveloperProfile, error) {
	var profile models.DeveloperProfile
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("DeveloperProfile", userID)
		}
		return nil, models.NewInternalError(err)
	}
	return &profile, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *models.DeveloperProfile) error {
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		if IsUniqueConstraintError(err) {
			return models.NewValidationError("Developer profile already exists for this user")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *profileRepository) Update(ctx context.Context, profile *models.DeveloperProfile) error {
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, profile.UserID)
	return nil
}

func (r *profileRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Delete(&models.DeveloperProfile{}, "user_id = ?", userID).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, userID)
	return nil
}

func (r *profileRepository) List(ctx context.Context, limit, offset int) ([]models.DeveloperProfile, error) {
	var profiles []models.DeveloperProfile
	if err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&profiles).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return profiles, nil
}
