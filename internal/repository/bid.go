package repository

import (
	"context"
	"errors"

	"hiredev/internal/cache"
	"hiredev/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BidRepository defines persistence operations for bids.
type BidRepository interface {
	GetBySlug(ctx context.Context, slug string) (*models.Bid, error)
	GetBySlugForDeveloper(ctx context.Context, slug string, developerID uuid.UUID) (*models.Bid, error)
	ListByDeveloper(ctx context.Context, developerID uuid.UUID, limit, offset int) ([]models.Bid, error)
	ListByProject(ctx context.Context, projectID uuid.UUID, limit, offset int) ([]models.Bid, error)
	Create(ctx context.Context, bid *models.Bid) error
	Update(ctx context.Context, bid *models.Bid) error
	Delete(ctx context.Context, bid *models.Bid) error
}

type bidRepository struct {
	db *gorm.DB
}

// NewBidRepository returns a new BidRepository implementation.
func NewBidRepository(db *gorm.DB) BidRepository {
	return &bidRepository{db: db}
}

func (r *bidRepository) GetBySlug(ctx context.Context, slug string) (*models.Bid, error) {
	var bid models.Bid
	key := cache.BidKey(slug)

	err := cache.Aside(ctx, key, &bid, cache.BidTTL, func() error {
		if err := r.db.WithContext(ctx).
			Preload("Project").
			Preload("Developer").
			Where("slug = ?", slug).
			First(&bid).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Bid", slug)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &bid, nil
}

// GetBySlugForDeveloper scopes the lookup to the bid's author, so another
// developer's bid reads as not found.
func (r *bidRepository) GetBySlugForDeveloper(
	ctx context.Context, slug string, developerID uuid.UUID,
) (*models.Bid, error) {
	var bid models.Bid
	if err := r.db.WithContext(ctx).
		Preload("Project").
		Where("slug = ? AND developer_id = ?", slug, developerID).
		First(&bid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Bid", slug)
		}
		return nil, models.NewInternalError(err)
	}
	return &bid, nil
}

func (r *bidRepository) ListByDeveloper(
	ctx context.Context, developerID uuid.UUID, limit, offset int,
) ([]models.Bid, error) {
	var bids []models.Bid
	if err := r.db.WithContext(ctx).
		Preload("Project").
		Where("developer_id = ?", developerID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&bids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return bids, nil
}

func (r *bidRepository) ListByProject(
	ctx context.Context, projectID uuid.UUID, limit, offset int,
) ([]models.Bid, error) {
	var bids []models.Bid
	if err := r.db.WithContext(ctx).
		Preload("Developer").
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&bids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return bids, nil
}

// Create inserts the bid. The composite unique index on project and developer
// makes concurrent duplicate submissions lose the race at the database, not in
// handler code.
func (r *bidRepository) Create(ctx context.Context, bid *models.Bid) error {
	if err := r.db.WithContext(ctx).Create(bid).Error; err != nil {
		if IsUniqueConstraintError(err) {
			return models.NewValidationError("You have already placed a bid on this project")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *bidRepository) Update(ctx context.Context, bid *models.Bid) error {
	if err := r.db.WithContext(ctx).Save(bid).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateBid(ctx, bid.Slug)
	return nil
}

func (r *bidRepository) Delete(ctx context.Context, bid *models.Bid) error {
	if err := r.db.WithContext(ctx).Delete(bid).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateBid(ctx, bid.Slug)
	return nil
}
