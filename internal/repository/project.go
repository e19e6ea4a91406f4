package repository

import (
	"context"
	"errors"

	"hiredev/internal/cache"
	"hiredev/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectRepository defines persistence operations for projects.
type ProjectRepository interface {
	GetBySlug(ctx context.Context, slug string) (*models.Project, error)
	GetBySlugForClient(ctx context.Context, slug string, clientID uuid.UUID) (*models.Project, error)
	List(ctx context.Context, limit, offset int) ([]models.Project, error)
	ListByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]models.Project, error)
	Create(ctx context.Context, project *models.Project) error
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, project *models.Project) error
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository returns a new ProjectRepository implementation.
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) GetBySlug(ctx context.Context, slug string) (*models.Project, error) {
	var project models.Project
	key := cache.ProjectKey(slug)

	err := cache.Aside(ctx, key, &project, cache.ProjectTTL, func() error {
		if err := r.db.WithContext(ctx).
			Preload("Client").
			Where("slug = ?", slug).
			First(&project).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Project", slug)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &project, nil
}

// GetBySlugForClient scopes the lookup to the given owner. A project owned by
// someone else reads as not found, so the response does not reveal whether the
// slug exists.
func (r *projectRepository) GetBySlugForClient(
	ctx context.Context, slug string, clientID uuid.UUID,
) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).
		Where("slug = ? AND client_id = ?", slug, clientID).
		First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Project", slug)
		}
		return nil, models.NewInternalError(err)
	}
	return &project, nil
}

func (r *projectRepository) List(ctx context.Context, limit, offset int) ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&projects).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return projects, nil
}

func (r *projectRepository) ListByClient(
	ctx context.Context, clientID uuid.UUID, limit, offset int,
) ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&projects).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return projects, nil
}

func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		if IsUniqueConstraintError(err) {
			return models.NewValidationError("Project slug already taken")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *projectRepository) Update(ctx context.Context, project *models.Project) error {
	if err := r.db.WithContext(ctx).Save(project).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProject(ctx, project.Slug)
	return nil
}

func (r *projectRepository) Delete(ctx context.Context, project *models.Project) error {
	if err := r.db.WithContext(ctx).Delete(project).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProject(ctx, project.Slug)
	return nil
}
