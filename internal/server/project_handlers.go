package server

import (
	"strings"

	"hiredev/internal/models"
	"hiredev/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type projectRequest struct {
	Name         *string                     `json:"name"`
	Description  *string                     `json:"description"`
	Category     *models.ProjectCategory     `json:"project_category"`
	Type         *models.ProjectType         `json:"project_type"`
	Availability *models.ProjectAvailability `json:"project_availability"`
	Progress     *models.ProjectProgress     `json:"project_progress"`
	Duration     *string                     `json:"duration"`
	MinPrice     *int64                      `json:"min_price"`
	MaxPrice     *int64                      `json:"max_price"`
}

func applyProjectRequest(p *models.Project, req *projectRequest) {
	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Type != nil {
		p.Type = *req.Type
	}
	if req.Availability != nil {
		p.Availability = *req.Availability
	}
	if req.Progress != nil {
		p.Progress = *req.Progress
	}
	if req.Duration != nil {
		p.Duration = *req.Duration
	}
	if req.MinPrice != nil {
		p.MinPrice = *req.MinPrice
	}
	if req.MaxPrice != nil {
		p.MaxPrice = *req.MaxPrice
	}
}

func validateProject(p *models.Project) models.FieldErrors {
	errs := validation.ValidateProjectEnums(p)
	if p.Name == "" {
		errs.Add("name", "name is required")
	}
	if err := validation.ValidatePriceRange(p.MinPrice, p.MaxPrice); err != nil {
		errs.Add("min_price", err.Error())
	}
	return errs
}

// GetProjects handles GET /api/projects. The listing is scoped to the
// caller's own projects; admins see everything.
func (s *Server) GetProjects(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	if isAdmin(c) {
		projects, err := s.projectRepo.List(c.Context(), page.Limit, page.Offset)
		if err != nil {
			return respondAppError(c, err)
		}
		return c.JSON(projects)
	}

	projects, err := s.projectRepo.ListByClient(c.Context(), currentUserID(c), page.Limit, page.Offset)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(projects)
}

// GetMyProjects handles GET /api/projects/me
func (s *Server) GetMyProjects(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	projects, err := s.projectRepo.ListByClient(c.Context(), currentUserID(c), page.Limit, page.Offset)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(projects)
}

// GetProject handles GET /api/projects/:slug. The lookup is ownership
// scoped, so another client's slug reads as not found.
func (s *Server) GetProject(c *fiber.Ctx) error {
	project, err := s.ownedProject(c)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(project)
}

// CreateProject handles POST /api/projects
func (s *Server) CreateProject(c *fiber.Ctx) error {
	var req projectRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	// Same defaults the schema applies, enforced before validation so a
	// partial body still passes the enum checks.
	project := &models.Project{
		ClientID:     currentUserID(c),
		Category:     models.CategoryWebDevelopment,
		Type:         models.TypeFullTime,
		Availability: models.AvailabilityAvailable,
		Progress:     models.ProgressPending,
	}
	applyProjectRequest(project, &req)

	if errs := validateProject(project); len(errs) > 0 {
		return models.RespondWithFieldErrors(c, errs)
	}

	if err := s.projectRepo.Create(c.Context(), project); err != nil {
		return respondAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

// ownedProject loads the project for the caller. Non-owners get a 404,
// never a 403, so the endpoint does not leak which slugs exist. Admins see
// every project.
func (s *Server) ownedProject(c *fiber.Ctx) (*models.Project, error) {
	slug := c.Params("slug")
	if isAdmin(c) {
		return s.projectRepo.GetBySlug(c.Context(), slug)
	}
	return s.projectRepo.GetBySlugForClient(c.Context(), slug, currentUserID(c))
}

// UpdateProject handles PATCH /api/projects/:slug. The slug never changes,
// even when the name does, so shared links stay valid.
func (s *Server) UpdateProject(c *fiber.Ctx) error {
	project, err := s.ownedProject(c)
	if err != nil {
		return respondAppError(c, err)
	}

	var req projectRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	applyProjectRequest(project, &req)

	if errs := validateProject(project); len(errs) > 0 {
		return models.RespondWithFieldErrors(c, errs)
	}

	if err := s.projectRepo.Update(c.Context(), project); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(project)
}

// DeleteProject handles DELETE /api/projects/:slug
func (s *Server) DeleteProject(c *fiber.Ctx) error {
	project, err := s.ownedProject(c)
	if err != nil {
		return respondAppError(c, err)
	}

	if err := s.projectRepo.Delete(c.Context(), project); err != nil {
		return respondAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UploadProjectFile handles POST /api/projects/:slug/file
func (s *Server) UploadProjectFile(c *fiber.Ctx) error {
	if s.storage == nil {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewValidationError("File uploads are not configured"))
	}

	project, err := s.ownedProject(c)
	if err != nil {
		return respondAppError(c, err)
	}

	url, err := s.saveUpload(c, "file", "projects")
	if err != nil {
		return nil
	}

	project.FileURL = url
	if err := s.projectRepo.Update(c.Context(), project); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(project)
}

// GetProjectBids handles GET /api/projects/:slug/bids. Only the project's
// client (or an admin) may see the bids placed on it.
func (s *Server) GetProjectBids(c *fiber.Ctx) error {
	project, err := s.ownedProject(c)
	if err != nil {
		return respondAppError(c, err)
	}

	page := parsePagination(c, 20)
	bids, err := s.bidRepo.ListByProject(c.Context(), project.ID, page.Limit, page.Offset)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(bids)
}
