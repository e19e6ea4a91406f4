package server

import (
	"hiredev/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetDevelopers handles GET /api/developers
func (s *Server) GetDevelopers(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	developers, err := s.userRepo.ListDevelopers(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(developers)
}

// GetDeveloperProfiles handles GET /api/developers/profiles
func (s *Server) GetDeveloperProfiles(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	profiles, err := s.profileRepo.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(profiles)
}

// GetDeveloperProfile handles GET /api/developers/:id/profile
func (s *Server) GetDeveloperProfile(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return nil
	}

	profile, err := s.profileRepo.GetByUserID(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(profile)
}

type profileRequest struct {
	Role      *models.DeveloperRole `json:"role"`
	Skills    *string               `json:"skills"`
	Github    *string               `json:"github"`
	Twitter   *string               `json:"twitter"`
	Linkedin  *string               `json:"linkedin"`
	Instagram *string               `json:"instagram"`
}

func applyProfileRequest(profile *models.DeveloperProfile, req *profileRequest) models.FieldErrors {
	errs := models.FieldErrors{}
	if req.Role != nil {
		if !req.Role.Valid() {
			errs.Add("role", "invalid developer role")
		} else {
			profile.Role = *req.Role
		}
	}
	if req.Skills != nil {
		profile.Skills = *req.Skills
	}
	if req.Github != nil {
		profile.Github = *req.Github
	}
	if req.Twitter != nil {
		profile.Twitter = *req.Twitter
	}
	if req.Linkedin != nil {
		profile.Linkedin = *req.Linkedin
	}
	if req.Instagram != nil {
		profile.Instagram = *req.Instagram
	}
	return errs
}

// CreateDeveloperProfile handles POST /api/developers/:id/profile. A
// developer has at most one profile; registration normally creates an empty
// one, this endpoint backfills accounts that lost theirs.
func (s *Server) CreateDeveloperProfile(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return nil
	}

	if id != currentUserID(c) && !isAdmin(c) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You can only manage your own profile"))
	}

	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile := &models.DeveloperProfile{UserID: id}
	if errs := applyProfileRequest(profile, &req); len(errs) > 0 {
		return models.RespondWithFieldErrors(c, errs)
	}

	if err := s.profileRepo.Create(c.Context(), profile); err != nil {
		return respondAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(profile)
}

// UpdateDeveloperProfile handles PATCH /api/developers/:id/profile
func (s *Server) UpdateDeveloperProfile(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return nil
	}

	if id != currentUserID(c) && !isAdmin(c) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You can only manage your own profile"))
	}

	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileRepo.GetByUserID(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}

	if errs := applyProfileRequest(profile, &req); len(errs) > 0 {
		return models.RespondWithFieldErrors(c, errs)
	}

	if err := s.profileRepo.Update(c.Context(), profile); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(profile)
}

// DeleteDeveloperProfile handles DELETE /api/developers/:id/profile
func (s *Server) DeleteDeveloperProfile(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return nil
	}

	if id != currentUserID(c) && !isAdmin(c) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You can only manage your own profile"))
	}

	if _, err := s.profileRepo.GetByUserID(c.Context(), id); err != nil {
		return respondAppError(c, err)
	}

	if err := s.profileRepo.Delete(c.Context(), id); err != nil {
		return respondAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UploadResume handles POST /api/developers/me/resume
func (s *Server) UploadResume(c *fiber.Ctx) error {
	if s.storage == nil {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewValidationError("File uploads are not configured"))
	}

	userID := currentUserID(c)
	profile, err := s.profileRepo.GetByUserID(c.Context(), userID)
	if err != nil {
		return respondAppError(c, err)
	}

	url, err := s.saveUpload(c, "resume", "resumes")
	if err != nil {
		return nil
	}

	profile.ResumeURL = url
	if err := s.profileRepo.Update(c.Context(), profile); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(profile)
}
