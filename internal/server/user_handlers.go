package server

import (
	"hiredev/internal/models"
	"hiredev/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GetUser handles GET /api/users/:id. Accounts carry email and role flags,
// so reads are restricted to the owner or an admin like the mutations are.
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return nil
	}

	if id != currentUserID(c) && !isAdmin(c) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You can only view your own account"))
	}

	user, err := s.userRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(user)
}

// UpdateUser handles PATCH /api/users/:id. Only the account owner or an
// admin may modify it.
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return nil
	}

	if id != currentUserID(c) && !isAdmin(c) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You can only modify your own account"))
	}

	var req struct {
		Username  *string `json:"username"`
		Firstname *string `json:"first_name"`
		Lastname  *string `json:"last_name"`
		About     *string `json:"about"`
		ImageURL  *string `json:"image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}

	if req.Username != nil && *req.Username != user.Username {
		if err := validation.ValidateUsername(*req.Username); err != nil {
			errs := models.FieldErrors{}
			errs.Add("username", err.Error())
			return models.RespondWithFieldErrors(c, errs)
		}
		user.Username = *req.Username
	}
	if req.Firstname != nil {
		user.Firstname = *req.Firstname
	}
	if req.Lastname != nil {
		user.Lastname = *req.Lastname
	}
	if req.About != nil {
		user.About = *req.About
	}
	if req.ImageURL != nil {
		user.ImageURL = *req.ImageURL
	}

	if err := s.userRepo.Update(c.Context(), user); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(user)
}

// DeleteUser handles DELETE /api/users/:id. Only the account owner or an
// admin may remove it. Owned projects and bids go with the account.
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return nil
	}

	if id != currentUserID(c) && !isAdmin(c) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You can only delete your own account"))
	}

	if _, err := s.userRepo.GetByID(c.Context(), id); err != nil {
		return respondAppError(c, err)
	}

	if err := s.userRepo.Delete(c.Context(), id); err != nil {
		return respondAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
