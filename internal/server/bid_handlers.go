package server

import (
	"fmt"
	"strings"

	"hiredev/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetMyBids handles GET /api/bids, listing the caller's own bids.
func (s *Server) GetMyBids(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	bids, err := s.bidRepo.ListByDeveloper(c.Context(), currentUserID(c), page.Limit, page.Offset)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(bids)
}

// CreateBid handles POST /api/bids. One bid per developer per project; the
// database index rejects a concurrent duplicate even when two requests pass
// the handler checks at the same time.
func (s *Server) CreateBid(c *fiber.Ctx) error {
	var req struct {
		ProjectSlug string `json:"project_slug"`
		Proposal    string `json:"proposal"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	errs := models.FieldErrors{}
	if strings.TrimSpace(req.Proposal) == "" {
		errs.Add("proposal", "proposal is required")
	}
	if req.ProjectSlug == "" {
		errs.Add("project_slug", "project_slug is required")
	}
	if len(errs) > 0 {
		return models.RespondWithFieldErrors(c, errs)
	}

	project, err := s.projectRepo.GetBySlug(c.Context(), req.ProjectSlug)
	if err != nil {
		return respondAppError(c, err)
	}

	developerID := currentUserID(c)
	if project.ClientID == developerID {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("You cannot bid on your own project"))
	}

	bid := &models.Bid{
		Proposal:    req.Proposal,
		Status:      models.BidStatusPending,
		ProjectID:   project.ID,
		DeveloperID: developerID,
	}
	if err := s.bidRepo.Create(c.Context(), bid); err != nil {
		return respondAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(bid)
}

// visibleBid loads a bid for reading. Visible to its author, the project's
// client, and admins; everyone else gets a 404.
func (s *Server) visibleBid(c *fiber.Ctx) (*models.Bid, error) {
	bid, err := s.bidRepo.GetBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return nil, err
	}

	callerID := currentUserID(c)
	if bid.DeveloperID == callerID || isAdmin(c) {
		return bid, nil
	}
	if bid.Project != nil && bid.Project.ClientID == callerID {
		return bid, nil
	}
	return nil, models.NewNotFoundError("Bid", c.Params("slug"))
}

// GetBid handles GET /api/bids/:slug
func (s *Server) GetBid(c *fiber.Ctx) error {
	bid, err := s.visibleBid(c)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(bid)
}

// ownedBid loads a bid for a mutating call by its author. Admins may edit
// any bid.
func (s *Server) ownedBid(c *fiber.Ctx) (*models.Bid, error) {
	slug := c.Params("slug")
	if isAdmin(c) {
		return s.bidRepo.GetBySlug(c.Context(), slug)
	}
	return s.bidRepo.GetBySlugForDeveloper(c.Context(), slug, currentUserID(c))
}

// UpdateBid handles PATCH /api/bids/:slug. Only the proposal text can change,
// and only while the bid is still pending.
func (s *Server) UpdateBid(c *fiber.Ctx) error {
	bid, err := s.ownedBid(c)
	if err != nil {
		return respondAppError(c, err)
	}

	if bid.Status != models.BidStatusPending {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewValidationError(fmt.Sprintf(
				"A %s bid can no longer be edited", strings.ToLower(bid.Status.Label()))))
	}

	var req struct {
		Proposal string `json:"proposal"`
	}
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Proposal) == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Proposal is required"))
	}

	bid.Proposal = req.Proposal
	if err := s.bidRepo.Update(c.Context(), bid); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(bid)
}

// UpdateBidStatus handles PATCH /api/bids/:slug/status. Only the client who
// owns the project may accept or reject, and a decided bid stays decided.
func (s *Server) UpdateBidStatus(c *fiber.Ctx) error {
	var req struct {
		Status models.BidStatus `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil || !req.Status.Valid() {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("A valid status is required"))
	}

	bid, err := s.bidRepo.GetBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return respondAppError(c, err)
	}

	if !isAdmin(c) && (bid.Project == nil || bid.Project.ClientID != currentUserID(c)) {
		return respondAppError(c, models.NewNotFoundError("Bid", c.Params("slug")))
	}

	if !bid.Status.CanTransitionTo(req.Status) {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewValidationError(fmt.Sprintf(
				"Cannot change a %s bid to %s",
				strings.ToLower(bid.Status.Label()), strings.ToLower(req.Status.Label()))))
	}

	bid.Status = req.Status
	if err := s.bidRepo.Update(c.Context(), bid); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(bid)
}

// UploadBidFile handles POST /api/bids/:slug/file
func (s *Server) UploadBidFile(c *fiber.Ctx) error {
	if s.storage == nil {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewValidationError("File uploads are not configured"))
	}

	bid, err := s.ownedBid(c)
	if err != nil {
		return respondAppError(c, err)
	}

	url, err := s.saveUpload(c, "file", "bids")
	if err != nil {
		return nil
	}

	bid.FileURL = url
	if err := s.bidRepo.Update(c.Context(), bid); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(bid)
}

// DeleteBid handles DELETE /api/bids/:slug
func (s *Server) DeleteBid(c *fiber.Ctx) error {
	bid, err := s.ownedBid(c)
	if err != nil {
		return respondAppError(c, err)
	}

	if err := s.bidRepo.Delete(c.Context(), bid); err != nil {
		return respondAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
