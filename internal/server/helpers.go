package server

import (
	"errors"

	"hiredev/internal/middleware"
	"hiredev/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

const maxPaginationLimit = 100

// parsePagination extracts limit and offset query parameters with the given default limit.
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	return Pagination{
		Limit:  limit,
		Offset: offset,
	}
}

// currentUserID returns the authenticated caller's ID from locals.
func currentUserID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(middleware.LocalUserID).(uuid.UUID)
	return id
}

func isAdmin(c *fiber.Ctx) bool {
	admin, _ := c.Locals(middleware.LocalIsAdmin).(bool)
	return admin
}

// parseUUIDParam extracts a route parameter as a uuid. On failure it writes a
// 400 JSON response and returns errResponseWritten; callers should then
// return nil.
func parseUUIDParam(c *fiber.Ctx, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+param))
		return uuid.Nil, errResponseWritten
	}
	return id, nil
}

const maxUploadBytes = 10 * 1024 * 1024

// saveUpload reads the named multipart file field and stores it under prefix.
// On failure it writes the error response and returns errResponseWritten;
// callers should then return nil.
func (s *Server) saveUpload(c *fiber.Ctx, field, prefix string) (string, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("A file is required in the "+field+" field"))
		return "", errResponseWritten
	}
	if fileHeader.Size > maxUploadBytes {
		_ = models.RespondWithError(c, fiber.StatusRequestEntityTooLarge,
			models.NewValidationError("File exceeds the 10 MB limit"))
		return "", errResponseWritten
	}

	f, err := fileHeader.Open()
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Could not read uploaded file"))
		return "", errResponseWritten
	}
	defer f.Close()

	url, err := s.storage.Upload(c.Context(), prefix, fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"), fileHeader.Size, f)
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
		return "", errResponseWritten
	}
	return url, nil
}

// respondAppError writes err with the HTTP status implied by its code.
func respondAppError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	status := fiber.StatusInternalServerError
	switch appErr.Code {
	case "NOT_FOUND":
		status = fiber.StatusNotFound
	case "VALIDATION_ERROR":
		status = fiber.StatusBadRequest
	case "UNAUTHORIZED":
		status = fiber.StatusUnauthorized
	case "FORBIDDEN":
		status = fiber.StatusForbidden
	}
	return models.RespondWithError(c, status, appErr)
}
