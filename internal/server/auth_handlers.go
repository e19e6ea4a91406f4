package server

import (
	"time"

	"hiredev/internal/cache"
	"hiredev/internal/mail"
	"hiredev/internal/middleware"
	"hiredev/internal/models"
	"hiredev/internal/repository"
	"hiredev/internal/token"
	"hiredev/internal/validation"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type registerRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Firstname string `json:"first_name"`
	Lastname  string `json:"last_name"`
}

func (s *Server) validateRegistration(req *registerRequest) models.FieldErrors {
	errs := models.FieldErrors{}
	if err := validation.ValidateUsername(req.Username); err != nil {
		errs.Add("username", err.Error())
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		errs.Add("email", err.Error())
	}
	for _, rule := range validation.PasswordRules {
		if err := rule(req.Password); err != nil {
			errs.Add("password", err.Error())
		}
	}
	return errs
}

// register creates the account and optionally its developer profile in one
// transaction, then dispatches the verification email.
func (s *Server) register(c *fiber.Ctx, asDeveloper bool) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if errs := s.validateRegistration(&req); len(errs) > 0 {
		return models.RespondWithFieldErrors(c, errs)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user := &models.User{
		Username:    req.Username,
		Email:       req.Email,
		Password:    string(hashed),
		Firstname:   req.Firstname,
		Lastname:    req.Lastname,
		IsClient:    !asDeveloper,
		IsDeveloper: asDeveloper,
	}

	err = s.db.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if asDeveloper {
			return tx.Create(&models.DeveloperProfile{UserID: user.ID}).Error
		}
		return nil
	})
	if err != nil {
		if repository.IsUniqueConstraintError(err) {
			return models.RespondWithError(c, fiber.StatusConflict,
				models.NewValidationError("A user with that username or email already exists"))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	verifyToken, err := s.issuer.Verify(user.ID)
	if err != nil {
		middleware.Logger.Warn("could not issue verification token", "user_id", user.ID, "error", err)
	} else {
		mail.SendVerification(s.mailer, s.config.SiteBaseURL, user.Email, user.ID.String(), verifyToken)
	}

	access, refresh, err := s.issueTokenPair(user)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":    user,
		"access":  access,
		"refresh": refresh,
	})
}

// RegisterClient handles POST /api/auth/register/client
func (s *Server) RegisterClient(c *fiber.Ctx) error {
	return s.register(c, false)
}

// RegisterDeveloper handles POST /api/auth/register/developer
func (s *Server) RegisterDeveloper(c *fiber.Ctx) error {
	return s.register(c, true)
}

func (s *Server) issueTokenPair(user *models.User) (string, string, error) {
	roles := token.RoleFlags{
		IsClient:    user.IsClient,
		IsDeveloper: user.IsDeveloper,
		IsAdmin:     user.IsAdmin,
	}
	access, err := s.issuer.Access(user.ID, roles)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.issuer.Refresh(user.ID, roles)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// Login handles POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Email and password are required"))
	}

	user, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return respondAppError(c, err)
	}
	// Same response for unknown email and wrong password.
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	access, refresh, err := s.issueTokenPair(user)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"user":    user,
		"access":  access,
		"refresh": refresh,
	})
}

// RefreshToken handles POST /api/auth/token/refresh. A denied refresh token
// (logged out) is rejected even if its signature is still valid.
func (s *Server) RefreshToken(c *fiber.Ctx) error {
	var req struct {
		Refresh string `json:"refresh"`
	}
	if err := c.BodyParser(&req); err != nil || req.Refresh == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Refresh token is required"))
	}

	claims, err := s.issuer.Parse(req.Refresh, token.KindRefresh)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid or expired refresh token"))
	}

	denied, err := cache.IsTokenDenied(c.Context(), claims.ID)
	if err != nil {
		middleware.Logger.Warn("denylist lookup failed", "error", err)
	}
	if denied {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Token has been revoked"))
	}

	userID, err := claims.UserID()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid user ID in token"))
	}

	// Re-read the user so role changes and deletions take effect on refresh.
	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Account no longer exists"))
	}

	access, refresh, err := s.issueTokenPair(user)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	// Rotate: the presented refresh token is single-use.
	if ttl := time.Until(claims.ExpiresAt.Time); ttl > 0 {
		if err := cache.DenyToken(c.Context(), claims.ID, ttl); err != nil {
			middleware.Logger.Warn("could not deny rotated refresh token", "error", err)
		}
	}

	return c.JSON(fiber.Map{
		"access":  access,
		"refresh": refresh,
	})
}

// Logout handles POST /api/auth/logout. The presented refresh token is added
// to the denylist for its remaining lifetime. A malformed, expired, or
// already-revoked token is a client error, not a silent success.
func (s *Server) Logout(c *fiber.Ctx) error {
	var req struct {
		Refresh string `json:"refresh"`
	}
	if err := c.BodyParser(&req); err != nil || req.Refresh == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Refresh token is required"))
	}

	claims, err := s.issuer.Parse(req.Refresh, token.KindRefresh)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Token is invalid or expired"))
	}

	denied, err := cache.IsTokenDenied(c.Context(), claims.ID)
	if err != nil {
		middleware.Logger.Warn("denylist lookup failed", "error", err)
	}
	if denied {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Token is invalid or expired"))
	}

	if ttl := time.Until(claims.ExpiresAt.Time); ttl > 0 {
		if err := cache.DenyToken(c.Context(), claims.ID, ttl); err != nil {
			middleware.Logger.Warn("could not deny refresh token on logout", "error", err)
		}
	}

	return c.JSON(fiber.Map{"message": "Logged out"})
}

// VerifyEmail handles GET /api/auth/verify-email/:uid/:verifyToken.
// Verifying an already-verified account succeeds without a second write.
func (s *Server) VerifyEmail(c *fiber.Ctx) error {
	uid, err := parseUUIDParam(c, "uid")
	if err != nil {
		return nil
	}

	claims, err := s.issuer.Parse(c.Params("verifyToken"), token.KindVerify)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid or expired verification token"))
	}

	tokenUserID, err := claims.UserID()
	if err != nil || tokenUserID != uid {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Verification token does not match this account"))
	}

	user, err := s.userRepo.GetByID(c.Context(), uid)
	if err != nil {
		return respondAppError(c, err)
	}

	if !user.IsVerified {
		user.IsVerified = true
		if err := s.userRepo.Update(c.Context(), user); err != nil {
			return respondAppError(c, err)
		}
	}

	return c.JSON(fiber.Map{
		"message": "Email verified",
		"user":    user,
	})
}
