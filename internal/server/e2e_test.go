package server

import (
	"net/http"
	"os"
	"testing"

	"hiredev/internal/cache"
	"hiredev/internal/config"
	"hiredev/internal/database"
	"hiredev/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestMarketplaceFlow drives the whole hiring loop over a real schema:
// both parties register, the client posts a project, the developer bids,
// a duplicate bid bounces off the unique index, the client accepts, and
// the decided bid is frozen.
func TestMarketplaceFlow(t *testing.T) {
	os.Setenv("APP_ENV", "test")

	db, err := gorm.Open(sqlite.Open("file:marketplaceflow?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache.SetClient(redisClient)
	t.Cleanup(func() { cache.SetClient(nil) })

	cfg := &config.Config{
		Port:                  "0",
		Env:                   "test",
		JWTSecret:             "e2e-test-secret",
		AccessTokenTTLMinutes: 30,
		RefreshTokenTTLHours:  168,
		VerifyTokenTTLHours:   24,
	}

	s := NewServerWithDeps(cfg, db, redisClient, nil)
	app := fiber.New()
	s.app = app
	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	type authResponse struct {
		User    models.User `json:"user"`
		Access  string      `json:"access"`
		Refresh string      `json:"refresh"`
	}

	var client, developer authResponse

	t.Run("register client", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/register/client", fiber.Map{
			"username":   "acme_corp",
			"email":      "owner@acme.test",
			"password":   "Str0ng&Pass",
			"first_name": "Ada",
			"last_name":  "Admin",
		}))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		decodeBody(t, resp, &client)
		assert.True(t, client.User.IsClient)
		assert.False(t, client.User.IsVerified)
	})

	t.Run("register developer", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/register/developer", fiber.Map{
			"username": "dev_dana",
			"email":    "dana@dev.test",
			"password": "Str0ng&Pass",
		}))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		decodeBody(t, resp, &developer)
		assert.True(t, developer.User.IsDeveloper)

		// Registration creates the empty companion profile.
		var count int64
		require.NoError(t, db.Model(&models.DeveloperProfile{}).
			Where("user_id = ?", developer.User.ID).Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/register/client", fiber.Map{
			"username": "acme_corp",
			"email":    "other@acme.test",
			"password": "Str0ng&Pass",
		}))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	bearer := func(tok string) func(*http.Request) {
		return func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+tok) }
	}

	var project models.Project

	t.Run("client posts project", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/api/projects", fiber.Map{
			"name":             "Online Store Revamp",
			"description":      "Rebuild the storefront",
			"project_category": "WB",
			"project_type":     "CT",
			"min_price":        500,
			"max_price":        1500,
		})
		bearer(client.Access)(req)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		decodeBody(t, resp, &project)
		assert.Contains(t, project.Slug, "online-store-revamp-")
	})

	t.Run("owner reads project by slug", func(t *testing.T) {
		req := jsonRequest(t, http.MethodGet, "/api/projects/"+project.Slug, nil)
		bearer(client.Access)(req)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("non-owner reads project as not found", func(t *testing.T) {
		req := jsonRequest(t, http.MethodGet, "/api/projects/"+project.Slug, nil)
		bearer(developer.Access)(req)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("unauthenticated project read is rejected", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/projects/"+project.Slug, nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("developer cannot post projects", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/api/projects", fiber.Map{"name": "Sneaky"})
		bearer(developer.Access)(req)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	var bid models.Bid

	t.Run("developer bids", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/api/bids", fiber.Map{
			"project_slug": project.Slug,
			"proposal":     "Three weeks, fixed price.",
		})
		bearer(developer.Access)(req)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		decodeBody(t, resp, &bid)
		assert.Equal(t, models.BidStatusPending, bid.Status)
		assert.Contains(t, bid.Slug, "dev_dana-online-store-revamp-")
	})

	t.Run("second bid on same project is rejected", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/api/bids", fiber.Map{
			"project_slug": project.Slug,
			"proposal":     "Changed my mind, cheaper.",
		})
		bearer(developer.Access)(req)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("client lists bids on own project", func(t *testing.T) {
		req := jsonRequest(t, http.MethodGet, "/api/projects/"+project.Slug+"/bids", nil)
		bearer(client.Access)(req)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var bids []models.Bid
		decodeBody(t, resp, &bids)
		require.Len(t, bids, 1)
	})

	t.Run("developer cannot accept own bid", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPatch, "/api/bids/"+bid.Slug+"/status",
			fiber.Map{"status": "A"})
		bearer(developer.Access)(req)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("client accepts bid", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPatch, "/api/bids/"+bid.Slug+"/status",
			fiber.Map{"status": "A"})
		bearer(client.Access)(req)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var updated models.Bid
		decodeBody(t, resp, &updated)
		assert.Equal(t, models.BidStatusAccepted, updated.Status)
	})

	t.Run("accepted bid is frozen", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPatch, "/api/bids/"+bid.Slug+"/status",
			fiber.Map{"status": "R"})
		bearer(client.Access)(req)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("logout revokes refresh token", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/api/auth/logout",
			fiber.Map{"refresh": developer.Refresh})
		bearer(developer.Access)(req)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		refreshReq := jsonRequest(t, http.MethodPost, "/api/auth/token/refresh",
			fiber.Map{"refresh": developer.Refresh})
		refreshResp, err := app.Test(refreshReq)
		require.NoError(t, err)
		defer func() { _ = refreshResp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, refreshResp.StatusCode)
	})

	t.Run("repeated logout is a client error", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/api/auth/logout",
			fiber.Map{"refresh": developer.Refresh})
		bearer(developer.Access)(req)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("email verification", func(t *testing.T) {
		verifyToken, err := s.issuer.Verify(developer.User.ID)
		require.NoError(t, err)

		resp, err := app.Test(jsonRequest(t, http.MethodGet,
			"/api/auth/verify-email/"+developer.User.ID.String()+"/"+verifyToken, nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var fresh models.User
		require.NoError(t, db.First(&fresh, "id = ?", developer.User.ID).Error)
		assert.True(t, fresh.IsVerified)
	})
}
