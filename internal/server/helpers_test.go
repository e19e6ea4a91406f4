package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hiredev/internal/middleware"
	"hiredev/internal/token"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func testIssuer() *token.Issuer {
	return token.NewIssuer("test-secret", 30*time.Minute, 7*24*time.Hour, 24*time.Hour)
}

// asUser injects auth locals the way RequireAuth would after a valid token.
func asUser(id uuid.UUID, isClient, isDeveloper, isAdmin bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(middleware.LocalUserID, id)
		c.Locals(middleware.LocalIsClient, isClient)
		c.Locals(middleware.LocalIsDeveloper, isDeveloper)
		c.Locals(middleware.LocalIsAdmin, isAdmin)
		return c.Next()
	}
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, dest), string(raw))
}
