package server

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetaCatalogs(t *testing.T) {
	app := fiber.New()
	s := &Server{}
	app.Get("/meta/categories", s.GetCategories)
	app.Get("/meta/types", s.GetTypes)
	app.Get("/meta/progress", s.GetProgressStates)
	app.Get("/meta/availability", s.GetAvailabilityStates)
	app.Get("/meta/roles", s.GetDeveloperRoles)

	tests := []struct {
		path      string
		wantCount int
		wantValue string
		wantLabel string
	}{
		{"/meta/categories", 5, "WB", "Web Development"},
		{"/meta/types", 3, "FT", "Full Time"},
		{"/meta/progress", 3, "P", "Pending"},
		{"/meta/availability", 2, "A", "Available"},
		{"/meta/roles", 3, "SD", "Software Developer"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(jsonRequest(t, http.MethodGet, tt.path, nil))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, http.StatusOK, resp.StatusCode)

			var entries []enumEntry
			decodeBody(t, resp, &entries)
			assert.Len(t, entries, tt.wantCount)
			assert.Equal(t, tt.wantValue, entries[0].Value)
			assert.Equal(t, tt.wantLabel, entries[0].Label)
		})
	}
}
