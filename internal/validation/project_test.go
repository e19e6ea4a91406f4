package validation

import (
	"testing"

	"hiredev/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestValidateProjectEnums(t *testing.T) {
	t.Parallel()

	good := &models.Project{
		Category:     models.CategoryWebDevelopment,
		Type:         models.TypeContract,
		Availability: models.AvailabilityAvailable,
		Progress:     models.ProgressPending,
	}
	assert.Empty(t, ValidateProjectEnums(good))

	bad := &models.Project{
		Category:     "XX",
		Type:         models.TypeFullTime,
		Availability: "Z",
		Progress:     models.ProgressActive,
	}
	errs := ValidateProjectEnums(bad)
	assert.Len(t, errs, 2)
	assert.Contains(t, errs, "project_category")
	assert.Contains(t, errs, "project_availability")
}

func TestValidatePriceRange(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		minPrice int64
		maxPrice int64
		wantErr  bool
	}{
		{"Ordered", 100, 500, false},
		{"Equal", 300, 300, false},
		{"Both Zero", 0, 0, false},
		{"Min Only", 100, 0, false},
		{"Inverted", 500, 100, true},
		{"Negative", -1, 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePriceRange(tt.minPrice, tt.maxPrice)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
