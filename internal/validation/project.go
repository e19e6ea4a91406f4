package validation

import (
	"fmt"

	"hiredev/internal/models"
)

// ValidateProjectEnums checks every enum field carries a known code.
func ValidateProjectEnums(p *models.Project) models.FieldErrors {
	errs := models.FieldErrors{}
	if !p.Category.Valid() {
		errs.Add("project_category", fmt.Sprintf("unknown category %q", p.Category))
	}
	if !p.Type.Valid() {
		errs.Add("project_type", fmt.Sprintf("unknown type %q", p.Type))
	}
	if !p.Availability.Valid() {
		errs.Add("project_availability", fmt.Sprintf("unknown availability %q", p.Availability))
	}
	if !p.Progress.Valid() {
		errs.Add("project_progress", fmt.Sprintf("unknown progress %q", p.Progress))
	}
	return errs
}

// ValidatePriceRange requires a non-negative, ordered min/max pair.
func ValidatePriceRange(minPrice, maxPrice int64) error {
	if minPrice < 0 || maxPrice < 0 {
		return fmt.Errorf("prices must not be negative")
	}
	if maxPrice > 0 && minPrice > maxPrice {
		return fmt.Errorf("min_price must not exceed max_price")
	}
	return nil
}
