package server

import (
	"hiredev/internal/models"

	"github.com/gofiber/fiber/v2"
)

type enumEntry struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func enumEntries[K ~string](order []K, labels map[K]string) []enumEntry {
	entries := make([]enumEntry, 0, len(order))
	for _, v := range order {
		entries = append(entries, enumEntry{Value: string(v), Label: labels[v]})
	}
	return entries
}

// GetCategories handles GET /api/meta/categories
func (s *Server) GetCategories(c *fiber.Ctx) error {
	return c.JSON(enumEntries([]models.ProjectCategory{
		models.CategoryWebDevelopment,
		models.CategoryDatabase,
		models.CategoryMachineLearn,
		models.CategoryArtificialInt,
		models.CategoryDataScience,
	}, models.ProjectCategoryLabels))
}

// GetTypes handles GET /api/meta/types
func (s *Server) GetTypes(c *fiber.Ctx) error {
	return c.JSON(enumEntries([]models.ProjectType{
		models.TypeFullTime,
		models.TypePartTime,
		models.TypeContract,
	}, models.ProjectTypeLabels))
}

// GetProgressStates handles GET /api/meta/progress
func (s *Server) GetProgressStates(c *fiber.Ctx) error {
	return c.JSON(enumEntries([]models.ProjectProgress{
		models.ProgressPending,
		models.ProgressActive,
		models.ProgressCompleted,
	}, models.ProjectProgressLabels))
}

// GetAvailabilityStates handles GET /api/meta/availability
func (s *Server) GetAvailabilityStates(c *fiber.Ctx) error {
	return c.JSON(enumEntries([]models.ProjectAvailability{
		models.AvailabilityAvailable,
		models.AvailabilityNotAvailable,
	}, models.ProjectAvailabilityLabels))
}

// GetDeveloperRoles handles GET /api/meta/roles
func (s *Server) GetDeveloperRoles(c *fiber.Ctx) error {
	return c.JSON(enumEntries([]models.DeveloperRole{
		models.DeveloperRoleSoftwareDeveloper,
		models.DeveloperRoleMLEngineer,
		models.DeveloperRoleSoftwareEngineer,
	}, models.DeveloperRoleLabels))
}
