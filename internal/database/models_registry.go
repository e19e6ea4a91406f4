package database

import "hiredev/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.DeveloperProfile{},
		&models.Project{},
		&models.Bid{},
	}
}
