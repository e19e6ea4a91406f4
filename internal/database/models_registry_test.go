package database

import (
	"testing"

	modelspkg "hiredev/internal/models"

	"github.com/stretchr/testify/require"
)

func TestPersistentModels_IncludesBid(t *testing.T) {
	found := false
	for _, model := range PersistentModels() {
		if _, ok := model.(*modelspkg.Bid); ok {
			found = true
			break
		}
	}
	require.True(t, found, "PersistentModels should include Bid")
}

func TestMigrateAppliesSchema(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"users", "developer_profiles", "projects", "bids"} {
		require.True(t, db.Migrator().HasTable(table), "missing table %s", table)
	}
	require.True(t, db.Migrator().HasIndex(&modelspkg.Bid{}, "idx_bid_project_developer"))
}
