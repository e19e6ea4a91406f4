package repository

import (
	"context"
	"errors"
	"testing"

	"hiredev/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestBidRepository_Create_DuplicateBid(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewBidRepository(db)
	ctx := context.Background()

	projectID := uuid.New()
	developerID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "username" FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"username"}).AddRow("dev1"))
	mock.ExpectQuery(`SELECT "name" FROM "projects"`).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("E-commerce Website"))
	mock.ExpectExec(`INSERT INTO "bids"`).
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_bid_project_developer" (SQLSTATE 23505)`))
	mock.ExpectRollback()

	err := repo.Create(ctx, &models.Bid{
		Proposal:    "I can build this",
		ProjectID:   projectID,
		DeveloperID: developerID,
	})

	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Contains(t, appErr.Message, "already placed a bid")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBidRepository_Create_Success(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewBidRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "username" FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"username"}).AddRow("dev1"))
	mock.ExpectQuery(`SELECT "name" FROM "projects"`).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("E-commerce Website"))
	mock.ExpectExec(`INSERT INTO "bids"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	bid := &models.Bid{
		Proposal:    "I can build this",
		ProjectID:   uuid.New(),
		DeveloperID: uuid.New(),
	}
	err := repo.Create(ctx, bid)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, bid.ID)
	assert.Contains(t, bid.Slug, "dev1-e-commerce-website")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBidRepository_GetBySlugForDeveloper_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewBidRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT \* FROM "bids"`).
		WillReturnError(gorm.ErrRecordNotFound)

	bid, err := repo.GetBySlugForDeveloper(ctx, "dev1-e-commerce-website-abcd1234", uuid.New())

	assert.Nil(t, bid)
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
