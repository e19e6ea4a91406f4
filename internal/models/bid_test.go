package models

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBidStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    BidStatus
		to      BidStatus
		allowed bool
	}{
		{"pending to accepted", BidStatusPending, BidStatusAccepted, true},
		{"pending to rejected", BidStatusPending, BidStatusRejected, true},
		{"pending to pending", BidStatusPending, BidStatusPending, false},
		{"accepted to rejected", BidStatusAccepted, BidStatusRejected, false},
		{"accepted to pending", BidStatusAccepted, BidStatusPending, false},
		{"accepted to accepted", BidStatusAccepted, BidStatusAccepted, false},
		{"rejected to accepted", BidStatusRejected, BidStatusAccepted, false},
		{"rejected to pending", BidStatusRejected, BidStatusPending, false},
		{"pending to unknown code", BidStatusPending, BidStatus("X"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestBidStatusLabels(t *testing.T) {
	assert.Equal(t, "Pending", BidStatusPending.Label())
	assert.Equal(t, "Accepted", BidStatusAccepted.Label())
	assert.Equal(t, "Rejected", BidStatusRejected.Label())

	assert.True(t, BidStatusPending.Valid())
	assert.False(t, BidStatus("Z").Valid())
}

func TestDeriveSlug(t *testing.T) {
	id := uuid.MustParse("a1b2c3d4-0000-0000-0000-000000000000")

	first := DeriveSlug(id, "Build an API Backend")
	assert.Equal(t, "build-an-api-backend-a1b2c3d4", first)

	// Underscores survive slugification, so usernames keep their shape.
	withUser := DeriveSlug(id, "dev_dana Online Store")
	assert.Equal(t, "dev_dana-online-store-a1b2c3d4", withUser)

	// Two records with the same text still get distinct slugs.
	other := DeriveSlug(uuid.New(), "Build an API Backend")
	assert.NotEqual(t, first, other)
	assert.True(t, strings.HasPrefix(other, "build-an-api-backend-"))
}
