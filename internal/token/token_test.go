package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIssuer() *Issuer {
	return NewIssuer("test_secret", 30*time.Minute, 7*24*time.Hour, 24*time.Hour)
}

func TestIssueAndParseRoundTrip(t *testing.T) {
	t.Parallel()
	iss := newTestIssuer()
	userID := uuid.New()

	access, err := iss.Access(userID, RoleFlags{IsClient: true})
	require.NoError(t, err)

	claims, err := iss.Parse(access, KindAccess)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.True(t, claims.IsClient)
	assert.False(t, claims.IsDeveloper)
	assert.NotEmpty(t, claims.ID)

	parsed, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestParseRejectsWrongKind(t *testing.T) {
	t.Parallel()
	iss := newTestIssuer()
	userID := uuid.New()

	refresh, err := iss.Refresh(userID, RoleFlags{IsDeveloper: true})
	require.NoError(t, err)

	_, err = iss.Parse(refresh, KindAccess)
	assert.ErrorIs(t, err, ErrWrongKind)

	_, err = iss.Parse(refresh, KindRefresh)
	assert.NoError(t, err)
}

func TestParseRejectsTamperedToken(t *testing.T) {
	t.Parallel()
	iss := newTestIssuer()

	verify, err := iss.Verify(uuid.New())
	require.NoError(t, err)

	tampered := verify[:len(verify)-2] + "xx"
	_, err = iss.Parse(tampered, KindVerify)
	assert.Error(t, err)
}

func TestParseRejectsForeignSecret(t *testing.T) {
	t.Parallel()
	iss := newTestIssuer()
	other := NewIssuer("other_secret", time.Minute, time.Hour, time.Hour)

	tok, err := other.Access(uuid.New(), RoleFlags{})
	require.NoError(t, err)

	_, err = iss.Parse(tok, KindAccess)
	assert.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	t.Parallel()
	iss := NewIssuer("test_secret", -time.Minute, time.Hour, time.Hour)

	tok, err := iss.Access(uuid.New(), RoleFlags{})
	require.NoError(t, err)

	_, err = iss.Parse(tok, KindAccess)
	assert.Error(t, err)
}
