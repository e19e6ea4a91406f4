// Package token issues and verifies the JWTs used for API access, session
// refresh, and email-ownership verification.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Kind discriminates what a token is good for. A refresh token is never
// accepted where an access token is expected and vice versa.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
	KindVerify  Kind = "verify"
)

// Claims carried by every hiredev JWT.
type Claims struct {
	Kind        Kind `json:"typ"`
	IsClient    bool `json:"client,omitempty"`
	IsDeveloper bool `json:"developer,omitempty"`
	IsAdmin     bool `json:"admin,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns the subject as a parsed uuid.
func (c *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// Issuer signs and parses tokens with a shared HMAC secret.
type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	verifyTTL  time.Duration
}

// NewIssuer returns an Issuer with the given secret and lifetimes.
func NewIssuer(secret string, accessTTL, refreshTTL, verifyTTL time.Duration) *Issuer {
	return &Issuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		verifyTTL:  verifyTTL,
	}
}

// RoleFlags captures the role claims stamped into access tokens.
type RoleFlags struct {
	IsClient    bool
	IsDeveloper bool
	IsAdmin     bool
}

// Access issues a short-lived bearer token for the given user.
func (i *Issuer) Access(userID uuid.UUID, roles RoleFlags) (string, error) {
	return i.sign(KindAccess, userID, roles, i.accessTTL)
}

// Refresh issues a long-lived token exchangeable for new access tokens.
// Its jti identifies it in the logout denylist.
func (i *Issuer) Refresh(userID uuid.UUID, roles RoleFlags) (string, error) {
	return i.sign(KindRefresh, userID, roles, i.refreshTTL)
}

// Verify issues the time-bounded email-ownership proof embedded in
// verification links.
func (i *Issuer) Verify(userID uuid.UUID) (string, error) {
	return i.sign(KindVerify, userID, RoleFlags{}, i.verifyTTL)
}

func (i *Issuer) sign(kind Kind, userID uuid.UUID, roles RoleFlags, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Kind:        kind,
		IsClient:    roles.IsClient,
		IsDeveloper: roles.IsDeveloper,
		IsAdmin:     roles.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ID:        uuid.NewString(),
			Issuer:    "hiredev-api",
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

// ErrWrongKind is returned when a token parses but is of the wrong kind.
var ErrWrongKind = errors.New("unexpected token kind")

// Parse validates signature and lifetime and requires the expected kind.
func (i *Issuer) Parse(tokenString string, expected Kind) (*Claims, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !t.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	if claims.Kind != expected {
		return nil, ErrWrongKind
	}
	return claims, nil
}
