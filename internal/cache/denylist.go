package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const denyKeyPrefix = "deny:jti:%s"

// ErrDenylistUnavailable is returned when Redis is not connected and token
// revocation cannot be recorded.
var ErrDenylistUnavailable = errors.New("token denylist unavailable")

// DenyToken records a refresh token's jti as revoked until its natural expiry.
func DenyToken(ctx context.Context, jti string, ttl time.Duration) error {
	if client == nil {
		return ErrDenylistUnavailable
	}
	if ttl <= 0 {
		// Already expired; nothing to record.
		return nil
	}
	return client.Set(ctx, fmt.Sprintf(denyKeyPrefix, jti), "1", ttl).Err()
}

// IsTokenDenied reports whether the jti has been revoked. With Redis down the
// denylist fails open; refresh tokens still expire on their own.
func IsTokenDenied(ctx context.Context, jti string) (bool, error) {
	if client == nil {
		return false, nil
	}
	n, err := client.Exists(ctx, fmt.Sprintf(denyKeyPrefix, jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
