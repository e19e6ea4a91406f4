package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	UserKeyPrefix    = "user:%s"
	ProjectKeyPrefix = "project:%s"
	BidKeyPrefix     = "bid:%s"
)

const (
	UserTTL    = 5 * time.Minute
	ProjectTTL = 10 * time.Minute
	BidTTL     = 5 * time.Minute
)

func UserKey(userID uuid.UUID) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func ProjectKey(slug string) string {
	return fmt.Sprintf(ProjectKeyPrefix, slug)
}

func BidKey(slug string) string {
	return fmt.Sprintf(BidKeyPrefix, slug)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uuid.UUID) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateProject(ctx context.Context, slug string) {
	Invalidate(ctx, ProjectKey(slug))
}

func InvalidateBid(ctx context.Context, slug string) {
	Invalidate(ctx, BidKey(slug))
}
