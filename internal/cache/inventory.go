package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix     = "user:%d"
	ActivityKeyPrefix = "activity:%d"
)

const (
	UserTTL     = 5 * time.Minute
	ActivityTTL = 10 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func ActivityKey(activityID uint) string {
	return fmt.Sprintf(ActivityKeyPrefix, activityID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidateActivity drops the cached activity so the next read recomputes
// counts and the liked flag.
func InvalidateActivity(ctx context.Context, activityID uint) {
	Invalidate(ctx, ActivityKey(activityID))
}
