package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix    = "user:%d"
	ProfileKeyPrefix = "profile:%s"
	PostKeyPrefix    = "post:%d"
	SearchKeyPrefix  = "search:%s"
)

const (
	UserTTL    = 5 * time.Minute
	ProfileTTL = 5 * time.Minute
	PostTTL    = 30 * time.Minute
	SearchTTL  = 1 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func ProfileKey(username string) string {
	return fmt.Sprintf(ProfileKeyPrefix, username)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func SearchKey(query string) string {
	return fmt.Sprintf(SearchKeyPrefix, query)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateUser drops both the ID-keyed row cache and the username-keyed
// profile cache. Callers pass the username known before the update so a
// username change evicts the stale entry.
func InvalidateUser(ctx context.Context, userID uint, username string) {
	Invalidate(ctx, UserKey(userID))
	if username != "" {
		Invalidate(ctx, ProfileKey(username))
	}
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}
