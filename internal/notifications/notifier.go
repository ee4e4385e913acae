package notifications

import (
	"context"
	"fmt"
	"log"
	"runtime/debug"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const (
	userChannelPrefix = "notifications:user:"
	broadcastChannel  = "notifications:broadcast"
	postChannelPrefix = "posts:post:"
)

// Notifier provides helpers to publish realtime events into Redis channels.
// A nil Redis client degrades every publish to a no-op, which keeps single
// process deployments and tests working without a broker.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishUser sends a notification payload to a user's channel.
func (n *Notifier) PublishUser(
	ctx context.Context, userID uint, payload string,
) error {
	if n.rdb == nil {
		return nil
	}
	return n.rdb.Publish(ctx, UserChannel(userID), payload).Err()
}

// PublishBroadcast sends a notification payload to all connected users.
func (n *Notifier) PublishBroadcast(ctx context.Context, payload string) error {
	if n.rdb == nil {
		return nil
	}
	return n.rdb.Publish(ctx, broadcastChannel, payload).Err()
}

// PublishPost sends a realtime event to everyone watching a post.
func (n *Notifier) PublishPost(
	ctx context.Context, postID uint, payload string,
) error {
	if n.rdb == nil {
		return nil
	}
	return n.rdb.Publish(ctx, PostChannel(postID), payload).Err()
}

// StartUserSubscriber subscribes to `notifications:user:*` and the broadcast
// channel and calls onMessage for each incoming message.
func (n *Notifier) StartUserSubscriber(
	ctx context.Context, onMessage func(channel string, payload string),
) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, userChannelPrefix+"*", broadcastChannel)
	runSubscriber(ctx, "UserSubscriber", sub, onMessage)
	return nil
}

// StartPostSubscriber subscribes to `posts:post:*` and calls onMessage for
// each incoming message.
func (n *Notifier) StartPostSubscriber(
	ctx context.Context, onMessage func(channel string, payload string),
) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, postChannelPrefix+"*")
	runSubscriber(ctx, "PostSubscriber", sub, onMessage)
	return nil
}

func runSubscriber(
	ctx context.Context, name string, sub *redis.PubSub,
	onMessage func(channel string, payload string),
) {
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in %s: %v\n%s", name, r, debug.Stack())
						}
					}()
					onMessage(msg.Channel, msg.Payload)
				}()
			}
		}
	}()
}

// UserChannel derives the Redis channel name for a user.
func UserChannel(userID uint) string {
	return userChannelPrefix + strconv.FormatUint(uint64(userID), 10)
}

// PostChannel derives the Redis channel name for a post.
func PostChannel(postID uint) string {
	return postChannelPrefix + strconv.FormatUint(uint64(postID), 10)
}

// ParsePostChannel extracts the post ID from a `posts:post:<id>` channel name.
func ParsePostChannel(channel string) (uint, error) {
	var postID uint
	if _, err := fmt.Sscanf(channel, postChannelPrefix+"%d", &postID); err != nil {
		return 0, fmt.Errorf("invalid post channel %q: %w", channel, err)
	}
	return postID, nil
}
