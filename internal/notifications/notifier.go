// Package notifications publishes feed events into Redis channels.
// Delivery is fire and forget: a publish failure is logged and counted but
// never surfaces to the mutation that triggered it.
package notifications

import (
	"context"
	"encoding/json"
	"log"
	"runtime/debug"
	"strconv"
	"time"

	"waypoint/internal/observability"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Notification event types.
const (
	EventActivityLiked     = "activity_liked"
	EventActivityCommented = "activity_commented"
)

// Event is the payload published to a recipient's channel.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	ActorID    uint      `json:"actor_id"`
	ActivityID uint      `json:"activity_id"`
	CommentID  uint      `json:"comment_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Notifier provides helpers to publish notifications into Redis channels
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishUser sends a notification payload to a user's channel.
func (n *Notifier) PublishUser(ctx context.Context, userID uint, payload string) error {
	if n.rdb == nil {
		return nil
	}
	return n.rdb.Publish(ctx, UserChannel(userID), payload).Err()
}

// ActivityLiked notifies the activity owner that someone liked their activity.
func (n *Notifier) ActivityLiked(ctx context.Context, recipientID, actorID, activityID uint) {
	n.publish(ctx, recipientID, Event{
		ID:         uuid.NewString(),
		Type:       EventActivityLiked,
		ActorID:    actorID,
		ActivityID: activityID,
		CreatedAt:  time.Now().UTC(),
	})
}

// ActivityCommented notifies the activity owner about a new comment.
func (n *Notifier) ActivityCommented(ctx context.Context, recipientID, actorID, activityID, commentID uint) {
	n.publish(ctx, recipientID, Event{
		ID:         uuid.NewString(),
		Type:       EventActivityCommented,
		ActorID:    actorID,
		ActivityID: activityID,
		CommentID:  commentID,
		CreatedAt:  time.Now().UTC(),
	})
}

func (n *Notifier) publish(ctx context.Context, recipientID uint, ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		observability.NotificationPublishes.WithLabelValues(ev.Type, "error").Inc()
		log.Printf("notification marshal failed: %v", err)
		return
	}
	if err := n.PublishUser(ctx, recipientID, string(payload)); err != nil {
		observability.NotificationPublishes.WithLabelValues(ev.Type, "error").Inc()
		log.Printf("notification publish failed (event=%s user=%d): %v", ev.Type, recipientID, err)
		return
	}
	observability.NotificationPublishes.WithLabelValues(ev.Type, "ok").Inc()
}

// StartPatternSubscriber subscribes to pattern `notifications:user:*` and calls onMessage
// for each incoming message. onMessage receives channel and payload.
func (n *Notifier) StartPatternSubscriber(
	ctx context.Context, onMessage func(channel string, payload string),
) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, "notifications:user:*")
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
							log.Printf("PANIC in PatternSubscriber: %v\n%s", r, debug.Stack())
						}
					}()
					onMessage(msg.Channel, msg.Payload)
				}()
			}
		}
	}()

	return nil
}

// UserChannel derives the Redis channel name for a user.
func UserChannel(userID uint) string {
	return "notifications:user:" + strconv.FormatUint(uint64(userID), 10)
}
