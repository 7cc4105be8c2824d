// Package notifications publishes user-facing events into Redis channels.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Event types published for friend-request activity.
const (
	EventFriendRequestReceived = "friend_request.received"
	EventFriendRequestAccepted = "friend_request.accepted"
)

// Event is the payload published on a user's notification channel.
type Event struct {
	Type       string    `json:"type"`
	ActorID    uint      `json:"actor_id"`
	ActorName  string    `json:"actor_name,omitempty"`
	RequestID  uint      `json:"request_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Notifier publishes notification events to per-user Redis channels.
// A nil client turns every publish into a no-op so callers never need
// to guard on Redis availability.
type Notifier struct {
	rdb *redis.Client
	now func() time.Time
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb, now: time.Now}
}

// PublishUser sends an event to a user's channel.
func (n *Notifier) PublishUser(ctx context.Context, userID uint, event Event) error {
	if n.rdb == nil {
		return nil
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = n.now().UTC()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return n.rdb.Publish(ctx, UserChannel(userID), string(payload)).Err()
}

// RequestReceived notifies the recipient that a friend request arrived.
func (n *Notifier) RequestReceived(ctx context.Context, recipientID, senderID uint, senderName string, requestID uint) error {
	return n.PublishUser(ctx, recipientID, Event{
		Type:      EventFriendRequestReceived,
		ActorID:   senderID,
		ActorName: senderName,
		RequestID: requestID,
	})
}

// RequestAccepted notifies the original sender that their request was accepted.
func (n *Notifier) RequestAccepted(ctx context.Context, senderID, accepterID uint, accepterName string, requestID uint) error {
	return n.PublishUser(ctx, senderID, Event{
		Type:      EventFriendRequestAccepted,
		ActorID:   accepterID,
		ActorName: accepterName,
		RequestID: requestID,
	})
}

// StartPatternSubscriber subscribes to pattern `notifications:user:*` and calls
// onMessage for each incoming message. A panicking handler is logged and
// skipped so one bad message cannot kill the subscription loop.
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
