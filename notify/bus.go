// Package notify is the in-process notification bus. The request-handling
// layer receives a *Bus by injection and publishes engagement events to it;
// a transport (websocket relay, SSE, poller) subscribes per authenticated
// user and unsubscribes on disconnect. There is no package-level registry.
package notify

import (
	"sync"
	"time"
)

// Event kinds emitted by the handlers.
const (
	EventProjectLiked = "project_liked"
	EventCommentAdded = "comment_added"
	EventReplyAdded   = "reply_added"
	EventCommentLiked = "comment_liked"
	EventReplyLiked   = "reply_liked"
)

// Event is one notification addressed to a single recipient.
type Event struct {
	Type        string    `json:"type"`
	RecipientID uint      `json:"recipientId"`
	ActorID     uint      `json:"actorId"`
	ProjectID   uint      `json:"projectId,omitempty"`
	CommentID   uint      `json:"commentId,omitempty"`
	ReplyID     uint      `json:"replyId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

const subscriberBuffer = 16

// Bus fans events out to per-user subscriber channels. Publish never blocks:
// events for absent subscribers are dropped, and a subscriber that has fallen
// subscriberBuffer events behind loses the newest event rather than stalling
// the request that produced it.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[uint]map[int]chan Event
}

func NewBus() *Bus {
	return &Bus{subs: make(map[uint]map[int]chan Event)}
}

// Subscribe registers a channel for the user's events and returns it with an
// unsubscribe func. Unsubscribe closes the channel; callers must not use it
// afterwards. Multiple concurrent subscriptions per user are allowed (one per
// open connection).
func (b *Bus) Subscribe(userID uint) (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	if b.subs[userID] == nil {
		b.subs[userID] = make(map[int]chan Event)
	}
	b.subs[userID][id] = ch
	b.mu.Unlock()

	unsubscribe := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if chans, ok := b.subs[userID]; ok {
			if c, ok := chans[id]; ok {
				delete(chans, id)
				close(c)
			}
			if len(chans) == 0 {
				delete(b.subs, userID)
			}
		}
	}
	return ch, unsubscribe
}

// Publish delivers the event to every live subscription of its recipient.
// Events addressed to user 0 (anonymous) or to the actor themselves are
// dropped silently.
func (b *Bus) Publish(event Event) {
	if event.RecipientID == 0 || event.RecipientID == event.ActorID {
		return
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs[event.RecipientID] {
		select {
		case ch <- event:
		default:
			// subscriber is not keeping up; drop rather than block the request
		}
	}
}
