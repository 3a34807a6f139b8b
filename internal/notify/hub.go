package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const subscriberBuffer = 16

// ForwarderI pushes events to an external delivery transport (webhook).
type ForwarderI interface {
	Forward(ctx context.Context, event Event) error
}

// Hub is an in-process publish/subscribe fan-out. Publishing is fire and
// forget: it enqueues delivery on a worker pool and never reports failure
// to the caller, so a slow or dead subscriber cannot affect the ledger path.
type Hub struct {
	mu        sync.RWMutex
	subs      map[int]map[chan Event]struct{}
	pool      WorkerPoolI
	forwarder ForwarderI
}

func NewHub(forwarder ForwarderI) *Hub {
	return &Hub{
		subs:      make(map[int]map[chan Event]struct{}),
		pool:      NewWorkerPool(64),
		forwarder: forwarder,
	}
}

// Subscribe registers a stream of events for one user. The returned cancel
// func must be called when the consumer goes away.
func (h *Hub) Subscribe(userID int) (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	h.mu.Lock()
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[chan Event]struct{})
	}
	h.subs[userID][ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if set, ok := h.subs[userID]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(h.subs, userID)
			}
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Publish emits an event to the user's subscribers and the webhook
// forwarder, at most once, best effort.
func (h *Hub) Publish(ctx context.Context, userID int, eventType string, payload map[string]any) {
	event := Event{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      eventType,
		Payload:   payload,
		CreatedAt: time.Now(),
	}

	if ok := h.pool.TryAdd(func() error {
		return h.dispatch(event)
	}); !ok {
		zap.L().Warn("notification queue full, event dropped",
			zap.Int("userID", userID), zap.String("type", eventType))
	}
}

func (h *Hub) dispatch(event Event) error {
	h.mu.RLock()
	channels := make([]chan Event, 0, len(h.subs[event.UserID]))
	for ch := range h.subs[event.UserID] {
		channels = append(channels, ch)
	}
	h.mu.RUnlock()

	var g errgroup.Group
	for _, ch := range channels {
		ch := ch
		g.Go(func() error {
			select {
			case ch <- event:
			default:
				zap.L().Warn("subscriber buffer full, event dropped",
					zap.Int("userID", event.UserID), zap.String("type", event.Type))
			}
			return nil
		})
	}

	if h.forwarder != nil {
		g.Go(func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return h.forwarder.Forward(ctx, event)
		})
	}

	return g.Wait()
}

func (h *Hub) Close() {
	h.pool.Close()
}
