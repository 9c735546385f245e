package notification

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"
)

const subscriberBuffer = 32

// Subscription is one live feed consumer. Messages arrive on C until the hub drops it.
type Subscription struct {
	UserID int64
	accept func(Event) bool
	send   chan []byte
}

func (s *Subscription) C() <-chan []byte { return s.send }

// Hub broadcasts booking events to connected websocket clients.
type Hub struct {
	subs  map[*Subscription]struct{}
	mutex sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{subs: make(map[*Subscription]struct{})}
}

// Subscribe registers a consumer; accept decides which events it may see.
func (h *Hub) Subscribe(userID int64, accept func(Event) bool) *Subscription {
	s := &Subscription{
		UserID: userID,
		accept: accept,
		send:   make(chan []byte, subscriberBuffer),
	}

	h.mutex.Lock()
	h.subs[s] = struct{}{}
	h.mutex.Unlock()
	return s
}

func (h *Hub) Unsubscribe(s *Subscription) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, ok := h.subs[s]; ok {
		delete(h.subs, s)
		close(s.send)
	}
}

// BookingChanged never blocks on a slow consumer; such a consumer misses the event.
func (h *Hub) BookingChanged(_ context.Context, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for s := range h.subs {
		if s.accept != nil && !s.accept(ev) {
			continue
		}
		select {
		case s.send <- data:
		default:
			logrus.WithFields(logrus.Fields{
				"user_id":    s.UserID,
				"booking_id": ev.BookingID,
			}).Warn("booking feed subscriber is slow, event dropped")
		}
	}
	return nil
}

func (h *Hub) Count() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.subs)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for s := range h.subs {
		close(s.send)
		delete(h.subs, s)
	}
}
