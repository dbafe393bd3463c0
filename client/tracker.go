package client

import (
	"sync"

	"github.com/gbswdev/snackbar/core/order"
)

// StaffTracker keeps the staff dashboard's pending-order counter. Seed it
// from the initial full fetch, then feed it every order event. There is no
// reconciliation against server truth after seeding, so the counter can
// drift across reconnects.
type StaffTracker struct {
	mu      sync.Mutex
	pending int
}

// Seed resets the counter from a full order list.
func (t *StaffTracker) Seed(orders []order.Order) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending = 0
	for _, ord := range orders {
		if ord.Status == order.StatusPending {
			t.pending++
		}
	}
}

// OrderCreated increments the counter. New orders always start out pending.
func (t *StaffTracker) OrderCreated(order.Order) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending++
}

// OrderUpdated decrements the counter when an order left pending, floored
// at 0.
func (t *StaffTracker) OrderUpdated(ord order.Order) {
	if ord.Status == order.StatusPending {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pending > 0 {
		t.pending--
	}
}

func (t *StaffTracker) PendingCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending
}

// RequesterTracker watches for updates to the current user's own orders and
// raises a single collapsed alert flag. Multiple updates set the same flag;
// only an explicit Ack clears it.
type RequesterTracker struct {
	name string

	mu    sync.Mutex
	alert bool
}

func NewRequesterTracker(name string) *RequesterTracker {
	return &RequesterTracker{name: name}
}

// OrderUpdated sets the alert when the event's requester matches the local
// identity (plain name match, as the records carry no owner id).
func (t *RequesterTracker) OrderUpdated(ord order.Order) {
	if ord.StudentName != t.name {
		return
	}
	t.mu.Lock()
	t.alert = true
	t.mu.Unlock()
}

func (t *RequesterTracker) Alert() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.alert
}

// Ack clears the alert; it maps to the user tapping the badge.
func (t *RequesterTracker) Ack() {
	t.mu.Lock()
	t.alert = false
	t.mu.Unlock()
}
