// Package bus implements the in-process notification bus shared between the
// REST handlers and all connected socket clients. Delivery is best-effort and
// at-most-once: events are fanned out to currently registered subscribers
// only, and dropped for subscribers whose buffer is full. Nothing is stored
// or replayed.
package bus

import "sync"

// Event is any message that can be broadcast on the Broker. EventName is the
// wire name sent to socket clients, EventData the JSON payload.
type Event interface {
	EventName() string
	EventData() interface{}
}

// ChatMessage is a free-form message relayed between connected clients.
type ChatMessage struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
	Time   string `json:"time"`
}

func (m ChatMessage) EventName() string      { return "chatMessage" }
func (m ChatMessage) EventData() interface{} { return m }

const subscriptionBuffer = 16

// Subscription is one subscriber's view of the Broker. Events are received
// on C until Close is called.
type Subscription struct {
	C chan Event

	broker *Broker
	once   sync.Once
}

// Close detaches the subscription from the Broker and closes C.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.broker.unsubscribe(s)
		close(s.C)
	})
}

// Broker is an explicitly constructed publish/subscribe service, passed to
// whoever needs to publish or listen. It holds no state besides the live
// subscriber set.
type Broker struct {
	mu   sync.RWMutex
	subs map[*Subscription]struct{}
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[*Subscription]struct{})}
}

// Subscribe registers a new subscriber. Events published before the call are
// never delivered.
func (b *Broker) Subscribe() *Subscription {
	sub := &Subscription{
		C:      make(chan Event, subscriptionBuffer),
		broker: b,
	}
	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()
	return sub
}

func (b *Broker) unsubscribe(sub *Subscription) {
	b.mu.Lock()
	delete(b.subs, sub)
	b.mu.Unlock()
}

// Publish broadcasts evt to all current subscribers. The send never blocks;
// a subscriber that cannot keep up misses the event.
func (b *Broker) Publish(evt Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for sub := range b.subs {
		select {
		case sub.C <- evt:
		default: // slow subscriber, drop
		}
	}
}

// SubscriberCount reports the number of live subscriptions.
func (b *Broker) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
