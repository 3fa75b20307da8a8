package pubsub

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Topics published by the record store and the session manager. Each event
// carries the full post-mutation snapshot of the affected collection, so
// delivery order within a topic follows last-write-wins semantics: a late
// subscriber only needs the most recent event.
const (
	TopicUsersChanged         Topic = "users.changed"
	TopicHackathonsChanged    Topic = "hackathons.changed"
	TopicRegistrationsChanged Topic = "registrations.changed"
	TopicSessionChanged       Topic = "session.changed"
)

const subscriberBuffer = 16

type Topic string

type SubscriberID int

type HandlerFunc func(Event)

type Event struct {
	Timestamp time.Time
	Data      any
	Topic     Topic
}

func NewEvent(topic Topic, data any) Event {
	return Event{
		Topic:     topic,
		Timestamp: time.Now(),
		Data:      data,
	}
}

type subscriber struct {
	ch     chan Event
	closed bool
	mu     sync.Mutex
}

func (s *subscriber) deliver(evt Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	// Non-blocking send: a subscriber that stopped draining its channel must
	// not stall publishers. The dropped event is recoverable because the next
	// event on the topic carries the full snapshot again.
	select {
	case s.ch <- evt:
		return true
	default:
		return false
	}
}

func (s *subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}

// Bus is an in-process publish/subscribe hub for collection-changed events.
type Bus struct {
	subscribers map[Topic]map[SubscriberID]*subscriber
	metrics     *busMetrics
	lastSubID   SubscriberID
	mu          sync.RWMutex
}

// NewBus creates a Bus. promRegistry may be nil to disable metrics.
func NewBus(promRegistry prometheus.Registerer) *Bus {
	b := &Bus{
		subscribers: make(map[Topic]map[SubscriberID]*subscriber),
	}
	if promRegistry != nil {
		b.initMetrics(promRegistry)
	}
	return b
}

// Subscribe registers a channel-backed subscriber for a topic.
func (b *Bus) Subscribe(topic Topic) (SubscriberID, <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	sub := &subscriber{ch: make(chan Event, subscriberBuffer)}
	b.lastSubID++
	id := b.lastSubID
	if _, ok := b.subscribers[topic]; !ok {
		b.subscribers[topic] = make(map[SubscriberID]*subscriber)
	}
	b.subscribers[topic][id] = sub
	if b.metrics != nil {
		b.metrics.subscribers.WithLabelValues(string(topic)).Inc()
	}
	return id, sub.ch
}

// SubscribeFunc registers a callback subscriber. The callback runs on a
// dedicated goroutine that exits when the subscription is removed.
func (b *Bus) SubscribeFunc(topic Topic, fn HandlerFunc) SubscriberID {
	id, ch := b.Subscribe(topic)
	go func() {
		for evt := range ch {
			fn(evt)
		}
	}()
	return id
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *Bus) Unsubscribe(topic Topic, id SubscriberID) {
	b.mu.Lock()
	var toClose *subscriber
	if subs, ok := b.subscribers[topic]; ok {
		if sub, ok := subs[id]; ok {
			toClose = sub
			delete(subs, id)
			if len(subs) == 0 {
				delete(b.subscribers, topic)
			}
			if b.metrics != nil {
				b.metrics.subscribers.WithLabelValues(string(topic)).Dec()
			}
		}
	}
	b.mu.Unlock()
	if toClose != nil {
		toClose.close()
	}
}

// Publish delivers the event to every subscriber of the topic.
func (b *Bus) Publish(topic Topic, evt Event) {
	b.mu.RLock()
	subs := make([]*subscriber, 0, len(b.subscribers[topic]))
	for _, sub := range b.subscribers[topic] {
		subs = append(subs, sub)
	}
	b.mu.RUnlock()
	dropped := 0
	for _, sub := range subs {
		if !sub.deliver(evt) {
			dropped++
		}
	}
	if b.metrics != nil {
		b.metrics.published.WithLabelValues(string(topic)).Inc()
		if dropped > 0 {
			b.metrics.dropped.WithLabelValues(string(topic)).Add(float64(dropped))
		}
	}
}

// Close closes every subscription. The bus must not be used afterwards.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for topic, subs := range b.subscribers {
		for id, sub := range subs {
			sub.close()
			delete(subs, id)
		}
		delete(b.subscribers, topic)
	}
}
