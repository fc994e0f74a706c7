package planning

import (
	"sync"
	"time"

	"github.com/DenizcanArslan/VDTMSv2-sub001/store"
)

type ChangeKind int

const (
	ChangeTransportCreated ChangeKind = iota + 1
	ChangeTransportUpdated
	ChangeTransportDeleted
	ChangeTransportStatus
	ChangeSlotUpdated
	ChangeSlotsReordered
	ChangePlanningUpdated
)

// Change is the single structured event every command emits after its commit.
// It always carries complete resulting state, never a diff: created and
// updated transports are fully hydrated, slots include their assignment
// lists, and Plan (when set) is the whole day.
type Change struct {
	Kind    ChangeKind
	Date    string
	Created []*store.TransportDetail
	Updated []*store.TransportDetail
	// Dates lists every day plan the change touches beyond Date. Multi-day
	// assignments and transports assigned across several days land here so
	// subscribers holding per-date state can drop all of it.
	Dates      []string
	RemovedIDs []int64
	Slots      []*store.SlotDetail
	Plan       *store.DayPlan
	Timestamp  time.Time
}

type SubscriberID int

type subscriber struct {
	id     SubscriberID
	fn     func(Change)
	filter map[ChangeKind]struct{}
}

type EventBus struct {
	mu          sync.RWMutex
	subscribers []subscriber
	nextID      SubscriberID
}

func NewEventBus() *EventBus {
	return &EventBus{}
}

// Subscribe registers a handler for all change kinds.
func (eb *EventBus) Subscribe(fn func(Change)) SubscriberID {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.nextID++
	eb.subscribers = append(eb.subscribers, subscriber{id: eb.nextID, fn: fn})
	return eb.nextID
}

// SubscribeKinds registers a handler for specific change kinds.
func (eb *EventBus) SubscribeKinds(fn func(Change), kinds ...ChangeKind) SubscriberID {
	filter := make(map[ChangeKind]struct{}, len(kinds))
	for _, k := range kinds {
		filter[k] = struct{}{}
	}
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.nextID++
	eb.subscribers = append(eb.subscribers, subscriber{id: eb.nextID, fn: fn, filter: filter})
	return eb.nextID
}

// Unsubscribe removes a subscriber by ID.
func (eb *EventBus) Unsubscribe(id SubscriberID) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	for i, s := range eb.subscribers {
		if s.id == id {
			eb.subscribers = append(eb.subscribers[:i], eb.subscribers[i+1:]...)
			return
		}
	}
}

// Emit sends a change to all matching subscribers.
func (eb *EventBus) Emit(ch Change) {
	if ch.Timestamp.IsZero() {
		ch.Timestamp = time.Now()
	}
	eb.mu.RLock()
	subs := make([]subscriber, len(eb.subscribers))
	copy(subs, eb.subscribers)
	eb.mu.RUnlock()

	for _, s := range subs {
		if s.filter != nil {
			if _, ok := s.filter[ch.Kind]; !ok {
				continue
			}
		}
		s.fn(ch)
	}
}
