// Package notify fans planning changes out to viewers: webhooks, kafka, mqtt
// and the SSE hub all receive the same enveloped wire events. Delivery is
// best effort; a failed publisher is logged and never fails the command that
// produced the change.
package notify

import (
	"log"

	"github.com/google/uuid"

	"github.com/DenizcanArslan/VDTMSv2-sub001/planning"
)

// Wire event names.
const (
	EventTransportCreate = "transport:create"
	EventTransportUpdate = "transport:update"
	EventTransportDelete = "transport:delete"
	EventTransportStatus = "transport:status-update"
	EventSlotUpdate      = "slot:update"
	EventSlotsReorder    = "slots:reorder"
	EventPlanningUpdate  = "planning:update"
)

// Event is the envelope every publisher delivers. Data always carries the
// complete resulting state, never a diff.
type Event struct {
	ID    string `json:"id"`
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Publisher delivers one event to one transport. Implementations own their
// timeouts; Publish must not block indefinitely.
type Publisher interface {
	Publish(ev Event) error
}

type LogFunc func(format string, args ...any)

// Dispatcher translates planning changes into wire events and hands them to
// every registered publisher.
type Dispatcher struct {
	pubs  []Publisher
	logFn LogFunc
}

func NewDispatcher(logFn LogFunc, pubs ...Publisher) *Dispatcher {
	if logFn == nil {
		logFn = log.Printf
	}
	return &Dispatcher{pubs: pubs, logFn: logFn}
}

// Attach subscribes the dispatcher to a planning event bus.
func (d *Dispatcher) Attach(bus *planning.EventBus) planning.SubscriberID {
	return bus.Subscribe(d.Handle)
}

// Handle maps one planning change onto its wire events and publishes them.
func (d *Dispatcher) Handle(ch planning.Change) {
	for _, ev := range eventsFor(ch) {
		ev.ID = uuid.NewString()
		for _, p := range d.pubs {
			if err := p.Publish(ev); err != nil {
				d.logFn("notify: %T publish %s: %v", p, ev.Event, err)
			}
		}
	}
}

func eventsFor(ch planning.Change) []Event {
	var events []Event
	add := func(name string, data any) {
		events = append(events, Event{Event: name, Data: data})
	}
	switch ch.Kind {
	case planning.ChangeTransportCreated:
		for _, t := range ch.Created {
			add(EventTransportCreate, t)
		}
		for _, t := range ch.Updated {
			add(EventTransportUpdate, t)
		}
	case planning.ChangeTransportUpdated:
		for _, t := range ch.Created {
			add(EventTransportCreate, t)
		}
		for _, t := range ch.Updated {
			add(EventTransportUpdate, t)
		}
	case planning.ChangeTransportDeleted:
		for _, id := range ch.RemovedIDs {
			add(EventTransportDelete, map[string]int64{"id": id})
		}
		for _, t := range ch.Updated {
			add(EventTransportUpdate, t)
		}
	case planning.ChangeTransportStatus:
		for _, t := range ch.Updated {
			add(EventTransportStatus, t)
		}
	case planning.ChangeSlotUpdated:
		for _, t := range ch.Updated {
			add(EventTransportUpdate, t)
		}
		for _, sl := range ch.Slots {
			add(EventSlotUpdate, sl)
		}
	case planning.ChangeSlotsReordered:
		add(EventSlotsReorder, map[string]any{"date": ch.Date, "slots": ch.Slots})
	}
	if ch.Plan != nil {
		add(EventPlanningUpdate, ch.Plan)
	}
	return events
}
