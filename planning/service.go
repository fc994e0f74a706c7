package planning

import (
	"log"
	"time"

	"github.com/DenizcanArslan/VDTMSv2-sub001/store"
)

const dateLayout = "2006-01-02"

type LogFunc func(format string, args ...any)

type Config struct {
	DB      *store.DB
	LogFunc LogFunc
}

// Service hosts the planning engines: slot lifecycle, transport assignment,
// reordering, and the cut/restore lifecycle. Every mutating call runs inside
// one store transaction and emits one Change on the bus after commit.
type Service struct {
	db    *store.DB
	bus   *EventBus
	logFn LogFunc
}

func New(c Config) *Service {
	logFn := c.LogFunc
	if logFn == nil {
		logFn = log.Printf
	}
	return &Service{
		db:    c.DB,
		bus:   NewEventBus(),
		logFn: logFn,
	}
}

func (s *Service) DB() *store.DB     { return s.db }
func (s *Service) Events() *EventBus { return s.bus }

// Plan returns the hydrated full state for a date.
func (s *Service) Plan(date string) (*store.DayPlan, error) {
	if err := checkDate(date); err != nil {
		return nil, err
	}
	plan, err := s.db.GetDayPlan(date)
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// Transport returns one hydrated transport.
func (s *Service) Transport(id int64) (*store.TransportDetail, error) {
	td, err := s.db.GetTransportDetail(id)
	if err != nil {
		return nil, notFoundf("transport %d not found", id)
	}
	return td, nil
}

func checkDate(date string) error {
	if date == "" {
		return invalidf("date is required")
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return invalidf("invalid date %q, want YYYY-MM-DD", date)
	}
	return nil
}
