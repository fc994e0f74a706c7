package planning

import (
	"database/sql"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/DenizcanArslan/VDTMSv2-sub001/store"
)

// AssignTransport places a transport on a date. slotID == 0 assigns it to the
// unslotted pool; otherwise the transport is appended to the end of the slot
// for that date, replacing any prior assignment on the same date.
func (s *Service) AssignTransport(transportID int64, date string, slotID int64) (*store.TransportDetail, *store.SlotDetail, error) {
	if err := checkDate(date); err != nil {
		return nil, nil, err
	}
	err := s.db.WithTx(func(tx *store.Tx) error {
		t, err := getTransport(tx, transportID)
		if err != nil {
			return err
		}
		if slotID == 0 {
			if _, err := tx.UpsertUnslottedAssignment(transportID, date); err != nil {
				return err
			}
		} else {
			if _, err := tx.GetSlot(slotID); errors.Is(err, sql.ErrNoRows) {
				return notFoundf("slot %d not found", slotID)
			} else if err != nil {
				return err
			}
			if err := tx.DeleteAssignmentsForTransportDate(transportID, date); err != nil {
				return err
			}
			max, err := tx.MaxAssignmentOrder(slotID, date)
			if err != nil {
				return err
			}
			a := &store.Assignment{
				TransportID: transportID,
				Date:        date,
				SlotID:      &slotID,
				SlotOrder:   max + 1,
			}
			if err := tx.CreateAssignment(a); err != nil {
				return err
			}
		}
		return clearParkingIfMoving(tx, t)
	})
	if err != nil {
		return nil, nil, err
	}
	td, err := s.db.GetTransportDetail(transportID)
	if err != nil {
		return nil, nil, err
	}
	var sd *store.SlotDetail
	if slotID != 0 {
		sd, err = s.db.GetSlotDetail(slotID, date)
		if err != nil {
			return nil, nil, err
		}
	}
	s.emitDay(ChangeSlotUpdated, date, func(ch *Change) {
		ch.Updated = []*store.TransportDetail{td}
	})
	return td, sd, nil
}

// AssignDateRange fills every date from start to end inclusive with an
// assignment for the transport. Dates that already have one are left alone;
// each missing date inherits the most recent slot binding seen while walking
// the range, so a multi-day trip stays in its slot across the gap days.
func (s *Service) AssignDateRange(transportID int64, start, end string) ([]*store.Assignment, error) {
	if err := checkDate(start); err != nil {
		return nil, err
	}
	if err := checkDate(end); err != nil {
		return nil, err
	}
	startT, _ := time.Parse(dateLayout, start)
	endT, _ := time.Parse(dateLayout, end)
	if endT.Before(startT) {
		return nil, invalidf("end date %s is before start date %s", end, start)
	}
	var touched []string
	err := s.db.WithTx(func(tx *store.Tx) error {
		if _, err := getTransport(tx, transportID); err != nil {
			return err
		}
		existing, err := tx.ListAssignmentsByTransport(transportID)
		if err != nil {
			return err
		}
		byDate := make(map[string]*store.Assignment, len(existing))
		for _, a := range existing {
			byDate[a.Date] = a
		}
		var lastSlot *int64
		for d := startT; !d.After(endT); d = d.AddDate(0, 0, 1) {
			ds := d.Format(dateLayout)
			if a, ok := byDate[ds]; ok {
				if a.SlotID != nil {
					lastSlot = a.SlotID
				}
				continue
			}
			a := &store.Assignment{TransportID: transportID, Date: ds, SlotID: lastSlot}
			if lastSlot != nil {
				max, err := tx.MaxAssignmentOrder(*lastSlot, ds)
				if err != nil {
					return err
				}
				a.SlotOrder = max + 1
			}
			if err := tx.CreateAssignment(a); err != nil {
				return err
			}
			touched = append(touched, ds)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	rows, err := s.db.ListAssignmentsByTransport(transportID)
	if err != nil {
		return nil, err
	}
	td, err := s.db.GetTransportDetail(transportID)
	if err != nil {
		return nil, err
	}
	s.bus.Emit(Change{
		Kind:    ChangeTransportUpdated,
		Date:    start,
		Dates:   touched,
		Updated: []*store.TransportDetail{td},
	})
	return rows, nil
}

// AssignTrailer attaches a trailer to a transport, or detaches it when
// trailerID is 0. Attaching fails with a conflict when another ongoing
// transport holds the trailer on any of this transport's working dates.
func (s *Service) AssignTrailer(transportID, trailerID int64) (*store.TransportDetail, error) {
	var affected []string
	err := s.db.WithTx(func(tx *store.Tx) error {
		t, err := getTransport(tx, transportID)
		if err != nil {
			return err
		}
		if affected, err = assignmentDates(tx, t.ID); err != nil {
			return err
		}
		if trailerID == 0 {
			return tx.SetTransportTrailer(t.ID, nil)
		}
		if _, err := tx.GetTrailer(trailerID); errors.Is(err, sql.ErrNoRows) {
			return notFoundf("trailer %d not found", trailerID)
		} else if err != nil {
			return err
		}
		target, err := transportDates(tx, t)
		if err != nil {
			return err
		}
		holders, err := tx.ListOngoingTransportsByTrailer(trailerID)
		if err != nil {
			return err
		}
		var conflicts []string
		seen := make(map[string]struct{})
		for _, h := range holders {
			if h.ID == t.ID {
				continue
			}
			dates, err := transportDates(tx, h)
			if err != nil {
				return err
			}
			for d := range dates {
				if _, ok := target[d]; !ok {
					continue
				}
				if _, dup := seen[d]; dup {
					continue
				}
				seen[d] = struct{}{}
				conflicts = append(conflicts, d)
			}
		}
		if len(conflicts) > 0 {
			sort.Strings(conflicts)
			return conflictf("trailer %d is already in use by an ongoing transport on %s",
				trailerID, strings.Join(conflicts, ", "))
		}
		tid := trailerID
		if err := tx.SetTransportTrailer(t.ID, &tid); err != nil {
			return err
		}
		t.TrailerID = &tid
		return clearParkingIfMoving(tx, t)
	})
	if err != nil {
		return nil, err
	}
	td, err := s.db.GetTransportDetail(transportID)
	if err != nil {
		return nil, err
	}
	s.bus.Emit(Change{
		Kind:    ChangeTransportUpdated,
		Date:    td.DepartureDate,
		Dates:   affected,
		Updated: []*store.TransportDetail{td},
	})
	return td, nil
}

// assignmentDates returns the distinct calendar dates a transport is assigned
// on, in date order. These are the day plans that render the transport, so
// they are the dates a change to it must report.
func assignmentDates(tx *store.Tx, transportID int64) ([]string, error) {
	rows, err := tx.ListAssignmentsByTransport(transportID)
	if err != nil {
		return nil, err
	}
	var dates []string
	seen := make(map[string]struct{}, len(rows))
	for _, a := range rows {
		if _, dup := seen[a.Date]; dup {
			continue
		}
		seen[a.Date] = struct{}{}
		dates = append(dates, a.Date)
	}
	return dates, nil
}

// transportDates collects the dates a transport occupies: departure, return,
// and every destination date. A transport with no dates at all counts as
// occupying today.
func transportDates(tx *store.Tx, t *store.Transport) (map[string]struct{}, error) {
	set := make(map[string]struct{})
	if t.DepartureDate != "" {
		set[t.DepartureDate] = struct{}{}
	}
	if t.ReturnDate != "" {
		set[t.ReturnDate] = struct{}{}
	}
	dests, err := tx.ListDestinations(t.ID)
	if err != nil {
		return nil, err
	}
	for _, d := range dests {
		if d.Date != "" {
			set[d.Date] = struct{}{}
		}
	}
	if len(set) == 0 {
		set[time.Now().Format(dateLayout)] = struct{}{}
	}
	return set, nil
}

// getTransport loads a live transport or fails KindNotFound.
func getTransport(tx *store.Tx, id int64) (*store.Transport, error) {
	t, err := tx.GetTransport(id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFoundf("transport %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	if t.IsDeleted {
		return nil, notFoundf("transport %d not found", id)
	}
	return t, nil
}

// clearParkingIfMoving drops the parking record of an attached trailer once
// the transport is actually on the road or done with it.
func clearParkingIfMoving(tx *store.Tx, t *store.Transport) error {
	if t.TrailerID == nil {
		return nil
	}
	switch t.CurrentStatus {
	case store.CurrentOngoing, store.CurrentCompleted:
		return tx.DeleteTrailerParking(*t.TrailerID)
	}
	return nil
}
