package planning

import (
	"database/sql"
	"errors"

	"github.com/DenizcanArslan/VDTMSv2-sub001/store"
)

const (
	maxSlotsPerCreate = 20
	maxSlotsPerDay    = 50
)

// CreateSlots appends count slots after the highest existing slot for the
// date and returns the full slot list. A date holds at most maxSlotsPerDay
// slots.
func (s *Service) CreateSlots(date string, count int) ([]*store.PlanningSlot, error) {
	if err := checkDate(date); err != nil {
		return nil, err
	}
	if count < 1 || count > maxSlotsPerCreate {
		return nil, invalidf("count must be between 1 and %d, got %d", maxSlotsPerCreate, count)
	}
	var slots []*store.PlanningSlot
	err := s.db.WithTx(func(tx *store.Tx) error {
		existing, err := tx.CountSlots(date)
		if err != nil {
			return err
		}
		if existing+count > maxSlotsPerDay {
			return invalidf("%s has %d slots, adding %d would exceed the cap of %d",
				date, existing, count, maxSlotsPerDay)
		}
		max, err := tx.MaxSlotOrder(date)
		if err != nil {
			return err
		}
		next := max + 1
		for i := 0; i < count; i++ {
			slot := &store.PlanningSlot{
				Date:       date,
				SlotNumber: next + i + 1,
				Order:      next + i,
				IsActive:   true,
			}
			if err := tx.CreateSlot(slot); err != nil {
				return err
			}
		}
		slots, err = tx.ListSlotsByDate(date)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.emitDay(ChangePlanningUpdated, date, nil)
	return slots, nil
}

// RemoveLastSlot deletes the active slot with the highest order for the date,
// unassigning every transport currently placed in it. Returns the removed
// slot and the unassigned transports.
func (s *Service) RemoveLastSlot(date string) (*store.PlanningSlot, []*store.TransportDetail, error) {
	if err := checkDate(date); err != nil {
		return nil, nil, err
	}
	var slot *store.PlanningSlot
	var ids []int64
	err := s.db.WithTx(func(tx *store.Tx) error {
		var err error
		slot, err = tx.LastSlot(date)
		if errors.Is(err, sql.ErrNoRows) {
			return notFoundf("no slots exist for %s", date)
		}
		if err != nil {
			return err
		}
		ids, err = tx.UnassignBySlot(slot.ID)
		if err != nil {
			return err
		}
		return tx.DeleteSlot(slot.ID)
	})
	if err != nil {
		return nil, nil, err
	}
	unassigned := s.hydrateTransports(ids)
	s.emitDay(ChangePlanningUpdated, date, func(ch *Change) {
		ch.Updated = unassigned
	})
	return slot, unassigned, nil
}

// SetTotalSlots resizes the date to exactly target slots: removes from the
// tail (highest order first) or appends using the CreateSlots numbering rule.
// A slot whose transports cannot be unassigned falls back to a direct delete
// of its assignment rows; a slot that still cannot be removed is logged and
// skipped rather than aborting the rest of the resize.
func (s *Service) SetTotalSlots(date string, target int) ([]*store.PlanningSlot, error) {
	if err := checkDate(date); err != nil {
		return nil, err
	}
	if target < 0 || target > maxSlotsPerDay {
		return nil, invalidf("total must be between 0 and %d, got %d", maxSlotsPerDay, target)
	}
	slots, err := s.db.ListSlotsByDate(date)
	if err != nil {
		return nil, err
	}
	switch {
	case len(slots) > target:
		for i := len(slots) - 1; i >= target; i-- {
			if err := s.removeSlot(slots[i]); err != nil {
				s.logFn("planning: resize %s: cannot remove slot %d: %v", date, slots[i].ID, err)
			}
		}
	case len(slots) < target:
		missing := target - len(slots)
		err := s.db.WithTx(func(tx *store.Tx) error {
			max, err := tx.MaxSlotOrder(date)
			if err != nil {
				return err
			}
			next := max + 1
			for i := 0; i < missing; i++ {
				slot := &store.PlanningSlot{
					Date:       date,
					SlotNumber: next + i + 1,
					Order:      next + i,
					IsActive:   true,
				}
				if err := tx.CreateSlot(slot); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	final, err := s.db.ListSlotsByDate(date)
	if err != nil {
		return nil, err
	}
	s.emitDay(ChangePlanningUpdated, date, nil)
	return final, nil
}

// removeSlot deletes one slot, unassigning its transports first. Each slot
// gets its own transaction so one failure cannot poison the whole resize.
func (s *Service) removeSlot(slot *store.PlanningSlot) error {
	err := s.db.WithTx(func(tx *store.Tx) error {
		if _, err := tx.UnassignBySlot(slot.ID); err != nil {
			return err
		}
		return tx.DeleteSlot(slot.ID)
	})
	if err == nil {
		return nil
	}
	s.logFn("planning: unassign slot %d failed (%v), deleting assignment rows directly", slot.ID, err)
	return s.db.WithTx(func(tx *store.Tx) error {
		if err := tx.DeleteAssignmentsBySlot(slot.ID); err != nil {
			return err
		}
		return tx.DeleteSlot(slot.ID)
	})
}

// emitDay publishes the complete hydrated state for a date.
func (s *Service) emitDay(kind ChangeKind, date string, mutate func(*Change)) {
	plan, err := s.db.GetDayPlan(date)
	if err != nil {
		s.logFn("planning: hydrate day %s for fanout: %v", date, err)
		return
	}
	ch := Change{Kind: kind, Date: date, Plan: plan, Slots: plan.Slots}
	if mutate != nil {
		mutate(&ch)
	}
	s.bus.Emit(ch)
}

func (s *Service) hydrateTransports(ids []int64) []*store.TransportDetail {
	details := make([]*store.TransportDetail, 0, len(ids))
	for _, id := range ids {
		td, err := s.db.GetTransportDetail(id)
		if err != nil {
			s.logFn("planning: hydrate transport %d: %v", id, err)
			continue
		}
		details = append(details, td)
	}
	return details
}
