package planning

import (
	"database/sql"
	"errors"
	"sort"

	"github.com/DenizcanArslan/VDTMSv2-sub001/store"
)

// Orders are unique per date, so renumbering first parks every slot on a
// disjoint temporary order before writing the final dense sequence.
const tempOrderOffset = 10000

// MoveInSlot moves a transport one position up or down within its slot for a
// date and rewrites the slot's orders densely.
func (s *Service) MoveInSlot(slotID, transportID int64, date, direction string) (*store.SlotDetail, error) {
	if err := checkDate(date); err != nil {
		return nil, err
	}
	if direction != "up" && direction != "down" {
		return nil, invalidf("direction must be up or down, got %q", direction)
	}
	err := s.db.WithTx(func(tx *store.Tx) error {
		if _, err := tx.GetSlot(slotID); errors.Is(err, sql.ErrNoRows) {
			return notFoundf("slot %d not found", slotID)
		} else if err != nil {
			return err
		}
		rows, err := tx.ListAssignmentsBySlotDate(slotID, date)
		if err != nil {
			return err
		}
		idx := -1
		for i, a := range rows {
			if a.TransportID == transportID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return invalidf("transport %d is not in slot %d on %s", transportID, slotID, date)
		}
		target := idx - 1
		if direction == "down" {
			target = idx + 1
		}
		if target < 0 || target >= len(rows) {
			return invalidf("transport %d cannot move %s, already at the edge", transportID, direction)
		}
		rows[idx], rows[target] = rows[target], rows[idx]
		for i, a := range rows {
			if a.SlotOrder == i {
				continue
			}
			if err := tx.UpdateAssignmentOrder(a.ID, i); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sd, err := s.db.GetSlotDetail(slotID, date)
	if err != nil {
		return nil, err
	}
	s.emitDay(ChangeSlotUpdated, date, func(ch *Change) {
		ch.Slots = []*store.SlotDetail{sd}
	})
	return sd, nil
}

// ReorderSlots moves the slot at oldIndex to newIndex in the date's slot
// sequence and renumbers all slots densely.
func (s *Service) ReorderSlots(date string, oldIndex, newIndex int) ([]*store.SlotDetail, error) {
	if err := checkDate(date); err != nil {
		return nil, err
	}
	err := s.db.WithTx(func(tx *store.Tx) error {
		slots, err := tx.ListSlotsByDate(date)
		if err != nil {
			return err
		}
		if oldIndex < 0 || oldIndex >= len(slots) {
			return invalidf("old index %d out of range, %d slots on %s", oldIndex, len(slots), date)
		}
		if newIndex < 0 || newIndex >= len(slots) {
			return invalidf("new index %d out of range, %d slots on %s", newIndex, len(slots), date)
		}
		moved := slots[oldIndex]
		slots = append(slots[:oldIndex], slots[oldIndex+1:]...)
		slots = append(slots[:newIndex], append([]*store.PlanningSlot{moved}, slots[newIndex:]...)...)
		return renumberSlots(tx, slots)
	})
	if err != nil {
		return nil, err
	}
	return s.publishReorder(date)
}

// SortSlotsByDestinationTime orders a date's slots by the departure time of
// each slot's first transport's first destination. Slots without a timed
// first destination keep their relative order after the timed ones. The sort
// is stable, so running it twice changes nothing.
func (s *Service) SortSlotsByDestinationTime(date string) ([]*store.SlotDetail, error) {
	if err := checkDate(date); err != nil {
		return nil, err
	}
	err := s.db.WithTx(func(tx *store.Tx) error {
		slots, err := tx.ListSlotsByDate(date)
		if err != nil {
			return err
		}
		type keyed struct {
			slot  *store.PlanningSlot
			time  string
			timed bool
		}
		keys := make([]keyed, 0, len(slots))
		for _, sl := range slots {
			k := keyed{slot: sl}
			rows, err := tx.ListAssignmentsBySlotDate(sl.ID, date)
			if err != nil {
				return err
			}
			if len(rows) > 0 {
				dest, err := tx.FirstDestination(rows[0].TransportID)
				if err != nil {
					return err
				}
				if dest != nil && dest.Time != "" {
					k.time = dest.Time
					k.timed = true
				}
			}
			keys = append(keys, k)
		}
		sort.SliceStable(keys, func(i, j int) bool {
			if keys[i].timed != keys[j].timed {
				return keys[i].timed
			}
			if !keys[i].timed {
				return false
			}
			return keys[i].time < keys[j].time
		})
		ordered := make([]*store.PlanningSlot, len(keys))
		for i, k := range keys {
			ordered[i] = k.slot
		}
		return renumberSlots(tx, ordered)
	})
	if err != nil {
		return nil, err
	}
	return s.publishReorder(date)
}

// renumberSlots writes the given slot sequence as the date's new order. Two
// passes: temporary disjoint orders first so no write collides with another
// slot's still-current unique (date, order) value, then the dense 0..n-1
// orders with slot numbers following as order+1.
func renumberSlots(tx *store.Tx, slots []*store.PlanningSlot) error {
	for i, sl := range slots {
		if err := tx.UpdateSlotOrder(sl.ID, tempOrderOffset+i, sl.SlotNumber); err != nil {
			return err
		}
	}
	for i, sl := range slots {
		if err := tx.UpdateSlotOrder(sl.ID, i, i+1); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) publishReorder(date string) ([]*store.SlotDetail, error) {
	plan, err := s.db.GetDayPlan(date)
	if err != nil {
		return nil, err
	}
	s.bus.Emit(Change{
		Kind:  ChangeSlotsReordered,
		Date:  date,
		Slots: plan.Slots,
		Plan:  plan,
	})
	return plan.Slots, nil
}
