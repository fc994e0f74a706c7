package planning

import (
	"testing"

	"github.com/DenizcanArslan/VDTMSv2-sub001/store"
)

func slotOrderIDs(sd *store.SlotDetail) []int64 {
	ids := make([]int64, len(sd.Assignments))
	for i, a := range sd.Assignments {
		ids[i] = a.TransportID
	}
	return ids
}

func TestMoveInSlotUpDownInverse(t *testing.T) {
	s := testService(t)
	date := "2026-03-02"
	slots := mkSlots(t, s, date, 1)

	var ids []int64
	for _, name := range []string{"MV-1", "MV-2", "MV-3"} {
		td := mkTransport(t, s, name)
		if _, _, err := s.AssignTransport(td.ID, date, slots[0].ID); err != nil {
			t.Fatalf("assign %s: %v", name, err)
		}
		ids = append(ids, td.ID)
	}

	sd, err := s.MoveInSlot(slots[0].ID, ids[1], date, "up")
	if err != nil {
		t.Fatalf("move up: %v", err)
	}
	got := slotOrderIDs(sd)
	if got[0] != ids[1] || got[1] != ids[0] || got[2] != ids[2] {
		t.Fatalf("after up: %v, want [%d %d %d]", got, ids[1], ids[0], ids[2])
	}
	for i, a := range sd.Assignments {
		if a.SlotOrder != i {
			t.Errorf("order %d = %d, want dense", i, a.SlotOrder)
		}
	}

	// down is the inverse
	sd, err = s.MoveInSlot(slots[0].ID, ids[1], date, "down")
	if err != nil {
		t.Fatalf("move down: %v", err)
	}
	got = slotOrderIDs(sd)
	if got[0] != ids[0] || got[1] != ids[1] || got[2] != ids[2] {
		t.Fatalf("after down: %v, want original order", got)
	}
}

func TestMoveInSlotEdges(t *testing.T) {
	s := testService(t)
	date := "2026-03-02"
	slots := mkSlots(t, s, date, 1)
	td := mkTransport(t, s, "MV-E")
	if _, _, err := s.AssignTransport(td.ID, date, slots[0].ID); err != nil {
		t.Fatalf("assign: %v", err)
	}

	if _, err := s.MoveInSlot(slots[0].ID, td.ID, date, "up"); KindOf(err) != KindInvalidArgument {
		t.Errorf("up at top: kind = %v, want invalid argument", KindOf(err))
	}
	if _, err := s.MoveInSlot(slots[0].ID, td.ID, date, "down"); KindOf(err) != KindInvalidArgument {
		t.Errorf("down at bottom: kind = %v, want invalid argument", KindOf(err))
	}
	if _, err := s.MoveInSlot(slots[0].ID, td.ID, date, "sideways"); KindOf(err) != KindInvalidArgument {
		t.Errorf("bad direction: kind = %v, want invalid argument", KindOf(err))
	}
	if _, err := s.MoveInSlot(slots[0].ID, 9999, date, "up"); KindOf(err) != KindInvalidArgument {
		t.Errorf("not in slot: kind = %v, want invalid argument", KindOf(err))
	}
}

func TestReorderSlots(t *testing.T) {
	s := testService(t)
	date := "2026-03-02"
	slots := mkSlots(t, s, date, 3)

	details, err := s.ReorderSlots(date, 0, 2)
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}
	want := []int64{slots[1].ID, slots[2].ID, slots[0].ID}
	for i, sd := range details {
		if sd.ID != want[i] {
			t.Errorf("position %d = slot %d, want %d", i, sd.ID, want[i])
		}
		if sd.Order != i || sd.SlotNumber != i+1 {
			t.Errorf("position %d order/number = %d/%d, want %d/%d", i, sd.Order, sd.SlotNumber, i, i+1)
		}
	}

	if _, err := s.ReorderSlots(date, 5, 0); KindOf(err) != KindInvalidArgument {
		t.Errorf("out of range: kind = %v, want invalid argument", KindOf(err))
	}
}

func TestSortSlotsByDestinationTime(t *testing.T) {
	s := testService(t)
	date := "2026-03-02"
	slots := mkSlots(t, s, date, 3)

	// slot 0: first destination 10:00, slot 1: 08:00, slot 2: no timed destination.
	mkTimed := func(order string, tm string) *store.TransportDetail {
		t.Helper()
		td, err := s.CreateTransport(CreateTransportInput{
			OrderNumber:   order,
			TransportType: store.TypeImport,
			Destinations:  []DestinationInput{{Date: date, Time: tm, Location: "Quay"}},
		})
		if err != nil {
			t.Fatalf("create %s: %v", order, err)
		}
		return td
	}
	late := mkTimed("SRT-LATE", "10:00")
	early := mkTimed("SRT-EARLY", "08:00")
	blank := mkTransport(t, s, "SRT-BLANK")

	for i, td := range []*store.TransportDetail{late, early, blank} {
		if _, _, err := s.AssignTransport(td.ID, date, slots[i].ID); err != nil {
			t.Fatalf("assign to slot %d: %v", i, err)
		}
	}

	details, err := s.SortSlotsByDestinationTime(date)
	if err != nil {
		t.Fatalf("sort: %v", err)
	}
	want := []int64{slots[1].ID, slots[0].ID, slots[2].ID}
	for i, sd := range details {
		if sd.ID != want[i] {
			t.Fatalf("position %d = slot %d, want %d", i, sd.ID, want[i])
		}
	}

	// Sorting again is a no-op.
	again, err := s.SortSlotsByDestinationTime(date)
	if err != nil {
		t.Fatalf("second sort: %v", err)
	}
	for i, sd := range again {
		if sd.ID != want[i] {
			t.Fatalf("sort not idempotent at %d: slot %d, want %d", i, sd.ID, want[i])
		}
	}
}

func TestSortKeepsUntimedRelativeOrder(t *testing.T) {
	s := testService(t)
	date := "2026-03-02"
	slots := mkSlots(t, s, date, 3)

	// Only the middle slot has a timed destination; the empty first and last
	// keep their relative order behind it.
	timed, err := s.CreateTransport(CreateTransportInput{
		OrderNumber:   "SRT-T",
		TransportType: store.TypeExport,
		Destinations:  []DestinationInput{{Date: date, Time: "09:30", Location: "Quay"}},
	})
	if err != nil {
		t.Fatalf("create timed: %v", err)
	}
	if _, _, err := s.AssignTransport(timed.ID, date, slots[1].ID); err != nil {
		t.Fatalf("assign: %v", err)
	}

	details, err := s.SortSlotsByDestinationTime(date)
	if err != nil {
		t.Fatalf("sort: %v", err)
	}
	want := []int64{slots[1].ID, slots[0].ID, slots[2].ID}
	for i, sd := range details {
		if sd.ID != want[i] {
			t.Fatalf("position %d = slot %d, want %d", i, sd.ID, want[i])
		}
	}
}
