package store

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/DenizcanArslan/VDTMSv2-sub001/config"
)

// testDB creates a temporary SQLite database for testing.
func testDB(t *testing.T) *DB {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")

	db, err := Open(&config.DatabaseConfig{
		Driver: "sqlite",
		SQLite: config.SQLiteConfig{Path: dbPath},
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
		os.Remove(dbPath)
	})
	return db
}

// --- Transaction tests ---

func TestWithTxRollsBackOnError(t *testing.T) {
	db := testDB(t)

	err := db.WithTx(func(tx *Tx) error {
		tr := &Transport{OrderNumber: "TX-1", TransportType: TypeImport, Status: StatusActive, CurrentStatus: CurrentPlanned}
		if err := tx.CreateTransport(tr); err != nil {
			return err
		}
		return errors.New("boom")
	})
	if err == nil {
		t.Fatal("WithTx should surface the callback error")
	}

	rows, err := db.ListTransportsByOrderNumber("TX-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("rows = %d, insert should have rolled back", len(rows))
	}
}

// --- Transport tests ---

func TestTransportCRUD(t *testing.T) {
	db := testDB(t)

	tr := &Transport{
		OrderNumber:               "ORD-1001",
		ClientRef:                 "ACME",
		LoadingUnloadingReference: "REF-77",
		ContainerNumber:           "MSKU1234567",
		TransportType:             TypeImport,
		Status:                    StatusActive,
		CurrentStatus:             CurrentPlanned,
		RequiresADR:               true,
		DepartureDate:             "2026-03-02",
	}
	if err := db.CreateTransport(tr); err != nil {
		t.Fatalf("create: %v", err)
	}
	if tr.ID == 0 {
		t.Fatal("ID should be assigned")
	}

	got, err := db.GetTransport(tr.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.OrderNumber != "ORD-1001" {
		t.Errorf("OrderNumber = %q, want %q", got.OrderNumber, "ORD-1001")
	}
	if !got.RequiresADR {
		t.Error("RequiresADR should be true")
	}
	if got.IsCut || got.IsRestored || got.IsDeleted {
		t.Error("flags should default to false")
	}
	if got.TruckID != nil || got.TrailerID != nil || got.OriginalTransportID != nil {
		t.Error("optional ids should be nil")
	}

	got.CurrentStatus = CurrentOngoing
	if err := db.UpdateTransport(got); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ = db.GetTransport(tr.ID)
	if got.CurrentStatus != CurrentOngoing {
		t.Errorf("CurrentStatus = %q, want ONGOING", got.CurrentStatus)
	}
}

func TestTransportLookupsAreCaseInsensitive(t *testing.T) {
	db := testDB(t)

	tr := &Transport{OrderNumber: "Ord-22", LoadingUnloadingReference: "Ref-AB", TransportType: TypeExport, Status: StatusActive, CurrentStatus: CurrentPlanned}
	if err := db.CreateTransport(tr); err != nil {
		t.Fatalf("create: %v", err)
	}

	byOrder, err := db.ListTransportsByOrderNumber("ORD-22")
	if err != nil {
		t.Fatalf("by order: %v", err)
	}
	if len(byOrder) != 1 {
		t.Fatalf("by order = %d matches, want 1", len(byOrder))
	}

	byRef, err := db.ListTransportsByReference("ref-ab")
	if err != nil {
		t.Fatalf("by ref: %v", err)
	}
	if len(byRef) != 1 {
		t.Fatalf("by ref = %d matches, want 1", len(byRef))
	}
}

func TestCutSegmentsExcludeDeleted(t *testing.T) {
	db := testDB(t)

	root := &Transport{OrderNumber: "R-1", TransportType: TypeImport, Status: StatusActive, CurrentStatus: CurrentCompleted, IsCut: true}
	if err := db.CreateTransport(root); err != nil {
		t.Fatalf("create root: %v", err)
	}
	seg := &Transport{OrderNumber: "R-1", TransportType: TypeImport, Status: StatusActive, CurrentStatus: CurrentCut, IsCut: true, OriginalTransportID: &root.ID}
	if err := db.CreateTransport(seg); err != nil {
		t.Fatalf("create segment: %v", err)
	}
	gone := &Transport{OrderNumber: "R-1", TransportType: TypeImport, Status: StatusActive, CurrentStatus: CurrentCut, IsCut: true, IsDeleted: true, OriginalTransportID: &root.ID}
	if err := db.CreateTransport(gone); err != nil {
		t.Fatalf("create deleted segment: %v", err)
	}

	segs, err := db.ListCutSegments(root.ID)
	if err != nil {
		t.Fatalf("list segments: %v", err)
	}
	if len(segs) != 1 || segs[0].ID != seg.ID {
		t.Fatalf("segments = %d, want only the live one", len(segs))
	}
}

// --- Slot tests ---

func TestSlotOrderAndNumbering(t *testing.T) {
	db := testDB(t)
	date := "2026-03-02"

	for i := 0; i < 3; i++ {
		s := &PlanningSlot{Date: date, SlotNumber: i + 1, Order: i, IsActive: true}
		if err := db.CreateSlot(s); err != nil {
			t.Fatalf("create slot %d: %v", i, err)
		}
	}

	slots, err := db.ListSlotsByDate(date)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(slots) != 3 {
		t.Fatalf("slots = %d, want 3", len(slots))
	}
	for i, s := range slots {
		if s.Order != i {
			t.Errorf("slot %d order = %d, want %d", i, s.Order, i)
		}
		if s.SlotNumber != i+1 {
			t.Errorf("slot %d number = %d, want %d", i, s.SlotNumber, i+1)
		}
	}

	max, err := db.MaxSlotOrder(date)
	if err != nil {
		t.Fatalf("max order: %v", err)
	}
	if max != 2 {
		t.Errorf("max order = %d, want 2", max)
	}

	last, err := db.LastSlot(date)
	if err != nil {
		t.Fatalf("last slot: %v", err)
	}
	if last.Order != 2 {
		t.Errorf("last slot order = %d, want 2", last.Order)
	}
}

func TestMaxSlotOrderEmptyDate(t *testing.T) {
	db := testDB(t)

	max, err := db.MaxSlotOrder("2026-03-02")
	if err != nil {
		t.Fatalf("max order: %v", err)
	}
	if max != -1 {
		t.Errorf("max order = %d, want -1 for empty date", max)
	}
}

// --- Assignment tests ---

func TestAssignmentLifecycle(t *testing.T) {
	db := testDB(t)
	date := "2026-03-02"

	tr := &Transport{OrderNumber: "A-1", TransportType: TypeImport, Status: StatusActive, CurrentStatus: CurrentPlanned}
	if err := db.CreateTransport(tr); err != nil {
		t.Fatalf("create transport: %v", err)
	}
	slot := &PlanningSlot{Date: date, SlotNumber: 1, Order: 0, IsActive: true}
	if err := db.CreateSlot(slot); err != nil {
		t.Fatalf("create slot: %v", err)
	}

	a := &Assignment{TransportID: tr.ID, Date: date, SlotID: &slot.ID, SlotOrder: 0}
	if err := db.CreateAssignment(a); err != nil {
		t.Fatalf("create assignment: %v", err)
	}

	max, err := db.MaxAssignmentOrder(slot.ID, date)
	if err != nil {
		t.Fatalf("max order: %v", err)
	}
	if max != 0 {
		t.Errorf("max order = %d, want 0", max)
	}

	ids, err := db.UnassignBySlot(slot.ID)
	if err != nil {
		t.Fatalf("unassign: %v", err)
	}
	if len(ids) != 1 || ids[0] != tr.ID {
		t.Fatalf("unassigned = %v, want [%d]", ids, tr.ID)
	}

	got, err := db.GetAssignment(tr.ID, date)
	if err != nil {
		t.Fatalf("get after unassign: %v", err)
	}
	if got.SlotID != nil {
		t.Error("assignment should be unslotted after UnassignBySlot")
	}
}

func TestUpsertUnslottedAssignment(t *testing.T) {
	db := testDB(t)
	date := "2026-03-02"

	tr := &Transport{OrderNumber: "A-2", TransportType: TypeExport, Status: StatusActive, CurrentStatus: CurrentPlanned}
	if err := db.CreateTransport(tr); err != nil {
		t.Fatalf("create transport: %v", err)
	}
	slot := &PlanningSlot{Date: date, SlotNumber: 1, Order: 0, IsActive: true}
	if err := db.CreateSlot(slot); err != nil {
		t.Fatalf("create slot: %v", err)
	}
	a := &Assignment{TransportID: tr.ID, Date: date, SlotID: &slot.ID, SlotOrder: 3}
	if err := db.CreateAssignment(a); err != nil {
		t.Fatalf("create assignment: %v", err)
	}

	if _, err := db.UpsertUnslottedAssignment(tr.ID, date); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	got, err := db.GetAssignment(tr.ID, date)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.SlotID != nil || got.SlotOrder != 0 {
		t.Errorf("assignment = slot %v order %d, want unslotted order 0", got.SlotID, got.SlotOrder)
	}

	rows, err := db.ListAssignmentsByTransport(tr.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, upsert must not duplicate", len(rows))
	}
}

func TestDuplicateUnslottedRowRejected(t *testing.T) {
	db := testDB(t)
	date := "2026-03-02"

	tr := &Transport{OrderNumber: "A-3", TransportType: TypeImport, Status: StatusActive, CurrentStatus: CurrentPlanned}
	if err := db.CreateTransport(tr); err != nil {
		t.Fatalf("create transport: %v", err)
	}
	if err := db.CreateAssignment(&Assignment{TransportID: tr.ID, Date: date}); err != nil {
		t.Fatalf("first unslotted row: %v", err)
	}
	if err := db.CreateAssignment(&Assignment{TransportID: tr.ID, Date: date}); err == nil {
		t.Fatal("second unslotted row for the same transport and date should be rejected")
	}
}

// --- Destination tests ---

func TestDestinationsOrdered(t *testing.T) {
	db := testDB(t)

	tr := &Transport{OrderNumber: "D-1", TransportType: TypeImport, Status: StatusActive, CurrentStatus: CurrentPlanned}
	if err := db.CreateTransport(tr); err != nil {
		t.Fatalf("create transport: %v", err)
	}
	for i, loc := range []string{"Antwerp", "Ghent", "Lille"} {
		d := &Destination{TransportID: tr.ID, Order: i + 1, Date: "2026-03-02", Time: "08:00", Location: loc}
		if err := db.CreateDestination(d); err != nil {
			t.Fatalf("create destination: %v", err)
		}
	}

	dests, err := db.ListDestinations(tr.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(dests) != 3 || dests[0].Location != "Antwerp" || dests[2].Location != "Lille" {
		t.Fatalf("destinations out of order: %+v", dests)
	}

	first, err := db.FirstDestination(tr.ID)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	if first == nil || first.Location != "Antwerp" {
		t.Errorf("first destination = %+v, want Antwerp", first)
	}
}

func TestFirstDestinationMissing(t *testing.T) {
	db := testDB(t)

	tr := &Transport{OrderNumber: "D-2", TransportType: TypeImport, Status: StatusActive, CurrentStatus: CurrentPlanned}
	if err := db.CreateTransport(tr); err != nil {
		t.Fatalf("create transport: %v", err)
	}
	first, err := db.FirstDestination(tr.ID)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	if first != nil {
		t.Errorf("first = %+v, want nil for no destinations", first)
	}
}

// --- Parking tests ---

func TestTrailerParkingUpsert(t *testing.T) {
	db := testDB(t)

	trl := &Trailer{Plate: "T-AAA-1"}
	if err := db.CreateTrailer(trl); err != nil {
		t.Fatalf("create trailer: %v", err)
	}

	rec := &TrailerParkingRecord{TrailerID: trl.ID, Location: "Quay 742"}
	if err := db.UpsertTrailerParking(rec); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	rec2 := &TrailerParkingRecord{TrailerID: trl.ID, Location: "Quay 913", Notes: "moved"}
	if err := db.UpsertTrailerParking(rec2); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if rec2.ID != rec.ID {
		t.Errorf("upsert created new record %d, want update of %d", rec2.ID, rec.ID)
	}

	got, err := db.GetTrailerParking(trl.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Location != "Quay 913" {
		t.Errorf("Location = %q, want updated value", got.Location)
	}

	if err := db.DeleteTrailerParking(trl.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := db.GetTrailerParking(trl.ID); err != sql.ErrNoRows {
		t.Errorf("get after delete = %v, want sql.ErrNoRows", err)
	}
	// deleting again is not an error
	if err := db.DeleteTrailerParking(trl.ID); err != nil {
		t.Errorf("repeated delete: %v", err)
	}
}

// --- Hydration tests ---

func TestGetDayPlan(t *testing.T) {
	db := testDB(t)
	date := "2026-03-02"

	driver := &Driver{Name: "Joris", ADRCertified: true}
	if err := db.CreateDriver(driver); err != nil {
		t.Fatalf("create driver: %v", err)
	}
	slot := &PlanningSlot{Date: date, SlotNumber: 1, Order: 0, IsActive: true, DriverID: &driver.ID}
	if err := db.CreateSlot(slot); err != nil {
		t.Fatalf("create slot: %v", err)
	}

	slotted := &Transport{OrderNumber: "P-1", TransportType: TypeImport, Status: StatusActive, CurrentStatus: CurrentPlanned}
	loose := &Transport{OrderNumber: "P-2", TransportType: TypeExport, Status: StatusActive, CurrentStatus: CurrentPlanned}
	for _, tr := range []*Transport{slotted, loose} {
		if err := db.CreateTransport(tr); err != nil {
			t.Fatalf("create transport: %v", err)
		}
	}
	if err := db.CreateAssignment(&Assignment{TransportID: slotted.ID, Date: date, SlotID: &slot.ID, SlotOrder: 0}); err != nil {
		t.Fatalf("assign slotted: %v", err)
	}
	if err := db.CreateAssignment(&Assignment{TransportID: loose.ID, Date: date}); err != nil {
		t.Fatalf("assign loose: %v", err)
	}

	plan, err := db.GetDayPlan(date)
	if err != nil {
		t.Fatalf("day plan: %v", err)
	}
	if len(plan.Slots) != 1 {
		t.Fatalf("slots = %d, want 1", len(plan.Slots))
	}
	sd := plan.Slots[0]
	if sd.Driver == nil || sd.Driver.Name != "Joris" {
		t.Error("slot driver should be hydrated")
	}
	if len(sd.Assignments) != 1 || sd.Assignments[0].Transport == nil || sd.Assignments[0].Transport.OrderNumber != "P-1" {
		t.Fatalf("slot assignments not hydrated: %+v", sd.Assignments)
	}
	if len(plan.Unslotted) != 1 || plan.Unslotted[0].Transport.OrderNumber != "P-2" {
		t.Fatalf("unslotted not hydrated: %+v", plan.Unslotted)
	}
}
