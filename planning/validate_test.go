package planning

import (
	"testing"

	"github.com/DenizcanArslan/VDTMSv2-sub001/store"
)

func warningCodes(ws []Warning) []string {
	codes := make([]string, len(ws))
	for i, w := range ws {
		codes[i] = w.Code
	}
	return codes
}

func TestEvaluateADR(t *testing.T) {
	adr := &store.Transport{RequiresADR: true}
	plain := &store.Transport{}
	certified := &store.Driver{Name: "Joris", ADRCertified: true}
	uncertified := &store.Driver{Name: "Piet"}

	if ws := Evaluate(adr, nil, certified, nil, nil); len(ws) != 0 {
		t.Errorf("certified driver: warnings = %v, want none", warningCodes(ws))
	}
	if ws := Evaluate(adr, nil, uncertified, nil, nil); len(ws) != 1 || ws[0].Code != WarnADR {
		t.Errorf("uncertified driver: warnings = %v, want [ADR]", warningCodes(ws))
	}
	if ws := Evaluate(adr, nil, nil, nil, nil); len(ws) != 1 || ws[0].Code != WarnADR {
		t.Errorf("no driver: warnings = %v, want [ADR]", warningCodes(ws))
	}
	// A neighbour's ADR cargo taints the whole slot.
	if ws := Evaluate(plain, []*store.Transport{adr}, uncertified, nil, nil); len(ws) != 1 || ws[0].Code != WarnADR {
		t.Errorf("tainted slot: warnings = %v, want [ADR]", warningCodes(ws))
	}
	if ws := Evaluate(plain, nil, uncertified, nil, nil); len(ws) != 0 {
		t.Errorf("no ADR anywhere: warnings = %v, want none", warningCodes(ws))
	}
}

func TestEvaluateGenset(t *testing.T) {
	reefer := &store.Transport{RequiresGenset: true}
	gensetTruck := &store.Truck{Plate: "TRK-1", HasGenset: true}
	plainTruck := &store.Truck{Plate: "TRK-2"}
	gensetTrailer := &store.Trailer{Plate: "TRL-1", HasGenset: true}
	plainTrailer := &store.Trailer{Plate: "TRL-2"}

	if ws := Evaluate(reefer, nil, nil, plainTruck, gensetTrailer); len(ws) != 0 {
		t.Errorf("genset trailer: warnings = %v, want none", warningCodes(ws))
	}
	if ws := Evaluate(reefer, nil, nil, gensetTruck, plainTrailer); len(ws) != 0 {
		t.Errorf("genset truck fallback: warnings = %v, want none", warningCodes(ws))
	}
	if ws := Evaluate(reefer, nil, nil, plainTruck, plainTrailer); len(ws) != 1 || ws[0].Code != WarnGenset {
		t.Errorf("no genset: warnings = %v, want [GENSET]", warningCodes(ws))
	}
	if ws := Evaluate(reefer, nil, nil, nil, nil); len(ws) != 1 || ws[0].Code != WarnGenset {
		t.Errorf("no equipment: warnings = %v, want [GENSET]", warningCodes(ws))
	}
}

func TestAssignSlotCrewWarnsButAssigns(t *testing.T) {
	s := testService(t)
	date := "2026-03-02"
	slots := mkSlots(t, s, date, 1)

	driver := &store.Driver{Name: "Piet"}
	if err := s.db.CreateDriver(driver); err != nil {
		t.Fatalf("create driver: %v", err)
	}
	truck := &store.Truck{Plate: "TRK-9"}
	if err := s.db.CreateTruck(truck); err != nil {
		t.Fatalf("create truck: %v", err)
	}

	adr, err := s.CreateTransport(CreateTransportInput{
		OrderNumber:   "ADR-1",
		TransportType: store.TypeImport,
		RequiresADR:   true,
	})
	if err != nil {
		t.Fatalf("create transport: %v", err)
	}
	if _, _, err := s.AssignTransport(adr.ID, date, slots[0].ID); err != nil {
		t.Fatalf("assign: %v", err)
	}

	sd, warnings, err := s.AssignSlotCrew(slots[0].ID, date, driver.ID, truck.ID)
	if err != nil {
		t.Fatalf("crew: %v", err)
	}
	if sd.DriverID == nil || *sd.DriverID != driver.ID {
		t.Error("driver should be assigned despite the warning")
	}
	if len(warnings) != 1 || warnings[0].Code != WarnADR {
		t.Errorf("warnings = %v, want [ADR]", warningCodes(warnings))
	}

	if _, _, err := s.AssignSlotCrew(slots[0].ID, date, 9999, 0); KindOf(err) != KindNotFound {
		t.Errorf("unknown driver: kind = %v, want not found", KindOf(err))
	}
}
