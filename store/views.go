package store

// Hydrated read models. Mutating commands publish these in full after every
// commit; viewers never receive diffs.

type TransportDetail struct {
	Transport
	Destinations []*Destination `json:"destinations"`
}

type SlotAssignment struct {
	Assignment
	Transport *TransportDetail `json:"transport,omitempty"`
}

type SlotDetail struct {
	PlanningSlot
	Driver      *Driver           `json:"driver,omitempty"`
	Truck       *Truck            `json:"truck,omitempty"`
	Assignments []*SlotAssignment `json:"assignments"`
}

type DayPlan struct {
	Date      string            `json:"date"`
	Slots     []*SlotDetail     `json:"slots"`
	Unslotted []*SlotAssignment `json:"unslotted"`
}

func (r *runner) GetTransportDetail(id int64) (*TransportDetail, error) {
	t, err := r.GetTransport(id)
	if err != nil {
		return nil, err
	}
	dests, err := r.ListDestinations(id)
	if err != nil {
		return nil, err
	}
	return &TransportDetail{Transport: *t, Destinations: dests}, nil
}

func (r *runner) hydrateAssignments(assignments []*Assignment) ([]*SlotAssignment, error) {
	result := make([]*SlotAssignment, 0, len(assignments))
	for _, a := range assignments {
		td, err := r.GetTransportDetail(a.TransportID)
		if err != nil {
			return nil, err
		}
		result = append(result, &SlotAssignment{Assignment: *a, Transport: td})
	}
	return result, nil
}

// GetSlotDetail returns a slot with its full ordered assignment list for a
// date, each assignment carrying the hydrated transport.
func (r *runner) GetSlotDetail(slotID int64, date string) (*SlotDetail, error) {
	slot, err := r.GetSlot(slotID)
	if err != nil {
		return nil, err
	}
	if date == "" {
		date = slot.Date
	}
	assignments, err := r.ListAssignmentsBySlotDate(slotID, date)
	if err != nil {
		return nil, err
	}
	hydrated, err := r.hydrateAssignments(assignments)
	if err != nil {
		return nil, err
	}
	return &SlotDetail{
		PlanningSlot: *slot,
		Driver:       r.getDriverPtr(slot.DriverID),
		Truck:        r.getTruckPtr(slot.TruckID),
		Assignments:  hydrated,
	}, nil
}

// GetDayPlan returns the complete resulting state for a date: every active
// slot with its assignments plus the transports assigned but not yet slotted.
func (r *runner) GetDayPlan(date string) (*DayPlan, error) {
	slots, err := r.ListSlotsByDate(date)
	if err != nil {
		return nil, err
	}
	plan := &DayPlan{Date: date, Slots: make([]*SlotDetail, 0, len(slots))}
	for _, s := range slots {
		sd, err := r.GetSlotDetail(s.ID, date)
		if err != nil {
			return nil, err
		}
		plan.Slots = append(plan.Slots, sd)
	}
	unslotted, err := r.ListUnslottedByDate(date)
	if err != nil {
		return nil, err
	}
	plan.Unslotted, err = r.hydrateAssignments(unslotted)
	if err != nil {
		return nil, err
	}
	return plan, nil
}
