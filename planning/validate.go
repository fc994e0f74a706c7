package planning

import (
	"database/sql"
	"errors"

	"github.com/DenizcanArslan/VDTMSv2-sub001/store"
)

// Warning codes.
const (
	WarnADR    = "ADR"
	WarnGenset = "GENSET"
)

// Warning is an advisory validation finding. Warnings never block a command;
// the planner decides whether to act on them.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Evaluate checks a transport against the crew and equipment of the slot it
// sits in. slotTransports are the other transports sharing the slot; any of
// them requiring ADR taints the whole slot. Genset only looks at the
// transport itself against its trailer, falling back to the truck.
func Evaluate(t *store.Transport, slotTransports []*store.Transport, driver *store.Driver, truck *store.Truck, trailer *store.Trailer) []Warning {
	var warnings []Warning
	adrNeeded := t != nil && t.RequiresADR
	for _, st := range slotTransports {
		if st.RequiresADR {
			adrNeeded = true
			break
		}
	}
	if adrNeeded && (driver == nil || !driver.ADRCertified) {
		warnings = append(warnings, Warning{
			Code:    WarnADR,
			Message: "slot carries ADR cargo but the driver is not ADR certified",
		})
	}
	if t != nil && t.RequiresGenset {
		hasGenset := (trailer != nil && trailer.HasGenset) || (truck != nil && truck.HasGenset)
		if !hasGenset {
			warnings = append(warnings, Warning{
				Code:    WarnGenset,
				Message: "transport needs a powered container but neither trailer nor truck has a genset",
			})
		}
	}
	return warnings
}

// AssignSlotCrew sets (or clears, with 0) the driver and truck of a slot and
// returns the slot plus advisory warnings for every transport in it. Warnings
// do not prevent the assignment.
func (s *Service) AssignSlotCrew(slotID int64, date string, driverID, truckID int64) (*store.SlotDetail, []Warning, error) {
	err := s.db.WithTx(func(tx *store.Tx) error {
		if _, err := tx.GetSlot(slotID); errors.Is(err, sql.ErrNoRows) {
			return notFoundf("slot %d not found", slotID)
		} else if err != nil {
			return err
		}
		var dID, tID *int64
		if driverID != 0 {
			if _, err := tx.GetDriver(driverID); errors.Is(err, sql.ErrNoRows) {
				return notFoundf("driver %d not found", driverID)
			} else if err != nil {
				return err
			}
			dID = &driverID
		}
		if truckID != 0 {
			if _, err := tx.GetTruck(truckID); errors.Is(err, sql.ErrNoRows) {
				return notFoundf("truck %d not found", truckID)
			} else if err != nil {
				return err
			}
			tID = &truckID
		}
		return tx.UpdateSlotCrew(slotID, dID, tID)
	})
	if err != nil {
		return nil, nil, err
	}
	sd, err := s.db.GetSlotDetail(slotID, date)
	if err != nil {
		return nil, nil, err
	}
	warnings := s.slotWarnings(sd)
	s.emitDay(ChangeSlotUpdated, sd.Date, func(ch *Change) {
		ch.Slots = []*store.SlotDetail{sd}
	})
	return sd, warnings, nil
}

// slotWarnings evaluates every transport in a hydrated slot.
func (s *Service) slotWarnings(sd *store.SlotDetail) []Warning {
	transports := make([]*store.Transport, 0, len(sd.Assignments))
	for _, a := range sd.Assignments {
		if a.Transport != nil {
			transports = append(transports, &a.Transport.Transport)
		}
	}
	var warnings []Warning
	seen := make(map[string]struct{})
	for _, t := range transports {
		others := make([]*store.Transport, 0, len(transports)-1)
		for _, o := range transports {
			if o.ID != t.ID {
				others = append(others, o)
			}
		}
		trailer := s.trailerPtr(t.TrailerID)
		for _, w := range Evaluate(t, others, sd.Driver, sd.Truck, trailer) {
			if _, dup := seen[w.Code+w.Message]; dup {
				continue
			}
			seen[w.Code+w.Message] = struct{}{}
			warnings = append(warnings, w)
		}
	}
	return warnings
}

func (s *Service) trailerPtr(id *int64) *store.Trailer {
	if id == nil {
		return nil
	}
	tr, err := s.db.GetTrailer(*id)
	if err != nil {
		return nil
	}
	return tr
}
