package planning

import (
	"database/sql"
	"errors"

	"github.com/DenizcanArslan/VDTMSv2-sub001/store"
)

type DestinationInput struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	ETA      string `json:"eta"`
	Location string `json:"location"`
}

type CreateTransportInput struct {
	OrderNumber               string             `json:"order_number"`
	ClientRef                 string             `json:"client_ref"`
	BookingReference          string             `json:"booking_reference"`
	ContainerNumber           string             `json:"container_number"`
	LoadingUnloadingReference string             `json:"loading_unloading_reference"`
	TransportType             string             `json:"transport_type"`
	PickupQuay                string             `json:"pickup_quay"`
	DropoffQuay               string             `json:"dropoff_quay"`
	TruckID                   int64              `json:"truck_id"`
	TrailerID                 int64              `json:"trailer_id"`
	RequiresADR               bool               `json:"requires_adr"`
	RequiresGenset            bool               `json:"requires_genset"`
	DepartureDate             string             `json:"departure_date"`
	ReturnDate                string             `json:"return_date"`
	Destinations              []DestinationInput `json:"destinations"`
}

// CreateTransport registers a new transport with its destination list. Order
// number and loading/unloading reference must be unique (case-insensitively)
// across live transports outside the same cut lineage.
func (s *Service) CreateTransport(in CreateTransportInput) (*store.TransportDetail, error) {
	switch in.TransportType {
	case store.TypeImport, store.TypeExport, store.TypeShunt:
	default:
		return nil, invalidf("transport type must be IMPORT, EXPORT or SHUNT, got %q", in.TransportType)
	}
	if in.OrderNumber == "" {
		return nil, invalidf("order number is required")
	}
	for _, d := range []string{in.DepartureDate, in.ReturnDate} {
		if d != "" {
			if err := checkDate(d); err != nil {
				return nil, err
			}
		}
	}
	for _, d := range in.Destinations {
		if d.Date != "" {
			if err := checkDate(d.Date); err != nil {
				return nil, err
			}
		}
	}
	var id int64
	err := s.db.WithTx(func(tx *store.Tx) error {
		if err := checkReferenceConflict(tx, 0, 0, in.OrderNumber, in.LoadingUnloadingReference); err != nil {
			return err
		}
		t := &store.Transport{
			OrderNumber:               in.OrderNumber,
			ClientRef:                 in.ClientRef,
			BookingReference:          in.BookingReference,
			ContainerNumber:           in.ContainerNumber,
			LoadingUnloadingReference: in.LoadingUnloadingReference,
			TransportType:             in.TransportType,
			Status:                    store.StatusActive,
			CurrentStatus:             store.CurrentPlanned,
			PickupQuay:                in.PickupQuay,
			DropoffQuay:               in.DropoffQuay,
			RequiresADR:               in.RequiresADR,
			RequiresGenset:            in.RequiresGenset,
			DepartureDate:             in.DepartureDate,
			ReturnDate:                in.ReturnDate,
		}
		if in.TruckID != 0 {
			t.TruckID = &in.TruckID
		}
		if in.TrailerID != 0 {
			t.TrailerID = &in.TrailerID
		}
		if err := tx.CreateTransport(t); err != nil {
			return err
		}
		for i, d := range in.Destinations {
			dest := &store.Destination{
				TransportID: t.ID,
				Order:       i + 1,
				Date:        d.Date,
				Time:        d.Time,
				ETA:         d.ETA,
				Location:    d.Location,
			}
			if err := tx.CreateDestination(dest); err != nil {
				return err
			}
		}
		id = t.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	td, err := s.db.GetTransportDetail(id)
	if err != nil {
		return nil, err
	}
	s.bus.Emit(Change{
		Kind:    ChangeTransportCreated,
		Date:    td.DepartureDate,
		Created: []*store.TransportDetail{td},
	})
	return td, nil
}

// UpdateTransportStatus moves a transport between PLANNED, ONGOING and
// COMPLETED. Setting CUT or clearing a cut goes through the cut lifecycle
// instead.
func (s *Service) UpdateTransportStatus(transportID int64, currentStatus string) (*store.TransportDetail, error) {
	switch currentStatus {
	case store.CurrentPlanned, store.CurrentOngoing, store.CurrentCompleted:
	default:
		return nil, invalidf("status must be PLANNED, ONGOING or COMPLETED, got %q", currentStatus)
	}
	var affected []string
	err := s.db.WithTx(func(tx *store.Tx) error {
		t, err := getTransport(tx, transportID)
		if err != nil {
			return err
		}
		if affected, err = assignmentDates(tx, t.ID); err != nil {
			return err
		}
		if err := tx.UpdateTransportCurrentStatus(t.ID, currentStatus); err != nil {
			return err
		}
		t.CurrentStatus = currentStatus
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
		Kind:    ChangeTransportStatus,
		Date:    td.DepartureDate,
		Dates:   affected,
		Updated: []*store.TransportDetail{td},
	})
	return td, nil
}

// ParkTrailer records where a detached trailer is standing. Fails with a
// conflict while the trailer is still attached to an ongoing transport.
func (s *Service) ParkTrailer(trailerID int64, location, notes string) (*store.TrailerParkingRecord, error) {
	if location == "" {
		return nil, invalidf("parking location is required")
	}
	var rec *store.TrailerParkingRecord
	err := s.db.WithTx(func(tx *store.Tx) error {
		if _, err := tx.GetTrailer(trailerID); errors.Is(err, sql.ErrNoRows) {
			return notFoundf("trailer %d not found", trailerID)
		} else if err != nil {
			return err
		}
		holders, err := tx.ListOngoingTransportsByTrailer(trailerID)
		if err != nil {
			return err
		}
		if len(holders) > 0 {
			return conflictf("trailer %d is attached to ongoing transport %s", trailerID, holders[0].OrderNumber)
		}
		rec = &store.TrailerParkingRecord{
			TrailerID: trailerID,
			Location:  location,
			Notes:     notes,
		}
		return tx.UpsertTrailerParking(rec)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// lineageRootOf identifies a transport's cut lineage: segments point at the
// transport they were cut from, roots stand for themselves.
func lineageRootOf(t *store.Transport) int64 {
	if t.OriginalTransportID != nil {
		return *t.OriginalTransportID
	}
	return t.ID
}

// checkReferenceConflict enforces case-insensitive uniqueness of the order
// number and the loading/unloading reference among live transports. Matches
// inside the same cut lineage (lineageRoot != 0) or the transport itself
// (selfID != 0) are allowed, since cut segments legitimately share identity
// with their root.
func checkReferenceConflict(tx *store.Tx, lineageRoot, selfID int64, orderNumber, ref string) error {
	allowed := func(m *store.Transport) bool {
		if selfID != 0 && m.ID == selfID {
			return true
		}
		return lineageRoot != 0 && lineageRootOf(m) == lineageRoot
	}
	if orderNumber != "" {
		matches, err := tx.ListTransportsByOrderNumber(orderNumber)
		if err != nil {
			return err
		}
		for _, m := range matches {
			if !allowed(m) {
				return conflictf("order number %q is already in use by transport %d", orderNumber, m.ID)
			}
		}
	}
	if ref != "" {
		matches, err := tx.ListTransportsByReference(ref)
		if err != nil {
			return err
		}
		for _, m := range matches {
			if !allowed(m) {
				return conflictf("reference %q is already in use by transport %d", ref, m.ID)
			}
		}
	}
	return nil
}
