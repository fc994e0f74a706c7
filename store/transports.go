package store

import (
	"database/sql"
	"fmt"
	"time"
)

// Transport type values.
const (
	TypeImport = "IMPORT"
	TypeExport = "EXPORT"
	TypeShunt  = "SHUNT"
)

// Transport status values.
const (
	StatusActive = "ACTIVE"
	StatusOnHold = "ON_HOLD"
)

// Transport current-status values.
const (
	CurrentPlanned   = "PLANNED"
	CurrentOngoing   = "ONGOING"
	CurrentCompleted = "COMPLETED"
	CurrentCut       = "CUT"
)

type Transport struct {
	ID                        int64      `json:"id"`
	OrderNumber               string     `json:"order_number"`
	ClientRef                 string     `json:"client_ref"`
	BookingReference          string     `json:"booking_reference"`
	ContainerNumber           string     `json:"container_number"`
	LoadingUnloadingReference string     `json:"loading_unloading_reference"`
	TransportType             string     `json:"transport_type"`
	Status                    string     `json:"status"`
	CurrentStatus             string     `json:"current_status"`
	PickupQuay                string     `json:"pickup_quay"`
	DropoffQuay               string     `json:"dropoff_quay"`
	TruckID                   *int64     `json:"truck_id,omitempty"`
	TrailerID                 *int64     `json:"trailer_id,omitempty"`
	RequiresADR               bool       `json:"requires_adr"`
	RequiresGenset            bool       `json:"requires_genset"`
	SentToDriver              bool       `json:"sent_to_driver"`
	TARPickup                 string     `json:"tar_pickup"`
	TARDropoff                string     `json:"tar_dropoff"`
	DepartureDate             string     `json:"departure_date"`
	ReturnDate                string     `json:"return_date"`
	IsCut                     bool       `json:"is_cut"`
	IsRestored                bool       `json:"is_restored"`
	IsDeleted                 bool       `json:"is_deleted"`
	OriginalTransportID       *int64     `json:"original_transport_id,omitempty"`
	CreatedAt                 time.Time  `json:"created_at"`
	UpdatedAt                 time.Time  `json:"updated_at"`
}

const transportSelectCols = `id, order_number, client_ref, booking_reference, container_number, loading_unloading_reference, transport_type, status, current_status, pickup_quay, dropoff_quay, truck_id, trailer_id, requires_adr, requires_genset, sent_to_driver, tar_pickup, tar_dropoff, departure_date, return_date, is_cut, is_restored, is_deleted, original_transport_id, created_at, updated_at`

func scanTransport(row interface{ Scan(...any) error }) (*Transport, error) {
	var t Transport
	var truckID, trailerID, originalID sql.NullInt64
	var createdAt, updatedAt any

	err := row.Scan(&t.ID, &t.OrderNumber, &t.ClientRef, &t.BookingReference,
		&t.ContainerNumber, &t.LoadingUnloadingReference, &t.TransportType,
		&t.Status, &t.CurrentStatus, &t.PickupQuay, &t.DropoffQuay,
		&truckID, &trailerID, &t.RequiresADR, &t.RequiresGenset, &t.SentToDriver,
		&t.TARPickup, &t.TARDropoff, &t.DepartureDate, &t.ReturnDate,
		&t.IsCut, &t.IsRestored, &t.IsDeleted, &originalID, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	if truckID.Valid {
		t.TruckID = &truckID.Int64
	}
	if trailerID.Valid {
		t.TrailerID = &trailerID.Int64
	}
	if originalID.Valid {
		t.OriginalTransportID = &originalID.Int64
	}
	t.CreatedAt = parseTime(createdAt)
	t.UpdatedAt = parseTime(updatedAt)
	return &t, nil
}

func scanTransports(rows *sql.Rows) ([]*Transport, error) {
	var transports []*Transport
	for rows.Next() {
		t, err := scanTransport(rows)
		if err != nil {
			return nil, err
		}
		transports = append(transports, t)
	}
	return transports, rows.Err()
}

func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}

func (r *runner) CreateTransport(t *Transport) error {
	result, err := r.q.Exec(r.Q(`INSERT INTO transports (order_number, client_ref, booking_reference, container_number, loading_unloading_reference, transport_type, status, current_status, pickup_quay, dropoff_quay, truck_id, trailer_id, requires_adr, requires_genset, sent_to_driver, tar_pickup, tar_dropoff, departure_date, return_date, is_cut, is_restored, is_deleted, original_transport_id) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		t.OrderNumber, t.ClientRef, t.BookingReference, t.ContainerNumber,
		t.LoadingUnloadingReference, t.TransportType, t.Status, t.CurrentStatus,
		t.PickupQuay, t.DropoffQuay, nullableID(t.TruckID), nullableID(t.TrailerID),
		t.RequiresADR, t.RequiresGenset, t.SentToDriver, t.TARPickup, t.TARDropoff,
		t.DepartureDate, t.ReturnDate, t.IsCut, t.IsRestored, t.IsDeleted,
		nullableID(t.OriginalTransportID))
	if err != nil {
		return fmt.Errorf("create transport: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("create transport last id: %w", err)
	}
	t.ID = id
	return nil
}

func (r *runner) GetTransport(id int64) (*Transport, error) {
	row := r.q.QueryRow(r.Q(fmt.Sprintf(`SELECT %s FROM transports WHERE id=?`, transportSelectCols)), id)
	return scanTransport(row)
}

func (r *runner) UpdateTransport(t *Transport) error {
	_, err := r.q.Exec(r.Q(`UPDATE transports SET order_number=?, client_ref=?, booking_reference=?, container_number=?, loading_unloading_reference=?, transport_type=?, status=?, current_status=?, pickup_quay=?, dropoff_quay=?, truck_id=?, trailer_id=?, requires_adr=?, requires_genset=?, sent_to_driver=?, tar_pickup=?, tar_dropoff=?, departure_date=?, return_date=?, is_cut=?, is_restored=?, is_deleted=?, original_transport_id=?, updated_at=datetime('now','localtime') WHERE id=?`),
		t.OrderNumber, t.ClientRef, t.BookingReference, t.ContainerNumber,
		t.LoadingUnloadingReference, t.TransportType, t.Status, t.CurrentStatus,
		t.PickupQuay, t.DropoffQuay, nullableID(t.TruckID), nullableID(t.TrailerID),
		t.RequiresADR, t.RequiresGenset, t.SentToDriver, t.TARPickup, t.TARDropoff,
		t.DepartureDate, t.ReturnDate, t.IsCut, t.IsRestored, t.IsDeleted,
		nullableID(t.OriginalTransportID), t.ID)
	return err
}

func (r *runner) UpdateTransportCurrentStatus(id int64, currentStatus string) error {
	_, err := r.q.Exec(r.Q(`UPDATE transports SET current_status=?, updated_at=datetime('now','localtime') WHERE id=?`),
		currentStatus, id)
	return err
}

func (r *runner) SetTransportCut(id int64, isCut bool) error {
	_, err := r.q.Exec(r.Q(`UPDATE transports SET is_cut=?, updated_at=datetime('now','localtime') WHERE id=?`),
		isCut, id)
	return err
}

func (r *runner) SetTransportRestored(id int64) error {
	_, err := r.q.Exec(r.Q(`UPDATE transports SET is_restored=?, updated_at=datetime('now','localtime') WHERE id=?`), true, id)
	return err
}

func (r *runner) SetTransportTrailer(id int64, trailerID *int64) error {
	_, err := r.q.Exec(r.Q(`UPDATE transports SET trailer_id=?, updated_at=datetime('now','localtime') WHERE id=?`),
		nullableID(trailerID), id)
	return err
}

func (r *runner) DeleteTransport(id int64) error {
	_, err := r.q.Exec(r.Q(`DELETE FROM transports WHERE id=?`), id)
	return err
}

// ListCutSegments returns the non-deleted direct descendants of a cut root.
func (r *runner) ListCutSegments(rootID int64) ([]*Transport, error) {
	rows, err := r.q.Query(r.Q(fmt.Sprintf(`SELECT %s FROM transports WHERE original_transport_id=? AND NOT is_deleted ORDER BY id`, transportSelectCols)), rootID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransports(rows)
}

// ListTransportsByReference matches the business reference case-insensitively
// among non-deleted transports.
func (r *runner) ListTransportsByReference(ref string) ([]*Transport, error) {
	rows, err := r.q.Query(r.Q(fmt.Sprintf(`SELECT %s FROM transports WHERE LOWER(loading_unloading_reference)=LOWER(?) AND NOT is_deleted`, transportSelectCols)), ref)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransports(rows)
}

func (r *runner) ListTransportsByOrderNumber(orderNumber string) ([]*Transport, error) {
	rows, err := r.q.Query(r.Q(fmt.Sprintf(`SELECT %s FROM transports WHERE LOWER(order_number)=LOWER(?) AND NOT is_deleted`, transportSelectCols)), orderNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransports(rows)
}

// ListOngoingTransportsByTrailer returns non-deleted ONGOING transports
// currently holding the trailer.
func (r *runner) ListOngoingTransportsByTrailer(trailerID int64) ([]*Transport, error) {
	rows, err := r.q.Query(r.Q(fmt.Sprintf(`SELECT %s FROM transports WHERE trailer_id=? AND current_status=? AND NOT is_deleted`, transportSelectCols)), trailerID, CurrentOngoing)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransports(rows)
}
