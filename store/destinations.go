package store

import (
	"database/sql"
	"fmt"
	"time"
)

// Destination is an ordered stop within a transport. Order is 1-based and
// dense per transport.
type Destination struct {
	ID          int64     `json:"id"`
	TransportID int64     `json:"transport_id"`
	Order       int       `json:"order"`
	Date        string    `json:"date"`
	Time        string    `json:"time,omitempty"`
	ETA         string    `json:"eta,omitempty"`
	Location    string    `json:"location"`
	CreatedAt   time.Time `json:"created_at"`
}

const destinationSelectCols = `id, transport_id, dest_order, dest_date, dest_time, eta, location, created_at`

func scanDestination(row interface{ Scan(...any) error }) (*Destination, error) {
	var d Destination
	var createdAt any
	err := row.Scan(&d.ID, &d.TransportID, &d.Order, &d.Date, &d.Time, &d.ETA, &d.Location, &createdAt)
	if err != nil {
		return nil, err
	}
	d.CreatedAt = parseTime(createdAt)
	return &d, nil
}

func (r *runner) CreateDestination(d *Destination) error {
	result, err := r.q.Exec(r.Q(`INSERT INTO destinations (transport_id, dest_order, dest_date, dest_time, eta, location) VALUES (?, ?, ?, ?, ?, ?)`),
		d.TransportID, d.Order, d.Date, d.Time, d.ETA, d.Location)
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("create destination last id: %w", err)
	}
	d.ID = id
	return nil
}

func (r *runner) ListDestinations(transportID int64) ([]*Destination, error) {
	rows, err := r.q.Query(r.Q(fmt.Sprintf(`SELECT %s FROM destinations WHERE transport_id=? ORDER BY dest_order`, destinationSelectCols)), transportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var dests []*Destination
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, err
		}
		dests = append(dests, d)
	}
	return dests, rows.Err()
}

// FirstDestination returns the lowest-order destination, or nil when the
// transport has none.
func (r *runner) FirstDestination(transportID int64) (*Destination, error) {
	row := r.q.QueryRow(r.Q(fmt.Sprintf(`SELECT %s FROM destinations WHERE transport_id=? ORDER BY dest_order LIMIT 1`, destinationSelectCols)), transportID)
	d, err := scanDestination(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return d, err
}

func (r *runner) DeleteDestinationsByTransport(transportID int64) error {
	_, err := r.q.Exec(r.Q(`DELETE FROM destinations WHERE transport_id=?`), transportID)
	return err
}
