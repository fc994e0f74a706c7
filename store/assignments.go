package store

import (
	"database/sql"
	"fmt"
	"time"
)

// Assignment links a transport to a calendar date and, optionally, a planning
// slot. A nil SlotID means "assigned to this date, not yet placed in a slot".
type Assignment struct {
	ID          int64     `json:"id"`
	TransportID int64     `json:"transport_id"`
	Date        string    `json:"date"`
	SlotID      *int64    `json:"slot_id,omitempty"`
	SlotOrder   int       `json:"slot_order"`
	CreatedAt   time.Time `json:"created_at"`
}

const assignmentSelectCols = `id, transport_id, assign_date, slot_id, slot_order, created_at`

func scanAssignment(row interface{ Scan(...any) error }) (*Assignment, error) {
	var a Assignment
	var slotID sql.NullInt64
	var createdAt any
	err := row.Scan(&a.ID, &a.TransportID, &a.Date, &slotID, &a.SlotOrder, &createdAt)
	if err != nil {
		return nil, err
	}
	if slotID.Valid {
		a.SlotID = &slotID.Int64
	}
	a.CreatedAt = parseTime(createdAt)
	return &a, nil
}

func scanAssignments(rows *sql.Rows) ([]*Assignment, error) {
	var assignments []*Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

func (r *runner) CreateAssignment(a *Assignment) error {
	result, err := r.q.Exec(r.Q(`INSERT INTO transport_slot_assignments (transport_id, assign_date, slot_id, slot_order) VALUES (?, ?, ?, ?)`),
		a.TransportID, a.Date, nullableID(a.SlotID), a.SlotOrder)
	if err != nil {
		return fmt.Errorf("create assignment: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("create assignment last id: %w", err)
	}
	a.ID = id
	return nil
}

func (r *runner) GetAssignment(transportID int64, date string) (*Assignment, error) {
	row := r.q.QueryRow(r.Q(fmt.Sprintf(`SELECT %s FROM transport_slot_assignments WHERE transport_id=? AND assign_date=? LIMIT 1`, assignmentSelectCols)), transportID, date)
	return scanAssignment(row)
}

// UpsertUnslottedAssignment records a date-only assignment, replacing any slot
// placement the transport had on that date.
func (r *runner) UpsertUnslottedAssignment(transportID int64, date string) (*Assignment, error) {
	existing, err := r.GetAssignment(transportID, date)
	if err == sql.ErrNoRows {
		a := &Assignment{TransportID: transportID, Date: date, SlotOrder: 0}
		return a, r.CreateAssignment(a)
	}
	if err != nil {
		return nil, err
	}
	_, err = r.q.Exec(r.Q(`UPDATE transport_slot_assignments SET slot_id=NULL, slot_order=0 WHERE id=?`), existing.ID)
	if err != nil {
		return nil, err
	}
	existing.SlotID = nil
	existing.SlotOrder = 0
	return existing, nil
}

func (r *runner) DeleteAssignmentsForTransportDate(transportID int64, date string) error {
	_, err := r.q.Exec(r.Q(`DELETE FROM transport_slot_assignments WHERE transport_id=? AND assign_date=?`), transportID, date)
	return err
}

func (r *runner) DeleteAssignmentsByTransport(transportID int64) error {
	_, err := r.q.Exec(r.Q(`DELETE FROM transport_slot_assignments WHERE transport_id=?`), transportID)
	return err
}

// MaxAssignmentOrder returns the highest slot order among the rows placed in
// a slot for a date, or -1 when the slot is empty.
func (r *runner) MaxAssignmentOrder(slotID int64, date string) (int, error) {
	var max sql.NullInt64
	err := r.q.QueryRow(r.Q(`SELECT MAX(slot_order) FROM transport_slot_assignments WHERE slot_id=? AND assign_date=?`), slotID, date).Scan(&max)
	if err != nil {
		return -1, err
	}
	if !max.Valid {
		return -1, nil
	}
	return int(max.Int64), nil
}

func (r *runner) ListAssignmentsBySlotDate(slotID int64, date string) ([]*Assignment, error) {
	rows, err := r.q.Query(r.Q(fmt.Sprintf(`SELECT %s FROM transport_slot_assignments WHERE slot_id=? AND assign_date=? ORDER BY slot_order`, assignmentSelectCols)), slotID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAssignments(rows)
}

func (r *runner) ListAssignmentsByTransport(transportID int64) ([]*Assignment, error) {
	rows, err := r.q.Query(r.Q(fmt.Sprintf(`SELECT %s FROM transport_slot_assignments WHERE transport_id=? ORDER BY assign_date`, assignmentSelectCols)), transportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAssignments(rows)
}

// ListUnslottedByDate returns date-only assignments not yet placed in a slot.
func (r *runner) ListUnslottedByDate(date string) ([]*Assignment, error) {
	rows, err := r.q.Query(r.Q(fmt.Sprintf(`SELECT %s FROM transport_slot_assignments WHERE assign_date=? AND slot_id IS NULL ORDER BY id`, assignmentSelectCols)), date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAssignments(rows)
}

func (r *runner) UpdateAssignmentOrder(id int64, slotOrder int) error {
	_, err := r.q.Exec(r.Q(`UPDATE transport_slot_assignments SET slot_order=? WHERE id=?`), slotOrder, id)
	return err
}

// UnassignBySlot clears the slot binding on every assignment in the slot and
// returns the affected transport IDs. Fails when a transport in the slot
// already holds an unslotted row for the same date.
func (r *runner) UnassignBySlot(slotID int64) ([]int64, error) {
	rows, err := r.q.Query(r.Q(`SELECT transport_id FROM transport_slot_assignments WHERE slot_id=?`), slotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	_, err = r.q.Exec(r.Q(`UPDATE transport_slot_assignments SET slot_id=NULL, slot_order=0 WHERE slot_id=?`), slotID)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// DeleteAssignmentsBySlot is the low-level fallback used when unassigning a
// slot's transports fails during a resize.
func (r *runner) DeleteAssignmentsBySlot(slotID int64) error {
	_, err := r.q.Exec(r.Q(`DELETE FROM transport_slot_assignments WHERE slot_id=?`), slotID)
	return err
}
