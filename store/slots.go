package store

import (
	"database/sql"
	"fmt"
	"time"
)

// PlanningSlot is a day-scoped ordered bucket of transports. Order values are
// unique per date and dense from 0 once a reorder settles; SlotNumber mirrors
// Order+1 for display.
type PlanningSlot struct {
	ID         int64     `json:"id"`
	Date       string    `json:"date"`
	SlotNumber int       `json:"slot_number"`
	Order      int       `json:"order"`
	IsActive   bool      `json:"is_active"`
	DriverID   *int64    `json:"driver_id,omitempty"`
	TruckID    *int64    `json:"truck_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

const slotSelectCols = `id, slot_date, slot_number, sort_order, is_active, driver_id, truck_id, created_at`

func scanSlot(row interface{ Scan(...any) error }) (*PlanningSlot, error) {
	var s PlanningSlot
	var driverID, truckID sql.NullInt64
	var createdAt any
	err := row.Scan(&s.ID, &s.Date, &s.SlotNumber, &s.Order, &s.IsActive, &driverID, &truckID, &createdAt)
	if err != nil {
		return nil, err
	}
	if driverID.Valid {
		s.DriverID = &driverID.Int64
	}
	if truckID.Valid {
		s.TruckID = &truckID.Int64
	}
	s.CreatedAt = parseTime(createdAt)
	return &s, nil
}

func scanSlots(rows *sql.Rows) ([]*PlanningSlot, error) {
	var slots []*PlanningSlot
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

func (r *runner) CreateSlot(s *PlanningSlot) error {
	result, err := r.q.Exec(r.Q(`INSERT INTO planning_slots (slot_date, slot_number, sort_order, is_active, driver_id, truck_id) VALUES (?, ?, ?, ?, ?, ?)`),
		s.Date, s.SlotNumber, s.Order, s.IsActive, nullableID(s.DriverID), nullableID(s.TruckID))
	if err != nil {
		return fmt.Errorf("create slot: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("create slot last id: %w", err)
	}
	s.ID = id
	return nil
}

func (r *runner) GetSlot(id int64) (*PlanningSlot, error) {
	row := r.q.QueryRow(r.Q(fmt.Sprintf(`SELECT %s FROM planning_slots WHERE id=?`, slotSelectCols)), id)
	return scanSlot(row)
}

// ListSlotsByDate returns the active slots for a date ordered by sort order.
func (r *runner) ListSlotsByDate(date string) ([]*PlanningSlot, error) {
	rows, err := r.q.Query(r.Q(fmt.Sprintf(`SELECT %s FROM planning_slots WHERE slot_date=? AND is_active ORDER BY sort_order`, slotSelectCols)), date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSlots(rows)
}

// LastSlot returns the active slot with the highest order for a date.
func (r *runner) LastSlot(date string) (*PlanningSlot, error) {
	row := r.q.QueryRow(r.Q(fmt.Sprintf(`SELECT %s FROM planning_slots WHERE slot_date=? AND is_active ORDER BY sort_order DESC LIMIT 1`, slotSelectCols)), date)
	return scanSlot(row)
}

// MaxSlotOrder returns the highest sort order for a date, or -1 when the date
// has no slots.
func (r *runner) MaxSlotOrder(date string) (int, error) {
	var max sql.NullInt64
	err := r.q.QueryRow(r.Q(`SELECT MAX(sort_order) FROM planning_slots WHERE slot_date=?`), date).Scan(&max)
	if err != nil {
		return -1, err
	}
	if !max.Valid {
		return -1, nil
	}
	return int(max.Int64), nil
}

func (r *runner) CountSlots(date string) (int, error) {
	var n int
	err := r.q.QueryRow(r.Q(`SELECT COUNT(*) FROM planning_slots WHERE slot_date=? AND is_active`), date).Scan(&n)
	return n, err
}

func (r *runner) UpdateSlotOrder(id int64, order, slotNumber int) error {
	_, err := r.q.Exec(r.Q(`UPDATE planning_slots SET sort_order=?, slot_number=? WHERE id=?`),
		order, slotNumber, id)
	return err
}

func (r *runner) UpdateSlotCrew(id int64, driverID, truckID *int64) error {
	_, err := r.q.Exec(r.Q(`UPDATE planning_slots SET driver_id=?, truck_id=? WHERE id=?`),
		nullableID(driverID), nullableID(truckID), id)
	return err
}

func (r *runner) DeleteSlot(id int64) error {
	_, err := r.q.Exec(r.Q(`DELETE FROM planning_slots WHERE id=?`), id)
	return err
}
