package store

import (
	"database/sql"
	"fmt"
	"time"
)

// Cut type values.
const (
	CutContainer = "CONTAINER"
	CutTrailer   = "TRAILER"
	CutBoth      = "BOTH"
)

// CutInfo is owned 1:1 by a segment transport. CutEndDate stays empty until
// the segment is restored.
type CutInfo struct {
	ID           int64     `json:"id"`
	TransportID  int64     `json:"transport_id"`
	CutType      string    `json:"cut_type"`
	CutStartDate string    `json:"cut_start_date"`
	CutEndDate   string    `json:"cut_end_date,omitempty"`
	Location     string    `json:"location"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
}

const cutInfoSelectCols = `id, transport_id, cut_type, cut_start_date, cut_end_date, location, notes, created_at`

func scanCutInfo(row interface{ Scan(...any) error }) (*CutInfo, error) {
	var c CutInfo
	var endDate sql.NullString
	var createdAt any
	err := row.Scan(&c.ID, &c.TransportID, &c.CutType, &c.CutStartDate, &endDate, &c.Location, &c.Notes, &createdAt)
	if err != nil {
		return nil, err
	}
	if endDate.Valid {
		c.CutEndDate = endDate.String
	}
	c.CreatedAt = parseTime(createdAt)
	return &c, nil
}

func (r *runner) CreateCutInfo(c *CutInfo) error {
	result, err := r.q.Exec(r.Q(`INSERT INTO cut_infos (transport_id, cut_type, cut_start_date, location, notes) VALUES (?, ?, ?, ?, ?)`),
		c.TransportID, c.CutType, c.CutStartDate, c.Location, c.Notes)
	if err != nil {
		return fmt.Errorf("create cut info: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("create cut info last id: %w", err)
	}
	c.ID = id
	return nil
}

func (r *runner) GetCutInfoByTransport(transportID int64) (*CutInfo, error) {
	row := r.q.QueryRow(r.Q(fmt.Sprintf(`SELECT %s FROM cut_infos WHERE transport_id=?`, cutInfoSelectCols)), transportID)
	return scanCutInfo(row)
}

func (r *runner) CloseCutInfo(transportID int64, cutEndDate, notes string) error {
	_, err := r.q.Exec(r.Q(`UPDATE cut_infos SET cut_end_date=?, notes=? WHERE transport_id=?`),
		cutEndDate, notes, transportID)
	return err
}

func (r *runner) DeleteCutInfoByTransport(transportID int64) error {
	_, err := r.q.Exec(r.Q(`DELETE FROM cut_infos WHERE transport_id=?`), transportID)
	return err
}
