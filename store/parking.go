package store

import (
	"database/sql"
	"fmt"
	"time"
)

// TrailerParkingRecord marks a trailer as idle outside active transport. At
// most one record exists per trailer.
type TrailerParkingRecord struct {
	ID        int64     `json:"id"`
	TrailerID int64     `json:"trailer_id"`
	Location  string    `json:"location"`
	Notes     string    `json:"notes"`
	ParkedAt  time.Time `json:"parked_at"`
}

func (r *runner) UpsertTrailerParking(rec *TrailerParkingRecord) error {
	existing, err := r.GetTrailerParking(rec.TrailerID)
	if err != nil && err != sql.ErrNoRows {
		return err
	}
	if existing != nil {
		_, err := r.q.Exec(r.Q(`UPDATE trailer_parking_records SET location=?, notes=?, parked_at=datetime('now','localtime') WHERE trailer_id=?`),
			rec.Location, rec.Notes, rec.TrailerID)
		if err == nil {
			rec.ID = existing.ID
		}
		return err
	}
	result, err := r.q.Exec(r.Q(`INSERT INTO trailer_parking_records (trailer_id, location, notes) VALUES (?, ?, ?)`),
		rec.TrailerID, rec.Location, rec.Notes)
	if err != nil {
		return fmt.Errorf("create parking record: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("create parking record last id: %w", err)
	}
	rec.ID = id
	return nil
}

func (r *runner) GetTrailerParking(trailerID int64) (*TrailerParkingRecord, error) {
	var rec TrailerParkingRecord
	var parkedAt any
	err := r.q.QueryRow(r.Q(`SELECT id, trailer_id, location, notes, parked_at FROM trailer_parking_records WHERE trailer_id=?`), trailerID).
		Scan(&rec.ID, &rec.TrailerID, &rec.Location, &rec.Notes, &parkedAt)
	if err != nil {
		return nil, err
	}
	rec.ParkedAt = parseTime(parkedAt)
	return &rec, nil
}

// DeleteTrailerParking removes a trailer's parking record. Deleting a missing
// record is not an error.
func (r *runner) DeleteTrailerParking(trailerID int64) error {
	_, err := r.q.Exec(r.Q(`DELETE FROM trailer_parking_records WHERE trailer_id=?`), trailerID)
	return err
}
