package store

import (
	"fmt"
)

// Drivers, trucks and trailers are managed by screens outside this core;
// the planning engines only read them for hydration and advisory checks.

type Driver struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	ADRCertified bool   `json:"adr_certified"`
}

type Truck struct {
	ID        int64  `json:"id"`
	Plate     string `json:"plate"`
	HasGenset bool   `json:"has_genset"`
}

type Trailer struct {
	ID        int64  `json:"id"`
	Plate     string `json:"plate"`
	HasGenset bool   `json:"has_genset"`
}

func (r *runner) CreateDriver(d *Driver) error {
	result, err := r.q.Exec(r.Q(`INSERT INTO drivers (name, adr_certified) VALUES (?, ?)`), d.Name, d.ADRCertified)
	if err != nil {
		return fmt.Errorf("create driver: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("create driver last id: %w", err)
	}
	d.ID = id
	return nil
}

func (r *runner) GetDriver(id int64) (*Driver, error) {
	var d Driver
	err := r.q.QueryRow(r.Q(`SELECT id, name, adr_certified FROM drivers WHERE id=?`), id).
		Scan(&d.ID, &d.Name, &d.ADRCertified)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *runner) CreateTruck(t *Truck) error {
	result, err := r.q.Exec(r.Q(`INSERT INTO trucks (plate, has_genset) VALUES (?, ?)`), t.Plate, t.HasGenset)
	if err != nil {
		return fmt.Errorf("create truck: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("create truck last id: %w", err)
	}
	t.ID = id
	return nil
}

func (r *runner) GetTruck(id int64) (*Truck, error) {
	var t Truck
	err := r.q.QueryRow(r.Q(`SELECT id, plate, has_genset FROM trucks WHERE id=?`), id).
		Scan(&t.ID, &t.Plate, &t.HasGenset)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *runner) CreateTrailer(t *Trailer) error {
	result, err := r.q.Exec(r.Q(`INSERT INTO trailers (plate, has_genset) VALUES (?, ?)`), t.Plate, t.HasGenset)
	if err != nil {
		return fmt.Errorf("create trailer: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("create trailer last id: %w", err)
	}
	t.ID = id
	return nil
}

func (r *runner) GetTrailer(id int64) (*Trailer, error) {
	var t Trailer
	err := r.q.QueryRow(r.Q(`SELECT id, plate, has_genset FROM trailers WHERE id=?`), id).
		Scan(&t.ID, &t.Plate, &t.HasGenset)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// getDriverPtr is a nil-tolerant lookup used during hydration.
func (r *runner) getDriverPtr(id *int64) *Driver {
	if id == nil {
		return nil
	}
	d, err := r.GetDriver(*id)
	if err != nil {
		return nil
	}
	return d
}

func (r *runner) getTruckPtr(id *int64) *Truck {
	if id == nil {
		return nil
	}
	t, err := r.GetTruck(*id)
	if err != nil {
		return nil
	}
	return t
}
