package planning

import (
	"path/filepath"
	"testing"

	"github.com/DenizcanArslan/VDTMSv2-sub001/config"
	"github.com/DenizcanArslan/VDTMSv2-sub001/store"
)

// testService builds a service on a temporary SQLite database.
func testService(t *testing.T) *Service {
	t.Helper()
	db, err := store.Open(&config.DatabaseConfig{
		Driver: "sqlite",
		SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "test.db")},
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(Config{DB: db, LogFunc: t.Logf})
}

func mkTransport(t *testing.T, s *Service, orderNumber string) *store.TransportDetail {
	t.Helper()
	td, err := s.CreateTransport(CreateTransportInput{
		OrderNumber:   orderNumber,
		TransportType: store.TypeImport,
	})
	if err != nil {
		t.Fatalf("create transport %s: %v", orderNumber, err)
	}
	return td
}

func mkSlots(t *testing.T, s *Service, date string, count int) []*store.PlanningSlot {
	t.Helper()
	slots, err := s.CreateSlots(date, count)
	if err != nil {
		t.Fatalf("create %d slots: %v", count, err)
	}
	return slots
}
