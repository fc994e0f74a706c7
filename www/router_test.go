package www

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/DenizcanArslan/VDTMSv2-sub001/config"
	"github.com/DenizcanArslan/VDTMSv2-sub001/planning"
	"github.com/DenizcanArslan/VDTMSv2-sub001/store"
)

func testServer(t *testing.T) (*httptest.Server, *planning.Service) {
	t.Helper()
	db, err := store.Open(&config.DatabaseConfig{
		Driver: "sqlite",
		SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "test.db")},
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	svc := planning.New(planning.Config{DB: db, LogFunc: t.Logf})

	handler, _, stop := NewRouter(svc, nil)
	srv := httptest.NewServer(handler)
	t.Cleanup(func() {
		srv.Close()
		stop()
		db.Close()
	})
	return srv, svc
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, _ := json.Marshal(body)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestErrorStatusMapping(t *testing.T) {
	srv, _ := testServer(t)

	// invalid date -> 400
	resp, err := http.Get(srv.URL + "/api/planning?date=02-03-2026")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad date status = %d, want 400", resp.StatusCode)
	}

	// unknown transport -> 404
	resp, err = http.Get(srv.URL + "/api/transports/9999")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing transport status = %d, want 404", resp.StatusCode)
	}

	// duplicate order number -> 409
	in := planning.CreateTransportInput{OrderNumber: "WEB-1", TransportType: store.TypeImport}
	if resp := postJSON(t, srv.URL+"/api/transports", in); resp.StatusCode != http.StatusOK {
		t.Fatalf("create status = %d, want 200", resp.StatusCode)
	}
	if resp := postJSON(t, srv.URL+"/api/transports", in); resp.StatusCode != http.StatusConflict {
		t.Errorf("duplicate status = %d, want 409", resp.StatusCode)
	}

	// garbage body -> 400
	resp, err = http.Post(srv.URL+"/api/slots", "application/json", bytes.NewReader([]byte("{")))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("garbage body status = %d, want 400", resp.StatusCode)
	}
}

func TestPlanningRoundTrip(t *testing.T) {
	srv, _ := testServer(t)

	if resp := postJSON(t, srv.URL+"/api/slots", map[string]any{"date": "2026-03-02", "count": 2}); resp.StatusCode != http.StatusOK {
		t.Fatalf("create slots status = %d", resp.StatusCode)
	}

	resp, err := http.Get(srv.URL + "/api/planning?date=2026-03-02")
	if err != nil {
		t.Fatalf("get plan: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("plan status = %d", resp.StatusCode)
	}
	var plan store.DayPlan
	if err := json.NewDecoder(resp.Body).Decode(&plan); err != nil {
		t.Fatalf("decode plan: %v", err)
	}
	if len(plan.Slots) != 2 {
		t.Errorf("plan slots = %d, want 2", len(plan.Slots))
	}
}
