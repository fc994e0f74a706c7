package www

import (
	"net/http"

	"github.com/DenizcanArslan/VDTMSv2-sub001/planning"
	"github.com/DenizcanArslan/VDTMSv2-sub001/store"
)

func (h *Handlers) apiHealthCheck(w http.ResponseWriter, r *http.Request) {
	h.jsonOK(w, map[string]any{
		"status":      "ok",
		"sse_clients": h.eventHub.ClientCount(),
	})
}

// apiDayPlan serves the hydrated day, preferring the redis snapshot and
// falling back to the store on a miss.
func (h *Handlers) apiDayPlan(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if plan := h.cache.Get(date); plan != nil {
		h.jsonOK(w, plan)
		return
	}
	plan, err := h.svc.Plan(date)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.cache.Put(plan)
	h.jsonOK(w, plan)
}

func (h *Handlers) apiCreateTransport(w http.ResponseWriter, r *http.Request) {
	var in planning.CreateTransportInput
	if !h.decodeBody(w, r, &in) {
		return
	}
	td, err := h.svc.CreateTransport(in)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.jsonOK(w, td)
}

func (h *Handlers) apiGetTransport(w http.ResponseWriter, r *http.Request) {
	td, err := h.svc.Transport(idParam(r))
	if err != nil {
		h.fail(w, err)
		return
	}
	h.jsonOK(w, td)
}

func (h *Handlers) apiUpdateTransportStatus(w http.ResponseWriter, r *http.Request) {
	var in struct {
		CurrentStatus string `json:"current_status"`
	}
	if !h.decodeBody(w, r, &in) {
		return
	}
	td, err := h.svc.UpdateTransportStatus(idParam(r), in.CurrentStatus)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.jsonOK(w, td)
}

func (h *Handlers) apiAssignTrailer(w http.ResponseWriter, r *http.Request) {
	var in struct {
		TrailerID int64 `json:"trailer_id"`
	}
	if !h.decodeBody(w, r, &in) {
		return
	}
	td, err := h.svc.AssignTrailer(idParam(r), in.TrailerID)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.jsonOK(w, td)
}

func (h *Handlers) apiAssignTransport(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Date   string `json:"date"`
		SlotID int64  `json:"slot_id"`
	}
	if !h.decodeBody(w, r, &in) {
		return
	}
	td, sd, err := h.svc.AssignTransport(idParam(r), in.Date, in.SlotID)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.jsonOK(w, map[string]any{"transport": td, "slot": sd})
}

func (h *Handlers) apiAssignDateRange(w http.ResponseWriter, r *http.Request) {
	var in struct {
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
	}
	if !h.decodeBody(w, r, &in) {
		return
	}
	rows, err := h.svc.AssignDateRange(idParam(r), in.StartDate, in.EndDate)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.jsonOK(w, rows)
}

func (h *Handlers) apiCutTransport(w http.ResponseWriter, r *http.Request) {
	var in struct {
		CutDate  string `json:"cut_date"`
		CutType  string `json:"cut_type"`
		Location string `json:"location"`
		Notes    string `json:"notes"`
	}
	if !h.decodeBody(w, r, &in) {
		return
	}
	root, seg, err := h.svc.CutTransport(idParam(r), in.CutDate, in.CutType, in.Location, in.Notes)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.jsonOK(w, map[string]*store.TransportDetail{"original": root, "segment": seg})
}

func (h *Handlers) apiRestoreTransport(w http.ResponseWriter, r *http.Request) {
	var in struct {
		CutEndDate string `json:"cut_end_date"`
		TruckID    int64  `json:"truck_id"`
		TrailerID  int64  `json:"trailer_id"`
		Notes      string `json:"notes"`
	}
	if !h.decodeBody(w, r, &in) {
		return
	}
	seg, restored, err := h.svc.RestoreTransport(idParam(r), in.CutEndDate, in.TruckID, in.TrailerID, in.Notes)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.jsonOK(w, map[string]*store.TransportDetail{"segment": seg, "restored": restored})
}

func (h *Handlers) apiDeleteCutSegment(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteCutSegment(idParam(r)); err != nil {
		h.fail(w, err)
		return
	}
	h.jsonOK(w, map[string]string{"status": "deleted"})
}

func (h *Handlers) apiParkTrailer(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Location string `json:"location"`
		Notes    string `json:"notes"`
	}
	if !h.decodeBody(w, r, &in) {
		return
	}
	rec, err := h.svc.ParkTrailer(idParam(r), in.Location, in.Notes)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.jsonOK(w, rec)
}
