package www

import (
	"net/http"
)

func (h *Handlers) apiCreateSlots(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Date  string `json:"date"`
		Count int    `json:"count"`
	}
	if !h.decodeBody(w, r, &in) {
		return
	}
	slots, err := h.svc.CreateSlots(in.Date, in.Count)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.jsonOK(w, slots)
}

func (h *Handlers) apiRemoveLastSlot(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	slot, unassigned, err := h.svc.RemoveLastSlot(date)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.jsonOK(w, map[string]any{"removed": slot, "unassigned": unassigned})
}

func (h *Handlers) apiSetTotalSlots(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Date  string `json:"date"`
		Total int    `json:"total"`
	}
	if !h.decodeBody(w, r, &in) {
		return
	}
	slots, err := h.svc.SetTotalSlots(in.Date, in.Total)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.jsonOK(w, slots)
}

func (h *Handlers) apiReorderSlots(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Date     string `json:"date"`
		OldIndex int    `json:"old_index"`
		NewIndex int    `json:"new_index"`
	}
	if !h.decodeBody(w, r, &in) {
		return
	}
	slots, err := h.svc.ReorderSlots(in.Date, in.OldIndex, in.NewIndex)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.jsonOK(w, slots)
}

func (h *Handlers) apiSortSlots(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Date string `json:"date"`
	}
	if !h.decodeBody(w, r, &in) {
		return
	}
	slots, err := h.svc.SortSlotsByDestinationTime(in.Date)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.jsonOK(w, slots)
}

func (h *Handlers) apiMoveInSlot(w http.ResponseWriter, r *http.Request) {
	var in struct {
		TransportID int64  `json:"transport_id"`
		Date        string `json:"date"`
		Direction   string `json:"direction"`
	}
	if !h.decodeBody(w, r, &in) {
		return
	}
	sd, err := h.svc.MoveInSlot(idParam(r), in.TransportID, in.Date, in.Direction)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.jsonOK(w, sd)
}

func (h *Handlers) apiAssignSlotCrew(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Date     string `json:"date"`
		DriverID int64  `json:"driver_id"`
		TruckID  int64  `json:"truck_id"`
	}
	if !h.decodeBody(w, r, &in) {
		return
	}
	sd, warnings, err := h.svc.AssignSlotCrew(idParam(r), in.Date, in.DriverID, in.TruckID)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.jsonOK(w, map[string]any{"slot": sd, "warnings": warnings})
}
