package www

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/DenizcanArslan/VDTMSv2-sub001/planning"
)

func (h *Handlers) jsonOK(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func (h *Handlers) jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// fail maps a planning error kind to its HTTP status.
func (h *Handlers) fail(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch planning.KindOf(err) {
	case planning.KindNotFound:
		code = http.StatusNotFound
	case planning.KindInvalidArgument:
		code = http.StatusBadRequest
	case planning.KindConflict:
		code = http.StatusConflict
	}
	h.jsonError(w, err.Error(), code)
}

// idParam reads the {id} route parameter as an int64, 0 on garbage.
func idParam(r *http.Request) int64 {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id
}

func (h *Handlers) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.jsonError(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}
