package www

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/DenizcanArslan/VDTMSv2-sub001/plancache"
	"github.com/DenizcanArslan/VDTMSv2-sub001/planning"
)

type Handlers struct {
	svc      *planning.Service
	cache    *plancache.Cache
	eventHub *EventHub
}

// NewRouter builds the HTTP surface: the JSON planning API plus the SSE
// stream. The returned hub is a notify.Publisher so main can register it in
// the fanout; the stop func shuts the hub down.
func NewRouter(svc *planning.Service, cache *plancache.Cache) (http.Handler, *EventHub, func()) {
	hub := NewEventHub()
	hub.Start()

	h := &Handlers{
		svc:      svc,
		cache:    cache,
		eventHub: hub,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	// SSE
	r.Get("/events", hub.SSEHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.apiHealthCheck)
		r.Get("/planning", h.apiDayPlan)

		r.Post("/transports", h.apiCreateTransport)
		r.Get("/transports/{id}", h.apiGetTransport)
		r.Post("/transports/{id}/status", h.apiUpdateTransportStatus)
		r.Post("/transports/{id}/trailer", h.apiAssignTrailer)
		r.Post("/transports/{id}/assign", h.apiAssignTransport)
		r.Post("/transports/{id}/assign-range", h.apiAssignDateRange)
		r.Post("/transports/{id}/cut", h.apiCutTransport)
		r.Post("/transports/{id}/restore", h.apiRestoreTransport)
		r.Delete("/cut-segments/{id}", h.apiDeleteCutSegment)

		r.Post("/slots", h.apiCreateSlots)
		r.Delete("/slots/last", h.apiRemoveLastSlot)
		r.Post("/slots/total", h.apiSetTotalSlots)
		r.Post("/slots/reorder", h.apiReorderSlots)
		r.Post("/slots/sort", h.apiSortSlots)
		r.Post("/slots/{id}/move", h.apiMoveInSlot)
		r.Post("/slots/{id}/crew", h.apiAssignSlotCrew)

		r.Post("/trailers/{id}/park", h.apiParkTrailer)
	})

	stopFn := func() {
		hub.Stop()
	}

	return r, hub, stopFn
}
