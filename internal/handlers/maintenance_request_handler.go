package handlers

import (
	"net/http"
	"strings"

	"sanaaBack/internal/i18n"
	"sanaaBack/internal/models"
	"sanaaBack/internal/services"
)

type MaintenanceRequestHandler struct {
	Service *services.MaintenanceRequestService
}

func (h *MaintenanceRequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := caller(w, r)
	if !ok {
		return
	}
	var in services.NewRequestInput
	if !decodeJSON(w, r, &in) {
		return
	}
	m, err := h.Service.Create(r.Context(), userID, role, in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

// List browses jobs. Filters: category, city, urgency, buyer_id, status
// (comma separated), limit, offset. "mine=true" narrows to the caller's jobs.
func (h *MaintenanceRequestHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := models.RequestFilter{
		BuyerID:  q.Get("buyer_id"),
		Category: q.Get("category"),
		City:     q.Get("city"),
		Urgency:  q.Get("urgency"),
	}
	if q.Get("mine") == "true" {
		userID, _, ok := caller(w, r)
		if !ok {
			return
		}
		f.BuyerID = userID
	}
	for _, s := range strings.Split(q.Get("status"), ",") {
		if s = strings.TrimSpace(s); s != "" {
			f.Statuses = append(f.Statuses, models.RequestStatus(s))
		}
	}
	var okLimit, okOffset bool
	f.Limit, okLimit = intQuery(r, "limit", 50)
	f.Offset, okOffset = intQuery(r, "offset", 0)
	if !okLimit || !okOffset {
		writeError(w, r, http.StatusBadRequest, i18n.ErrInvalidRequest)
		return
	}

	list, err := h.Service.List(r.Context(), f)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *MaintenanceRequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	m, err := h.Service.Get(r.Context(), getParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *MaintenanceRequestHandler) Close(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := caller(w, r)
	if !ok {
		return
	}
	m, err := h.Service.Close(r.Context(), userID, getParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}
