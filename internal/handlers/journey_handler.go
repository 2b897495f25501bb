package handlers

import (
	"net/http"

	"sanaaBack/internal/i18n"
	"sanaaBack/internal/marketplace/journey"
	"sanaaBack/internal/models"
	"sanaaBack/internal/services"
)

type JourneyHandler struct {
	Service *services.JourneyService
}

// Get serves /journey?flow=booking&booking_id= or /journey?flow=quote&quote_id=.
// role is optional and must match the caller when given.
func (h *JourneyHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := caller(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	flow := journey.FlowType(q.Get("flow"))
	role := models.Role(q.Get("role"))
	var id string
	switch flow {
	case journey.FlowBooking:
		id = q.Get("booking_id")
	case journey.FlowQuote:
		id = q.Get("quote_id")
	}
	if id == "" || (role != "" && role != models.RoleBuyer && role != models.RoleSeller) {
		writeError(w, r, http.StatusBadRequest, i18n.ErrInvalidRequest)
		return
	}

	view, err := h.Service.Get(r.Context(), userID, flow, role, id, Language(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
