package handlers

import (
	"context"
	"net/http"

	"sanaaBack/internal/models"
	"sanaaBack/internal/services"
)

type BookingHandler struct {
	Service *services.BookingService
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := caller(w, r)
	if !ok {
		return
	}
	var in services.NewBookingInput
	if !decodeJSON(w, r, &in) {
		return
	}
	b, err := h.Service.Create(r.Context(), userID, role, in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := caller(w, r)
	if !ok {
		return
	}
	list, err := h.Service.ListMine(r.Context(), userID, role)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := caller(w, r)
	if !ok {
		return
	}
	b, err := h.Service.Get(r.Context(), userID, getParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BookingHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, h.Service.Accept)
}

func (h *BookingHandler) Decline(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, h.Service.Decline)
}

func (h *BookingHandler) AcceptCounter(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, h.Service.AcceptCounter)
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, h.Service.Cancel)
}

func (h *BookingHandler) Counter(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := caller(w, r)
	if !ok {
		return
	}
	var in services.CounterInput
	if !decodeJSON(w, r, &in) {
		return
	}
	b, err := h.Service.Counter(r.Context(), userID, getParam(r, "id"), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BookingHandler) act(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, userID, id string) (models.BookingRequest, error)) {
	userID, _, ok := caller(w, r)
	if !ok {
		return
	}
	b, err := fn(r.Context(), userID, getParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}
