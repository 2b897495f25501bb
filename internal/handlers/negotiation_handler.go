package handlers

import (
	"net/http"

	"sanaaBack/internal/marketplace/negotiation"
)

type NegotiationHandler struct {
	Service *negotiation.Service
}

func (h *NegotiationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := caller(w, r)
	if !ok {
		return
	}
	list, err := h.Service.List(r.Context(), userID, getParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Create posts a counter offer on the quote in the path.
func (h *NegotiationHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := caller(w, r)
	if !ok {
		return
	}
	var offer negotiation.CounterOffer
	if !decodeJSON(w, r, &offer) {
		return
	}
	n, err := h.Service.CreateCounterOffer(r.Context(), userID, getParam(r, "id"), offer)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, n)
}

func (h *NegotiationHandler) Accept(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := caller(w, r)
	if !ok {
		return
	}
	n, err := h.Service.Accept(r.Context(), userID, getParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (h *NegotiationHandler) Decline(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := caller(w, r)
	if !ok {
		return
	}
	n, err := h.Service.Decline(r.Context(), userID, getParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}
