package handlers

import (
	"net/http"

	"sanaaBack/internal/services"
)

type QuoteHandler struct {
	Service *services.QuoteService
}

func (h *QuoteHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := caller(w, r)
	if !ok {
		return
	}
	var in services.QuoteInput
	if !decodeJSON(w, r, &in) {
		return
	}
	q, err := h.Service.Submit(r.Context(), userID, role, getParam(r, "id"), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, q)
}

func (h *QuoteHandler) ListForRequest(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := caller(w, r)
	if !ok {
		return
	}
	list, err := h.Service.ListForRequest(r.Context(), userID, getParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *QuoteHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := caller(w, r)
	if !ok {
		return
	}
	list, err := h.Service.ListMine(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Get returns the quote together with both parties.
func (h *QuoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := caller(w, r)
	if !ok {
		return
	}
	q, parties, err := h.Service.Get(r.Context(), userID, getParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"quote":   q,
		"parties": parties,
	})
}

func (h *QuoteHandler) RequestRevision(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := caller(w, r)
	if !ok {
		return
	}
	var req struct {
		Note string `json:"note"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	q, err := h.Service.RequestRevision(r.Context(), userID, getParam(r, "id"), req.Note)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (h *QuoteHandler) Reject(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := caller(w, r)
	if !ok {
		return
	}
	q, err := h.Service.Reject(r.Context(), userID, getParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (h *QuoteHandler) Revise(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := caller(w, r)
	if !ok {
		return
	}
	var in services.QuoteInput
	if !decodeJSON(w, r, &in) {
		return
	}
	q, err := h.Service.Revise(r.Context(), userID, getParam(r, "id"), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}
