package handlers

import (
	"context"
	"net/http"

	"sanaaBack/internal/marketplace/completion"
)

type CompletionHandler struct {
	Service *completion.Service
}

type completionResponse struct {
	Record completion.Record    `json:"record"`
	View   completion.ViewModel `json:"view"`
}

// Get returns the completion card for ?request_id= or ?booking_id=.
func (h *CompletionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := caller(w, r)
	if !ok {
		return
	}
	t := completion.Target{
		RequestID: r.URL.Query().Get("request_id"),
		BookingID: r.URL.Query().Get("booking_id"),
	}
	rec, role, err := h.Service.Get(r.Context(), userID, t)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, completionResponse{Record: rec, View: completion.View(role, rec.Props, Language(r.Context()))})
}

func (h *CompletionHandler) MarkComplete(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, h.Service.MarkComplete)
}

func (h *CompletionHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, h.Service.ConfirmPayment)
}

func (h *CompletionHandler) apply(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, userID string, t completion.Target) (completion.Record, error)) {
	userID, _, ok := caller(w, r)
	if !ok {
		return
	}
	var t completion.Target
	if !decodeJSON(w, r, &t) {
		return
	}
	rec, err := fn(r.Context(), userID, t)
	if err != nil {
		respondError(w, r, err)
		return
	}
	role, _ := rec.RoleOf(userID)
	writeJSON(w, http.StatusOK, completionResponse{Record: rec, View: completion.View(role, rec.Props, Language(r.Context()))})
}
