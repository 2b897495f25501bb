package handlers

import (
	"net/http"

	"sanaaBack/internal/i18n"
	"sanaaBack/internal/models"
	"sanaaBack/internal/services"
)

type ChatHandler struct {
	Service *services.ChatService
}

func (h *ChatHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := caller(w, r)
	if !ok {
		return
	}
	limit, ok := intQuery(r, "limit", 200)
	if !ok {
		writeError(w, r, http.StatusBadRequest, i18n.ErrInvalidRequest)
		return
	}
	list, err := h.Service.List(r.Context(), userID, models.ThreadType(getParam(r, "thread_type")), getParam(r, "thread_id"), limit)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := caller(w, r)
	if !ok {
		return
	}
	var req struct {
		Body string `json:"body"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	m, err := h.Service.Send(r.Context(), userID, models.ThreadType(getParam(r, "thread_type")), getParam(r, "thread_id"), req.Body)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}
