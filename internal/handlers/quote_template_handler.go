package handlers

import (
	"net/http"

	"sanaaBack/internal/models"
	"sanaaBack/internal/services"
)

type QuoteTemplateHandler struct {
	Service *services.QuoteTemplateService
}

func (h *QuoteTemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := caller(w, r)
	if !ok {
		return
	}
	list, err := h.Service.List(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *QuoteTemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := caller(w, r)
	if !ok {
		return
	}
	var t models.QuoteTemplate
	if !decodeJSON(w, r, &t) {
		return
	}
	created, err := h.Service.Create(r.Context(), userID, role, t)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *QuoteTemplateHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := caller(w, r)
	if !ok {
		return
	}
	var t models.QuoteTemplate
	if !decodeJSON(w, r, &t) {
		return
	}
	updated, err := h.Service.Update(r.Context(), userID, getParam(r, "id"), t)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *QuoteTemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := caller(w, r)
	if !ok {
		return
	}
	if err := h.Service.Delete(r.Context(), userID, getParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
