package handlers

import (
	"net/http"

	"sanaaBack/internal/services"
)

type ContractHandler struct {
	Service *services.ContractService
}

func (h *ContractHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := caller(w, r)
	if !ok {
		return
	}
	var in services.ContractInput
	if !decodeJSON(w, r, &in) {
		return
	}
	c, err := h.Service.Create(r.Context(), userID, in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *ContractHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := caller(w, r)
	if !ok {
		return
	}
	c, err := h.Service.Get(r.Context(), userID, getParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *ContractHandler) Send(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := caller(w, r)
	if !ok {
		return
	}
	c, err := h.Service.Send(r.Context(), userID, getParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *ContractHandler) Sign(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := caller(w, r)
	if !ok {
		return
	}
	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	c, err := h.Service.Sign(ctx, userID, getParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"contract":       c,
		"fully_executed": c.FullyExecuted(),
	})
}
