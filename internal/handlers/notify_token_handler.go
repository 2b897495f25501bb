package handlers

import (
	"net/http"

	"sanaaBack/internal/services"
)

type NotifyTokenHandler struct {
	Service *services.NotificationService
}

func (h *NotifyTokenHandler) Register(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := caller(w, r)
	if !ok {
		return
	}
	var req struct {
		Token    string `json:"token"`
		Platform string `json:"platform"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.Service.RegisterToken(r.Context(), userID, req.Token, req.Platform); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
