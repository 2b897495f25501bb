package handlers

import (
	"net/http"

	"sanaaBack/internal/i18n"
	"sanaaBack/internal/marketplace/celebration"
)

type CelebrationHandler struct{}

// Continue only acknowledges a transition screen; nothing is stored. The
// screen itself was delivered when the milestone fired, and the client
// decides where to go next.
func (h *CelebrationHandler) Continue(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := caller(w, r); !ok {
		return
	}
	kind := celebration.Kind(getParam(r, "kind"))
	if !kind.Valid() {
		writeError(w, r, http.StatusNotFound, i18n.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"kind": kind, "acknowledged": true})
}
