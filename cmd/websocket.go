package main

import (
	"net/http"
	"strings"

	"sanaaBack/internal/i18n"
)

// serveWS authenticates the socket and subscribes it to the comma separated
// channels query. Browsers cannot set headers on a websocket handshake, so
// the access token may also arrive as ?token=.
func (app *application) serveWS(w http.ResponseWriter, r *http.Request) {
	accessToken := bearerToken(r)
	if accessToken == "" {
		accessToken = r.URL.Query().Get("token")
	}
	if accessToken == "" {
		app.clientError(w, r, http.StatusUnauthorized, i18n.ErrUnauthorized)
		return
	}
	claims, err := app.tokenManager.Parse(accessToken)
	if err != nil {
		app.clientError(w, r, http.StatusUnauthorized, i18n.ErrUnauthorized)
		return
	}

	var channels []string
	for _, ch := range strings.Split(r.URL.Query().Get("channels"), ",") {
		if ch = strings.TrimSpace(ch); ch != "" {
			channels = append(channels, ch)
		}
	}
	app.hub.Serve(w, r, claims.UserID, channels)
}
