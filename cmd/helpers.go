package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"

	"sanaaBack/internal/handlers"
	"sanaaBack/internal/i18n"
)

func (app *application) serverError(w http.ResponseWriter, err error) {
	trace := fmt.Sprintf("%s\n%s", err.Error(), debug.Stack())
	app.errorLog.Output(2, trace)

	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// clientError answers with the localized message for key and the key itself as code.
func (app *application) clientError(w http.ResponseWriter, r *http.Request, status int, key i18n.Key) {
	handlers.WriteError(w, r, status, key)
}

func (app *application) health(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok", "database": "ok"}
	code := http.StatusOK
	if err := app.db.PingContext(r.Context()); err != nil {
		status["status"], status["database"] = "degraded", err.Error()
		code = http.StatusServiceUnavailable
	}
	if app.redis != nil {
		status["redis"] = "ok"
		if err := app.redis.Ping(r.Context()).Err(); err != nil {
			status["status"], status["redis"] = "degraded", err.Error()
			code = http.StatusServiceUnavailable
		}
	}
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(status)
}
