package main

import (
	"fmt"
	"net/http"
	"strings"

	"sanaaBack/internal/handlers"
	"sanaaBack/internal/i18n"
	"sanaaBack/internal/models"
)

func secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Frame-Options", "deny")
		next.ServeHTTP(w, r)
	})
}

func makeResponseJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.infoLog.Printf("%s - %s %s %s", r.RemoteAddr, r.Proto, r.Method, r.URL.RequestURI())
		next.ServeHTTP(w, r)
	})
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.serverError(w, fmt.Errorf("%s", err))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// detectLanguage picks ?lang first, then Accept-Language.
func detectLanguage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang, ok := i18n.Parse(r.URL.Query().Get("lang"))
		if !ok {
			lang = i18n.FromAcceptLanguage(r.Header.Get("Accept-Language"))
		}
		next.ServeHTTP(w, r.WithContext(handlers.WithLanguage(r.Context(), lang)))
	})
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// JWTMiddleware authenticates the access token and, when requiredRole is set,
// rejects callers with another role. Without an explicit ?lang the caller's
// preferred language replaces the header guess.
func (app *application) JWTMiddleware(next http.Handler, requiredRole models.Role) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accessToken := bearerToken(r)
		if accessToken == "" {
			app.clientError(w, r, http.StatusUnauthorized, i18n.ErrUnauthorized)
			return
		}
		claims, err := app.tokenManager.Parse(accessToken)
		if err != nil {
			app.clientError(w, r, http.StatusUnauthorized, i18n.ErrUnauthorized)
			return
		}
		if requiredRole != "" && claims.Role != requiredRole {
			app.clientError(w, r, http.StatusForbidden, i18n.ErrForbidden)
			return
		}

		ctx := handlers.WithIdentity(r.Context(), claims.UserID, claims.Role)
		if _, explicit := i18n.Parse(r.URL.Query().Get("lang")); !explicit && app.userLanguage != nil {
			ctx = handlers.WithLanguage(ctx, app.userLanguage(ctx, claims.UserID))
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (app *application) JWTMiddlewareWithRole(requiredRole models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return app.JWTMiddleware(next, requiredRole)
	}
}
