package handlers

import (
	"context"
	"net/http"

	"sanaaBack/internal/i18n"
	"sanaaBack/internal/models"
)

type contextKey string

const (
	userIDKey   contextKey = "user_id"
	roleKey     contextKey = "role"
	languageKey contextKey = "language"
)

// WithIdentity stores the authenticated caller on ctx.
func WithIdentity(ctx context.Context, userID string, role models.Role) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, roleKey, role)
}

func WithLanguage(ctx context.Context, lang i18n.Language) context.Context {
	return context.WithValue(ctx, languageKey, lang)
}

func identity(r *http.Request) (string, models.Role, bool) {
	userID, _ := r.Context().Value(userIDKey).(string)
	role, _ := r.Context().Value(roleKey).(models.Role)
	return userID, role, userID != ""
}

// Language returns the language chosen for the request.
func Language(ctx context.Context) i18n.Language {
	if lang, ok := ctx.Value(languageKey).(i18n.Language); ok && lang.Valid() {
		return lang
	}
	return i18n.Default
}
