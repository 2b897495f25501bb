package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"sanaaBack/internal/i18n"
	"sanaaBack/internal/marketplace/completion"
	"sanaaBack/internal/marketplace/negotiation"
	"sanaaBack/internal/models"
	"sanaaBack/internal/services"
	"sanaaBack/utils"
)

const maxBodyBytes = 12 << 20

type errorResponse struct {
	Error string   `json:"error"`
	Code  i18n.Key `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError answers with the message for key in the request language.
func writeError(w http.ResponseWriter, r *http.Request, status int, key i18n.Key) {
	writeJSON(w, status, errorResponse{Error: i18n.T(Language(r.Context()), key), Code: key})
}

// WriteError is writeError for middleware outside this package.
func WriteError(w http.ResponseWriter, r *http.Request, status int, key i18n.Key) {
	writeError(w, r, status, key)
}

func contextWithTimeout(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), 10*time.Second)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, r, http.StatusBadRequest, i18n.ErrInvalidRequest)
		return false
	}
	return true
}

// caller returns the authenticated user or answers 401.
func caller(w http.ResponseWriter, r *http.Request) (string, models.Role, bool) {
	userID, role, ok := identity(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, i18n.ErrUnauthorized)
	}
	return userID, role, ok
}

type errorMapping struct {
	target error
	status int
	key    i18n.Key
}

var errorMappings = []errorMapping{
	{models.ErrNoRecord, http.StatusNotFound, i18n.ErrNotFound},
	{models.ErrInvalidCredentials, http.StatusUnauthorized, i18n.ErrInvalidCredentials},
	{models.ErrDuplicateEmail, http.StatusConflict, i18n.ErrDuplicateEmail},
	{models.ErrForbidden, http.StatusForbidden, i18n.ErrForbidden},
	{completion.ErrNotParticipant, http.StatusForbidden, i18n.ErrForbidden},
	{models.ErrInvalidTransition, http.StatusConflict, i18n.ErrInvalidTransition},
	{models.ErrConflict, http.StatusConflict, i18n.ErrConflict},
	{models.ErrInvalidInput, http.StatusBadRequest, i18n.ErrInvalidRequest},
	{completion.ErrInvalidTarget, http.StatusBadRequest, i18n.ErrInvalidRequest},
	{completion.ErrActionDisabled, http.StatusConflict, i18n.ErrActionDisabled},
	{negotiation.ErrEmptyOffer, http.StatusBadRequest, i18n.ErrEmptyOffer},
	{negotiation.ErrInvalidPrice, http.StatusBadRequest, i18n.ErrInvalidPrice},
	{negotiation.ErrNotOpen, http.StatusConflict, i18n.ErrOfferClosed},
	{negotiation.ErrQuoteClosed, http.StatusConflict, i18n.ErrOfferClosed},
	{negotiation.ErrOwnOffer, http.StatusForbidden, i18n.ErrOwnOffer},
	{services.ErrEmptyMessage, http.StatusBadRequest, i18n.ErrInvalidRequest},
	{services.ErrResendCooldown, http.StatusTooManyRequests, i18n.ErrResendCooldown},
	{services.ErrVerificationEmail, http.StatusBadGateway, i18n.ErrEmailFailed},
	{utils.ErrInvalidDataURL, http.StatusBadRequest, i18n.ErrInvalidImage},
}

// respondError translates a service error into a localized JSON error.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			writeError(w, r, m.status, m.key)
			return
		}
	}
	var fnErr *services.FunctionError
	switch {
	case errors.As(err, &fnErr):
		log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
		writeError(w, r, http.StatusBadGateway, i18n.ErrEmailFailed)
	case isUniqueViolation(err):
		writeError(w, r, http.StatusConflict, i18n.ErrConflict)
	case isForeignKeyConstraintError(err):
		writeError(w, r, http.StatusUnprocessableEntity, i18n.ErrUnknownReference)
	case errors.Is(err, context.DeadlineExceeded):
		log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
		writeError(w, r, http.StatusGatewayTimeout, i18n.ErrInternal)
	default:
		log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
		writeError(w, r, http.StatusInternalServerError, i18n.ErrInternal)
	}
}
