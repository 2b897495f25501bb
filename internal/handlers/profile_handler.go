package handlers

import (
	"log"
	"net/http"

	"sanaaBack/internal/i18n"
	"sanaaBack/internal/models"
	"sanaaBack/internal/services"
)

type ProfileHandler struct {
	Service      *services.ProfileService
	Verification *services.VerificationEmailService
}

type authResponse struct {
	Profile models.Profile `json:"profile"`
	models.Tokens
}

func (h *ProfileHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var p models.Profile
	if !decodeJSON(w, r, &p) {
		return
	}
	if p.PreferredLanguage == "" {
		p.PreferredLanguage = string(Language(r.Context()))
	}
	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	created, tokens, err := h.Service.SignUp(ctx, p)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if h.Verification != nil {
		if _, err := h.Verification.Send(ctx, created, i18n.Language(created.PreferredLanguage)); err != nil {
			log.Printf("sign up %s: verification email: %v", created.ID, err)
		}
	}
	writeJSON(w, http.StatusCreated, authResponse{Profile: created, Tokens: tokens})
}

func (h *ProfileHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	p, tokens, err := h.Service.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, authResponse{Profile: p, Tokens: tokens})
}

func (h *ProfileHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.RefreshToken == "" {
		req.RefreshToken = r.Header.Get("Refresh-Token")
	}
	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	tokens, err := h.Service.Refresh(ctx, req.RefreshToken)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokens)
}

func (h *ProfileHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := caller(w, r)
	if !ok {
		return
	}
	if err := h.Service.SignOut(r.Context(), userID); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ResendVerification emails the caller a fresh verification link.
func (h *ProfileHandler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := caller(w, r)
	if !ok {
		return
	}
	if h.Verification == nil {
		writeError(w, r, http.StatusServiceUnavailable, i18n.ErrEmailFailed)
		return
	}
	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	p, err := h.Service.GetProfile(ctx, userID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if p.EmailVerified {
		writeError(w, r, http.StatusConflict, i18n.ErrConflict)
		return
	}
	messageID, err := h.Verification.Send(ctx, p, Language(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]interface{}{"success": true, "message_id": messageID})
}

func (h *ProfileHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := caller(w, r)
	if !ok {
		return
	}
	p, err := h.Service.GetProfile(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// GetByID returns the public view of another profile.
func (h *ProfileHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	p, err := h.Service.GetProfile(r.Context(), getParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	p.Email = ""
	p.Phone = ""
	writeJSON(w, http.StatusOK, p)
}

func (h *ProfileHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := caller(w, r)
	if !ok {
		return
	}
	var upd models.ProfileUpdate
	if !decodeJSON(w, r, &upd) {
		return
	}
	p, err := h.Service.UpdateProfile(r.Context(), userID, upd)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProfileHandler) AddPortfolioPhoto(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := caller(w, r)
	if !ok {
		return
	}
	var req struct {
		Image string `json:"image"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	portfolio, err := h.Service.AddPortfolioPhoto(ctx, userID, req.Image)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string][]string{"portfolio": portfolio})
}
