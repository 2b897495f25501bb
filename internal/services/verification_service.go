package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"sanaaBack/internal/i18n"
	"sanaaBack/internal/marketplace/celebration"
	"sanaaBack/internal/models"
	"sanaaBack/internal/signing"
)

var (
	ErrResendCooldown    = errors.New("verification: resend requested too soon")
	ErrVerificationEmail = errors.New("verification: email function failed")
)

// FunctionError is returned when the email function answers with a non-2xx status.
type FunctionError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *FunctionError) Error() string {
	return fmt.Sprintf("verification function: %s: %s", e.Status, e.Body)
}

type VerificationConfig struct {
	Endpoint string
	Secret   string
	Cooldown time.Duration
	Timeout  time.Duration

	// Cooldown keys; Redis in production.
	Once   celebration.OnceStore
	Client *http.Client
	Logger *slog.Logger
}

// VerificationEmailService calls the serverless function that sends the
// account verification email.
type VerificationEmailService struct {
	endpoint string
	secret   string
	cooldown time.Duration
	once     celebration.OnceStore
	client   *http.Client
	logger   *slog.Logger
}

func NewVerificationEmailService(cfg VerificationConfig) (*VerificationEmailService, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" || cfg.Secret == "" {
		return nil, fmt.Errorf("verification: endpoint and secret are required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	client := cfg.Client
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	once := cfg.Once
	if once == nil {
		once = celebration.NewMemoryOnce()
	}
	cooldown := cfg.Cooldown
	if cooldown <= 0 {
		cooldown = time.Minute
	}
	logger.Info("verification email initialized", "endpoint_set", true, "cooldown", cooldown.String())
	return &VerificationEmailService{
		endpoint: cfg.Endpoint,
		secret:   cfg.Secret,
		cooldown: cooldown,
		once:     once,
		client:   client,
		logger:   logger,
	}, nil
}

type verificationRequest struct {
	UserID   string `json:"userId,omitempty"`
	Email    string `json:"email"`
	FullName string `json:"fullName,omitempty"`
	UserType string `json:"userType,omitempty"`
	Language string `json:"language"`
}

type verificationResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId"`
	Error     string `json:"error"`
}

// Send asks the function to email p. A second call for the same address
// within the cooldown returns ErrResendCooldown without calling out.
func (s *VerificationEmailService) Send(ctx context.Context, p models.Profile, lang i18n.Language) (string, error) {
	email := strings.ToLower(strings.TrimSpace(p.Email))
	if email == "" {
		return "", models.ErrInvalidInput
	}
	first, err := s.once.Once(ctx, "verification:cooldown:"+email, s.cooldown)
	if err != nil {
		return "", err
	}
	if !first {
		return "", ErrResendCooldown
	}

	body, err := json.Marshal(verificationRequest{
		UserID:   p.ID,
		Email:    email,
		FullName: p.FullName,
		UserType: string(p.Role),
		Language: string(lang),
	})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Signature", signing.Sign(body, s.secret))

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error("verification request failed", "user_id", p.ID, "err", err)
		return "", fmt.Errorf("%w: %v", ErrVerificationEmail, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read verification response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.logger.Error("verification function error", "status", resp.StatusCode, "body", string(b))
		return "", &FunctionError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(b)}
	}

	var out verificationResponse
	if err := json.Unmarshal(b, &out); err != nil {
		return "", fmt.Errorf("decode verification response: %w", err)
	}
	if !out.Success {
		s.logger.Error("verification function rejected", "user_id", p.ID, "error", out.Error)
		return "", fmt.Errorf("%w: %s", ErrVerificationEmail, out.Error)
	}
	s.logger.Info("verification email sent", "user_id", p.ID, "message_id", out.MessageID)
	return out.MessageID, nil
}
