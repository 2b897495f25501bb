package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sanaaBack/internal/i18n"
	"sanaaBack/internal/models"
	"sanaaBack/internal/signing"
)

func newVerificationForTest(t *testing.T, handler http.HandlerFunc) *VerificationEmailService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc, err := NewVerificationEmailService(VerificationConfig{
		Endpoint: srv.URL,
		Secret:   "shh",
		Cooldown: time.Minute,
		Client:   srv.Client(),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestVerificationEmailSend_SignsPayload(t *testing.T) {
	var got verificationRequest
	svc := newVerificationForTest(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if !signing.VerifyHMAC(body, r.Header.Get("X-Signature"), "shh") {
			t.Errorf("signature mismatch for %s", body)
		}
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Write([]byte(`{"success":true,"messageId":"m-1"}`))
	})

	p := models.Profile{ID: "u1", Email: " Sara@Example.com ", FullName: "Sara", Role: models.RoleSeller}
	id, err := svc.Send(context.Background(), p, i18n.Arabic)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if id != "m-1" {
		t.Fatalf("message id = %q", id)
	}
	if got.Email != "sara@example.com" || got.UserType != "seller" || got.Language != "ar" || got.UserID != "u1" {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestVerificationEmailSend_Cooldown(t *testing.T) {
	calls := 0
	svc := newVerificationForTest(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"success":true,"messageId":"m"}`))
	})
	p := models.Profile{ID: "u1", Email: "a@b.co"}

	if _, err := svc.Send(context.Background(), p, i18n.English); err != nil {
		t.Fatalf("first send: %v", err)
	}
	if _, err := svc.Send(context.Background(), p, i18n.English); !errors.Is(err, ErrResendCooldown) {
		t.Fatalf("expected cooldown, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("function called %d times", calls)
	}
}

func TestVerificationEmailSend_FunctionError(t *testing.T) {
	svc := newVerificationForTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"error":"smtp down"}`))
	})
	_, err := svc.Send(context.Background(), models.Profile{Email: "a@b.co"}, i18n.English)

	var fe *FunctionError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FunctionError, got %v", err)
	}
	if fe.StatusCode != http.StatusBadGateway {
		t.Fatalf("status = %d", fe.StatusCode)
	}
}

func TestVerificationEmailSend_Unsuccessful(t *testing.T) {
	svc := newVerificationForTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"error":"bad address"}`))
	})
	_, err := svc.Send(context.Background(), models.Profile{Email: "a@b.co"}, i18n.English)
	if !errors.Is(err, ErrVerificationEmail) {
		t.Fatalf("expected ErrVerificationEmail, got %v", err)
	}
}

func TestNewVerificationEmailService_RequiresEndpoint(t *testing.T) {
	if _, err := NewVerificationEmailService(VerificationConfig{Secret: "x"}); err == nil {
		t.Fatal("expected error without endpoint")
	}
}
