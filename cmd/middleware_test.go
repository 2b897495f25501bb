package main

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sanaaBack/internal/handlers"
	"sanaaBack/internal/i18n"
	"sanaaBack/internal/models"
	"sanaaBack/utils"
)

func newTestApp(t *testing.T) *application {
	t.Helper()
	tm, err := utils.NewManager("test-secret")
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	discard := log.New(io.Discard, "", 0)
	return &application{infoLog: discard, errorLog: discard, tokenManager: tm}
}

func TestDetectLanguage(t *testing.T) {
	cases := []struct {
		url    string
		header string
		want   i18n.Language
	}{
		{"/x?lang=ar", "en-US", i18n.Arabic},
		{"/x", "ar-SA,ar;q=0.9", i18n.Arabic},
		{"/x?lang=xx", "en", i18n.English},
	}
	for _, tc := range cases {
		var got i18n.Language
		h := detectLanguage(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = handlers.Language(r.Context())
		}))
		req := httptest.NewRequest(http.MethodGet, tc.url, nil)
		req.Header.Set("Accept-Language", tc.header)
		h.ServeHTTP(httptest.NewRecorder(), req)
		if got != tc.want {
			t.Fatalf("%s %q: expected %s, got %s", tc.url, tc.header, tc.want, got)
		}
	}
}

func TestJWTMiddleware(t *testing.T) {
	app := newTestApp(t)
	sellerToken, err := app.tokenManager.NewJWT("seller-1", models.RoleSeller, time.Hour)
	if err != nil {
		t.Fatalf("NewJWT: %v", err)
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	cases := []struct {
		name   string
		token  string
		role   models.Role
		status int
		code   i18n.Key
	}{
		{"missing token", "", "", http.StatusUnauthorized, i18n.ErrUnauthorized},
		{"garbage token", "abc", "", http.StatusUnauthorized, i18n.ErrUnauthorized},
		{"any role", sellerToken, "", http.StatusNoContent, ""},
		{"matching role", sellerToken, models.RoleSeller, http.StatusNoContent, ""},
		{"wrong role", sellerToken, models.RoleBuyer, http.StatusForbidden, i18n.ErrForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/profile?lang=ar", nil)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			rr := httptest.NewRecorder()
			detectLanguage(app.JWTMiddleware(next, tc.role)).ServeHTTP(rr, req)
			if rr.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rr.Code)
			}
			if tc.code == "" {
				return
			}
			var body struct {
				Error string   `json:"error"`
				Code  i18n.Key `json:"code"`
			}
			if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Code != tc.code || body.Error != i18n.T(i18n.Arabic, tc.code) {
				t.Fatalf("expected localized %s, got %+v", tc.code, body)
			}
		})
	}
}

func TestJWTMiddlewareLanguage(t *testing.T) {
	app := newTestApp(t)
	app.userLanguage = func(_ context.Context, userID string) i18n.Language {
		if userID != "buyer-1" {
			t.Fatalf("unexpected lookup for %s", userID)
		}
		return i18n.Arabic
	}
	token, err := app.tokenManager.NewJWT("buyer-1", models.RoleBuyer, time.Hour)
	if err != nil {
		t.Fatalf("NewJWT: %v", err)
	}

	cases := []struct {
		name string
		url  string
		want i18n.Language
	}{
		{"explicit lang wins", "/profile?lang=en", i18n.English},
		{"stored language replaces header", "/profile", i18n.Arabic},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got i18n.Language
			h := detectLanguage(app.JWTMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = handlers.Language(r.Context())
			}), ""))
			req := httptest.NewRequest(http.MethodGet, tc.url, nil)
			req.Header.Set("Authorization", "Bearer "+token)
			req.Header.Set("Accept-Language", "en-US")
			h.ServeHTTP(httptest.NewRecorder(), req)
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestRecoverPanic(t *testing.T) {
	app := newTestApp(t)
	h := app.recoverPanic(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if rr.Header().Get("Connection") != "close" {
		t.Fatal("expected Connection: close")
	}
}
