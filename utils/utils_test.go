package utils

import (
	"encoding/base64"
	"testing"
	"time"

	"sanaaBack/internal/models"
)

func TestManagerRoundTrip(t *testing.T) {
	m, err := NewManager("secret")
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	token, err := m.NewJWT("u-1", models.RoleSeller, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "u-1" || claims.Role != models.RoleSeller {
		t.Fatalf("unexpected claims %+v", claims)
	}

	other, _ := NewManager("other")
	if _, err := other.Parse(token); err == nil {
		t.Fatalf("expected signature mismatch")
	}
	expired, _ := m.NewJWT("u-1", models.RoleBuyer, -time.Minute)
	if _, err := m.Parse(expired); err == nil {
		t.Fatalf("expected expired token to fail")
	}
	if _, err := NewManager(""); err == nil {
		t.Fatalf("expected empty key error")
	}
}

func TestRefreshTokenUnique(t *testing.T) {
	m, _ := NewManager("secret")
	a, _ := m.NewRefreshToken()
	b, _ := m.NewRefreshToken()
	if len(a) != 64 || a == b {
		t.Fatalf("unexpected refresh tokens %q %q", a, b)
	}
}

// smallest valid PNG header plus IHDR chunk start
var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}

func TestDecodeImageDataURL(t *testing.T) {
	good := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes)
	img, err := DecodeImageDataURL(good)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Ext != "png" || img.ContentType != "image/png" || len(img.Data) != len(pngBytes) {
		t.Fatalf("unexpected image %+v", img)
	}

	bad := []string{
		"",
		"image/png;base64,AAAA",
		"data:image/png,AAAA",
		"data:text/plain;base64," + base64.StdEncoding.EncodeToString([]byte("hello")),
		"data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(pngBytes),
		"data:image/png;base64,@@@",
	}
	for _, s := range bad {
		if _, err := DecodeImageDataURL(s); err == nil {
			t.Errorf("expected error for %q", s)
		}
	}
}
