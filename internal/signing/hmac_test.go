package signing

import "testing"

func TestSignAndVerify(t *testing.T) {
	body := []byte(`{"email":"a@example.com","language":"ar"}`)
	sig := Sign(body, "secret")
	if !VerifyHMAC(body, sig, "secret") {
		t.Fatalf("expected signature to verify")
	}
	if VerifyHMAC(body, sig, "other") {
		t.Fatalf("expected wrong secret to fail")
	}
	if VerifyHMAC([]byte("tampered"), sig, "secret") {
		t.Fatalf("expected tampered body to fail")
	}
	if VerifyHMAC(body, "not-hex", "secret") {
		t.Fatalf("expected malformed signature to fail")
	}
}
