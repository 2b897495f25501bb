package timeutil

import (
	"testing"
	"time"
)

func TestInRiyadh(t *testing.T) {
	utc := time.Date(2026, 6, 1, 21, 30, 0, 0, time.UTC)
	got := InRiyadh(utc)
	if got.Hour() != 0 || got.Day() != 2 {
		t.Fatalf("expected 00:30 next day, got %s", got)
	}
	if !got.Equal(utc) {
		t.Fatalf("conversion must keep the instant")
	}
	if _, offset := Now().Zone(); offset != 3*60*60 {
		t.Fatalf("expected +03:00, got %d", offset)
	}
}
