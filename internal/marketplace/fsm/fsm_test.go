package fsm

import (
	"testing"

	"sanaaBack/internal/models"
)

func TestCanTransition(t *testing.T) {
	if !CanTransition(Bookings, string(models.BookingPending), string(models.BookingAccepted)) {
		t.Fatalf("expected pending -> accepted to be allowed")
	}
	if CanTransition(Bookings, string(models.BookingCompleted), string(models.BookingPending)) {
		t.Fatalf("expected completed -> pending to be rejected")
	}
	if !CanTransition(Quotes, string(models.QuoteNegotiating), string(models.QuoteNegotiating)) {
		t.Fatalf("expected same state transition to be allowed")
	}
	if CanTransition(Contracts, string(models.ContractDraft), string(models.ContractExecuted)) {
		t.Fatalf("a draft contract must not jump to executed")
	}
	if CanTransition(Entity("unknown"), "a", "b") {
		t.Fatalf("unknown entity must not allow transitions")
	}
}

func TestNegotiationsAreImmutableOnceAnswered(t *testing.T) {
	for _, from := range []models.NegotiationStatus{models.NegotiationAccepted, models.NegotiationDeclined} {
		if !Terminal(Negotiations, string(from)) {
			t.Errorf("%s should be terminal", from)
		}
		if CanTransition(Negotiations, string(from), string(models.NegotiationOpen)) {
			t.Errorf("%s must not reopen", from)
		}
	}
}

func TestContractSigningPaths(t *testing.T) {
	buyerFirst := []models.ContractStatus{models.ContractDraft, models.ContractReadyToSign, models.ContractPendingSeller, models.ContractExecuted}
	sellerFirst := []models.ContractStatus{models.ContractDraft, models.ContractReadyToSign, models.ContractPendingBuyer, models.ContractExecuted}
	for _, path := range [][]models.ContractStatus{buyerFirst, sellerFirst} {
		for i := 1; i < len(path); i++ {
			if !CanTransition(Contracts, string(path[i-1]), string(path[i])) {
				t.Fatalf("expected %s -> %s", path[i-1], path[i])
			}
		}
	}
}
