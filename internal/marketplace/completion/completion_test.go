package completion

import (
	"context"
	"errors"
	"testing"
	"time"

	"sanaaBack/internal/i18n"
	"sanaaBack/internal/models"
)

func TestBuyerActionDisabledUntilContractExecuted(t *testing.T) {
	p := Props{Status: "assigned", ContractFullyExecuted: false}
	first := View(models.RoleBuyer, p, i18n.English)
	if first.Enabled(ActionMarkComplete) {
		t.Fatalf("mark complete must be disabled without an executed contract")
	}
	if first.BannerKey != i18n.CompletionContractPending {
		t.Fatalf("expected contract pending banner, got %s", first.BannerKey)
	}
	for i := 0; i < 3; i++ {
		again := View(models.RoleBuyer, p, i18n.English)
		if again.Enabled(ActionMarkComplete) != first.Enabled(ActionMarkComplete) || again.Banner != first.Banner {
			t.Fatalf("view must be deterministic for identical props")
		}
	}
	if _, err := Reduce(p, EventBuyerMarkedComplete); !errors.Is(err, ErrActionDisabled) {
		t.Fatalf("expected ErrActionDisabled, got %v", err)
	}
}

func TestSellerConfirmEnabledOnlyAfterBuyerFlag(t *testing.T) {
	p := Props{Status: "assigned", ContractFullyExecuted: true, PaymentMethod: models.PaymentCash}
	if View(models.RoleSeller, p, i18n.English).Enabled(ActionConfirmPayment) {
		t.Fatalf("seller action must stay disabled before the buyer marks complete")
	}
	if !View(models.RoleBuyer, p, i18n.English).Enabled(ActionMarkComplete) {
		t.Fatalf("buyer action should be enabled once the contract is executed")
	}

	next, err := Reduce(p, EventBuyerMarkedComplete)
	if err != nil {
		t.Fatalf("reduce: %v", err)
	}
	if p.BuyerMarkedComplete {
		t.Fatalf("reduce must not mutate its input")
	}
	seller := View(models.RoleSeller, next, i18n.English)
	if !seller.Enabled(ActionConfirmPayment) {
		t.Fatalf("seller action should be enabled after the buyer flag is set")
	}
	buyer := View(models.RoleBuyer, next, i18n.Arabic)
	if len(buyer.Actions) != 0 || buyer.BannerKey != i18n.CompletionAwaitingPaymentCash {
		t.Fatalf("buyer should wait on cash payment, got %+v", buyer)
	}

	done, err := Reduce(next, EventSellerConfirmedPayment)
	if err != nil {
		t.Fatalf("reduce: %v", err)
	}
	final := View(models.RoleSeller, done, i18n.English)
	if !final.Terminal || len(final.Actions) != 0 || final.Progress != 100 {
		t.Fatalf("expected terminal view, got %+v", final)
	}
	if _, err := Reduce(done, EventSellerConfirmedPayment); !errors.Is(err, ErrActionDisabled) {
		t.Fatalf("terminal state must reject further events, got %v", err)
	}
}

type stubStore struct {
	rec        Record
	loadErr    error
	writeErr   error
	buyerCalls int
	sellerCall int
	lastTarget Target
}

func (s *stubStore) Load(ctx context.Context, t Target) (Record, error) {
	if s.loadErr != nil {
		return Record{}, s.loadErr
	}
	return s.rec, nil
}

func (s *stubStore) MarkBuyerComplete(ctx context.Context, t Target, at time.Time) error {
	s.buyerCalls++
	s.lastTarget = t
	if s.writeErr != nil {
		return s.writeErr
	}
	s.rec.BuyerMarkedComplete = true
	s.rec.BuyerCompletedAt = &at
	return nil
}

func (s *stubStore) MarkSellerComplete(ctx context.Context, t Target, at time.Time) error {
	s.sellerCall++
	s.lastTarget = t
	if s.writeErr != nil {
		return s.writeErr
	}
	s.rec.SellerMarkedComplete = true
	s.rec.SellerCompletedAt = &at
	s.rec.Status = StatusCompleted
	return nil
}

func newRecord(executed bool) Record {
	return Record{
		Target:   Target{BookingID: "b-1"},
		BuyerID:  "buyer",
		SellerID: "seller",
		Props:    Props{Status: string(models.BookingContractPending), ContractFullyExecuted: executed, PaymentMethod: models.PaymentOnline},
	}
}

func TestServiceHappyPath(t *testing.T) {
	store := &stubStore{rec: newRecord(true)}
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	svc := NewService(store, func() time.Time { return now })

	var events []Event
	svc.OnChange = func(ctx context.Context, ev Event, rec Record) { events = append(events, ev) }

	if _, err := svc.ConfirmPayment(context.Background(), "seller", Target{BookingID: "b-1"}); !errors.Is(err, ErrActionDisabled) {
		t.Fatalf("seller must not confirm before buyer, got %v", err)
	}
	if store.sellerCall != 0 {
		t.Fatalf("no write expected for a disabled action")
	}

	rec, err := svc.MarkComplete(context.Background(), "buyer", Target{BookingID: "b-1"})
	if err != nil {
		t.Fatalf("mark complete: %v", err)
	}
	if !rec.BuyerMarkedComplete || rec.BuyerCompletedAt == nil || !rec.BuyerCompletedAt.Equal(now) {
		t.Fatalf("expected refreshed record with buyer flag, got %+v", rec)
	}
	if store.lastTarget.BookingID != "b-1" || store.lastTarget.RequestID != "" {
		t.Fatalf("write must be scoped to the booking, got %+v", store.lastTarget)
	}

	rec, err = svc.ConfirmPayment(context.Background(), "seller", Target{BookingID: "b-1"})
	if err != nil {
		t.Fatalf("confirm payment: %v", err)
	}
	if rec.State() != StateSellerConfirmed {
		t.Fatalf("expected terminal state, got %s", rec.State())
	}
	if len(events) != 2 || events[0] != EventBuyerMarkedComplete || events[1] != EventSellerConfirmedPayment {
		t.Fatalf("unexpected events %v", events)
	}
}

func TestServiceGuards(t *testing.T) {
	store := &stubStore{rec: newRecord(false)}
	svc := NewService(store, nil)
	ctx := context.Background()

	if _, err := svc.MarkComplete(ctx, "buyer", Target{}); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("expected ErrInvalidTarget, got %v", err)
	}
	if _, err := svc.MarkComplete(ctx, "buyer", Target{BookingID: "b", RequestID: "r"}); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("expected ErrInvalidTarget for two ids, got %v", err)
	}
	if _, err := svc.MarkComplete(ctx, "stranger", Target{BookingID: "b-1"}); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
	if _, err := svc.MarkComplete(ctx, "seller", Target{BookingID: "b-1"}); !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("seller cannot mark complete, got %v", err)
	}
	if _, err := svc.MarkComplete(ctx, "buyer", Target{BookingID: "b-1"}); !errors.Is(err, ErrActionDisabled) {
		t.Fatalf("expected ErrActionDisabled without executed contract, got %v", err)
	}
	if store.buyerCalls != 0 {
		t.Fatalf("no write expected, got %d", store.buyerCalls)
	}
}

func TestServiceWriteFailureLeavesStateUntouched(t *testing.T) {
	store := &stubStore{rec: newRecord(true), writeErr: errors.New("connection reset")}
	svc := NewService(store, nil)
	called := false
	svc.OnChange = func(context.Context, Event, Record) { called = true }

	rec, err := svc.MarkComplete(context.Background(), "buyer", Target{BookingID: "b-1"})
	if err == nil {
		t.Fatalf("expected write error")
	}
	if rec.BuyerMarkedComplete || store.rec.BuyerMarkedComplete {
		t.Fatalf("state must not change on failure")
	}
	if called {
		t.Fatalf("refresh hook must only run after success")
	}
}
