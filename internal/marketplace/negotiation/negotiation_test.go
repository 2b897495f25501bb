package negotiation

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"sanaaBack/internal/models"
)

type fakeRepo struct {
	calls        int
	quote        models.QuoteParties
	negotiations map[string]models.QuoteNegotiation
}

func newFakeRepo(status models.QuoteStatus) *fakeRepo {
	return &fakeRepo{
		quote:        models.QuoteParties{QuoteID: "q-1", RequestID: "r-1", BuyerID: "buyer", SellerID: "seller", Status: status},
		negotiations: map[string]models.QuoteNegotiation{},
	}
}

func (f *fakeRepo) QuoteParties(ctx context.Context, quoteID string) (models.QuoteParties, error) {
	f.calls++
	if quoteID != f.quote.QuoteID {
		return models.QuoteParties{}, models.ErrNoRecord
	}
	return f.quote, nil
}

func (f *fakeRepo) Create(ctx context.Context, n models.QuoteNegotiation) error {
	f.calls++
	f.negotiations[n.ID] = n
	if f.quote.Status == models.QuotePending {
		f.quote.Status = models.QuoteNegotiating
	}
	return nil
}

func (f *fakeRepo) Get(ctx context.Context, id string) (models.QuoteNegotiation, error) {
	f.calls++
	n, ok := f.negotiations[id]
	if !ok {
		return models.QuoteNegotiation{}, models.ErrNoRecord
	}
	return n, nil
}

func (f *fakeRepo) SetStatus(ctx context.Context, id string, from, to models.NegotiationStatus, at time.Time) error {
	f.calls++
	n, ok := f.negotiations[id]
	if !ok || n.Status != from {
		return models.ErrConflict
	}
	n.Status = to
	n.RespondedAt = &at
	f.negotiations[id] = n
	return nil
}

func (f *fakeRepo) ListByQuote(ctx context.Context, quoteID string) ([]models.QuoteNegotiation, error) {
	f.calls++
	out := make([]models.QuoteNegotiation, 0, len(f.negotiations))
	for _, n := range f.negotiations {
		if n.QuoteID == quoteID {
			out = append(out, n)
		}
	}
	return out, nil
}

func newService(repo *fakeRepo) *Service {
	clock := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	seq := 0
	svc := NewService(repo, func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	})
	svc.newID = func() string {
		seq++
		return fmt.Sprintf("n-%d", seq)
	}
	return svc
}

func TestEmptyOfferMakesNoCalls(t *testing.T) {
	repo := newFakeRepo(models.QuotePending)
	svc := newService(repo)

	_, err := svc.CreateCounterOffer(context.Background(), "buyer", "q-1", CounterOffer{Duration: "  ", Message: ""})
	if !errors.Is(err, ErrEmptyOffer) {
		t.Fatalf("expected ErrEmptyOffer, got %v", err)
	}
	if repo.calls != 0 {
		t.Fatalf("expected zero repository calls, got %d", repo.calls)
	}

	zero := 0.0
	if _, err := svc.CreateCounterOffer(context.Background(), "buyer", "q-1", CounterOffer{Price: &zero}); !errors.Is(err, ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice, got %v", err)
	}
	if repo.calls != 0 {
		t.Fatalf("expected zero repository calls, got %d", repo.calls)
	}
}

func TestAcceptDoesNotTouchQuoteStatus(t *testing.T) {
	repo := newFakeRepo(models.QuoteNegotiating)
	svc := newService(repo)
	ctx := context.Background()

	price := 450.0
	offer, err := svc.CreateCounterOffer(ctx, "buyer", "q-1", CounterOffer{Price: &price, Message: "Can you do 450?"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if offer.InitiatorID != "buyer" || offer.RecipientID != "seller" || offer.Status != models.NegotiationOpen {
		t.Fatalf("unexpected offer %+v", offer)
	}

	accepted, err := svc.Accept(ctx, "seller", offer.ID)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if accepted.Status != models.NegotiationAccepted {
		t.Fatalf("expected accepted, got %s", accepted.Status)
	}
	if repo.quote.Status != models.QuoteNegotiating {
		t.Fatalf("quote status changed to %s", repo.quote.Status)
	}
	if _, err := svc.Decline(ctx, "seller", offer.ID); !errors.Is(err, ErrNotOpen) {
		t.Fatalf("answered offers are immutable, got %v", err)
	}
}

func TestOnlyRecipientMayAnswer(t *testing.T) {
	repo := newFakeRepo(models.QuotePending)
	svc := newService(repo)
	ctx := context.Background()

	offer, err := svc.CreateCounterOffer(ctx, "seller", "q-1", CounterOffer{Duration: "3 days"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if repo.quote.Status != models.QuoteNegotiating {
		t.Fatalf("opening a negotiation should move a pending quote to negotiating")
	}
	if _, err := svc.Accept(ctx, "seller", offer.ID); !errors.Is(err, ErrOwnOffer) {
		t.Fatalf("expected ErrOwnOffer, got %v", err)
	}
	if _, err := svc.Decline(ctx, "someone", offer.ID); !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	declined, err := svc.Decline(ctx, "buyer", offer.ID)
	if err != nil {
		t.Fatalf("decline: %v", err)
	}
	if declined.Status != models.NegotiationDeclined || declined.RespondedAt == nil {
		t.Fatalf("unexpected declined offer %+v", declined)
	}
}

func TestStrangerCannotOffer(t *testing.T) {
	repo := newFakeRepo(models.QuotePending)
	svc := newService(repo)
	if _, err := svc.CreateCounterOffer(context.Background(), "other", "q-1", CounterOffer{Message: "hi"}); !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	repo.quote.Status = models.QuoteRejected
	if _, err := svc.CreateCounterOffer(context.Background(), "buyer", "q-1", CounterOffer{Message: "hi"}); !errors.Is(err, ErrQuoteClosed) {
		t.Fatalf("expected ErrQuoteClosed, got %v", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	repo := newFakeRepo(models.QuotePending)
	svc := newService(repo)
	ctx := context.Background()
	for _, msg := range []string{"first", "second", "third"} {
		if _, err := svc.CreateCounterOffer(ctx, "buyer", "q-1", CounterOffer{Message: msg}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	list, err := svc.List(ctx, "seller", "q-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 offers, got %d", len(list))
	}
	if *list[0].Message != "third" || *list[2].Message != "first" {
		t.Fatalf("expected newest first, got %s..%s", *list[0].Message, *list[2].Message)
	}
	if _, err := svc.List(ctx, "other", "q-1"); !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
