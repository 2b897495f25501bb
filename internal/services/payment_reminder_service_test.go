package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"sanaaBack/internal/i18n"
	"sanaaBack/internal/marketplace/celebration"
	"sanaaBack/internal/marketplace/completion"
)

type stubPending struct {
	records []completion.Record
	before  time.Time
}

func (s *stubPending) PendingPaymentConfirmations(_ context.Context, before time.Time) ([]completion.Record, error) {
	s.before = before
	return s.records, nil
}

type sentNotification struct {
	userID, title, body string
}

type stubNotifier struct {
	sent []sentNotification
	fail map[string]bool
}

func (n *stubNotifier) Notify(_ context.Context, userID, title, body string, _ map[string]string) error {
	if n.fail[userID] {
		return errors.New("boom")
	}
	n.sent = append(n.sent, sentNotification{userID, title, body})
	return nil
}

func TestRemindOverdue_OncePerInterval(t *testing.T) {
	pending := &stubPending{records: []completion.Record{
		{Target: completion.Target{BookingID: "b1"}, BuyerID: "buyer", SellerID: "seller", Title: "Fix sink"},
		{Target: completion.Target{RequestID: "r1"}, BuyerID: "buyer"},
	}}
	notifier := &stubNotifier{}
	svc := &PaymentReminderService{
		Pending:  pending,
		Notifier: notifier,
		Once:     celebration.NewMemoryOnce(),
		Language: func(context.Context, string) i18n.Language { return i18n.Arabic },
		Interval: time.Hour,
	}
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	n, err := svc.RemindOverdue(context.Background(), now, 24*time.Hour)
	if err != nil {
		t.Fatalf("remind: %v", err)
	}
	if n != 1 {
		t.Fatalf("sent = %d, want 1 (record without seller is skipped)", n)
	}
	if !pending.before.Equal(now.Add(-24 * time.Hour)) {
		t.Fatalf("cutoff = %v", pending.before)
	}
	if got := notifier.sent[0]; got.userID != "seller" || got.title != i18n.T(i18n.Arabic, i18n.PaymentReminderTitle) {
		t.Fatalf("unexpected notification %+v", got)
	}

	n, _ = svc.RemindOverdue(context.Background(), now.Add(10*time.Minute), 24*time.Hour)
	if n != 0 {
		t.Fatalf("second run in same interval sent %d", n)
	}
	n, _ = svc.RemindOverdue(context.Background(), now.Add(time.Hour), 24*time.Hour)
	if n != 1 {
		t.Fatalf("next interval sent %d, want 1", n)
	}
}

func TestRemindOverdue_ContinuesAfterFailure(t *testing.T) {
	pending := &stubPending{records: []completion.Record{
		{Target: completion.Target{BookingID: "b1"}, SellerID: "s1", Title: "a"},
		{Target: completion.Target{BookingID: "b2"}, SellerID: "s2", Title: "b"},
	}}
	notifier := &stubNotifier{fail: map[string]bool{"s1": true}}
	svc := &PaymentReminderService{Pending: pending, Notifier: notifier, Once: celebration.NewMemoryOnce()}

	n, err := svc.RemindOverdue(context.Background(), time.Now(), time.Hour)
	if err == nil {
		t.Fatal("expected joined error")
	}
	if n != 1 || len(notifier.sent) != 1 || notifier.sent[0].userID != "s2" {
		t.Fatalf("sent %d: %+v", n, notifier.sent)
	}
}
