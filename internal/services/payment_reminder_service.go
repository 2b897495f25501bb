package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sanaaBack/internal/i18n"
	"sanaaBack/internal/marketplace/celebration"
	"sanaaBack/internal/marketplace/completion"
)

// PendingPayments lists records the buyer marked complete before a cutoff
// that the seller has not confirmed.
type PendingPayments interface {
	PendingPaymentConfirmations(ctx context.Context, before time.Time) ([]completion.Record, error)
}

// PaymentReminderService nudges sellers who have not confirmed payment on
// work the buyer already marked complete.
type PaymentReminderService struct {
	Pending     PendingPayments
	Notifier    celebration.Notifier
	Once        celebration.OnceStore
	Language    func(ctx context.Context, userID string) i18n.Language
	DisplayName func(ctx context.Context, userID string) string
	Interval    time.Duration
}

// RemindOverdue sends at most one reminder per record per interval and
// returns how many went out.
func (s *PaymentReminderService) RemindOverdue(ctx context.Context, now time.Time, after time.Duration) (int, error) {
	records, err := s.Pending.PendingPaymentConfirmations(ctx, now.Add(-after))
	if err != nil {
		return 0, err
	}
	interval := s.Interval
	if interval <= 0 {
		interval = time.Hour
	}
	bucket := now.UnixNano() / int64(interval)

	var (
		sent int
		errs []error
	)
	for _, rec := range records {
		if rec.SellerID == "" {
			continue
		}
		key := fmt.Sprintf("reminder:payment:%s:%d", rec.ID(), bucket)
		first, err := s.Once.Once(ctx, key, interval)
		if err != nil {
			return sent, err
		}
		if !first {
			continue
		}
		lang := i18n.Default
		if s.Language != nil {
			lang = s.Language(ctx, rec.SellerID)
		}
		name := rec.Title
		if s.DisplayName != nil {
			if n := s.DisplayName(ctx, rec.BuyerID); n != "" {
				name = n
			}
		}
		data := map[string]string{"kind": "payment_reminder", "booking_id": rec.BookingID, "request_id": rec.RequestID}
		if err := s.Notifier.Notify(ctx, rec.SellerID, i18n.T(lang, i18n.PaymentReminderTitle), i18n.Tf(lang, i18n.PaymentReminderBody, name), data); err != nil {
			errs = append(errs, fmt.Errorf("remind %s: %w", rec.ID(), err))
			continue
		}
		sent++
	}
	return sent, errors.Join(errs...)
}
