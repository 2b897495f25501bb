package main

import (
	"context"
	"log"
	"time"

	"sanaaBack/internal/services"
	"sanaaBack/internal/timeutil"
)

const (
	paymentReminderTimeout = 1 * time.Minute
)

// startPaymentReminder nudges sellers whose buyer marked a job complete more
// than after ago and who have not confirmed payment yet.
func startPaymentReminder(ctx context.Context, svc *services.PaymentReminderService, interval, after time.Duration, infoLog, errorLog *log.Logger) {
	if svc == nil {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		runOnce := func() {
			runCtx, cancel := context.WithTimeout(ctx, paymentReminderTimeout)
			sent, err := svc.RemindOverdue(runCtx, timeutil.Now(), after)
			cancel()
			if err != nil {
				if errorLog != nil {
					errorLog.Printf("payment reminder: %v", err)
				}
			}
			if sent > 0 && infoLog != nil {
				infoLog.Printf("payment reminder: sent %d reminders", sent)
			}
		}

		runOnce()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runOnce()
			}
		}
	}()
}
