package services

import (
	"context"

	"sanaaBack/internal/marketplace/completion"
	"sanaaBack/internal/models"
	"sanaaBack/internal/realtime"
)

// CompletionChanged publishes the owning record after a completion write.
func CompletionChanged(broker realtime.Broker) func(ctx context.Context, ev completion.Event, rec completion.Record) {
	return func(ctx context.Context, ev completion.Event, rec completion.Record) {
		if rec.IsBooking() {
			publish(ctx, broker, "booking_requests", rec.BookingID, realtime.OpUpdate, map[string]string{
				"buyer_id":  rec.BuyerID,
				"seller_id": rec.SellerID,
			})
			return
		}
		publish(ctx, broker, "maintenance_requests", rec.RequestID, realtime.OpUpdate, map[string]string{
			"buyer_id":           rec.BuyerID,
			"assigned_seller_id": rec.SellerID,
		})
	}
}

// NegotiationChanged publishes a negotiation row and its quote.
func NegotiationChanged(broker realtime.Broker) func(ctx context.Context, n models.QuoteNegotiation, parties models.QuoteParties) {
	return func(ctx context.Context, n models.QuoteNegotiation, parties models.QuoteParties) {
		publish(ctx, broker, "quote_negotiations", n.ID, realtime.OpUpdate, map[string]string{
			"quote_id":     n.QuoteID,
			"initiator_id": n.InitiatorID,
			"recipient_id": n.RecipientID,
		})
		publish(ctx, broker, "quote_submissions", parties.QuoteID, realtime.OpUpdate, map[string]string{
			"request_id": parties.RequestID,
			"buyer_id":   parties.BuyerID,
			"seller_id":  parties.SellerID,
		})
	}
}
