package models

import "time"

type NegotiationStatus string

const (
	NegotiationOpen     NegotiationStatus = "open"
	NegotiationAccepted NegotiationStatus = "accepted"
	NegotiationDeclined NegotiationStatus = "declined"
)

// QuoteNegotiation is one offer in the append-only history of a quote.
type QuoteNegotiation struct {
	ID              string            `json:"id"`
	QuoteID         string            `json:"quote_id"`
	InitiatorID     string            `json:"initiator_id"`
	RecipientID     string            `json:"recipient_id"`
	OfferedPrice    *float64          `json:"offered_price,omitempty"`
	OfferedDuration *string           `json:"offered_duration,omitempty"`
	Message         *string           `json:"message,omitempty"`
	Status          NegotiationStatus `json:"status"`
	RespondedAt     *time.Time        `json:"responded_at,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}
