package models

import "time"

type QuoteStatus string

const (
	QuotePending           QuoteStatus = "pending"
	QuoteNegotiating       QuoteStatus = "negotiating"
	QuoteAccepted          QuoteStatus = "accepted"
	QuoteRevisionRequested QuoteStatus = "revision_requested"
	QuoteRejected          QuoteStatus = "rejected"
)

// Live reports whether the buyer can still act on the quote.
func (s QuoteStatus) Live() bool {
	switch s {
	case QuotePending, QuoteNegotiating, QuoteRevisionRequested:
		return true
	}
	return false
}

// QuoteSubmission is a seller's bid against a maintenance request.
type QuoteSubmission struct {
	ID           string      `json:"id"`
	RequestID    string      `json:"request_id"`
	SellerID     string      `json:"seller_id"`
	Price        float64     `json:"price"`
	Duration     string      `json:"duration"`
	Description  string      `json:"description,omitempty"`
	Status       QuoteStatus `json:"status"`
	RevisionNote *string     `json:"revision_note,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// QuoteParties identifies both sides of a quote.
type QuoteParties struct {
	QuoteID   string      `json:"quote_id"`
	RequestID string      `json:"request_id"`
	BuyerID   string      `json:"buyer_id"`
	SellerID  string      `json:"seller_id"`
	Status    QuoteStatus `json:"status"`
}

// Counterpart returns the other party of the quote, or "" when userID is not a party.
func (p QuoteParties) Counterpart(userID string) string {
	switch userID {
	case p.BuyerID:
		return p.SellerID
	case p.SellerID:
		return p.BuyerID
	}
	return ""
}

// QuoteTemplate is a reusable quote body a seller keeps for similar jobs.
type QuoteTemplate struct {
	ID          string    `json:"id"`
	SellerID    string    `json:"seller_id"`
	Name        string    `json:"name"`
	Price       *float64  `json:"price,omitempty"`
	Duration    string    `json:"duration,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
