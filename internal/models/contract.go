package models

import "time"

type ContractStatus string

const (
	ContractDraft         ContractStatus = "draft"
	ContractPendingBuyer  ContractStatus = "pending_buyer"
	ContractPendingSeller ContractStatus = "pending_seller"
	ContractReadyToSign   ContractStatus = "ready_to_sign"
	ContractExecuted      ContractStatus = "executed"
)

// Contract binds a quote or a booking. Exactly one of QuoteID and BookingID is set.
type Contract struct {
	ID             string         `json:"id"`
	QuoteID        *string        `json:"quote_id,omitempty"`
	BookingID      *string        `json:"booking_id,omitempty"`
	RequestID      *string        `json:"request_id,omitempty"`
	BuyerID        string         `json:"buyer_id"`
	SellerID       string         `json:"seller_id"`
	Title          string         `json:"title"`
	Terms          string         `json:"terms"`
	Amount         float64        `json:"amount"`
	StartDate      *time.Time     `json:"start_date,omitempty"`
	Location       string         `json:"location,omitempty"`
	PaymentMethod  PaymentMethod  `json:"payment_method"`
	Status         ContractStatus `json:"status"`
	BuyerSignedAt  *time.Time     `json:"buyer_signed_at,omitempty"`
	SellerSignedAt *time.Time     `json:"seller_signed_at,omitempty"`
	ExecutedAt     *time.Time     `json:"executed_at,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// FullyExecuted reports whether both parties have signed.
func (c Contract) FullyExecuted() bool {
	return c.BuyerSignedAt != nil && c.SellerSignedAt != nil
}

func (c Contract) SignedBy(role Role) bool {
	switch role {
	case RoleBuyer:
		return c.BuyerSignedAt != nil
	case RoleSeller:
		return c.SellerSignedAt != nil
	}
	return false
}

// RoleOf returns the role userID plays in the contract.
func (c Contract) RoleOf(userID string) (Role, bool) {
	switch userID {
	case c.BuyerID:
		return RoleBuyer, true
	case c.SellerID:
		return RoleSeller, true
	}
	return "", false
}
