package models

import "time"

type BookingStatus string

const (
	BookingPending         BookingStatus = "pending"
	BookingAccepted        BookingStatus = "accepted"
	BookingDeclined        BookingStatus = "declined"
	BookingCounterProposed BookingStatus = "counter_proposed"
	BookingContractPending BookingStatus = "contract_pending"
	BookingCompleted       BookingStatus = "completed"
	BookingCancelled       BookingStatus = "cancelled"
)

// AllowsContractChanges reports whether the booking's contract may still be
// sent or signed.
func (s BookingStatus) AllowsContractChanges() bool {
	return s == BookingContractPending
}

// BookingRequest is a direct request from a buyer to one seller.
type BookingRequest struct {
	ID                   string        `json:"id"`
	BuyerID              string        `json:"buyer_id"`
	SellerID             string        `json:"seller_id"`
	Title                string        `json:"title"`
	Description          string        `json:"description,omitempty"`
	Location             string        `json:"location,omitempty"`
	ProposedDate         *time.Time    `json:"proposed_date,omitempty"`
	ProposedPrice        *float64      `json:"proposed_price,omitempty"`
	CounterDate          *time.Time    `json:"counter_date,omitempty"`
	CounterPrice         *float64      `json:"counter_price,omitempty"`
	CounterMessage       *string       `json:"counter_message,omitempty"`
	FinalDate            *time.Time    `json:"final_date,omitempty"`
	FinalPrice           *float64      `json:"final_price,omitempty"`
	Status               BookingStatus `json:"status"`
	PaymentMethod        PaymentMethod `json:"payment_method"`
	BuyerMarkedComplete  bool          `json:"buyer_marked_complete"`
	SellerMarkedComplete bool          `json:"seller_marked_complete"`
	BuyerCompletedAt     *time.Time    `json:"buyer_completed_at,omitempty"`
	SellerCompletedAt    *time.Time    `json:"seller_completed_at,omitempty"`
	CreatedAt            time.Time     `json:"created_at"`
	UpdatedAt            time.Time     `json:"updated_at"`
}
