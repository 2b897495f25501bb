package models

import "time"

type RequestStatus string

const (
	RequestOpen       RequestStatus = "open"
	RequestInProgress RequestStatus = "in_progress"
	RequestCompleted  RequestStatus = "completed"
	RequestClosed     RequestStatus = "closed"
)

const (
	UrgencyLow       = "low"
	UrgencyMedium    = "medium"
	UrgencyHigh      = "high"
	UrgencyEmergency = "emergency"
)

// MaintenanceRequest is a job posted by a buyer for sellers to quote on.
type MaintenanceRequest struct {
	ID                   string        `json:"id"`
	BuyerID              string        `json:"buyer_id"`
	Title                string        `json:"title"`
	Description          string        `json:"description,omitempty"`
	Category             string        `json:"category"`
	City                 string        `json:"city"`
	Urgency              string        `json:"urgency"`
	BudgetMin            *float64      `json:"budget_min,omitempty"`
	BudgetMax            *float64      `json:"budget_max,omitempty"`
	Status               RequestStatus `json:"status"`
	AssignedSellerID     *string       `json:"assigned_seller_id,omitempty"`
	PaymentMethod        PaymentMethod `json:"payment_method"`
	BuyerMarkedComplete  bool          `json:"buyer_marked_complete"`
	SellerMarkedComplete bool          `json:"seller_marked_complete"`
	BuyerCompletedAt     *time.Time    `json:"buyer_completed_at,omitempty"`
	SellerCompletedAt    *time.Time    `json:"seller_completed_at,omitempty"`
	CreatedAt            time.Time     `json:"created_at"`
	UpdatedAt            time.Time     `json:"updated_at"`
}

// RequestFilter narrows job browsing with equality and membership filters.
type RequestFilter struct {
	BuyerID  string          `json:"buyer_id,omitempty"`
	Category string          `json:"category,omitempty"`
	City     string          `json:"city,omitempty"`
	Urgency  string          `json:"urgency,omitempty"`
	Statuses []RequestStatus `json:"statuses,omitempty"`
	Limit    int             `json:"limit,omitempty"`
	Offset   int             `json:"offset,omitempty"`
}

func ValidUrgency(u string) bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyEmergency:
		return true
	}
	return false
}
