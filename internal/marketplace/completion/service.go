package completion

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sanaaBack/internal/models"
)

var (
	ErrInvalidTarget  = errors.New("completion: exactly one of request_id or booking_id is required")
	ErrNotParticipant = errors.New("completion: caller is not a party of this record")
)

// Target points at the record that owns the completion flags.
type Target struct {
	RequestID string `json:"request_id,omitempty"`
	BookingID string `json:"booking_id,omitempty"`
}

func (t Target) Validate() error {
	hasRequest := strings.TrimSpace(t.RequestID) != ""
	hasBooking := strings.TrimSpace(t.BookingID) != ""
	if hasRequest == hasBooking {
		return ErrInvalidTarget
	}
	return nil
}

func (t Target) IsBooking() bool {
	return strings.TrimSpace(t.BookingID) != ""
}

func (t Target) ID() string {
	if t.IsBooking() {
		return t.BookingID
	}
	return t.RequestID
}

// Record is the owning job or booking as the card sees it.
type Record struct {
	Target
	BuyerID  string `json:"buyer_id"`
	SellerID string `json:"seller_id"`
	Title    string `json:"title"`
	Props
	BuyerCompletedAt  *time.Time `json:"buyer_completed_at,omitempty"`
	SellerCompletedAt *time.Time `json:"seller_completed_at,omitempty"`
}

func (r Record) RoleOf(userID string) (models.Role, bool) {
	switch {
	case userID == "":
		return "", false
	case userID == r.BuyerID:
		return models.RoleBuyer, true
	case userID == r.SellerID:
		return models.RoleSeller, true
	}
	return "", false
}

// Store persists the completion flags. Each Mark call must be a single
// update scoped to the table that owns the target.
type Store interface {
	Load(ctx context.Context, t Target) (Record, error)
	MarkBuyerComplete(ctx context.Context, t Target, at time.Time) error
	MarkSellerComplete(ctx context.Context, t Target, at time.Time) error
}

type Service struct {
	store Store
	now   func() time.Time

	// OnChange runs after a successful write with the refreshed record.
	OnChange func(ctx context.Context, ev Event, rec Record)
}

func NewService(store Store, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, now: now}
}

// Get loads the record and returns it with the caller's role.
func (s *Service) Get(ctx context.Context, userID string, t Target) (Record, models.Role, error) {
	if err := t.Validate(); err != nil {
		return Record{}, "", err
	}
	rec, err := s.store.Load(ctx, t)
	if err != nil {
		return Record{}, "", err
	}
	role, ok := rec.RoleOf(userID)
	if !ok {
		return Record{}, "", ErrNotParticipant
	}
	return rec, role, nil
}

// MarkComplete records the buyer's confirmation that the work is done.
func (s *Service) MarkComplete(ctx context.Context, userID string, t Target) (Record, error) {
	return s.apply(ctx, userID, t, models.RoleBuyer, EventBuyerMarkedComplete, s.store.MarkBuyerComplete)
}

// ConfirmPayment records the seller's confirmation that payment arrived.
func (s *Service) ConfirmPayment(ctx context.Context, userID string, t Target) (Record, error) {
	return s.apply(ctx, userID, t, models.RoleSeller, EventSellerConfirmedPayment, s.store.MarkSellerComplete)
}

func (s *Service) apply(ctx context.Context, userID string, t Target, want models.Role, ev Event, write func(context.Context, Target, time.Time) error) (Record, error) {
	rec, role, err := s.Get(ctx, userID, t)
	if err != nil {
		return Record{}, err
	}
	if role != want {
		return rec, models.ErrForbidden
	}
	if _, err := Reduce(rec.Props, ev); err != nil {
		return rec, err
	}
	if err := write(ctx, t, s.now()); err != nil {
		return rec, fmt.Errorf("write %s: %w", ev, err)
	}
	refreshed, err := s.store.Load(ctx, t)
	if err != nil {
		return rec, fmt.Errorf("refresh after %s: %w", ev, err)
	}
	if s.OnChange != nil {
		s.OnChange(ctx, ev, refreshed)
	}
	return refreshed, nil
}
