package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"sanaaBack/internal/marketplace/celebration"
	"sanaaBack/internal/models"
	"sanaaBack/internal/realtime"
	"sanaaBack/internal/repositories"
)

type BookingService struct {
	BookingRepo  *repositories.BookingRequestRepository
	Broker       realtime.Broker
	Celebrations *celebration.Dispatcher
	DisplayName  func(ctx context.Context, userID string) string
}

type NewBookingInput struct {
	SellerID      string               `json:"seller_id"`
	Title         string               `json:"title"`
	Description   string               `json:"description"`
	Location      string               `json:"location"`
	ProposedDate  *time.Time           `json:"proposed_date,omitempty"`
	ProposedPrice *float64             `json:"proposed_price,omitempty"`
	PaymentMethod models.PaymentMethod `json:"payment_method,omitempty"`
}

type CounterInput struct {
	Date    *time.Time `json:"date,omitempty"`
	Price   *float64   `json:"price,omitempty"`
	Message string     `json:"message,omitempty"`
}

func (s *BookingService) Create(ctx context.Context, buyerID string, role models.Role, in NewBookingInput) (models.BookingRequest, error) {
	if role != models.RoleBuyer {
		return models.BookingRequest{}, models.ErrForbidden
	}
	if strings.TrimSpace(in.SellerID) == "" || strings.TrimSpace(in.Title) == "" || in.SellerID == buyerID {
		return models.BookingRequest{}, models.ErrInvalidInput
	}
	if in.ProposedPrice != nil && *in.ProposedPrice <= 0 {
		return models.BookingRequest{}, models.ErrInvalidInput
	}
	if in.PaymentMethod == "" {
		in.PaymentMethod = models.PaymentOnline
	}
	if !in.PaymentMethod.Valid() {
		return models.BookingRequest{}, models.ErrInvalidInput
	}
	now := time.Now().UTC()
	b := models.BookingRequest{
		ID:            uuid.NewString(),
		BuyerID:       buyerID,
		SellerID:      in.SellerID,
		Title:         strings.TrimSpace(in.Title),
		Description:   strings.TrimSpace(in.Description),
		Location:      strings.TrimSpace(in.Location),
		ProposedDate:  in.ProposedDate,
		ProposedPrice: in.ProposedPrice,
		Status:        models.BookingPending,
		PaymentMethod: in.PaymentMethod,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.BookingRepo.Create(ctx, b); err != nil {
		return models.BookingRequest{}, err
	}
	s.publish(ctx, b, realtime.OpInsert)
	return b, nil
}

func (s *BookingService) ListMine(ctx context.Context, userID string, role models.Role) ([]models.BookingRequest, error) {
	return s.BookingRepo.ListForUser(ctx, userID, role)
}

func (s *BookingService) Get(ctx context.Context, userID, id string) (models.BookingRequest, error) {
	b, err := s.BookingRepo.GetByID(ctx, id)
	if err != nil {
		return models.BookingRequest{}, err
	}
	if b.BuyerID != userID && b.SellerID != userID {
		return models.BookingRequest{}, models.ErrForbidden
	}
	return b, nil
}

// Accept confirms the buyer's proposal as it stands.
func (s *BookingService) Accept(ctx context.Context, sellerID, id string) (models.BookingRequest, error) {
	b, err := s.update(ctx, sellerID, models.RoleSeller, id, acceptProposal)
	if err != nil {
		return models.BookingRequest{}, err
	}
	s.confirmed(ctx, b)
	return b, nil
}

func acceptProposal(b *models.BookingRequest) error {
	if b.Status != models.BookingPending {
		return models.ErrInvalidTransition
	}
	b.Status = models.BookingAccepted
	b.FinalDate = b.ProposedDate
	b.FinalPrice = b.ProposedPrice
	return nil
}

// Decline ends the negotiation: the seller declines a proposal, the buyer a
// counter proposal.
func (s *BookingService) Decline(ctx context.Context, userID, id string) (models.BookingRequest, error) {
	return s.update(ctx, userID, "", id, declineBy(userID))
}

func declineBy(userID string) func(b *models.BookingRequest) error {
	return func(b *models.BookingRequest) error {
		switch {
		case b.Status == models.BookingPending && b.SellerID != userID,
			b.Status == models.BookingCounterProposed && b.BuyerID != userID:
			return models.ErrForbidden
		}
		b.Status = models.BookingDeclined
		return nil
	}
}

// Counter proposes a different date or price back to the buyer.
func (s *BookingService) Counter(ctx context.Context, sellerID, id string, in CounterInput) (models.BookingRequest, error) {
	if in.Date == nil && in.Price == nil {
		return models.BookingRequest{}, models.ErrInvalidInput
	}
	if in.Price != nil && *in.Price <= 0 {
		return models.BookingRequest{}, models.ErrInvalidInput
	}
	return s.update(ctx, sellerID, models.RoleSeller, id, counterWith(in))
}

func counterWith(in CounterInput) func(b *models.BookingRequest) error {
	message := strings.TrimSpace(in.Message)
	return func(b *models.BookingRequest) error {
		if b.Status != models.BookingPending {
			return models.ErrInvalidTransition
		}
		b.Status = models.BookingCounterProposed
		b.CounterDate = in.Date
		b.CounterPrice = in.Price
		b.CounterMessage = nil
		if message != "" {
			b.CounterMessage = &message
		}
		return nil
	}
}

// AcceptCounter settles the booking on the seller's counter proposal.
func (s *BookingService) AcceptCounter(ctx context.Context, buyerID, id string) (models.BookingRequest, error) {
	b, err := s.update(ctx, buyerID, models.RoleBuyer, id, settleCounter)
	if err != nil {
		return models.BookingRequest{}, err
	}
	s.confirmed(ctx, b)
	return b, nil
}

// settleCounter takes the counter values where the seller gave them and the
// buyer's proposal otherwise.
func settleCounter(b *models.BookingRequest) error {
	if b.Status != models.BookingCounterProposed {
		return models.ErrInvalidTransition
	}
	b.Status = models.BookingAccepted
	b.FinalDate = b.ProposedDate
	if b.CounterDate != nil {
		b.FinalDate = b.CounterDate
	}
	b.FinalPrice = b.ProposedPrice
	if b.CounterPrice != nil {
		b.FinalPrice = b.CounterPrice
	}
	return nil
}

// Cancel is open to either party until the contract is executed. The
// repository checks the contract under the booking lock.
func (s *BookingService) Cancel(ctx context.Context, userID, id string) (models.BookingRequest, error) {
	return s.update(ctx, userID, "", id, func(b *models.BookingRequest) error {
		b.Status = models.BookingCancelled
		return nil
	})
}

// update runs fn under the row lock once the caller is known to hold role
// on the booking. An empty role admits either party.
func (s *BookingService) update(ctx context.Context, userID string, role models.Role, id string, fn func(b *models.BookingRequest) error) (models.BookingRequest, error) {
	b, err := s.BookingRepo.Update(ctx, id, time.Now().UTC(), func(b *models.BookingRequest) error {
		switch {
		case role == models.RoleBuyer && b.BuyerID != userID,
			role == models.RoleSeller && b.SellerID != userID,
			role == "" && b.BuyerID != userID && b.SellerID != userID:
			return models.ErrForbidden
		}
		return fn(b)
	})
	if err != nil {
		return models.BookingRequest{}, err
	}
	s.publish(ctx, b, realtime.OpUpdate)
	return b, nil
}

func (s *BookingService) confirmed(ctx context.Context, b models.BookingRequest) {
	for recipient, other := range map[string]string{b.BuyerID: b.SellerID, b.SellerID: b.BuyerID} {
		details := celebration.Details{Amount: b.FinalPrice, Date: b.FinalDate, Location: b.Location}
		if s.DisplayName != nil {
			details.Name = s.DisplayName(ctx, other)
		}
		celebrate(ctx, s.Celebrations, celebration.BookingConfirmed, b.ID, recipient, details)
	}
}

func (s *BookingService) publish(ctx context.Context, b models.BookingRequest, op realtime.Op) {
	publish(ctx, s.Broker, "booking_requests", b.ID, op, map[string]string{
		"buyer_id":  b.BuyerID,
		"seller_id": b.SellerID,
	})
}
