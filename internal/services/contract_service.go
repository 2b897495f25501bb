package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"sanaaBack/internal/marketplace/celebration"
	"sanaaBack/internal/models"
	"sanaaBack/internal/realtime"
	"sanaaBack/internal/repositories"
)

type ContractService struct {
	ContractRepo    *repositories.ContractRepository
	BookingRepo     *repositories.BookingRequestRepository
	QuoteRepo       *repositories.QuoteSubmissionRepository
	RequestRepo     *repositories.MaintenanceRequestRepository
	NegotiationRepo *repositories.QuoteNegotiationRepository
	Broker          realtime.Broker
	Celebrations    *celebration.Dispatcher
	DisplayName     func(ctx context.Context, userID string) string
}

// ContractInput generates a contract for exactly one quote or booking.
// Zero fields are filled from the source record.
type ContractInput struct {
	QuoteID       string               `json:"quote_id,omitempty"`
	BookingID     string               `json:"booking_id,omitempty"`
	Title         string               `json:"title,omitempty"`
	Terms         string               `json:"terms,omitempty"`
	Amount        *float64             `json:"amount,omitempty"`
	StartDate     *time.Time           `json:"start_date,omitempty"`
	Location      string               `json:"location,omitempty"`
	PaymentMethod models.PaymentMethod `json:"payment_method,omitempty"`
}

func (s *ContractService) Create(ctx context.Context, userID string, in ContractInput) (models.Contract, error) {
	hasQuote, hasBooking := in.QuoteID != "", in.BookingID != ""
	if hasQuote == hasBooking {
		return models.Contract{}, models.ErrInvalidInput
	}
	if in.Amount != nil && *in.Amount <= 0 {
		return models.Contract{}, models.ErrInvalidInput
	}
	if in.PaymentMethod != "" && !in.PaymentMethod.Valid() {
		return models.Contract{}, models.ErrInvalidInput
	}

	var (
		c   models.Contract
		err error
	)
	if hasBooking {
		c, err = s.fromBooking(ctx, userID, in.BookingID)
	} else {
		c, err = s.fromQuote(ctx, userID, in.QuoteID)
	}
	if err != nil {
		return models.Contract{}, err
	}

	if t := strings.TrimSpace(in.Title); t != "" {
		c.Title = t
	}
	c.Terms = strings.TrimSpace(in.Terms)
	if in.Amount != nil {
		c.Amount = *in.Amount
	}
	if in.StartDate != nil {
		c.StartDate = in.StartDate
	}
	if l := strings.TrimSpace(in.Location); l != "" {
		c.Location = l
	}
	if in.PaymentMethod != "" {
		c.PaymentMethod = in.PaymentMethod
	}
	if c.PaymentMethod == "" {
		c.PaymentMethod = models.PaymentOnline
	}
	if c.Amount <= 0 {
		return models.Contract{}, models.ErrInvalidInput
	}

	now := time.Now().UTC()
	c.ID = uuid.NewString()
	c.Status = models.ContractDraft
	c.CreatedAt = now
	c.UpdatedAt = now
	if err := s.ContractRepo.Create(ctx, c); err != nil {
		return models.Contract{}, err
	}
	s.publish(ctx, c, realtime.OpInsert)
	if c.BookingID != nil {
		publish(ctx, s.Broker, "booking_requests", *c.BookingID, realtime.OpUpdate, map[string]string{"buyer_id": c.BuyerID, "seller_id": c.SellerID})
	}
	return c, nil
}

func (s *ContractService) fromBooking(ctx context.Context, userID, bookingID string) (models.Contract, error) {
	b, err := s.BookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return models.Contract{}, err
	}
	if b.BuyerID != userID && b.SellerID != userID {
		return models.Contract{}, models.ErrForbidden
	}
	if b.Status != models.BookingAccepted {
		return models.Contract{}, models.ErrInvalidTransition
	}
	if err := s.ensureNone(s.ContractRepo.GetByBooking(ctx, bookingID)); err != nil {
		return models.Contract{}, err
	}
	c := models.Contract{
		BookingID:     &b.ID,
		BuyerID:       b.BuyerID,
		SellerID:      b.SellerID,
		Title:         b.Title,
		Location:      b.Location,
		StartDate:     b.FinalDate,
		PaymentMethod: b.PaymentMethod,
	}
	if b.FinalPrice != nil {
		c.Amount = *b.FinalPrice
	} else if b.ProposedPrice != nil {
		c.Amount = *b.ProposedPrice
	}
	return c, nil
}

// fromQuote lets the buyer turn the quote they picked into a contract. The
// amount follows the latest accepted price offer, if any.
func (s *ContractService) fromQuote(ctx context.Context, userID, quoteID string) (models.Contract, error) {
	parties, err := s.QuoteRepo.Parties(ctx, quoteID)
	if err != nil {
		return models.Contract{}, err
	}
	if parties.BuyerID != userID {
		return models.Contract{}, models.ErrForbidden
	}
	if parties.Status != models.QuotePending && parties.Status != models.QuoteNegotiating {
		return models.Contract{}, models.ErrInvalidTransition
	}
	req, err := s.RequestRepo.GetByID(ctx, parties.RequestID)
	if err != nil {
		return models.Contract{}, err
	}
	if req.Status != models.RequestOpen {
		return models.Contract{}, models.ErrConflict
	}
	if err := s.ensureNone(s.ContractRepo.GetByQuote(ctx, quoteID)); err != nil {
		return models.Contract{}, err
	}
	q, err := s.QuoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return models.Contract{}, err
	}

	c := models.Contract{
		QuoteID:       &q.ID,
		RequestID:     &req.ID,
		BuyerID:       parties.BuyerID,
		SellerID:      parties.SellerID,
		Title:         req.Title,
		Terms:         q.Description,
		Amount:        q.Price,
		Location:      req.City,
		PaymentMethod: req.PaymentMethod,
	}
	history, err := s.NegotiationRepo.ListByQuote(ctx, quoteID)
	if err != nil {
		return models.Contract{}, err
	}
	if price := latestAcceptedPrice(history); price != nil {
		c.Amount = *price
	}
	return c, nil
}

// latestAcceptedPrice walks history newest first and returns the price of
// the first accepted offer that carries one.
func latestAcceptedPrice(history []models.QuoteNegotiation) *float64 {
	var (
		latest *float64
		at     time.Time
	)
	for _, n := range history {
		if n.Status != models.NegotiationAccepted || n.OfferedPrice == nil {
			continue
		}
		if latest == nil || n.CreatedAt.After(at) {
			latest, at = n.OfferedPrice, n.CreatedAt
		}
	}
	return latest
}

func (s *ContractService) ensureNone(_ models.Contract, err error) error {
	switch {
	case err == nil:
		return models.ErrConflict
	case errors.Is(err, models.ErrNoRecord):
		return nil
	}
	return err
}

func (s *ContractService) Get(ctx context.Context, userID, id string) (models.Contract, error) {
	c, err := s.ContractRepo.GetByID(ctx, id)
	if err != nil {
		return models.Contract{}, err
	}
	if _, ok := c.RoleOf(userID); !ok {
		return models.Contract{}, models.ErrForbidden
	}
	return c, nil
}

// Send moves a draft to ready_to_sign.
func (s *ContractService) Send(ctx context.Context, userID, id string) (models.Contract, error) {
	c, err := s.ContractRepo.Update(ctx, id, time.Now().UTC(), sendBy(userID))
	if err != nil {
		return models.Contract{}, err
	}
	s.publish(ctx, c, realtime.OpUpdate)
	return c, nil
}

// Sign records the caller's signature. The second signature executes the contract.
func (s *ContractService) Sign(ctx context.Context, userID, id string) (models.Contract, error) {
	now := time.Now().UTC()
	c, err := s.ContractRepo.Update(ctx, id, now, signBy(userID, now))
	if err != nil {
		return models.Contract{}, err
	}
	s.publish(ctx, c, realtime.OpUpdate)
	if c.Status == models.ContractExecuted {
		s.executed(ctx, c)
	}
	return c, nil
}

func sendBy(userID string) func(c *models.Contract) error {
	return func(c *models.Contract) error {
		if _, ok := c.RoleOf(userID); !ok {
			return models.ErrForbidden
		}
		if c.Status != models.ContractDraft {
			return models.ErrInvalidTransition
		}
		c.Status = models.ContractReadyToSign
		return nil
	}
}

// signBy stamps the caller's signature. The contract is executed exactly when
// both signatures are present.
func signBy(userID string, now time.Time) func(c *models.Contract) error {
	return func(c *models.Contract) error {
		role, ok := c.RoleOf(userID)
		if !ok {
			return models.ErrForbidden
		}
		switch c.Status {
		case models.ContractReadyToSign, models.ContractPendingBuyer, models.ContractPendingSeller:
		default:
			return models.ErrInvalidTransition
		}
		if c.SignedBy(role) {
			return models.ErrConflict
		}
		signedAt := now
		if role == models.RoleBuyer {
			c.BuyerSignedAt = &signedAt
		} else {
			c.SellerSignedAt = &signedAt
		}
		switch {
		case c.FullyExecuted():
			c.Status = models.ContractExecuted
			c.ExecutedAt = &signedAt
		case role == models.RoleBuyer:
			c.Status = models.ContractPendingSeller
		default:
			c.Status = models.ContractPendingBuyer
		}
		return nil
	}
}

func (s *ContractService) executed(ctx context.Context, c models.Contract) {
	if c.QuoteID != nil && c.RequestID != nil {
		publish(ctx, s.Broker, "quote_submissions", *c.QuoteID, realtime.OpUpdate, map[string]string{
			"request_id": *c.RequestID, "seller_id": c.SellerID, "buyer_id": c.BuyerID,
		})
		publish(ctx, s.Broker, "maintenance_requests", *c.RequestID, realtime.OpUpdate, map[string]string{
			"buyer_id": c.BuyerID, "assigned_seller_id": c.SellerID,
		})
	}

	details := func(other string) celebration.Details {
		d := celebration.Details{Amount: &c.Amount, Date: c.StartDate, Location: c.Location}
		if s.DisplayName != nil {
			d.Name = s.DisplayName(ctx, other)
		}
		return d
	}
	celebrate(ctx, s.Celebrations, celebration.ContractExecuted, c.ID, c.BuyerID, details(c.SellerID))
	celebrate(ctx, s.Celebrations, celebration.ContractExecuted, c.ID, c.SellerID, details(c.BuyerID))
	if c.QuoteID != nil {
		celebrate(ctx, s.Celebrations, celebration.JobWon, *c.QuoteID, c.SellerID, details(c.BuyerID))
	}
}

func (s *ContractService) publish(ctx context.Context, c models.Contract, op realtime.Op) {
	filters := map[string]string{"buyer_id": c.BuyerID, "seller_id": c.SellerID}
	if c.BookingID != nil {
		filters["booking_id"] = *c.BookingID
	}
	if c.QuoteID != nil {
		filters["quote_id"] = *c.QuoteID
	}
	publish(ctx, s.Broker, "contracts", c.ID, op, filters)
}
