package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"sanaaBack/internal/models"
	"sanaaBack/internal/realtime"
	"sanaaBack/internal/repositories"
)

type QuoteService struct {
	QuoteRepo   *repositories.QuoteSubmissionRepository
	RequestRepo *repositories.MaintenanceRequestRepository
	Broker      realtime.Broker
}

type QuoteInput struct {
	Price       float64 `json:"price"`
	Duration    string  `json:"duration"`
	Description string  `json:"description"`
}

func (in QuoteInput) validate() error {
	if in.Price <= 0 || strings.TrimSpace(in.Duration) == "" {
		return models.ErrInvalidInput
	}
	return nil
}

// Submit places the seller's single quote on an open job.
func (s *QuoteService) Submit(ctx context.Context, sellerID string, role models.Role, requestID string, in QuoteInput) (models.QuoteSubmission, error) {
	if role != models.RoleSeller {
		return models.QuoteSubmission{}, models.ErrForbidden
	}
	if err := in.validate(); err != nil {
		return models.QuoteSubmission{}, err
	}
	req, err := s.RequestRepo.GetByID(ctx, requestID)
	if err != nil {
		return models.QuoteSubmission{}, err
	}
	if req.Status != models.RequestOpen {
		return models.QuoteSubmission{}, models.ErrConflict
	}
	if req.BuyerID == sellerID {
		return models.QuoteSubmission{}, models.ErrForbidden
	}
	exists, err := s.QuoteRepo.ExistsForSeller(ctx, requestID, sellerID)
	if err != nil {
		return models.QuoteSubmission{}, err
	}
	if exists {
		return models.QuoteSubmission{}, models.ErrConflict
	}

	now := time.Now().UTC()
	q := models.QuoteSubmission{
		ID:          uuid.NewString(),
		RequestID:   requestID,
		SellerID:    sellerID,
		Price:       in.Price,
		Duration:    strings.TrimSpace(in.Duration),
		Description: strings.TrimSpace(in.Description),
		Status:      models.QuotePending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.QuoteRepo.Create(ctx, q); err != nil {
		return models.QuoteSubmission{}, err
	}
	s.publish(ctx, q, req.BuyerID, realtime.OpInsert)
	return q, nil
}

// ListForRequest returns every quote to the job's buyer and only their own to a seller.
func (s *QuoteService) ListForRequest(ctx context.Context, userID, requestID string) ([]models.QuoteSubmission, error) {
	req, err := s.RequestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	quotes, err := s.QuoteRepo.ListByRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.BuyerID == userID {
		return quotes, nil
	}
	own := []models.QuoteSubmission{}
	for _, q := range quotes {
		if q.SellerID == userID {
			own = append(own, q)
		}
	}
	return own, nil
}

func (s *QuoteService) ListMine(ctx context.Context, sellerID string) ([]models.QuoteSubmission, error) {
	return s.QuoteRepo.ListBySeller(ctx, sellerID)
}

func (s *QuoteService) Get(ctx context.Context, userID, quoteID string) (models.QuoteSubmission, models.QuoteParties, error) {
	parties, err := s.QuoteRepo.Parties(ctx, quoteID)
	if err != nil {
		return models.QuoteSubmission{}, models.QuoteParties{}, err
	}
	if parties.Counterpart(userID) == "" {
		return models.QuoteSubmission{}, models.QuoteParties{}, models.ErrForbidden
	}
	q, err := s.QuoteRepo.GetByID(ctx, quoteID)
	return q, parties, err
}

// RequestRevision sends the quote back to its seller with a note.
func (s *QuoteService) RequestRevision(ctx context.Context, buyerID, quoteID, note string) (models.QuoteSubmission, error) {
	note = strings.TrimSpace(note)
	if note == "" {
		return models.QuoteSubmission{}, models.ErrInvalidInput
	}
	return s.buyerUpdate(ctx, buyerID, quoteID, func(q *models.QuoteSubmission) error {
		if !q.Status.Live() {
			return models.ErrInvalidTransition
		}
		q.Status = models.QuoteRevisionRequested
		q.RevisionNote = &note
		return nil
	})
}

func (s *QuoteService) Reject(ctx context.Context, buyerID, quoteID string) (models.QuoteSubmission, error) {
	return s.buyerUpdate(ctx, buyerID, quoteID, func(q *models.QuoteSubmission) error {
		if !q.Status.Live() {
			return models.ErrInvalidTransition
		}
		q.Status = models.QuoteRejected
		return nil
	})
}

// Revise lets the seller edit a live quote. A quote waiting for revision goes
// back to pending.
func (s *QuoteService) Revise(ctx context.Context, sellerID, quoteID string, in QuoteInput) (models.QuoteSubmission, error) {
	if err := in.validate(); err != nil {
		return models.QuoteSubmission{}, err
	}
	parties, err := s.QuoteRepo.Parties(ctx, quoteID)
	if err != nil {
		return models.QuoteSubmission{}, err
	}
	if parties.SellerID != sellerID {
		return models.QuoteSubmission{}, models.ErrForbidden
	}
	q, err := s.QuoteRepo.Update(ctx, quoteID, time.Now().UTC(), func(q *models.QuoteSubmission) error {
		switch q.Status {
		case models.QuoteRevisionRequested:
			q.Status = models.QuotePending
			q.RevisionNote = nil
		case models.QuotePending, models.QuoteNegotiating:
		default:
			return models.ErrInvalidTransition
		}
		q.Price = in.Price
		q.Duration = strings.TrimSpace(in.Duration)
		q.Description = strings.TrimSpace(in.Description)
		return nil
	})
	if err != nil {
		return models.QuoteSubmission{}, err
	}
	s.publish(ctx, q, parties.BuyerID, realtime.OpUpdate)
	return q, nil
}

func (s *QuoteService) buyerUpdate(ctx context.Context, buyerID, quoteID string, fn func(q *models.QuoteSubmission) error) (models.QuoteSubmission, error) {
	parties, err := s.QuoteRepo.Parties(ctx, quoteID)
	if err != nil {
		return models.QuoteSubmission{}, err
	}
	if parties.BuyerID != buyerID {
		return models.QuoteSubmission{}, models.ErrForbidden
	}
	q, err := s.QuoteRepo.Update(ctx, quoteID, time.Now().UTC(), fn)
	if err != nil {
		return models.QuoteSubmission{}, err
	}
	s.publish(ctx, q, parties.BuyerID, realtime.OpUpdate)
	return q, nil
}

func (s *QuoteService) publish(ctx context.Context, q models.QuoteSubmission, buyerID string, op realtime.Op) {
	publish(ctx, s.Broker, "quote_submissions", q.ID, op, map[string]string{
		"request_id": q.RequestID,
		"seller_id":  q.SellerID,
		"buyer_id":   buyerID,
	})
}
