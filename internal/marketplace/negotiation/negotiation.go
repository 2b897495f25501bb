// Package negotiation implements the append-only counter-offer history of a quote.
package negotiation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"sanaaBack/internal/models"
)

var (
	ErrEmptyOffer   = errors.New("negotiation: price, duration or message is required")
	ErrInvalidPrice = errors.New("negotiation: price must be positive")
	ErrNotOpen      = errors.New("negotiation: offer already answered")
	ErrOwnOffer     = errors.New("negotiation: initiator cannot answer own offer")
	ErrQuoteClosed  = errors.New("negotiation: quote no longer accepts offers")
)

// CounterOffer is the user input for a new offer.
type CounterOffer struct {
	Price    *float64 `json:"price,omitempty"`
	Duration string   `json:"duration,omitempty"`
	Message  string   `json:"message,omitempty"`
}

// Validate runs before any storage access.
func (o CounterOffer) Validate() error {
	if o.Price == nil && strings.TrimSpace(o.Duration) == "" && strings.TrimSpace(o.Message) == "" {
		return ErrEmptyOffer
	}
	if o.Price != nil && *o.Price <= 0 {
		return ErrInvalidPrice
	}
	return nil
}

// Repository is the storage the negotiation flow needs.
type Repository interface {
	QuoteParties(ctx context.Context, quoteID string) (models.QuoteParties, error)
	// Create inserts an open negotiation. A pending quote moves to negotiating
	// in the same transaction.
	Create(ctx context.Context, n models.QuoteNegotiation) error
	Get(ctx context.Context, id string) (models.QuoteNegotiation, error)
	// SetStatus flips only the negotiation row. It returns models.ErrConflict
	// when the row is no longer in the from status.
	SetStatus(ctx context.Context, id string, from, to models.NegotiationStatus, at time.Time) error
	ListByQuote(ctx context.Context, quoteID string) ([]models.QuoteNegotiation, error)
}

type Service struct {
	repo  Repository
	now   func() time.Time
	newID func() string

	OnChange func(ctx context.Context, n models.QuoteNegotiation, parties models.QuoteParties)
}

func NewService(repo Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, now: now, newID: uuid.NewString}
}

// CreateCounterOffer appends a new open offer from userID to the quote's counterpart.
func (s *Service) CreateCounterOffer(ctx context.Context, userID, quoteID string, offer CounterOffer) (models.QuoteNegotiation, error) {
	if err := offer.Validate(); err != nil {
		return models.QuoteNegotiation{}, err
	}
	parties, err := s.repo.QuoteParties(ctx, quoteID)
	if err != nil {
		return models.QuoteNegotiation{}, err
	}
	recipient := parties.Counterpart(userID)
	if recipient == "" {
		return models.QuoteNegotiation{}, models.ErrForbidden
	}
	if parties.Status == models.QuoteAccepted || parties.Status == models.QuoteRejected {
		return models.QuoteNegotiation{}, ErrQuoteClosed
	}

	now := s.now()
	n := models.QuoteNegotiation{
		ID:           s.newID(),
		QuoteID:      quoteID,
		InitiatorID:  userID,
		RecipientID:  recipient,
		OfferedPrice: offer.Price,
		Status:       models.NegotiationOpen,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if d := strings.TrimSpace(offer.Duration); d != "" {
		n.OfferedDuration = &d
	}
	if m := strings.TrimSpace(offer.Message); m != "" {
		n.Message = &m
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return models.QuoteNegotiation{}, fmt.Errorf("create negotiation: %w", err)
	}
	if s.OnChange != nil {
		s.OnChange(ctx, n, parties)
	}
	return n, nil
}

// Accept marks the offer accepted. The parent quote status is left as is:
// final acceptance happens through contract signing.
func (s *Service) Accept(ctx context.Context, userID, negotiationID string) (models.QuoteNegotiation, error) {
	return s.respond(ctx, userID, negotiationID, models.NegotiationAccepted)
}

func (s *Service) Decline(ctx context.Context, userID, negotiationID string) (models.QuoteNegotiation, error) {
	return s.respond(ctx, userID, negotiationID, models.NegotiationDeclined)
}

func (s *Service) respond(ctx context.Context, userID, negotiationID string, to models.NegotiationStatus) (models.QuoteNegotiation, error) {
	n, err := s.repo.Get(ctx, negotiationID)
	if err != nil {
		return models.QuoteNegotiation{}, err
	}
	if n.InitiatorID == userID {
		return n, ErrOwnOffer
	}
	if n.RecipientID != userID {
		return n, models.ErrForbidden
	}
	if n.Status != models.NegotiationOpen {
		return n, ErrNotOpen
	}

	now := s.now()
	if err := s.repo.SetStatus(ctx, n.ID, models.NegotiationOpen, to, now); err != nil {
		if errors.Is(err, models.ErrConflict) {
			return n, ErrNotOpen
		}
		return n, fmt.Errorf("set negotiation status: %w", err)
	}
	n.Status = to
	n.RespondedAt = &now
	n.UpdatedAt = now

	if s.OnChange != nil {
		if parties, err := s.repo.QuoteParties(ctx, n.QuoteID); err == nil {
			s.OnChange(ctx, n, parties)
		}
	}
	return n, nil
}

// List returns the quote's negotiations, newest first.
func (s *Service) List(ctx context.Context, userID, quoteID string) ([]models.QuoteNegotiation, error) {
	parties, err := s.repo.QuoteParties(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if parties.Counterpart(userID) == "" {
		return nil, models.ErrForbidden
	}
	list, err := s.repo.ListByQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}
