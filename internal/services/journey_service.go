package services

import (
	"context"
	"errors"

	"sanaaBack/internal/i18n"
	"sanaaBack/internal/marketplace/journey"
	"sanaaBack/internal/models"
	"sanaaBack/internal/repositories"
)

type JourneyService struct {
	BookingRepo  *repositories.BookingRequestRepository
	QuoteRepo    *repositories.QuoteSubmissionRepository
	RequestRepo  *repositories.MaintenanceRequestRepository
	ContractRepo *repositories.ContractRepository
}

// Get renders the journey of a booking or a quote for the calling party.
// When role is set it must match the caller's side of the deal.
func (s *JourneyService) Get(ctx context.Context, userID string, flow journey.FlowType, role models.Role, id string, lang i18n.Language) (journey.View, error) {
	var (
		d      journey.StatusData
		actual models.Role
	)
	switch flow {
	case journey.FlowBooking:
		b, err := s.BookingRepo.GetByID(ctx, id)
		if err != nil {
			return journey.View{}, err
		}
		if actual = partyRole(userID, b.BuyerID, b.SellerID); actual == "" {
			return journey.View{}, models.ErrForbidden
		}
		c, err := optional(s.ContractRepo.GetByBooking(ctx, id))
		if err != nil {
			return journey.View{}, err
		}
		d = journey.FromRecords(&b, nil, nil, c)
	case journey.FlowQuote:
		parties, err := s.QuoteRepo.Parties(ctx, id)
		if err != nil {
			return journey.View{}, err
		}
		if actual = partyRole(userID, parties.BuyerID, parties.SellerID); actual == "" {
			return journey.View{}, models.ErrForbidden
		}
		q, err := s.QuoteRepo.GetByID(ctx, id)
		if err != nil {
			return journey.View{}, err
		}
		req, err := s.RequestRepo.GetByID(ctx, parties.RequestID)
		if err != nil {
			return journey.View{}, err
		}
		c, err := optional(s.ContractRepo.GetByQuote(ctx, id))
		if err != nil {
			return journey.View{}, err
		}
		d = journey.FromRecords(nil, &q, &req, c)
	default:
		return journey.View{}, models.ErrInvalidInput
	}

	if role != "" && role != actual {
		return journey.View{}, models.ErrForbidden
	}
	view, ok := journey.Render(flow, actual, d, lang)
	if !ok {
		return journey.View{}, models.ErrInvalidInput
	}
	return view, nil
}

func partyRole(userID, buyerID, sellerID string) models.Role {
	switch userID {
	case "":
		return ""
	case buyerID:
		return models.RoleBuyer
	case sellerID:
		return models.RoleSeller
	}
	return ""
}

func optional(c models.Contract, err error) (*models.Contract, error) {
	if errors.Is(err, models.ErrNoRecord) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
