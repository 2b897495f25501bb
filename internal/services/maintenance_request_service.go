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

type MaintenanceRequestService struct {
	RequestRepo  *repositories.MaintenanceRequestRepository
	Broker       realtime.Broker
	Celebrations *celebration.Dispatcher
}

// NewRequestInput is what a buyer posts.
type NewRequestInput struct {
	Title         string               `json:"title"`
	Description   string               `json:"description"`
	Category      string               `json:"category"`
	City          string               `json:"city"`
	Urgency       string               `json:"urgency"`
	BudgetMin     *float64             `json:"budget_min,omitempty"`
	BudgetMax     *float64             `json:"budget_max,omitempty"`
	PaymentMethod models.PaymentMethod `json:"payment_method,omitempty"`
}

func (in NewRequestInput) validate() error {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Category) == "" || strings.TrimSpace(in.City) == "" {
		return models.ErrInvalidInput
	}
	if in.Urgency != "" && !models.ValidUrgency(in.Urgency) {
		return models.ErrInvalidInput
	}
	if in.PaymentMethod != "" && !in.PaymentMethod.Valid() {
		return models.ErrInvalidInput
	}
	if in.BudgetMin != nil && *in.BudgetMin < 0 || in.BudgetMax != nil && *in.BudgetMax < 0 {
		return models.ErrInvalidInput
	}
	if in.BudgetMin != nil && in.BudgetMax != nil && *in.BudgetMin > *in.BudgetMax {
		return models.ErrInvalidInput
	}
	return nil
}

func (s *MaintenanceRequestService) Create(ctx context.Context, buyerID string, role models.Role, in NewRequestInput) (models.MaintenanceRequest, error) {
	if role != models.RoleBuyer {
		return models.MaintenanceRequest{}, models.ErrForbidden
	}
	if err := in.validate(); err != nil {
		return models.MaintenanceRequest{}, err
	}
	if in.Urgency == "" {
		in.Urgency = models.UrgencyMedium
	}
	if in.PaymentMethod == "" {
		in.PaymentMethod = models.PaymentOnline
	}
	now := time.Now().UTC()
	m := models.MaintenanceRequest{
		ID:            uuid.NewString(),
		BuyerID:       buyerID,
		Title:         strings.TrimSpace(in.Title),
		Description:   strings.TrimSpace(in.Description),
		Category:      strings.TrimSpace(in.Category),
		City:          strings.TrimSpace(in.City),
		Urgency:       in.Urgency,
		BudgetMin:     in.BudgetMin,
		BudgetMax:     in.BudgetMax,
		Status:        models.RequestOpen,
		PaymentMethod: in.PaymentMethod,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.RequestRepo.Create(ctx, m); err != nil {
		return models.MaintenanceRequest{}, err
	}
	s.publish(ctx, m, realtime.OpInsert)
	celebrate(ctx, s.Celebrations, celebration.RequestSubmitted, m.ID, buyerID, celebration.Details{Name: m.Title})
	return m, nil
}

func (s *MaintenanceRequestService) List(ctx context.Context, f models.RequestFilter) ([]models.MaintenanceRequest, error) {
	for _, st := range f.Statuses {
		switch st {
		case models.RequestOpen, models.RequestInProgress, models.RequestCompleted, models.RequestClosed:
		default:
			return nil, models.ErrInvalidInput
		}
	}
	if f.Urgency != "" && !models.ValidUrgency(f.Urgency) {
		return nil, models.ErrInvalidInput
	}
	return s.RequestRepo.List(ctx, f)
}

func (s *MaintenanceRequestService) Get(ctx context.Context, id string) (models.MaintenanceRequest, error) {
	return s.RequestRepo.GetByID(ctx, id)
}

// Close withdraws an open job. Only its buyer may do so.
func (s *MaintenanceRequestService) Close(ctx context.Context, buyerID, id string) (models.MaintenanceRequest, error) {
	m, err := s.RequestRepo.GetByID(ctx, id)
	if err != nil {
		return models.MaintenanceRequest{}, err
	}
	if m.BuyerID != buyerID {
		return models.MaintenanceRequest{}, models.ErrForbidden
	}
	if err := s.RequestRepo.Transition(ctx, id, m.Status, models.RequestClosed, time.Now().UTC()); err != nil {
		return models.MaintenanceRequest{}, err
	}
	m, err = s.RequestRepo.GetByID(ctx, id)
	if err != nil {
		return models.MaintenanceRequest{}, err
	}
	s.publish(ctx, m, realtime.OpUpdate)
	return m, nil
}

func (s *MaintenanceRequestService) publish(ctx context.Context, m models.MaintenanceRequest, op realtime.Op) {
	filters := map[string]string{"buyer_id": m.BuyerID, "status": string(m.Status)}
	if m.AssignedSellerID != nil {
		filters["assigned_seller_id"] = *m.AssignedSellerID
	}
	publish(ctx, s.Broker, "maintenance_requests", m.ID, op, filters)
}
