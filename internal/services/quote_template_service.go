package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"sanaaBack/internal/models"
	"sanaaBack/internal/repositories"
)

type QuoteTemplateService struct {
	TemplateRepo *repositories.QuoteTemplateRepository
}

func validTemplate(t models.QuoteTemplate) bool {
	if strings.TrimSpace(t.Name) == "" {
		return false
	}
	return t.Price == nil || *t.Price > 0
}

func (s *QuoteTemplateService) Create(ctx context.Context, sellerID string, role models.Role, t models.QuoteTemplate) (models.QuoteTemplate, error) {
	if role != models.RoleSeller {
		return models.QuoteTemplate{}, models.ErrForbidden
	}
	if !validTemplate(t) {
		return models.QuoteTemplate{}, models.ErrInvalidInput
	}
	now := time.Now().UTC()
	t.ID = uuid.NewString()
	t.SellerID = sellerID
	t.Name = strings.TrimSpace(t.Name)
	t.CreatedAt = now
	t.UpdatedAt = now
	if err := s.TemplateRepo.Create(ctx, t); err != nil {
		return models.QuoteTemplate{}, err
	}
	return t, nil
}

func (s *QuoteTemplateService) List(ctx context.Context, sellerID string) ([]models.QuoteTemplate, error) {
	return s.TemplateRepo.ListBySeller(ctx, sellerID)
}

func (s *QuoteTemplateService) Update(ctx context.Context, sellerID, id string, t models.QuoteTemplate) (models.QuoteTemplate, error) {
	if !validTemplate(t) {
		return models.QuoteTemplate{}, models.ErrInvalidInput
	}
	t.ID = id
	t.SellerID = sellerID
	t.Name = strings.TrimSpace(t.Name)
	t.UpdatedAt = time.Now().UTC()
	if err := s.TemplateRepo.Update(ctx, t); err != nil {
		return models.QuoteTemplate{}, err
	}
	return s.TemplateRepo.GetByID(ctx, id)
}

func (s *QuoteTemplateService) Delete(ctx context.Context, sellerID, id string) error {
	return s.TemplateRepo.Delete(ctx, id, sellerID)
}
