package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"sanaaBack/internal/i18n"
	"sanaaBack/internal/models"
	"sanaaBack/internal/realtime"
	"sanaaBack/internal/repositories"
	"sanaaBack/utils"
)

const minPasswordLength = 8

type ProfileService struct {
	ProfileRepo  *repositories.ProfileRepository
	TokenManager *utils.Manager
	Uploader     *utils.S3Uploader
	Broker       realtime.Broker
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
}

// SignUp creates a buyer or seller profile and opens its first session.
func (s *ProfileService) SignUp(ctx context.Context, p models.Profile) (models.Profile, models.Tokens, error) {
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	p.FullName = strings.TrimSpace(p.FullName)
	if _, err := mail.ParseAddress(p.Email); err != nil || p.FullName == "" || len(p.Password) < minPasswordLength {
		return models.Profile{}, models.Tokens{}, models.ErrInvalidInput
	}
	if p.Role != models.RoleBuyer && p.Role != models.RoleSeller {
		return models.Profile{}, models.Tokens{}, models.ErrInvalidInput
	}
	if p.PreferredLanguage == "" {
		p.PreferredLanguage = string(i18n.Default)
	}
	if !i18n.Language(p.PreferredLanguage).Valid() {
		return models.Profile{}, models.Tokens{}, models.ErrInvalidInput
	}

	if _, err := s.ProfileRepo.GetByEmail(ctx, p.Email); err == nil {
		return models.Profile{}, models.Tokens{}, models.ErrDuplicateEmail
	} else if !errors.Is(err, models.ErrNoRecord) {
		return models.Profile{}, models.Tokens{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.Profile{}, models.Tokens{}, err
	}
	now := time.Now().UTC()
	p.ID = uuid.NewString()
	p.PasswordHash = string(hash)
	p.Password = ""
	p.Portfolio = []string{}
	p.EmailVerified = false
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := s.ProfileRepo.Create(ctx, p); err != nil {
		return models.Profile{}, models.Tokens{}, err
	}
	tokens, err := s.issueTokens(ctx, p)
	if err != nil {
		return models.Profile{}, models.Tokens{}, err
	}
	return p, tokens, nil
}

func (s *ProfileService) SignIn(ctx context.Context, email, password string) (models.Profile, models.Tokens, error) {
	p, err := s.ProfileRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			return models.Profile{}, models.Tokens{}, models.ErrInvalidCredentials
		}
		return models.Profile{}, models.Tokens{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)); err != nil {
		return models.Profile{}, models.Tokens{}, models.ErrInvalidCredentials
	}
	tokens, err := s.issueTokens(ctx, p)
	if err != nil {
		return models.Profile{}, models.Tokens{}, err
	}
	return p, tokens, nil
}

// Refresh rotates the session behind refreshToken.
func (s *ProfileService) Refresh(ctx context.Context, refreshToken string) (models.Tokens, error) {
	if refreshToken == "" {
		return models.Tokens{}, models.ErrInvalidCredentials
	}
	session, err := s.ProfileRepo.GetSessionByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			return models.Tokens{}, models.ErrInvalidCredentials
		}
		return models.Tokens{}, err
	}
	if time.Now().After(session.ExpiresAt) {
		return models.Tokens{}, models.ErrInvalidCredentials
	}
	p, err := s.ProfileRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return models.Tokens{}, err
	}
	return s.issueTokens(ctx, p)
}

func (s *ProfileService) SignOut(ctx context.Context, userID string) error {
	return s.ProfileRepo.ClearSession(ctx, userID)
}

func (s *ProfileService) issueTokens(ctx context.Context, p models.Profile) (models.Tokens, error) {
	access, err := s.TokenManager.NewJWT(p.ID, p.Role, s.AccessTTL)
	if err != nil {
		return models.Tokens{}, fmt.Errorf("access token: %w", err)
	}
	refresh, err := s.TokenManager.NewRefreshToken()
	if err != nil {
		return models.Tokens{}, fmt.Errorf("refresh token: %w", err)
	}
	session := models.Session{
		UserID:       p.ID,
		Role:         p.Role,
		RefreshToken: refresh,
		ExpiresAt:    time.Now().Add(s.RefreshTTL).UTC(),
	}
	if err := s.ProfileRepo.SetSession(ctx, session); err != nil {
		return models.Tokens{}, err
	}
	return models.Tokens{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *ProfileService) GetProfile(ctx context.Context, id string) (models.Profile, error) {
	return s.ProfileRepo.GetByID(ctx, id)
}

func (s *ProfileService) UpdateProfile(ctx context.Context, id string, upd models.ProfileUpdate) (models.Profile, error) {
	if upd.PreferredLanguage != nil && !i18n.Language(*upd.PreferredLanguage).Valid() {
		return models.Profile{}, models.ErrInvalidInput
	}
	if upd.FullName != nil && strings.TrimSpace(*upd.FullName) == "" {
		return models.Profile{}, models.ErrInvalidInput
	}
	if err := s.ProfileRepo.Update(ctx, id, upd, time.Now().UTC()); err != nil {
		return models.Profile{}, err
	}
	publish(ctx, s.Broker, "profiles", id, realtime.OpUpdate, nil)
	return s.ProfileRepo.GetByID(ctx, id)
}

// AddPortfolioPhoto stores a data URL image and appends its address to the
// portfolio. Without object storage the data URL itself is kept.
func (s *ProfileService) AddPortfolioPhoto(ctx context.Context, userID, dataURL string) ([]string, error) {
	img, err := utils.DecodeImageDataURL(dataURL)
	if err != nil {
		return nil, err
	}
	location := dataURL
	if s.Uploader != nil {
		name := uuid.NewString() + "." + img.Ext
		location, err = s.Uploader.Upload(ctx, img.Data, "portfolio/"+userID, name, img.ContentType)
		if err != nil {
			return nil, fmt.Errorf("upload portfolio photo: %w", err)
		}
	}
	portfolio, err := s.ProfileRepo.AppendPortfolio(ctx, userID, location, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	publish(ctx, s.Broker, "profiles", userID, realtime.OpUpdate, nil)
	return portfolio, nil
}

// Language returns the stored language of a user, or the default.
func (s *ProfileService) Language(ctx context.Context, userID string) i18n.Language {
	stored, err := s.ProfileRepo.PreferredLanguage(ctx, userID)
	if err != nil {
		return i18n.Default
	}
	if lang, ok := i18n.Parse(stored); ok {
		return lang
	}
	return i18n.Default
}

// DisplayName is used in celebration payloads.
func (s *ProfileService) DisplayName(ctx context.Context, userID string) string {
	p, err := s.ProfileRepo.GetByID(ctx, userID)
	if err != nil {
		return ""
	}
	if p.CompanyName != "" && p.Role == models.RoleSeller {
		return p.CompanyName
	}
	return p.FullName
}
