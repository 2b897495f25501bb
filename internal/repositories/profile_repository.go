package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"sanaaBack/internal/models"
)

type ProfileRepository struct {
	store
}

func NewProfileRepository(db *sql.DB, d Dialect) *ProfileRepository {
	return &ProfileRepository{store{DB: db, Dialect: d}}
}

const profileColumns = `id, email, password_hash, full_name, role, phone, city, bio, company_name, preferred_language, portfolio, email_verified, created_at, updated_at`

func scanProfile(row scanner) (models.Profile, error) {
	var (
		p         models.Profile
		phone     sql.NullString
		city      sql.NullString
		bio       sql.NullString
		company   sql.NullString
		portfolio sql.NullString
	)
	if err := row.Scan(&p.ID, &p.Email, &p.PasswordHash, &p.FullName, &p.Role, &phone, &city, &bio, &company,
		&p.PreferredLanguage, &portfolio, &p.EmailVerified, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return models.Profile{}, notFound(err)
	}
	p.Phone, p.City, p.Bio, p.CompanyName = phone.String, city.String, bio.String, company.String
	p.Portfolio = []string{}
	if portfolio.Valid && portfolio.String != "" {
		if err := json.Unmarshal([]byte(portfolio.String), &p.Portfolio); err != nil {
			return models.Profile{}, err
		}
	}
	return p, nil
}

func (r *ProfileRepository) Create(ctx context.Context, p models.Profile) error {
	portfolio, err := json.Marshal(p.Portfolio)
	if err != nil {
		return err
	}
	query := `INSERT INTO profiles (` + profileColumns + `) VALUES (` + placeholders(14) + `)`
	_, err = r.DB.ExecContext(ctx, r.q(query), p.ID, strings.ToLower(p.Email), p.PasswordHash, p.FullName, p.Role,
		p.Phone, p.City, p.Bio, p.CompanyName, p.PreferredLanguage, string(portfolio), p.EmailVerified, p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (models.Profile, error) {
	row := r.DB.QueryRowContext(ctx, r.q(`SELECT `+profileColumns+` FROM profiles WHERE id = ?`), id)
	return scanProfile(row)
}

func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (models.Profile, error) {
	row := r.DB.QueryRowContext(ctx, r.q(`SELECT `+profileColumns+` FROM profiles WHERE email = ?`), strings.ToLower(strings.TrimSpace(email)))
	return scanProfile(row)
}

// Update writes only the non-nil fields of upd.
func (r *ProfileRepository) Update(ctx context.Context, id string, upd models.ProfileUpdate, now time.Time) error {
	sets := []string{}
	args := []interface{}{}
	add := func(col string, v *string) {
		if v != nil {
			sets = append(sets, col+" = ?")
			args = append(args, strings.TrimSpace(*v))
		}
	}
	add("full_name", upd.FullName)
	add("phone", upd.Phone)
	add("city", upd.City)
	add("bio", upd.Bio)
	add("company_name", upd.CompanyName)
	add("preferred_language", upd.PreferredLanguage)
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, now, id)

	res, err := r.DB.ExecContext(ctx, r.q(`UPDATE profiles SET `+strings.Join(sets, ", ")+` WHERE id = ?`), args...)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrNoRecord
	}
	return nil
}

// PreferredLanguage returns the stored language code or "" when unknown.
func (r *ProfileRepository) PreferredLanguage(ctx context.Context, id string) (string, error) {
	var lang string
	err := r.DB.QueryRowContext(ctx, r.q(`SELECT preferred_language FROM profiles WHERE id = ?`), id).Scan(&lang)
	return lang, notFound(err)
}

// AppendPortfolio adds url to the profile's portfolio array and returns the new array.
func (r *ProfileRepository) AppendPortfolio(ctx context.Context, id, url string, now time.Time) ([]string, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var raw sql.NullString
	if err := tx.QueryRowContext(ctx, r.q(`SELECT portfolio FROM profiles WHERE id = ? FOR UPDATE`), id).Scan(&raw); err != nil {
		return nil, notFound(err)
	}
	items := []string{}
	if raw.Valid && raw.String != "" {
		if err := json.Unmarshal([]byte(raw.String), &items); err != nil {
			return nil, err
		}
	}
	items = append(items, url)
	data, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, r.q(`UPDATE profiles SET portfolio = ?, updated_at = ? WHERE id = ?`), string(data), now, id); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *ProfileRepository) SetSession(ctx context.Context, s models.Session) error {
	_, err := r.DB.ExecContext(ctx, r.q(`UPDATE profiles SET refresh_token = ?, refresh_expires_at = ? WHERE id = ?`), s.RefreshToken, s.ExpiresAt, s.UserID)
	return err
}

func (r *ProfileRepository) GetSessionByToken(ctx context.Context, token string) (models.Session, error) {
	var s models.Session
	err := r.DB.QueryRowContext(ctx, r.q(`SELECT id, role, refresh_token, refresh_expires_at FROM profiles WHERE refresh_token = ?`), token).
		Scan(&s.UserID, &s.Role, &s.RefreshToken, &s.ExpiresAt)
	if err != nil {
		return models.Session{}, notFound(err)
	}
	return s, nil
}

func (r *ProfileRepository) ClearSession(ctx context.Context, userID string) error {
	_, err := r.DB.ExecContext(ctx, r.q(`UPDATE profiles SET refresh_token = NULL, refresh_expires_at = NULL WHERE id = ?`), userID)
	return err
}
