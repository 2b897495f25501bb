package repositories

import (
	"context"
	"database/sql"

	"sanaaBack/internal/models"
)

// NotifyTokenRepository keeps the FCM device tokens of each user.
type NotifyTokenRepository struct {
	store
}

func NewNotifyTokenRepository(db *sql.DB, d Dialect) *NotifyTokenRepository {
	return &NotifyTokenRepository{store{DB: db, Dialect: d}}
}

// Save registers the token for the user, moving it off any previous owner.
func (r *NotifyTokenRepository) Save(ctx context.Context, t models.NotifyToken) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, r.q(`DELETE FROM notify_tokens WHERE token = ?`), t.Token); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, r.q(`INSERT INTO notify_tokens (user_id, token, platform, created_at) VALUES (?, ?, ?, ?)`),
		t.UserID, t.Token, t.Platform, t.CreatedAt); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *NotifyTokenRepository) TokensByUser(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, r.q(`SELECT token FROM notify_tokens WHERE user_id = ?`), userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	return tokens, rows.Err()
}

func (r *NotifyTokenRepository) Delete(ctx context.Context, token string) error {
	_, err := r.DB.ExecContext(ctx, r.q(`DELETE FROM notify_tokens WHERE token = ?`), token)
	return err
}
