package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"sanaaBack/internal/marketplace/fsm"
	"sanaaBack/internal/models"
)

// QuoteNegotiationRepository stores the offer history of quotes.
type QuoteNegotiationRepository struct {
	store
}

func NewQuoteNegotiationRepository(db *sql.DB, d Dialect) *QuoteNegotiationRepository {
	return &QuoteNegotiationRepository{store{DB: db, Dialect: d}}
}

const negotiationColumns = `id, quote_id, initiator_id, recipient_id, offered_price, offered_duration, message, status, responded_at, created_at, updated_at`

func scanNegotiation(row scanner) (models.QuoteNegotiation, error) {
	var (
		n         models.QuoteNegotiation
		price     sql.NullFloat64
		duration  sql.NullString
		message   sql.NullString
		responded sql.NullTime
	)
	if err := row.Scan(&n.ID, &n.QuoteID, &n.InitiatorID, &n.RecipientID, &price, &duration, &message, &n.Status, &responded, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return models.QuoteNegotiation{}, notFound(err)
	}
	n.OfferedPrice = nullFloat64ToPtr(price)
	n.OfferedDuration = nullToPtr(duration)
	n.Message = nullToPtr(message)
	n.RespondedAt = nullTimeToPtr(responded)
	return n, nil
}

func (r *QuoteNegotiationRepository) QuoteParties(ctx context.Context, quoteID string) (models.QuoteParties, error) {
	return quoteParties(ctx, r.DB.QueryRowContext, r.Dialect, quoteID)
}

func (r *QuoteNegotiationRepository) Create(ctx context.Context, n models.QuoteNegotiation) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO quote_negotiations (` + negotiationColumns + `) VALUES (` + placeholders(11) + `)`
	if _, err := tx.ExecContext(ctx, r.q(query), n.ID, n.QuoteID, n.InitiatorID, n.RecipientID, n.OfferedPrice, n.OfferedDuration,
		n.Message, n.Status, n.RespondedAt, n.CreatedAt, n.UpdatedAt); err != nil {
		return err
	}
	err = fsm.Apply(ctx, tx, r.Dialect, fsm.Quotes, n.QuoteID, string(models.QuotePending), string(models.QuoteNegotiating), n.CreatedAt)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	return tx.Commit()
}

func (r *QuoteNegotiationRepository) Get(ctx context.Context, id string) (models.QuoteNegotiation, error) {
	return scanNegotiation(r.DB.QueryRowContext(ctx, r.q(`SELECT `+negotiationColumns+` FROM quote_negotiations WHERE id = ?`), id))
}

// SetStatus flips the negotiation row only.
func (r *QuoteNegotiationRepository) SetStatus(ctx context.Context, id string, from, to models.NegotiationStatus, at time.Time) error {
	if !fsm.CanTransition(fsm.Negotiations, string(from), string(to)) {
		return models.ErrInvalidTransition
	}
	res, err := r.DB.ExecContext(ctx, r.q(`UPDATE quote_negotiations SET status = ?, responded_at = ?, updated_at = ? WHERE id = ? AND status = ?`),
		to, at, at, id, from)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return models.ErrConflict
	}
	return nil
}

func (r *QuoteNegotiationRepository) ListByQuote(ctx context.Context, quoteID string) ([]models.QuoteNegotiation, error) {
	rows, err := r.DB.QueryContext(ctx, r.q(`SELECT `+negotiationColumns+` FROM quote_negotiations WHERE quote_id = ? ORDER BY created_at DESC`), quoteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.QuoteNegotiation{}
	for rows.Next() {
		n, err := scanNegotiation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
