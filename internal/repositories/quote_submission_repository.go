package repositories

import (
	"context"
	"database/sql"
	"time"

	"sanaaBack/internal/marketplace/fsm"
	"sanaaBack/internal/models"
)

type QuoteSubmissionRepository struct {
	store
}

func NewQuoteSubmissionRepository(db *sql.DB, d Dialect) *QuoteSubmissionRepository {
	return &QuoteSubmissionRepository{store{DB: db, Dialect: d}}
}

const quoteColumns = `id, request_id, seller_id, price, duration, description, status, revision_note, created_at, updated_at`

func scanQuote(row scanner) (models.QuoteSubmission, error) {
	var (
		q           models.QuoteSubmission
		description sql.NullString
		note        sql.NullString
	)
	if err := row.Scan(&q.ID, &q.RequestID, &q.SellerID, &q.Price, &q.Duration, &description, &q.Status, &note, &q.CreatedAt, &q.UpdatedAt); err != nil {
		return models.QuoteSubmission{}, notFound(err)
	}
	q.Description = description.String
	q.RevisionNote = nullToPtr(note)
	return q, nil
}

func (r *QuoteSubmissionRepository) Create(ctx context.Context, q models.QuoteSubmission) error {
	query := `INSERT INTO quote_submissions (` + quoteColumns + `) VALUES (` + placeholders(10) + `)`
	_, err := r.DB.ExecContext(ctx, r.q(query), q.ID, q.RequestID, q.SellerID, q.Price, q.Duration, q.Description, q.Status,
		q.RevisionNote, q.CreatedAt, q.UpdatedAt)
	return err
}

func (r *QuoteSubmissionRepository) GetByID(ctx context.Context, id string) (models.QuoteSubmission, error) {
	return scanQuote(r.DB.QueryRowContext(ctx, r.q(`SELECT `+quoteColumns+` FROM quote_submissions WHERE id = ?`), id))
}

func (r *QuoteSubmissionRepository) ListByRequest(ctx context.Context, requestID string) ([]models.QuoteSubmission, error) {
	return r.list(ctx, `SELECT `+quoteColumns+` FROM quote_submissions WHERE request_id = ? ORDER BY created_at DESC`, requestID)
}

func (r *QuoteSubmissionRepository) ListBySeller(ctx context.Context, sellerID string) ([]models.QuoteSubmission, error) {
	return r.list(ctx, `SELECT `+quoteColumns+` FROM quote_submissions WHERE seller_id = ? ORDER BY created_at DESC`, sellerID)
}

// ExistsForSeller reports whether the seller already quoted on the request.
func (r *QuoteSubmissionRepository) ExistsForSeller(ctx context.Context, requestID, sellerID string) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, r.q(`SELECT COUNT(*) FROM quote_submissions WHERE request_id = ? AND seller_id = ?`), requestID, sellerID).Scan(&n)
	return n > 0, err
}

func (r *QuoteSubmissionRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.QuoteSubmission, error) {
	rows, err := r.DB.QueryContext(ctx, r.q(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.QuoteSubmission{}
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// Parties resolves both sides of a quote through its maintenance request.
func (r *QuoteSubmissionRepository) Parties(ctx context.Context, quoteID string) (models.QuoteParties, error) {
	return quoteParties(ctx, r.DB.QueryRowContext, r.Dialect, quoteID)
}

func quoteParties(ctx context.Context, query func(context.Context, string, ...interface{}) *sql.Row, d Dialect, quoteID string) (models.QuoteParties, error) {
	var p models.QuoteParties
	err := query(ctx, d.Rebind(`SELECT q.id, q.request_id, m.buyer_id, q.seller_id, q.status
		FROM quote_submissions q JOIN maintenance_requests m ON m.id = q.request_id WHERE q.id = ?`), quoteID).
		Scan(&p.QuoteID, &p.RequestID, &p.BuyerID, &p.SellerID, &p.Status)
	if err != nil {
		return models.QuoteParties{}, notFound(err)
	}
	return p, nil
}

// Update locks the quote, lets fn change it and writes it back.
func (r *QuoteSubmissionRepository) Update(ctx context.Context, id string, now time.Time, fn func(q *models.QuoteSubmission) error) (models.QuoteSubmission, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.QuoteSubmission{}, err
	}
	defer tx.Rollback()

	q, err := scanQuote(tx.QueryRowContext(ctx, r.q(`SELECT `+quoteColumns+` FROM quote_submissions WHERE id = ? FOR UPDATE`), id))
	if err != nil {
		return models.QuoteSubmission{}, err
	}
	from := q.Status
	if err := fn(&q); err != nil {
		return models.QuoteSubmission{}, err
	}
	if !fsm.CanTransition(fsm.Quotes, string(from), string(q.Status)) {
		return models.QuoteSubmission{}, models.ErrInvalidTransition
	}
	q.UpdatedAt = now

	res, err := tx.ExecContext(ctx, r.q(`UPDATE quote_submissions SET price = ?, duration = ?, description = ?, status = ?,
		revision_note = ?, updated_at = ? WHERE id = ? AND status = ?`),
		q.Price, q.Duration, q.Description, q.Status, q.RevisionNote, q.UpdatedAt, q.ID, from)
	if err != nil {
		return models.QuoteSubmission{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.QuoteSubmission{}, models.ErrConflict
	}
	if err := tx.Commit(); err != nil {
		return models.QuoteSubmission{}, err
	}
	return q, nil
}
