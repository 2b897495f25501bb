package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"sanaaBack/internal/marketplace/fsm"
	"sanaaBack/internal/models"
)

type ContractRepository struct {
	store
}

func NewContractRepository(db *sql.DB, d Dialect) *ContractRepository {
	return &ContractRepository{store{DB: db, Dialect: d}}
}

const contractColumns = `id, quote_id, booking_id, request_id, buyer_id, seller_id, title, terms, amount, start_date, location,
	payment_method, status, buyer_signed_at, seller_signed_at, executed_at, created_at, updated_at`

func scanContract(row scanner) (models.Contract, error) {
	var (
		c          models.Contract
		quoteID    sql.NullString
		bookingID  sql.NullString
		requestID  sql.NullString
		terms      sql.NullString
		startDate  sql.NullTime
		location   sql.NullString
		buyerSign  sql.NullTime
		sellerSign sql.NullTime
		executed   sql.NullTime
	)
	err := row.Scan(&c.ID, &quoteID, &bookingID, &requestID, &c.BuyerID, &c.SellerID, &c.Title, &terms, &c.Amount, &startDate,
		&location, &c.PaymentMethod, &c.Status, &buyerSign, &sellerSign, &executed, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return models.Contract{}, notFound(err)
	}
	c.QuoteID = nullToPtr(quoteID)
	c.BookingID = nullToPtr(bookingID)
	c.RequestID = nullToPtr(requestID)
	c.Terms = terms.String
	c.StartDate = nullTimeToPtr(startDate)
	c.Location = location.String
	c.BuyerSignedAt = nullTimeToPtr(buyerSign)
	c.SellerSignedAt = nullTimeToPtr(sellerSign)
	c.ExecutedAt = nullTimeToPtr(executed)
	return c, nil
}

// Create inserts a draft contract. A booking contract moves its booking from
// accepted to contract_pending in the same transaction.
func (r *ContractRepository) Create(ctx context.Context, c models.Contract) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO contracts (` + contractColumns + `) VALUES (` + placeholders(18) + `)`
	if _, err := tx.ExecContext(ctx, r.q(query), c.ID, c.QuoteID, c.BookingID, c.RequestID, c.BuyerID, c.SellerID, c.Title,
		c.Terms, c.Amount, c.StartDate, c.Location, c.PaymentMethod, c.Status, c.BuyerSignedAt, c.SellerSignedAt, c.ExecutedAt,
		c.CreatedAt, c.UpdatedAt); err != nil {
		return err
	}
	if c.BookingID != nil {
		err := fsm.Apply(ctx, tx, r.Dialect, fsm.Bookings, *c.BookingID, string(models.BookingAccepted), string(models.BookingContractPending), c.CreatedAt)
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrConflict
		}
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *ContractRepository) GetByID(ctx context.Context, id string) (models.Contract, error) {
	return scanContract(r.DB.QueryRowContext(ctx, r.q(`SELECT `+contractColumns+` FROM contracts WHERE id = ?`), id))
}

func (r *ContractRepository) GetByQuote(ctx context.Context, quoteID string) (models.Contract, error) {
	return scanContract(r.DB.QueryRowContext(ctx, r.q(`SELECT `+contractColumns+` FROM contracts WHERE quote_id = ? ORDER BY created_at DESC LIMIT 1`), quoteID))
}

func (r *ContractRepository) GetByBooking(ctx context.Context, bookingID string) (models.Contract, error) {
	return scanContract(r.DB.QueryRowContext(ctx, r.q(`SELECT `+contractColumns+` FROM contracts WHERE booking_id = ? ORDER BY created_at DESC LIMIT 1`), bookingID))
}

// GetByRequest returns the contract of the quote that won the request.
func (r *ContractRepository) GetByRequest(ctx context.Context, requestID string) (models.Contract, error) {
	return scanContract(r.DB.QueryRowContext(ctx, r.q(`SELECT `+contractColumns+` FROM contracts WHERE request_id = ? ORDER BY created_at DESC LIMIT 1`), requestID))
}

// Update locks the contract, lets fn change it and writes it back. When the
// change executes a quote contract, the quote is accepted, the request is
// assigned to the seller and the competing quotes are rejected.
//
// A booking contract is only changed while its booking is contract_pending.
// The booking row is locked before the contract, the same order
// BookingRequestRepository.Update uses.
func (r *ContractRepository) Update(ctx context.Context, id string, now time.Time, fn func(c *models.Contract) error) (models.Contract, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Contract{}, err
	}
	defer tx.Rollback()

	var bookingID sql.NullString
	if err := tx.QueryRowContext(ctx, r.q(`SELECT booking_id FROM contracts WHERE id = ?`), id).Scan(&bookingID); err != nil {
		return models.Contract{}, notFound(err)
	}
	if bookingID.Valid {
		var status models.BookingStatus
		err := tx.QueryRowContext(ctx, r.q(`SELECT status FROM booking_requests WHERE id = ? FOR UPDATE`), bookingID.String).Scan(&status)
		if err != nil {
			return models.Contract{}, notFound(err)
		}
		if !status.AllowsContractChanges() {
			return models.Contract{}, models.ErrConflict
		}
	}

	c, err := scanContract(tx.QueryRowContext(ctx, r.q(`SELECT `+contractColumns+` FROM contracts WHERE id = ? FOR UPDATE`), id))
	if err != nil {
		return models.Contract{}, err
	}
	from := c.Status
	if err := fn(&c); err != nil {
		return models.Contract{}, err
	}
	if !fsm.CanTransition(fsm.Contracts, string(from), string(c.Status)) {
		return models.Contract{}, models.ErrInvalidTransition
	}
	c.UpdatedAt = now

	res, err := tx.ExecContext(ctx, r.q(`UPDATE contracts SET title = ?, terms = ?, amount = ?, start_date = ?, location = ?,
		payment_method = ?, status = ?, buyer_signed_at = ?, seller_signed_at = ?, executed_at = ?, updated_at = ?
		WHERE id = ? AND status = ?`),
		c.Title, c.Terms, c.Amount, c.StartDate, c.Location, c.PaymentMethod, c.Status, c.BuyerSignedAt, c.SellerSignedAt,
		c.ExecutedAt, c.UpdatedAt, c.ID, from)
	if err != nil {
		return models.Contract{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.Contract{}, models.ErrConflict
	}

	if from != models.ContractExecuted && c.Status == models.ContractExecuted && c.QuoteID != nil && c.RequestID != nil {
		if err := r.awardQuote(ctx, tx, c, now); err != nil {
			return models.Contract{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return models.Contract{}, err
	}
	return c, nil
}

func (r *ContractRepository) awardQuote(ctx context.Context, tx *sql.Tx, c models.Contract, now time.Time) error {
	res, err := tx.ExecContext(ctx, r.q(`UPDATE quote_submissions SET status = ?, updated_at = ? WHERE id = ? AND status IN (?, ?)`),
		models.QuoteAccepted, now, *c.QuoteID, models.QuotePending, models.QuoteNegotiating)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrConflict
	}

	res, err = tx.ExecContext(ctx, r.q(`UPDATE maintenance_requests SET status = ?, assigned_seller_id = ?, payment_method = ?, updated_at = ?
		WHERE id = ? AND status = ?`),
		models.RequestInProgress, c.SellerID, c.PaymentMethod, now, *c.RequestID, models.RequestOpen)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrConflict
	}

	_, err = tx.ExecContext(ctx, r.q(`UPDATE quote_submissions SET status = ?, updated_at = ?
		WHERE request_id = ? AND id <> ? AND status IN (?, ?, ?)`),
		models.QuoteRejected, now, *c.RequestID, *c.QuoteID, models.QuotePending, models.QuoteNegotiating, models.QuoteRevisionRequested)
	return err
}
