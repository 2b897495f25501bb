package repositories

import (
	"context"
	"database/sql"
	"time"

	"sanaaBack/internal/marketplace/fsm"
	"sanaaBack/internal/models"
)

type BookingRequestRepository struct {
	store
}

func NewBookingRequestRepository(db *sql.DB, d Dialect) *BookingRequestRepository {
	return &BookingRequestRepository{store{DB: db, Dialect: d}}
}

const bookingColumns = `id, buyer_id, seller_id, title, description, location, proposed_date, proposed_price,
	counter_date, counter_price, counter_message, final_date, final_price, status, payment_method,
	buyer_marked_complete, seller_marked_complete, buyer_completed_at, seller_completed_at, created_at, updated_at`

func scanBooking(row scanner) (models.BookingRequest, error) {
	var (
		b              models.BookingRequest
		description    sql.NullString
		location       sql.NullString
		proposedDate   sql.NullTime
		proposedPrice  sql.NullFloat64
		counterDate    sql.NullTime
		counterPrice   sql.NullFloat64
		counterMessage sql.NullString
		finalDate      sql.NullTime
		finalPrice     sql.NullFloat64
		buyerDone      sql.NullTime
		sellerDone     sql.NullTime
	)
	err := row.Scan(&b.ID, &b.BuyerID, &b.SellerID, &b.Title, &description, &location, &proposedDate, &proposedPrice,
		&counterDate, &counterPrice, &counterMessage, &finalDate, &finalPrice, &b.Status, &b.PaymentMethod,
		&b.BuyerMarkedComplete, &b.SellerMarkedComplete, &buyerDone, &sellerDone, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return models.BookingRequest{}, notFound(err)
	}
	b.Description = description.String
	b.Location = location.String
	b.ProposedDate = nullTimeToPtr(proposedDate)
	b.ProposedPrice = nullFloat64ToPtr(proposedPrice)
	b.CounterDate = nullTimeToPtr(counterDate)
	b.CounterPrice = nullFloat64ToPtr(counterPrice)
	b.CounterMessage = nullToPtr(counterMessage)
	b.FinalDate = nullTimeToPtr(finalDate)
	b.FinalPrice = nullFloat64ToPtr(finalPrice)
	b.BuyerCompletedAt = nullTimeToPtr(buyerDone)
	b.SellerCompletedAt = nullTimeToPtr(sellerDone)
	return b, nil
}

func (r *BookingRequestRepository) Create(ctx context.Context, b models.BookingRequest) error {
	query := `INSERT INTO booking_requests (` + bookingColumns + `) VALUES (` + placeholders(21) + `)`
	_, err := r.DB.ExecContext(ctx, r.q(query), b.ID, b.BuyerID, b.SellerID, b.Title, b.Description, b.Location,
		b.ProposedDate, b.ProposedPrice, b.CounterDate, b.CounterPrice, b.CounterMessage, b.FinalDate, b.FinalPrice,
		b.Status, b.PaymentMethod, b.BuyerMarkedComplete, b.SellerMarkedComplete, b.BuyerCompletedAt, b.SellerCompletedAt,
		b.CreatedAt, b.UpdatedAt)
	return err
}

func (r *BookingRequestRepository) GetByID(ctx context.Context, id string) (models.BookingRequest, error) {
	row := r.DB.QueryRowContext(ctx, r.q(`SELECT `+bookingColumns+` FROM booking_requests WHERE id = ?`), id)
	return scanBooking(row)
}

// ListForUser returns bookings where userID is the buyer or the seller, newest first.
func (r *BookingRequestRepository) ListForUser(ctx context.Context, userID string, role models.Role) ([]models.BookingRequest, error) {
	column := "buyer_id"
	if role == models.RoleSeller {
		column = "seller_id"
	}
	rows, err := r.DB.QueryContext(ctx, r.q(`SELECT `+bookingColumns+` FROM booking_requests WHERE `+column+` = ? ORDER BY created_at DESC`), userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.BookingRequest{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Update locks the booking, lets fn change it and writes it back. The status
// change fn makes must be an allowed transition. A booking with an executed
// contract cannot be cancelled.
func (r *BookingRequestRepository) Update(ctx context.Context, id string, now time.Time, fn func(b *models.BookingRequest) error) (models.BookingRequest, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.BookingRequest{}, err
	}
	defer tx.Rollback()

	b, err := scanBooking(tx.QueryRowContext(ctx, r.q(`SELECT `+bookingColumns+` FROM booking_requests WHERE id = ? FOR UPDATE`), id))
	if err != nil {
		return models.BookingRequest{}, err
	}
	from := b.Status
	if err := fn(&b); err != nil {
		return models.BookingRequest{}, err
	}
	if !fsm.CanTransition(fsm.Bookings, string(from), string(b.Status)) {
		return models.BookingRequest{}, models.ErrInvalidTransition
	}
	if from != b.Status && b.Status == models.BookingCancelled {
		var executed int
		err := tx.QueryRowContext(ctx, r.q(`SELECT COUNT(*) FROM contracts WHERE booking_id = ? AND status = ?`),
			b.ID, models.ContractExecuted).Scan(&executed)
		if err != nil {
			return models.BookingRequest{}, err
		}
		if executed > 0 {
			return models.BookingRequest{}, models.ErrConflict
		}
	}
	b.UpdatedAt = now

	res, err := tx.ExecContext(ctx, r.q(`UPDATE booking_requests SET counter_date = ?, counter_price = ?, counter_message = ?,
		final_date = ?, final_price = ?, status = ?, payment_method = ?, updated_at = ? WHERE id = ? AND status = ?`),
		b.CounterDate, b.CounterPrice, b.CounterMessage, b.FinalDate, b.FinalPrice, b.Status, b.PaymentMethod, b.UpdatedAt, b.ID, from)
	if err != nil {
		return models.BookingRequest{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.BookingRequest{}, models.ErrConflict
	}
	if err := tx.Commit(); err != nil {
		return models.BookingRequest{}, err
	}
	return b, nil
}
