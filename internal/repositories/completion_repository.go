package repositories

import (
	"context"
	"database/sql"
	"time"

	"sanaaBack/internal/marketplace/completion"
	"sanaaBack/internal/models"
)

// CompletionRepository reads and writes the completion flags of bookings and
// maintenance requests.
type CompletionRepository struct {
	store
}

func NewCompletionRepository(db *sql.DB, d Dialect) *CompletionRepository {
	return &CompletionRepository{store{DB: db, Dialect: d}}
}

func completionTable(t completion.Target) (table, sellerColumn, contractColumn string) {
	if t.IsBooking() {
		return "booking_requests", "seller_id", "booking_id"
	}
	return "maintenance_requests", "assigned_seller_id", "request_id"
}

func (r *CompletionRepository) Load(ctx context.Context, t completion.Target) (completion.Record, error) {
	if err := t.Validate(); err != nil {
		return completion.Record{}, err
	}
	table, sellerColumn, contractColumn := completionTable(t)

	var (
		rec        = completion.Record{Target: t}
		seller     sql.NullString
		payment    sql.NullString
		buyerDone  sql.NullTime
		sellerDone sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx, r.q(`SELECT buyer_id, `+sellerColumn+`, title, status, payment_method,
		buyer_marked_complete, seller_marked_complete, buyer_completed_at, seller_completed_at FROM `+table+` WHERE id = ?`), t.ID()).
		Scan(&rec.BuyerID, &seller, &rec.Title, &rec.Status, &payment, &rec.BuyerMarkedComplete, &rec.SellerMarkedComplete,
			&buyerDone, &sellerDone)
	if err != nil {
		return completion.Record{}, notFound(err)
	}
	rec.SellerID = seller.String
	rec.PaymentMethod = models.PaymentMethod(payment.String)
	rec.BuyerCompletedAt = nullTimeToPtr(buyerDone)
	rec.SellerCompletedAt = nullTimeToPtr(sellerDone)

	var executed int
	err = r.DB.QueryRowContext(ctx, r.q(`SELECT COUNT(*) FROM contracts WHERE `+contractColumn+` = ?
		AND buyer_signed_at IS NOT NULL AND seller_signed_at IS NOT NULL`), t.ID()).Scan(&executed)
	if err != nil {
		return completion.Record{}, err
	}
	rec.ContractFullyExecuted = executed > 0
	return rec, nil
}

func (r *CompletionRepository) MarkBuyerComplete(ctx context.Context, t completion.Target, at time.Time) error {
	table, _, _ := completionTable(t)
	return r.exec(ctx, `UPDATE `+table+` SET buyer_marked_complete = TRUE, buyer_completed_at = ?, updated_at = ? WHERE id = ?`, at, at, t.ID())
}

// MarkSellerComplete sets the seller flag and closes the record in one statement.
func (r *CompletionRepository) MarkSellerComplete(ctx context.Context, t completion.Target, at time.Time) error {
	table, _, _ := completionTable(t)
	return r.exec(ctx, `UPDATE `+table+` SET seller_marked_complete = TRUE, seller_completed_at = ?, status = ?, updated_at = ? WHERE id = ?`,
		at, completion.StatusCompleted, at, t.ID())
}

func (r *CompletionRepository) exec(ctx context.Context, query string, args ...interface{}) error {
	res, err := r.DB.ExecContext(ctx, r.q(query), args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return models.ErrNoRecord
	}
	return nil
}

// PendingPaymentConfirmations returns records the buyer marked complete before
// the cutoff that still wait for the seller.
func (r *CompletionRepository) PendingPaymentConfirmations(ctx context.Context, before time.Time) ([]completion.Record, error) {
	var out []completion.Record
	for _, t := range []struct {
		table, seller string
		booking       bool
	}{
		{"booking_requests", "seller_id", true},
		{"maintenance_requests", "assigned_seller_id", false},
	} {
		rows, err := r.DB.QueryContext(ctx, r.q(`SELECT id, buyer_id, `+t.seller+`, title, status, payment_method, buyer_completed_at
			FROM `+t.table+` WHERE buyer_marked_complete = TRUE AND seller_marked_complete = FALSE AND buyer_completed_at < ?`), before)
		if err != nil {
			return nil, err
		}
		for rows.Next() {
			var (
				rec       completion.Record
				id        string
				seller    sql.NullString
				payment   sql.NullString
				buyerDone sql.NullTime
			)
			if err := rows.Scan(&id, &rec.BuyerID, &seller, &rec.Title, &rec.Status, &payment, &buyerDone); err != nil {
				rows.Close()
				return nil, err
			}
			if t.booking {
				rec.BookingID = id
			} else {
				rec.RequestID = id
			}
			rec.SellerID = seller.String
			rec.PaymentMethod = models.PaymentMethod(payment.String)
			rec.BuyerMarkedComplete = true
			rec.BuyerCompletedAt = nullTimeToPtr(buyerDone)
			out = append(out, rec)
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
