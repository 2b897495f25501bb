package repositories

import (
	"context"
	"database/sql"

	"sanaaBack/internal/models"
)

type ChatMessageRepository struct {
	store
}

func NewChatMessageRepository(db *sql.DB, d Dialect) *ChatMessageRepository {
	return &ChatMessageRepository{store{DB: db, Dialect: d}}
}

func (r *ChatMessageRepository) Create(ctx context.Context, m models.ChatMessage) error {
	_, err := r.DB.ExecContext(ctx, r.q(`INSERT INTO chat_messages (id, thread_type, thread_id, sender_id, body, created_at) VALUES (?, ?, ?, ?, ?, ?)`),
		m.ID, m.ThreadType, m.ThreadID, m.SenderID, m.Body, m.CreatedAt)
	return err
}

// ListByThread returns the latest limit messages, oldest first.
func (r *ChatMessageRepository) ListByThread(ctx context.Context, threadType models.ThreadType, threadID string, limit int) ([]models.ChatMessage, error) {
	if limit <= 0 || limit > 200 {
		limit = 200
	}
	rows, err := r.DB.QueryContext(ctx, r.q(`SELECT id, thread_type, thread_id, sender_id, body, created_at FROM chat_messages
		WHERE thread_type = ? AND thread_id = ? ORDER BY created_at DESC LIMIT ?`), threadType, threadID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.ChatMessage{}
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.ID, &m.ThreadType, &m.ThreadID, &m.SenderID, &m.Body, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// ThreadParticipants returns the buyer and seller behind a booking or quote thread.
func (r *ChatMessageRepository) ThreadParticipants(ctx context.Context, threadType models.ThreadType, threadID string) (buyerID, sellerID string, err error) {
	switch threadType {
	case models.ThreadBooking:
		err = r.DB.QueryRowContext(ctx, r.q(`SELECT buyer_id, seller_id FROM booking_requests WHERE id = ?`), threadID).Scan(&buyerID, &sellerID)
	case models.ThreadQuote:
		var p models.QuoteParties
		p, err = quoteParties(ctx, r.DB.QueryRowContext, r.Dialect, threadID)
		buyerID, sellerID = p.BuyerID, p.SellerID
		return buyerID, sellerID, err
	default:
		return "", "", models.ErrInvalidInput
	}
	return buyerID, sellerID, notFound(err)
}
