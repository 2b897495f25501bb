package repositories

import (
	"context"
	"database/sql"

	"sanaaBack/internal/models"
)

type QuoteTemplateRepository struct {
	store
}

func NewQuoteTemplateRepository(db *sql.DB, d Dialect) *QuoteTemplateRepository {
	return &QuoteTemplateRepository{store{DB: db, Dialect: d}}
}

const templateColumns = `id, seller_id, name, price, duration, description, created_at, updated_at`

func scanTemplate(row scanner) (models.QuoteTemplate, error) {
	var (
		t           models.QuoteTemplate
		price       sql.NullFloat64
		duration    sql.NullString
		description sql.NullString
	)
	if err := row.Scan(&t.ID, &t.SellerID, &t.Name, &price, &duration, &description, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return models.QuoteTemplate{}, notFound(err)
	}
	t.Price = nullFloat64ToPtr(price)
	t.Duration = duration.String
	t.Description = description.String
	return t, nil
}

func (r *QuoteTemplateRepository) Create(ctx context.Context, t models.QuoteTemplate) error {
	_, err := r.DB.ExecContext(ctx, r.q(`INSERT INTO request_quote_templates (`+templateColumns+`) VALUES (`+placeholders(8)+`)`),
		t.ID, t.SellerID, t.Name, t.Price, t.Duration, t.Description, t.CreatedAt, t.UpdatedAt)
	return err
}

func (r *QuoteTemplateRepository) ListBySeller(ctx context.Context, sellerID string) ([]models.QuoteTemplate, error) {
	rows, err := r.DB.QueryContext(ctx, r.q(`SELECT `+templateColumns+` FROM request_quote_templates WHERE seller_id = ? ORDER BY name`), sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.QuoteTemplate{}
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *QuoteTemplateRepository) GetByID(ctx context.Context, id string) (models.QuoteTemplate, error) {
	return scanTemplate(r.DB.QueryRowContext(ctx, r.q(`SELECT `+templateColumns+` FROM request_quote_templates WHERE id = ?`), id))
}

// Update rewrites a template owned by t.SellerID.
func (r *QuoteTemplateRepository) Update(ctx context.Context, t models.QuoteTemplate) error {
	res, err := r.DB.ExecContext(ctx, r.q(`UPDATE request_quote_templates SET name = ?, price = ?, duration = ?, description = ?, updated_at = ?
		WHERE id = ? AND seller_id = ?`), t.Name, t.Price, t.Duration, t.Description, t.UpdatedAt, t.ID, t.SellerID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrNoRecord
	}
	return nil
}

func (r *QuoteTemplateRepository) Delete(ctx context.Context, id, sellerID string) error {
	res, err := r.DB.ExecContext(ctx, r.q(`DELETE FROM request_quote_templates WHERE id = ? AND seller_id = ?`), id, sellerID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrNoRecord
	}
	return nil
}
