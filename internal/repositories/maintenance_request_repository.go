package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"sanaaBack/internal/marketplace/fsm"
	"sanaaBack/internal/models"
)

type MaintenanceRequestRepository struct {
	store
}

func NewMaintenanceRequestRepository(db *sql.DB, d Dialect) *MaintenanceRequestRepository {
	return &MaintenanceRequestRepository{store{DB: db, Dialect: d}}
}

const requestColumns = `id, buyer_id, title, description, category, city, urgency, budget_min, budget_max, status, assigned_seller_id, payment_method,
	buyer_marked_complete, seller_marked_complete, buyer_completed_at, seller_completed_at, created_at, updated_at`

func scanRequest(row scanner) (models.MaintenanceRequest, error) {
	var (
		m           models.MaintenanceRequest
		description sql.NullString
		budgetMin   sql.NullFloat64
		budgetMax   sql.NullFloat64
		assigned    sql.NullString
		buyerDone   sql.NullTime
		sellerDone  sql.NullTime
	)
	err := row.Scan(&m.ID, &m.BuyerID, &m.Title, &description, &m.Category, &m.City, &m.Urgency, &budgetMin, &budgetMax,
		&m.Status, &assigned, &m.PaymentMethod, &m.BuyerMarkedComplete, &m.SellerMarkedComplete, &buyerDone, &sellerDone,
		&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return models.MaintenanceRequest{}, notFound(err)
	}
	m.Description = description.String
	m.BudgetMin = nullFloat64ToPtr(budgetMin)
	m.BudgetMax = nullFloat64ToPtr(budgetMax)
	m.AssignedSellerID = nullToPtr(assigned)
	m.BuyerCompletedAt = nullTimeToPtr(buyerDone)
	m.SellerCompletedAt = nullTimeToPtr(sellerDone)
	return m, nil
}

func (r *MaintenanceRequestRepository) Create(ctx context.Context, m models.MaintenanceRequest) error {
	query := `INSERT INTO maintenance_requests (` + requestColumns + `) VALUES (` + placeholders(18) + `)`
	_, err := r.DB.ExecContext(ctx, r.q(query), m.ID, m.BuyerID, m.Title, m.Description, m.Category, m.City, m.Urgency,
		m.BudgetMin, m.BudgetMax, m.Status, m.AssignedSellerID, m.PaymentMethod, m.BuyerMarkedComplete, m.SellerMarkedComplete,
		m.BuyerCompletedAt, m.SellerCompletedAt, m.CreatedAt, m.UpdatedAt)
	return err
}

func (r *MaintenanceRequestRepository) GetByID(ctx context.Context, id string) (models.MaintenanceRequest, error) {
	row := r.DB.QueryRowContext(ctx, r.q(`SELECT `+requestColumns+` FROM maintenance_requests WHERE id = ?`), id)
	return scanRequest(row)
}

// List applies equality and membership filters, newest first.
func (r *MaintenanceRequestRepository) List(ctx context.Context, f models.RequestFilter) ([]models.MaintenanceRequest, error) {
	where := []string{}
	args := []interface{}{}
	eq := func(col, val string) {
		if v := strings.TrimSpace(val); v != "" {
			where = append(where, col+" = ?")
			args = append(args, v)
		}
	}
	eq("buyer_id", f.BuyerID)
	eq("category", f.Category)
	eq("city", f.City)
	eq("urgency", f.Urgency)
	if len(f.Statuses) > 0 {
		where = append(where, "status IN ("+placeholders(len(f.Statuses))+")")
		for _, s := range f.Statuses {
			args = append(args, s)
		}
	}

	query := `SELECT ` + requestColumns + ` FROM maintenance_requests`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit, f.Offset)

	rows, err := r.DB.QueryContext(ctx, r.q(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.MaintenanceRequest{}
	for rows.Next() {
		m, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Transition moves a request between statuses if the current status is from.
func (r *MaintenanceRequestRepository) Transition(ctx context.Context, id string, from, to models.RequestStatus, now time.Time) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fsm.Apply(ctx, tx, r.Dialect, fsm.Requests, id, string(from), string(to), now); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrConflict
		}
		return err
	}
	return tx.Commit()
}
