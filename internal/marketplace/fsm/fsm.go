package fsm

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"sanaaBack/internal/models"
)

// Entity names a table whose rows carry a status column.
type Entity string

const (
	Requests     Entity = "maintenance_requests"
	Bookings     Entity = "booking_requests"
	Quotes       Entity = "quote_submissions"
	Contracts    Entity = "contracts"
	Negotiations Entity = "quote_negotiations"
)

// ErrInvalidTransition is returned when a status change is not allowed.
var ErrInvalidTransition = models.ErrInvalidTransition

type table map[string]map[string]struct{}

var transitions = map[Entity]table{
	Requests: {
		string(models.RequestOpen):       {string(models.RequestInProgress): {}, string(models.RequestClosed): {}},
		string(models.RequestInProgress): {string(models.RequestCompleted): {}, string(models.RequestClosed): {}},
		string(models.RequestCompleted):  {},
		string(models.RequestClosed):     {},
	},
	Bookings: {
		string(models.BookingPending): {
			string(models.BookingAccepted):        {},
			string(models.BookingDeclined):        {},
			string(models.BookingCounterProposed): {},
			string(models.BookingCancelled):       {},
		},
		string(models.BookingCounterProposed): {
			string(models.BookingAccepted):  {},
			string(models.BookingDeclined):  {},
			string(models.BookingCancelled): {},
		},
		string(models.BookingAccepted): {
			string(models.BookingContractPending): {},
			string(models.BookingCompleted):       {},
			string(models.BookingCancelled):       {},
		},
		string(models.BookingContractPending): {
			string(models.BookingCompleted): {},
			string(models.BookingCancelled): {},
		},
		string(models.BookingDeclined):  {},
		string(models.BookingCompleted): {},
		string(models.BookingCancelled): {},
	},
	Quotes: {
		string(models.QuotePending): {
			string(models.QuoteNegotiating):       {},
			string(models.QuoteAccepted):          {},
			string(models.QuoteRevisionRequested): {},
			string(models.QuoteRejected):          {},
		},
		string(models.QuoteNegotiating): {
			string(models.QuoteAccepted):          {},
			string(models.QuoteRevisionRequested): {},
			string(models.QuoteRejected):          {},
		},
		string(models.QuoteRevisionRequested): {
			string(models.QuotePending):  {},
			string(models.QuoteRejected): {},
		},
		string(models.QuoteAccepted): {},
		string(models.QuoteRejected): {},
	},
	Contracts: {
		string(models.ContractDraft):         {string(models.ContractReadyToSign): {}},
		string(models.ContractReadyToSign):   {string(models.ContractPendingBuyer): {}, string(models.ContractPendingSeller): {}},
		string(models.ContractPendingBuyer):  {string(models.ContractExecuted): {}},
		string(models.ContractPendingSeller): {string(models.ContractExecuted): {}},
		string(models.ContractExecuted):      {},
	},
	Negotiations: {
		string(models.NegotiationOpen):     {string(models.NegotiationAccepted): {}, string(models.NegotiationDeclined): {}},
		string(models.NegotiationAccepted): {},
		string(models.NegotiationDeclined): {},
	},
}

// CanTransition returns whether a row of entity can move from one status to another.
func CanTransition(entity Entity, from, to string) bool {
	if from == to {
		return true
	}
	t, ok := transitions[entity]
	if !ok {
		return false
	}
	allowed, ok := t[from]
	if !ok {
		return false
	}
	_, ok = allowed[to]
	return ok
}

// Terminal reports whether no further transitions are possible from status.
func Terminal(entity Entity, status string) bool {
	t, ok := transitions[entity]
	if !ok {
		return false
	}
	allowed, ok := t[status]
	return ok && len(allowed) == 0
}

// Rebinder rewrites "?" placeholders for the active SQL dialect.
type Rebinder interface {
	Rebind(query string) string
}

// Apply updates a row status using optimistic validation.
func Apply(ctx context.Context, tx *sql.Tx, db Rebinder, entity Entity, id, fromStatus, toStatus string, now time.Time) error {
	if !CanTransition(entity, fromStatus, toStatus) {
		return ErrInvalidTransition
	}
	if _, ok := transitions[entity]; !ok {
		return errors.New("fsm: unknown entity")
	}
	query := db.Rebind(`UPDATE ` + string(entity) + ` SET status = ?, updated_at = ? WHERE id = ? AND status = ?`)
	res, err := tx.ExecContext(ctx, query, toStatus, now, id, fromStatus)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
