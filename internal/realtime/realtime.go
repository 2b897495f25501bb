// Package realtime delivers row change notifications to subscribers that
// react by refetching. Transport and refetch policy are kept apart: a Broker
// produces Subscriptions, Debounce turns bursts into single refetches.
package realtime

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

type Op string

const (
	OpInsert Op = "INSERT"
	OpUpdate Op = "UPDATE"
	OpDelete Op = "DELETE"
)

// ChangeEvent says that a row matching a per-table filter changed.
type ChangeEvent struct {
	Table  string    `json:"table"`
	Column string    `json:"column"`
	Value  string    `json:"value"`
	RowID  string    `json:"row_id"`
	Op     Op        `json:"op"`
	At     time.Time `json:"at"`
}

// Channel names the subscription the event belongs to.
func (e ChangeEvent) Channel() string {
	return Channel(e.Table, e.Column, e.Value)
}

// Channel builds a "<table>:<column>=<value>" channel name.
func Channel(table, column, value string) string {
	return fmt.Sprintf("%s:%s=%s", table, column, value)
}

// ParseChannel validates a channel name supplied by a client.
func ParseChannel(ch string) (table, column, value string, err error) {
	table, rest, ok := strings.Cut(ch, ":")
	if !ok || table == "" {
		return "", "", "", fmt.Errorf("invalid channel %q", ch)
	}
	column, value, ok = strings.Cut(rest, "=")
	if !ok || column == "" || value == "" {
		return "", "", "", fmt.Errorf("invalid channel %q", ch)
	}
	return table, column, value, nil
}

// RowChanged builds one event per filter column of the changed row.
func RowChanged(table, rowID string, op Op, filters map[string]string) []ChangeEvent {
	now := time.Now().UTC()
	out := make([]ChangeEvent, 0, len(filters)+1)
	out = append(out, ChangeEvent{Table: table, Column: "id", Value: rowID, RowID: rowID, Op: op, At: now})
	for col, val := range filters {
		if val == "" || col == "id" {
			continue
		}
		out = append(out, ChangeEvent{Table: table, Column: col, Value: val, RowID: rowID, Op: op, At: now})
	}
	return out
}

// Subscription is a stream of change events for a fixed set of channels.
type Subscription interface {
	Events() <-chan ChangeEvent
	Close() error
}

type Broker interface {
	Publish(ctx context.Context, ev ChangeEvent) error
	Subscribe(ctx context.Context, channels ...string) (Subscription, error)
}

var ErrNoChannels = errors.New("realtime: no channels")

// PublishAll publishes every event and joins the failures.
func PublishAll(ctx context.Context, b Broker, events []ChangeEvent) error {
	if b == nil {
		return nil
	}
	var errs []error
	for _, ev := range events {
		if err := b.Publish(ctx, ev); err != nil {
			errs = append(errs, fmt.Errorf("publish %s: %w", ev.Channel(), err))
		}
	}
	return errors.Join(errs...)
}

var userColumns = map[string]struct{}{
	"buyer_id":           {},
	"assigned_seller_id": {},
	"seller_id":          {},
	"initiator_id":       {},
	"recipient_id":       {},
	"sender_id":          {},
	"user_id":            {},
}

// AllowChannel reports whether userID may listen on ch. Channels filtered by
// a user column are private to that user; channels keyed by a row id carry
// no row data and are open to any signed-in user.
func AllowChannel(userID, ch string) bool {
	_, column, value, err := ParseChannel(ch)
	if err != nil {
		return false
	}
	if _, ok := userColumns[column]; ok {
		return value == userID
	}
	return true
}
