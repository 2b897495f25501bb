// Package celebration builds the one-shot confirmation screens shown when a
// booking, quote or contract reaches a milestone, and fires their side
// effects exactly once per recipient.
package celebration

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"sanaaBack/internal/i18n"
)

type Kind string

const (
	BookingConfirmed Kind = "booking_confirmed"
	ContractExecuted Kind = "contract_executed"
	JobWon           Kind = "job_won"
	RequestSubmitted Kind = "request_submitted"
)

func (k Kind) Valid() bool {
	switch k {
	case BookingConfirmed, ContractExecuted, JobWon, RequestSubmitted:
		return true
	}
	return false
}

var texts = map[Kind][2]i18n.Key{
	BookingConfirmed: {i18n.BookingConfirmedTitle, i18n.BookingConfirmedBody},
	ContractExecuted: {i18n.ContractExecutedTitle, i18n.ContractExecutedBody},
	JobWon:           {i18n.JobWonTitle, i18n.JobWonBody},
	RequestSubmitted: {i18n.RequestSubmittedTitle, i18n.RequestSubmittedBody},
}

// Details are supplied by the caller; the screen adds nothing of its own.
type Details struct {
	Name     string     `json:"name,omitempty"`
	Amount   *float64   `json:"amount,omitempty"`
	Date     *time.Time `json:"date,omitempty"`
	Location string     `json:"location,omitempty"`
}

type Screen struct {
	Kind      Kind          `json:"kind"`
	SubjectID string        `json:"subject_id"`
	Language  i18n.Language `json:"language"`
	Direction string        `json:"direction"`
	Title     string        `json:"title"`
	Body      string        `json:"body"`
	Continue  string        `json:"continue"`
	Details
}

// Build renders the screen for kind in lang.
func Build(kind Kind, subjectID string, lang i18n.Language, d Details) Screen {
	cat := i18n.Lookup(lang)
	keys := texts[kind]
	return Screen{
		Kind:      kind,
		SubjectID: subjectID,
		Language:  cat.Language,
		Direction: cat.Direction,
		Title:     cat.Text(keys[0]),
		Body:      cat.Textf(keys[1], d.Name),
		Continue:  cat.Text(i18n.ContinueLabel),
		Details:   d,
	}
}

// Notifier delivers the alert that accompanies a screen.
type Notifier interface {
	Notify(ctx context.Context, userID, title, body string, data map[string]string) error
}

// Pusher delivers the screen to the user's open sockets.
type Pusher interface {
	Push(userID string, kind string, payload interface{})
}

// OnceStore records that a key has been used. Once returns true only for the
// first caller.
type OnceStore interface {
	Once(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// Logger defines minimal logging interface required by the dispatcher.
type Logger interface {
	Infof(string, ...interface{})
	Errorf(string, ...interface{})
}

type Dispatcher struct {
	once     OnceStore
	notifier Notifier
	pusher   Pusher
	language func(ctx context.Context, userID string) i18n.Language
	logger   Logger
	ttl      time.Duration
}

type Config struct {
	Once     OnceStore
	Notifier Notifier
	Pusher   Pusher
	Language func(ctx context.Context, userID string) i18n.Language
	Logger   Logger
	TTL      time.Duration
}

func NewDispatcher(cfg Config) *Dispatcher {
	d := &Dispatcher{
		once:     cfg.Once,
		notifier: cfg.Notifier,
		pusher:   cfg.Pusher,
		language: cfg.Language,
		logger:   cfg.Logger,
		ttl:      cfg.TTL,
	}
	if d.once == nil {
		d.once = NewMemoryOnce()
	}
	if d.ttl <= 0 {
		d.ttl = 30 * 24 * time.Hour
	}
	return d
}

// Fire shows the screen to recipientID once. Repeated calls for the same
// kind, subject and recipient return fired=false and have no side effects.
// Delivery failures are logged, never retried.
func (d *Dispatcher) Fire(ctx context.Context, kind Kind, subjectID, recipientID string, details Details) (Screen, bool, error) {
	if !kind.Valid() {
		return Screen{}, false, fmt.Errorf("celebration: unknown kind %q", kind)
	}
	lang := i18n.Default
	if d.language != nil {
		lang = d.language(ctx, recipientID)
	}
	screen := Build(kind, subjectID, lang, details)

	first, err := d.once.Once(ctx, key(kind, subjectID, recipientID), d.ttl)
	if err != nil {
		return screen, false, err
	}
	if !first {
		return screen, false, nil
	}

	if d.pusher != nil {
		d.pusher.Push(recipientID, "celebration", screen)
	}
	if d.notifier != nil {
		data := map[string]string{"kind": string(kind), "subject_id": subjectID}
		if details.Amount != nil {
			data["amount"] = strconv.FormatFloat(*details.Amount, 'f', 2, 64)
		}
		if err := d.notifier.Notify(ctx, recipientID, screen.Title, screen.Body, data); err != nil && d.logger != nil {
			d.logger.Errorf("celebration %s for %s: notify failed: %v", kind, recipientID, err)
		}
	}
	if d.logger != nil {
		d.logger.Infof("celebration %s fired for %s (%s)", kind, recipientID, subjectID)
	}
	return screen, true, nil
}

func key(kind Kind, subjectID, recipientID string) string {
	return fmt.Sprintf("celebration:%s:%s:%s", kind, subjectID, recipientID)
}
