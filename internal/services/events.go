package services

import (
	"context"
	"log"

	"sanaaBack/internal/marketplace/celebration"
	"sanaaBack/internal/realtime"
)

// publish announces a row change on its id channel and on each filter column.
// Delivery problems never fail the write that caused them.
func publish(ctx context.Context, broker realtime.Broker, table, rowID string, op realtime.Op, filters map[string]string) {
	if broker == nil {
		return
	}
	if err := realtime.PublishAll(ctx, broker, realtime.RowChanged(table, rowID, op, filters)); err != nil {
		log.Printf("realtime %s %s: %v", table, rowID, err)
	}
}

func celebrate(ctx context.Context, d *celebration.Dispatcher, kind celebration.Kind, subjectID, recipientID string, details celebration.Details) {
	if d == nil || recipientID == "" {
		return
	}
	if _, _, err := d.Fire(ctx, kind, subjectID, recipientID, details); err != nil {
		log.Printf("celebration %s for %s: %v", kind, recipientID, err)
	}
}
