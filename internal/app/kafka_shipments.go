package app

import (
	"context"
	"errors"

	"courier-admin/internal/apperr"
	"courier-admin/internal/service/ingest"
	"courier-admin/internal/transport/kafka"
)

type eventHandler interface {
	Handle(ctx context.Context, e ingest.Event) error
}

// makeShipmentsKafka adapts the ingest processor to the consumer.
// Rejected events are committed; storage failures are redelivered.
func makeShipmentsKafka(p eventHandler) kafka.HandleFunc {
	return func(ctx context.Context, e ingest.Event) error {
		err := p.Handle(ctx, e)
		if errors.Is(err, apperr.ErrInvalid) {
			return kafka.Permanent(err)
		}
		return err
	}
}
