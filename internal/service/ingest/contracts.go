//go:generate mockgen -source=contracts.go -destination=mocks_test.go -package=ingest_test

package ingest

import (
	"context"

	"courier-admin/internal/domain"
)

// ShipmentCreator inserts new shipments.
type ShipmentCreator interface {
	Create(ctx context.Context, s *domain.Shipment) (int64, error)
}
