package shipmenttx

import (
	"context"

	"courier-admin/internal/domain"
)

// Repository is the set of shipment operations available inside a transaction.
type Repository interface {
	GetShipmentForUpdate(ctx context.Context, id int64) (*domain.Shipment, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	UpdateShipmentStatus(ctx context.Context, s *domain.Shipment) error
	InsertTracking(ctx context.Context, e *domain.TrackingEntry) error
}

// Runner is a transaction runner
type Runner interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}
