//go:generate mockgen -source=contracts.go -destination=mocks_test.go -package=shipment_test

package shipment

import (
	"context"

	"courier-admin/internal/domain"
	"courier-admin/internal/ports/shipmenttx"
)

// Repository is the shipment storage used by the service.
type Repository interface {
	WithTx(ctx context.Context, fn func(tx shipmenttx.Repository) error) error
	Get(ctx context.Context, id int64) (*domain.Shipment, error)
	ListTracking(ctx context.Context, shipmentID int64) ([]domain.TrackingEntry, error)
}

// BranchReader loads a branch by id.
type BranchReader interface {
	Get(ctx context.Context, id int64) (*domain.Branch, error)
}

// UserReader loads a user by id.
type UserReader interface {
	Get(ctx context.Context, id int64) (*domain.User, error)
}
