//go:generate mockgen -source=contracts.go -destination=mocks_test.go -package=directory_test

package directory

import (
	"context"

	"courier-admin/internal/domain"
)

// BranchRepository describes branch storage used by the service.
type BranchRepository interface {
	Get(ctx context.Context, id int64) (*domain.Branch, error)
	List(ctx context.Context, status *domain.BranchStatus) ([]domain.Branch, error)
	Create(ctx context.Context, b *domain.Branch) (int64, error)
	SetStatus(ctx context.Context, id int64, status domain.BranchStatus) (bool, error)
}

// UserRepository describes user storage used by the service.
type UserRepository interface {
	Get(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context, f domain.UserFilter) ([]domain.User, error)
	ListDeliveryUsers(ctx context.Context, branchID int64) ([]domain.User, error)
	Create(ctx context.Context, u *domain.User) (int64, error)
}

// Cache stores serialized lookup results.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}
