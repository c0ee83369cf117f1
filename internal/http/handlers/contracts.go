package handlers

import (
	"context"

	"courier-admin/internal/domain"
)

// ShipmentUsecase is the shipment workflow used by ShipmentHandler.
type ShipmentUsecase interface {
	UpdateStatus(ctx context.Context, actor domain.Actor, in domain.StatusUpdate) (domain.StatusUpdateResult, error)
	Get(ctx context.Context, actor domain.Actor, id int64) (domain.ShipmentDetails, error)
	History(ctx context.Context, actor domain.Actor, id int64) ([]domain.TrackingEntry, error)
}

// DirectoryUsecase is the branch and user directory used by DirectoryHandler.
type DirectoryUsecase interface {
	ListBranches(ctx context.Context, status *domain.BranchStatus) ([]domain.Branch, error)
	ListDeliveryUsers(ctx context.Context, branchID int64) ([]domain.User, error)
	CreateBranch(ctx context.Context, actor domain.Actor, b domain.Branch) (domain.Branch, error)
	SetBranchStatus(ctx context.Context, actor domain.Actor, id int64, status domain.BranchStatus) (domain.Branch, error)
	CreateUser(ctx context.Context, actor domain.Actor, nu domain.NewUser) (domain.User, error)
	ListUsers(ctx context.Context, actor domain.Actor, f domain.UserFilter) ([]domain.User, error)
}
