package shipment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"courier-admin/internal/apperr"
	"courier-admin/internal/domain"
	"courier-admin/internal/logx"
	"courier-admin/internal/ports/shipmenttx"
)

// Service - shipment status workflow.
type Service struct {
	repo             Repository
	branches         BranchReader
	users            UserReader
	updates          *prometheus.CounterVec
	operationTimeout time.Duration
	logger           logx.Logger
}

// NewService - creates a new shipment Service. updates may be nil.
func NewService(
	repo Repository,
	branches BranchReader,
	users UserReader,
	updates *prometheus.CounterVec,
	timeout time.Duration,
	logger logx.Logger,
) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		repo:             repo,
		branches:         branches,
		users:            users,
		updates:          updates,
		operationTimeout: timeout,
		logger:           logger,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// UpdateStatus applies a status change and appends a tracking entry in one transaction.
func (s *Service) UpdateStatus(ctx context.Context, actor domain.Actor, in domain.StatusUpdate) (domain.StatusUpdateResult, error) {
	if !actor.IsAdmin() {
		return domain.StatusUpdateResult{}, apperr.ErrForbidden
	}
	if err := validateUpdate(in); err != nil {
		return domain.StatusUpdateResult{}, err
	}
	if in.ShipmentID <= 0 {
		return domain.StatusUpdateResult{}, apperr.ErrNotFound
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var result domain.StatusUpdateResult

	err := s.repo.WithTx(ctx, func(tx shipmenttx.Repository) error {
		sh, err := tx.GetShipmentForUpdate(ctx, in.ShipmentID)
		if err != nil {
			return storageErr(err)
		}
		if sh == nil || !actor.CanAccessBranch(sh.BranchID) {
			return apperr.ErrNotFound
		}

		if in.DeliveryUserID != nil {
			u, err := tx.GetUser(ctx, *in.DeliveryUserID)
			if err != nil {
				return storageErr(err)
			}
			if u == nil {
				return apperr.ErrNotFound
			}
			if msg := deliveryUserProblem(u, sh.BranchID); msg != "" {
				return apperr.FieldError("delivery_user_id", msg)
			}
		}

		sh.Status = in.Status
		sh.DeliveryUserID = in.DeliveryUserID
		sh.Notes = in.Notes
		if err := tx.UpdateShipmentStatus(ctx, sh); err != nil {
			return storageErr(err)
		}

		entry := domain.TrackingEntry{
			ShipmentID: sh.ID,
			Status:     in.Status,
			Remarks:    in.Notes,
			CreatedBy:  actor.UserID,
		}
		if err := tx.InsertTracking(ctx, &entry); err != nil {
			return storageErr(err)
		}

		result = domain.StatusUpdateResult{Shipment: *sh, Entry: entry}
		return nil
	})
	if err != nil {
		return domain.StatusUpdateResult{}, s.failed("update shipment status", in.ShipmentID, err)
	}

	if s.updates != nil {
		s.updates.WithLabelValues(string(in.Status)).Inc()
	}
	s.logger.Info("shipment status updated",
		logx.String("event", "shipment_status_updated"),
		logx.Int64("shipment_id", result.Shipment.ID),
		logx.String("status", string(result.Shipment.Status)),
		logx.Int64("tracking_id", result.Entry.ID),
		logx.Int64("actor_id", actor.UserID),
	)

	return result, nil
}

// Get returns a shipment with its branch and assigned delivery user.
func (s *Service) Get(ctx context.Context, actor domain.Actor, id int64) (domain.ShipmentDetails, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	sh, err := s.visible(ctx, actor, id)
	if err != nil {
		return domain.ShipmentDetails{}, s.failed("get shipment", id, err)
	}

	details := domain.ShipmentDetails{Shipment: *sh}
	if details.Branch, err = s.branches.Get(ctx, sh.BranchID); err != nil {
		return domain.ShipmentDetails{}, s.failed("get shipment branch", id, storageErr(err))
	}
	if sh.DeliveryUserID != nil {
		if details.DeliveryUser, err = s.users.Get(ctx, *sh.DeliveryUserID); err != nil {
			return domain.ShipmentDetails{}, s.failed("get shipment delivery user", id, storageErr(err))
		}
	}
	return details, nil
}

// History returns the tracking entries of a shipment, oldest first.
func (s *Service) History(ctx context.Context, actor domain.Actor, id int64) ([]domain.TrackingEntry, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.visible(ctx, actor, id); err != nil {
		return nil, s.failed("get shipment history", id, err)
	}
	entries, err := s.repo.ListTracking(ctx, id)
	if err != nil {
		return nil, s.failed("get shipment history", id, storageErr(err))
	}
	return entries, nil
}

// visible loads a shipment the actor may read. Admins are scoped by branch,
// delivery users see only shipments assigned to them.
func (s *Service) visible(ctx context.Context, actor domain.Actor, id int64) (*domain.Shipment, error) {
	if !actor.Role.Valid() {
		return nil, apperr.ErrForbidden
	}
	if id <= 0 {
		return nil, apperr.ErrNotFound
	}
	sh, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, storageErr(err)
	}
	if sh == nil {
		return nil, apperr.ErrNotFound
	}
	if actor.Role == domain.RoleDeliveryUser {
		if sh.DeliveryUserID == nil || *sh.DeliveryUserID != actor.UserID {
			return nil, apperr.ErrNotFound
		}
		return sh, nil
	}
	if !actor.CanAccessBranch(sh.BranchID) {
		return nil, apperr.ErrNotFound
	}
	return sh, nil
}

// failed normalizes err for callers and logs storage failures.
func (s *Service) failed(op string, id int64, err error) error {
	if errors.Is(err, apperr.ErrNotFound) || errors.Is(err, apperr.ErrInvalid) || errors.Is(err, apperr.ErrForbidden) {
		return err
	}
	err = storageErr(err)
	s.logger.Error(op+" failed",
		logx.Int64("shipment_id", id),
		logx.Err(err),
	)
	return err
}

func storageErr(err error) error {
	if errors.Is(err, apperr.ErrStorage) {
		return err
	}
	return fmt.Errorf("%w: %w", apperr.ErrStorage, err)
}
