package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"courier-admin/internal/apperr"
	"courier-admin/internal/domain"
	"courier-admin/internal/logx"
)

// Outcome labels for the ingest counter.
const (
	resultCreated   = "created"
	resultDuplicate = "duplicate"
	resultInvalid   = "invalid"
	resultFailed    = "failed"
)

// Processor stores shipment-created events as pending shipments.
type Processor struct {
	repo             ShipmentCreator
	events           *prometheus.CounterVec
	operationTimeout time.Duration
	logger           logx.Logger
}

// NewProcessor creates a new Processor. events may be nil.
func NewProcessor(repo ShipmentCreator, events *prometheus.CounterVec, timeout time.Duration, logger logx.Logger) *Processor {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Processor{repo: repo, events: events, operationTimeout: timeout, logger: logger}
}

// Handle inserts the shipment described by e. A tracking number that already
// exists is skipped. Events that can never be stored return an error wrapping apperr.ErrInvalid.
func (p *Processor) Handle(ctx context.Context, e Event) error {
	s, err := toShipment(e)
	if err != nil {
		p.count(resultInvalid)
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, p.operationTimeout)
	defer cancel()

	id, err := p.repo.Create(ctx, s)
	switch {
	case err == nil:
	case errors.Is(err, apperr.ErrConflict):
		p.count(resultDuplicate)
		p.logger.Debug("shipment already ingested", logx.String("tracking_number", s.TrackingNumber))
		return nil
	case errors.Is(err, apperr.ErrInvalid):
		p.count(resultInvalid)
		return err
	default:
		p.count(resultFailed)
		return fmt.Errorf("%w: %w", apperr.ErrStorage, err)
	}

	p.count(resultCreated)
	p.logger.Info("shipment ingested",
		logx.String("event", "shipment_ingested"),
		logx.Int64("shipment_id", id),
		logx.String("tracking_number", s.TrackingNumber),
		logx.Int64("branch_id", s.BranchID),
	)
	return nil
}

func toShipment(e Event) (*domain.Shipment, error) {
	verr := apperr.NewValidationError()
	tracking := strings.TrimSpace(e.TrackingNumber)
	if tracking == "" {
		verr.Add("tracking_number", "is required")
	}
	if e.BranchID <= 0 {
		verr.Add("branch_id", "must be a positive id")
	}
	if strings.TrimSpace(e.RecipientName) == "" {
		verr.Add("recipient_name", "is required")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	return &domain.Shipment{
		TrackingNumber:   tracking,
		BranchID:         e.BranchID,
		SenderName:       strings.TrimSpace(e.SenderName),
		SenderPhone:      strings.TrimSpace(e.SenderPhone),
		SenderAddress:    strings.TrimSpace(e.SenderAddress),
		RecipientName:    strings.TrimSpace(e.RecipientName),
		RecipientPhone:   strings.TrimSpace(e.RecipientPhone),
		RecipientAddress: strings.TrimSpace(e.RecipientAddress),
		Status:           domain.ShipmentPending,
		Notes:            e.Notes,
	}, nil
}

func (p *Processor) count(result string) {
	if p.events != nil {
		p.events.WithLabelValues(result).Inc()
	}
}
