package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"courier-admin/internal/apperr"
	"courier-admin/internal/domain"
	"courier-admin/internal/ports/shipmenttx"
)

const shipmentColumns = `id, tracking_number, branch_id, sender_name, sender_phone, sender_address,
        recipient_name, recipient_phone, recipient_address, status, delivery_user_id, notes, created_at, updated_at`

const userColumns = `id, name, email, phone, role, branch_id, status, password_hash, created_at, updated_at`

// ShipmentRepo represents shipment repository.
type ShipmentRepo struct {
	db *pgxpool.Pool
}

// NewShipmentRepo creates a new ShipmentRepo.
func NewShipmentRepo(db *pgxpool.Pool) *ShipmentRepo {
	return &ShipmentRepo{db: db}
}

// WithTx opens a transaction and executes fn within it.
// The transaction is committed only if fn returns nil.
func (r *ShipmentRepo) WithTx(ctx context.Context, fn func(tx shipmenttx.Repository) error) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(&TxRepo{tx: tx}); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback tx: %w (original error: %s)", rbErr, err.Error())
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// Get returns a shipment by id, or nil when it does not exist.
func (r *ShipmentRepo) Get(ctx context.Context, id int64) (*domain.Shipment, error) {
	s, err := scanShipment(r.db.QueryRow(ctx, `SELECT `+shipmentColumns+` FROM shipments WHERE id = $1`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shipment %d: %w", id, err)
	}
	return s, nil
}

// ListTracking returns tracking entries of a shipment, oldest first.
func (r *ShipmentRepo) ListTracking(ctx context.Context, shipmentID int64) ([]domain.TrackingEntry, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, shipment_id, status, remarks, created_by, created_at
        FROM shipment_tracking
        WHERE shipment_id = $1
        ORDER BY created_at, id
    `, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("list tracking %d: %w", shipmentID, err)
	}
	defer rows.Close()

	out := make([]domain.TrackingEntry, 0)
	for rows.Next() {
		var e domain.TrackingEntry
		if err := rows.Scan(&e.ID, &e.ShipmentID, &e.Status, &e.Remarks, &e.CreatedBy, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tracking: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Create inserts an externally created shipment. Duplicate tracking numbers yield apperr.ErrConflict,
// an unknown branch yields apperr.ErrInvalid.
func (r *ShipmentRepo) Create(ctx context.Context, s *domain.Shipment) (int64, error) {
	err := r.db.QueryRow(ctx, `
        INSERT INTO shipments (tracking_number, branch_id, sender_name, sender_phone, sender_address,
                               recipient_name, recipient_phone, recipient_address, status, notes)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id, created_at, updated_at
    `, s.TrackingNumber, s.BranchID, s.SenderName, s.SenderPhone, s.SenderAddress,
		s.RecipientName, s.RecipientPhone, s.RecipientAddress, string(s.Status), s.Notes,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		switch {
		case IsDuplicate(err):
			return 0, apperr.ErrConflict
		case IsForeignKey(err):
			return 0, fmt.Errorf("%w: unknown branch %d", apperr.ErrInvalid, s.BranchID)
		}
		return 0, fmt.Errorf("create shipment: %w", err)
	}
	return s.ID, nil
}

// TxRepo represents transaction repository.
type TxRepo struct {
	tx pgx.Tx
}

// GetShipmentForUpdate locks the shipment row until the transaction ends.
func (r *TxRepo) GetShipmentForUpdate(ctx context.Context, id int64) (*domain.Shipment, error) {
	s, err := scanShipment(r.tx.QueryRow(ctx, `SELECT `+shipmentColumns+` FROM shipments WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock shipment %d: %w", id, err)
	}
	return s, nil
}

// GetUser reads a user inside the transaction.
func (r *TxRepo) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	u, err := scanUser(r.tx.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return u, nil
}

// UpdateShipmentStatus writes status, delivery user and notes. UpdatedAt is refreshed on s.
func (r *TxRepo) UpdateShipmentStatus(ctx context.Context, s *domain.Shipment) error {
	err := r.tx.QueryRow(ctx, `
        UPDATE shipments
        SET status = $2, delivery_user_id = $3, notes = $4, updated_at = now()
        WHERE id = $1
        RETURNING updated_at
    `, s.ID, string(s.Status), s.DeliveryUserID, s.Notes).Scan(&s.UpdatedAt)
	if err != nil {
		if IsNotFound(err) {
			return fmt.Errorf("shipment %d not found", s.ID)
		}
		return fmt.Errorf("update shipment status %d: %w", s.ID, err)
	}
	return nil
}

// InsertTracking - append a tracking entry.
func (r *TxRepo) InsertTracking(ctx context.Context, e *domain.TrackingEntry) error {
	err := r.tx.QueryRow(ctx, `
        INSERT INTO shipment_tracking (shipment_id, status, remarks, created_by)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at
    `, e.ShipmentID, string(e.Status), e.Remarks, e.CreatedBy).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert tracking: %w", err)
	}
	return nil
}

func scanShipment(row pgx.Row) (*domain.Shipment, error) {
	var s domain.Shipment
	err := row.Scan(&s.ID, &s.TrackingNumber, &s.BranchID, &s.SenderName, &s.SenderPhone, &s.SenderAddress,
		&s.RecipientName, &s.RecipientPhone, &s.RecipientAddress, &s.Status, &s.DeliveryUserID, &s.Notes,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.BranchID, &u.Status, &u.PasswordHash,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
