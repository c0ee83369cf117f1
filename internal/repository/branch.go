package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"courier-admin/internal/apperr"
	"courier-admin/internal/domain"
)

const branchColumns = `id, name, code, address, phone, email, status, created_at, updated_at`

// BranchRepo represents branch repository.
type BranchRepo struct{ db *pgxpool.Pool }

// NewBranchRepo creates a new BranchRepo.
func NewBranchRepo(db *pgxpool.Pool) *BranchRepo { return &BranchRepo{db: db} }

// Get - returns branch by its ID.
func (r *BranchRepo) Get(ctx context.Context, id int64) (*domain.Branch, error) {
	var b domain.Branch
	err := r.db.QueryRow(ctx, `SELECT `+branchColumns+` FROM branches WHERE id = $1`, id).
		Scan(&b.ID, &b.Name, &b.Code, &b.Address, &b.Phone, &b.Email, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get branch %d: %w", id, err)
	}
	return &b, nil
}

// List returns branches ordered by name. A nil status returns all of them.
func (r *BranchRepo) List(ctx context.Context, status *domain.BranchStatus) ([]domain.Branch, error) {
	q := `SELECT ` + branchColumns + ` FROM branches`
	args := make([]any, 0, 1)
	if status != nil {
		q += ` WHERE status = $1`
		args = append(args, string(*status))
	}
	q += ` ORDER BY name, id`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Branch, 0)
	for rows.Next() {
		var b domain.Branch
		if err := rows.Scan(&b.ID, &b.Name, &b.Code, &b.Address, &b.Phone, &b.Email, &b.Status,
			&b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan branch: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Create - creates a new branch.
func (r *BranchRepo) Create(ctx context.Context, b *domain.Branch) (int64, error) {
	err := r.db.QueryRow(ctx, `
        INSERT INTO branches (name, code, address, phone, email, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at
    `, b.Name, b.Code, b.Address, b.Phone, b.Email, string(b.Status)).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if IsDuplicate(err) {
			return 0, apperr.ErrConflict
		}
		return 0, fmt.Errorf("create branch: %w", err)
	}
	return b.ID, nil
}

// SetStatus changes the branch status and returns true if a row was affected.
func (r *BranchRepo) SetStatus(ctx context.Context, id int64, status domain.BranchStatus) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE branches
        SET status = $2, updated_at = now()
        WHERE id = $1
    `, id, string(status))
	if err != nil {
		return false, fmt.Errorf("set branch status %d: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}
