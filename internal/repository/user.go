package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"courier-admin/internal/apperr"
	"courier-admin/internal/domain"
)

// UserRepo represents user repository.
type UserRepo struct{ db *pgxpool.Pool }

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *pgxpool.Pool) *UserRepo { return &UserRepo{db: db} }

// Get - returns user by its ID.
func (r *UserRepo) Get(ctx context.Context, id int64) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return u, nil
}

// List returns users matching f, ordered by name.
func (r *UserRepo) List(ctx context.Context, f domain.UserFilter) ([]domain.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE true`
	args := make([]any, 0, 2)
	if f.BranchID != nil {
		args = append(args, *f.BranchID)
		q += fmt.Sprintf(" AND branch_id = $%d", len(args))
	}
	if f.Role != nil {
		args = append(args, string(*f.Role))
		q += fmt.Sprintf(" AND role = $%d", len(args))
	}
	q += ` ORDER BY name, id`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return collectUsers(rows)
}

// ListDeliveryUsers returns active delivery users of a branch, ordered by name.
func (r *UserRepo) ListDeliveryUsers(ctx context.Context, branchID int64) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, `
        SELECT `+userColumns+`
        FROM users
        WHERE branch_id = $1 AND role = $2 AND status = $3
        ORDER BY name, id
    `, branchID, string(domain.RoleDeliveryUser), string(domain.UserActive))
	if err != nil {
		return nil, fmt.Errorf("list delivery users %d: %w", branchID, err)
	}
	return collectUsers(rows)
}

// Create - creates a new user. PasswordHash must already be set.
func (r *UserRepo) Create(ctx context.Context, u *domain.User) (int64, error) {
	err := r.db.QueryRow(ctx, `
        INSERT INTO users (name, email, phone, role, branch_id, status, password_hash)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at
    `, u.Name, u.Email, u.Phone, string(u.Role), u.BranchID, string(u.Status), u.PasswordHash,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		switch {
		case IsDuplicate(err):
			return 0, apperr.ErrConflict
		case IsForeignKey(err):
			return 0, apperr.FieldError("branch_id", "unknown branch")
		}
		return 0, fmt.Errorf("create user: %w", err)
	}
	return u.ID, nil
}

func collectUsers(rows pgx.Rows) ([]domain.User, error) {
	defer rows.Close()
	out := make([]domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}
