package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"

	"courier-admin/internal/apperr"
	"courier-admin/internal/domain"
	"courier-admin/internal/logx"
)

const (
	minPasswordLen = 8
	maxPasswordLen = 72 // bcrypt input limit
)

// Service - branch and user directory.
type Service struct {
	branches         BranchRepository
	users            UserRepository
	cache            Cache
	lookups          *prometheus.CounterVec
	hashCost         int
	operationTimeout time.Duration
	logger           logx.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithCache enables lookup caching. lookups may be nil.
func WithCache(c Cache, lookups *prometheus.CounterVec) Option {
	return func(s *Service) {
		if c != nil {
			s.cache = c
		}
		s.lookups = lookups
	}
}

// WithHashCost overrides the bcrypt cost used for new passwords.
func WithHashCost(cost int) Option {
	return func(s *Service) { s.hashCost = cost }
}

// NewService - creates a new directory Service.
func NewService(branches BranchRepository, users UserRepository, timeout time.Duration, logger logx.Logger, opts ...Option) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	s := &Service{
		branches:         branches,
		users:            users,
		cache:            nopCache{},
		hashCost:         bcrypt.DefaultCost,
		operationTimeout: timeout,
		logger:           logger,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// ListBranches returns branches with the given status, or all of them when status is nil.
func (s *Service) ListBranches(ctx context.Context, status *domain.BranchStatus) ([]domain.Branch, error) {
	if status != nil && !status.Valid() {
		return nil, apperr.FieldError("status", "must be active or inactive")
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return cached(ctx, s, branchesKey(status), func(ctx context.Context) ([]domain.Branch, error) {
		out, err := s.branches.List(ctx, status)
		if err != nil {
			return nil, storageErr(err)
		}
		return out, nil
	})
}

// ListDeliveryUsers returns the active delivery users of a branch ordered by name.
func (s *Service) ListDeliveryUsers(ctx context.Context, branchID int64) ([]domain.User, error) {
	if branchID <= 0 {
		return nil, apperr.ErrNotFound
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return cached(ctx, s, deliveryUsersKey(branchID), func(ctx context.Context) ([]domain.User, error) {
		b, err := s.branches.Get(ctx, branchID)
		if err != nil {
			return nil, storageErr(err)
		}
		if b == nil {
			return nil, apperr.ErrNotFound
		}
		out, err := s.users.ListDeliveryUsers(ctx, branchID)
		if err != nil {
			return nil, storageErr(err)
		}
		return withoutHashes(out), nil
	})
}

// CreateBranch registers a branch. Only super admins may do this.
func (s *Service) CreateBranch(ctx context.Context, actor domain.Actor, b domain.Branch) (domain.Branch, error) {
	if actor.Role != domain.RoleSuperAdmin {
		return domain.Branch{}, apperr.ErrForbidden
	}

	b.Name = strings.TrimSpace(b.Name)
	b.Code = strings.TrimSpace(b.Code)
	b.Email = strings.TrimSpace(b.Email)
	if b.Status == "" {
		b.Status = domain.BranchActive
	}

	verr := apperr.NewValidationError()
	if b.Name == "" {
		verr.Add("name", "is required")
	}
	if b.Code == "" {
		verr.Add("code", "is required")
	}
	if b.Email != "" && !domain.ValidateEmail(b.Email) {
		verr.Add("email", "is not a valid e-mail address")
	}
	if !b.Status.Valid() {
		verr.Add("status", "must be active or inactive")
	}
	if err := verr.OrNil(); err != nil {
		return domain.Branch{}, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.branches.Create(ctx, &b); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return domain.Branch{}, err
		}
		return domain.Branch{}, s.failed("create branch", storageErr(err))
	}
	s.invalidate(ctx, branchKeys()...)

	s.logger.Info("branch created",
		logx.Int64("branch_id", b.ID),
		logx.String("code", b.Code),
		logx.Int64("actor_id", actor.UserID),
	)
	return b, nil
}

// SetBranchStatus activates or deactivates a branch.
func (s *Service) SetBranchStatus(ctx context.Context, actor domain.Actor, id int64, status domain.BranchStatus) (domain.Branch, error) {
	if actor.Role != domain.RoleSuperAdmin {
		return domain.Branch{}, apperr.ErrForbidden
	}
	if !status.Valid() {
		return domain.Branch{}, apperr.FieldError("status", "must be active or inactive")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ok, err := s.branches.SetStatus(ctx, id, status)
	if err != nil {
		return domain.Branch{}, s.failed("set branch status", storageErr(err))
	}
	if !ok {
		return domain.Branch{}, apperr.ErrNotFound
	}
	s.invalidate(ctx, branchKeys()...)

	b, err := s.branches.Get(ctx, id)
	if err != nil {
		return domain.Branch{}, s.failed("get branch", storageErr(err))
	}
	if b == nil {
		return domain.Branch{}, apperr.ErrNotFound
	}
	return *b, nil
}

// CreateUser registers a staff account. Super admins may create any role,
// branch admins only delivery users of their own branch.
func (s *Service) CreateUser(ctx context.Context, actor domain.Actor, nu domain.NewUser) (domain.User, error) {
	switch actor.Role {
	case domain.RoleSuperAdmin:
	case domain.RoleBranchAdmin:
		if nu.BranchID == nil {
			nu.BranchID = actor.BranchID
		}
		if nu.Role != domain.RoleDeliveryUser || nu.BranchID == nil || !actor.CanAccessBranch(*nu.BranchID) {
			return domain.User{}, apperr.ErrForbidden
		}
	default:
		return domain.User{}, apperr.ErrForbidden
	}

	nu.Name = strings.TrimSpace(nu.Name)
	nu.Email = strings.ToLower(strings.TrimSpace(nu.Email))
	if err := validateNewUser(nu); err != nil {
		return domain.User{}, err
	}
	if !nu.Role.RequiresBranch() {
		nu.BranchID = nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if nu.BranchID != nil {
		b, err := s.branches.Get(ctx, *nu.BranchID)
		if err != nil {
			return domain.User{}, s.failed("get branch", storageErr(err))
		}
		if b == nil {
			return domain.User{}, apperr.FieldError("branch_id", "unknown branch")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(nu.Password), s.hashCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	u := domain.User{
		Name:         nu.Name,
		Email:        nu.Email,
		Phone:        strings.TrimSpace(nu.Phone),
		Role:         nu.Role,
		BranchID:     nu.BranchID,
		Status:       domain.UserActive,
		PasswordHash: string(hash),
	}
	if _, err := s.users.Create(ctx, &u); err != nil {
		if errors.Is(err, apperr.ErrConflict) || errors.Is(err, apperr.ErrInvalid) {
			return domain.User{}, err
		}
		return domain.User{}, s.failed("create user", storageErr(err))
	}
	if u.Role == domain.RoleDeliveryUser && u.BranchID != nil {
		s.invalidate(ctx, deliveryUsersKey(*u.BranchID))
	}

	s.logger.Info("user created",
		logx.Int64("user_id", u.ID),
		logx.String("role", string(u.Role)),
		logx.Int64("actor_id", actor.UserID),
	)
	u.PasswordHash = ""
	return u, nil
}

// ListUsers returns users matching f. Branch admins only ever see their own branch.
func (s *Service) ListUsers(ctx context.Context, actor domain.Actor, f domain.UserFilter) ([]domain.User, error) {
	switch actor.Role {
	case domain.RoleSuperAdmin:
	case domain.RoleBranchAdmin:
		if actor.BranchID == nil {
			return nil, apperr.ErrForbidden
		}
		f.BranchID = actor.BranchID
	default:
		return nil, apperr.ErrForbidden
	}
	if f.Role != nil && !f.Role.Valid() {
		return nil, apperr.FieldError("role", "unknown role")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	out, err := s.users.List(ctx, f)
	if err != nil {
		return nil, s.failed("list users", storageErr(err))
	}
	return withoutHashes(out), nil
}

func validateNewUser(nu domain.NewUser) error {
	verr := apperr.NewValidationError()
	if nu.Name == "" {
		verr.Add("name", "is required")
	}
	if !domain.ValidateEmail(nu.Email) {
		verr.Add("email", "is not a valid e-mail address")
	}
	if !nu.Role.Valid() {
		verr.Add("role", "unknown role")
	} else if nu.Role.RequiresBranch() && nu.BranchID == nil {
		verr.Add("branch_id", "is required for role "+string(nu.Role))
	}
	switch {
	case len(nu.Password) < minPasswordLen:
		verr.Add("password", fmt.Sprintf("must be at least %d characters", minPasswordLen))
	case len(nu.Password) > maxPasswordLen:
		verr.Add("password", fmt.Sprintf("must be at most %d bytes", maxPasswordLen))
	}
	return verr.OrNil()
}

func withoutHashes(users []domain.User) []domain.User {
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users
}

func (s *Service) failed(op string, err error) error {
	s.logger.Error(op+" failed", logx.Err(err))
	return err
}

func storageErr(err error) error {
	if errors.Is(err, apperr.ErrStorage) {
		return err
	}
	return fmt.Errorf("%w: %w", apperr.ErrStorage, err)
}
