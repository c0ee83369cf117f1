package directory

import (
	"context"
	"encoding/json"
	"strconv"

	"courier-admin/internal/domain"
	"courier-admin/internal/logx"
)

const (
	keyBranchesAll = "branches:all"
	keyDeliveryPrefix = "delivery_users:"
)

func branchesKey(status *domain.BranchStatus) string {
	if status == nil {
		return keyBranchesAll
	}
	return "branches:" + string(*status)
}

func deliveryUsersKey(branchID int64) string {
	return keyDeliveryPrefix + strconv.FormatInt(branchID, 10)
}

func branchKeys() []string {
	return []string{keyBranchesAll, branchesKey(ptrBranchStatus(domain.BranchActive)), branchesKey(ptrBranchStatus(domain.BranchInactive))}
}

func ptrBranchStatus(s domain.BranchStatus) *domain.BranchStatus { return &s }

type nopCache struct{}

func (nopCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (nopCache) Set(context.Context, string, []byte) error         { return nil }
func (nopCache) Delete(context.Context, ...string) error           { return nil }

// cached returns the value stored under key or loads, stores and returns it.
// Cache failures are logged and fall through to load.
func cached[T any](ctx context.Context, s *Service, key string, load func(context.Context) (T, error)) (T, error) {
	if raw, ok, err := s.cache.Get(ctx, key); err != nil {
		s.lookup("error")
		s.logger.Warn("directory cache get failed", logx.String("key", key), logx.Err(err))
	} else if ok {
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			s.lookup("hit")
			return v, nil
		}
		s.logger.Warn("directory cache entry corrupt", logx.String("key", key))
	} else {
		s.lookup("miss")
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}
	raw, err := json.Marshal(v)
	if err == nil {
		err = s.cache.Set(ctx, key, raw)
	}
	if err != nil {
		s.logger.Warn("directory cache set failed", logx.String("key", key), logx.Err(err))
	}
	return v, nil
}

func (s *Service) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.Warn("directory cache invalidate failed", logx.Any("keys", keys), logx.Err(err))
	}
}

func (s *Service) lookup(result string) {
	if s.lookups != nil {
		s.lookups.WithLabelValues(result).Inc()
	}
}
