package shipment_test

import (
	"context"
	"sync"
	"time"

	"courier-admin/internal/domain"
	"courier-admin/internal/ports/shipmenttx"
)

// memStore is an in-memory shipment store whose transactions stage writes
// and apply them only when the callback returns nil.
type memStore struct {
	mu        sync.Mutex
	shipments map[int64]domain.Shipment
	users     map[int64]domain.User
	tracking  []domain.TrackingEntry
	nextID    int64

	failUpdate error
	failInsert error

	commits   int
	rollbacks int
}

func newMemStore() *memStore {
	return &memStore{
		shipments: make(map[int64]domain.Shipment),
		users:     make(map[int64]domain.User),
	}
}

func (m *memStore) WithTx(ctx context.Context, fn func(tx shipmenttx.Repository) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &memTx{store: m, staged: make(map[int64]domain.Shipment)}
	if err := fn(tx); err != nil {
		m.rollbacks++
		return err
	}
	for id, s := range tx.staged {
		m.shipments[id] = s
	}
	m.tracking = append(m.tracking, tx.tracking...)
	m.nextID += int64(len(tx.tracking))
	m.commits++
	return nil
}

func (m *memStore) Get(_ context.Context, id int64) (*domain.Shipment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.shipments[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *memStore) ListTracking(_ context.Context, shipmentID int64) ([]domain.TrackingEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.TrackingEntry, 0)
	for _, e := range m.tracking {
		if e.ShipmentID == shipmentID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memStore) shipment(id int64) domain.Shipment {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shipments[id]
}

func (m *memStore) entries(shipmentID int64) []domain.TrackingEntry {
	out, _ := m.ListTracking(context.Background(), shipmentID)
	return out
}

type memTx struct {
	store    *memStore
	staged   map[int64]domain.Shipment
	tracking []domain.TrackingEntry
}

func (t *memTx) GetShipmentForUpdate(_ context.Context, id int64) (*domain.Shipment, error) {
	if s, ok := t.staged[id]; ok {
		return &s, nil
	}
	s, ok := t.store.shipments[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (t *memTx) GetUser(_ context.Context, id int64) (*domain.User, error) {
	u, ok := t.store.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (t *memTx) UpdateShipmentStatus(_ context.Context, s *domain.Shipment) error {
	if t.store.failUpdate != nil {
		return t.store.failUpdate
	}
	s.UpdatedAt = time.Now()
	t.staged[s.ID] = *s
	return nil
}

func (t *memTx) InsertTracking(_ context.Context, e *domain.TrackingEntry) error {
	if t.store.failInsert != nil {
		return t.store.failInsert
	}
	e.ID = t.store.nextID + int64(len(t.tracking)) + 1
	e.CreatedAt = time.Now()
	t.tracking = append(t.tracking, *e)
	return nil
}

type branchMap map[int64]domain.Branch

func (b branchMap) Get(_ context.Context, id int64) (*domain.Branch, error) {
	v, ok := b[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

type userMap map[int64]domain.User

func (u userMap) Get(_ context.Context, id int64) (*domain.User, error) {
	v, ok := u[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}
