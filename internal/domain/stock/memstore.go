package stock

import (
	"context"
	"fmt"
	"sync"
)

// MemStore keeps the ledger and the delivery log in maps. It backs the engine
// in tests and small single-process deployments. RunInTx snapshots the state
// and restores it when the operation fails, so failed operations leave no
// trace, matching the transactional store.
type MemStore struct {
	mu         sync.RWMutex
	records    map[int64]Record
	deliveries map[string]Delivery
	order      []string
}

func NewMemStore() *MemStore {
	return &MemStore{
		records:    map[int64]Record{},
		deliveries: map[string]Delivery{},
	}
}

var (
	_ Store    = (*MemStore)(nil)
	_ TxRunner = (*MemStore)(nil)
)

func (m *MemStore) LoadStock(_ context.Context, equipmentID int64) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loadStock(equipmentID), nil
}

func (m *MemStore) SaveStock(_ context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[rec.EquipmentID] = rec
	return nil
}

func (m *MemStore) AppendDelivery(_ context.Context, d Delivery) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.appendDelivery(d)
}

func (m *MemStore) RemoveDelivery(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.removeDelivery(id)
}

func (m *MemStore) GetDelivery(_ context.Context, id string) (*Delivery, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if d, ok := m.deliveries[id]; ok {
		return &d, nil
	}
	return nil, nil
}

func (m *MemStore) ListStock(_ context.Context) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Record, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, r)
	}
	return out, nil
}

func (m *MemStore) ListDeliveries(_ context.Context, equipmentID int64) ([]Delivery, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Delivery
	for _, id := range m.order {
		d := m.deliveries[id]
		if equipmentID != 0 && d.EquipmentID != equipmentID {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

// RunInTx runs fn against an unlocked view of the store while holding the
// write lock, restoring the pre-transaction state on error.
func (m *MemStore) RunInTx(_ context.Context, fn func(Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	records := make(map[int64]Record, len(m.records))
	for k, v := range m.records {
		records[k] = v
	}
	deliveries := make(map[string]Delivery, len(m.deliveries))
	for k, v := range m.deliveries {
		deliveries[k] = v
	}
	order := append([]string(nil), m.order...)

	if err := fn(memTx{m}); err != nil {
		m.records = records
		m.deliveries = deliveries
		m.order = order
		return err
	}
	return nil
}

// memTx exposes the store inside RunInTx without re-acquiring the lock.
type memTx struct{ m *MemStore }

func (t memTx) LoadStock(_ context.Context, equipmentID int64) (*Record, error) {
	return t.m.loadStock(equipmentID), nil
}

func (t memTx) SaveStock(_ context.Context, rec Record) error {
	t.m.records[rec.EquipmentID] = rec
	return nil
}

func (t memTx) AppendDelivery(_ context.Context, d Delivery) error {
	return t.m.appendDelivery(d)
}

func (t memTx) RemoveDelivery(_ context.Context, id string) error {
	return t.m.removeDelivery(id)
}

func (t memTx) GetDelivery(_ context.Context, id string) (*Delivery, error) {
	if d, ok := t.m.deliveries[id]; ok {
		return &d, nil
	}
	return nil, nil
}

func (t memTx) ListStock(_ context.Context) ([]Record, error) {
	out := make([]Record, 0, len(t.m.records))
	for _, r := range t.m.records {
		out = append(out, r)
	}
	return out, nil
}

func (t memTx) ListDeliveries(_ context.Context, equipmentID int64) ([]Delivery, error) {
	var out []Delivery
	for _, id := range t.m.order {
		d := t.m.deliveries[id]
		if equipmentID != 0 && d.EquipmentID != equipmentID {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (m *MemStore) loadStock(equipmentID int64) *Record {
	if r, ok := m.records[equipmentID]; ok {
		return &r
	}
	return nil
}

func (m *MemStore) appendDelivery(d Delivery) error {
	if _, ok := m.deliveries[d.ID]; ok {
		return fmt.Errorf("delivery %s already exists", d.ID)
	}
	m.deliveries[d.ID] = d
	m.order = append(m.order, d.ID)
	return nil
}

func (m *MemStore) removeDelivery(id string) error {
	d, ok := m.deliveries[id]
	if !ok || d.Status != StatusActive {
		return fmt.Errorf("delivery %s: %w", id, ErrNotFound)
	}
	d.Status = StatusReversed
	m.deliveries[id] = d
	return nil
}
