package sections

import (
	"context"
	"maps"
	"sync"

	"github.com/google/uuid"
)

type memoryRepository struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]*Instance
	byPage map[uuid.UUID][]uuid.UUID
}

// NewMemoryRepository constructs an in-memory repository for section instances
func NewMemoryRepository() Repository {
	return &memoryRepository{
		byID:   make(map[uuid.UUID]*Instance),
		byPage: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (m *memoryRepository) Create(_ context.Context, instance *Instance) (*Instance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneInstance(instance)
	m.byID[cloned.ID] = cloned
	m.byPage[cloned.PageID] = append(m.byPage[cloned.PageID], cloned.ID)
	return cloneInstance(cloned), nil
}

func (m *memoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Instance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "section", Key: id.String()}
	}
	return cloneInstance(record), nil
}

func (m *memoryRepository) ListByPage(_ context.Context, pageID uuid.UUID) ([]*Instance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := m.byPage[pageID]
	instances := make([]*Instance, 0, len(ids))
	for _, id := range ids {
		instances = append(instances, cloneInstance(m.byID[id]))
	}
	return instances, nil
}

func (m *memoryRepository) Update(_ context.Context, instance *Instance) (*Instance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[instance.ID]; !ok {
		return nil, &NotFoundError{Resource: "section", Key: instance.ID.String()}
	}

	cloned := cloneInstance(instance)
	m.byID[cloned.ID] = cloned
	return cloneInstance(cloned), nil
}

func (m *memoryRepository) BulkUpdatePositions(_ context.Context, instances []*Instance) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Validate the whole batch before touching anything so the write is
	// all-or-nothing.
	for _, record := range instances {
		if _, ok := m.byID[record.ID]; !ok {
			return &NotFoundError{Resource: "section", Key: record.ID.String()}
		}
	}
	for _, record := range instances {
		m.byID[record.ID] = cloneInstance(record)
	}
	return nil
}

func (m *memoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	instance, ok := m.byID[id]
	if !ok {
		return &NotFoundError{Resource: "section", Key: id.String()}
	}
	delete(m.byID, id)
	m.byPage[instance.PageID] = removeUUID(m.byPage[instance.PageID], id)
	return nil
}

func (m *memoryRepository) DeleteByPage(_ context.Context, pageID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := m.byPage[pageID]
	for _, id := range ids {
		delete(m.byID, id)
	}
	delete(m.byPage, pageID)
	return len(ids), nil
}

func cloneInstance(src *Instance) *Instance {
	if src == nil {
		return nil
	}
	cloned := *src
	if src.Props != nil {
		cloned.Props = maps.Clone(src.Props)
	}
	return &cloned
}

func removeUUID(list []uuid.UUID, id uuid.UUID) []uuid.UUID {
	if len(list) == 0 {
		return list
	}
	out := make([]uuid.UUID, 0, len(list))
	for _, item := range list {
		if item != id {
			out = append(out, item)
		}
	}
	return out
}
