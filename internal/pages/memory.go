package pages

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type memoryRepository struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]*Page
	bySlug map[string]uuid.UUID
}

// NewMemoryRepository constructs an in-memory repository for pages
func NewMemoryRepository() Repository {
	return &memoryRepository{
		byID:   make(map[uuid.UUID]*Page),
		bySlug: make(map[string]uuid.UUID),
	}
}

func (m *memoryRepository) Create(_ context.Context, page *Page) (*Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := clonePage(page)
	m.byID[cloned.ID] = cloned
	if cloned.Slug != "" {
		m.bySlug[cloned.Slug] = cloned.ID
	}
	return clonePage(cloned), nil
}

func (m *memoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "page", Key: id.String()}
	}
	return clonePage(record), nil
}

func (m *memoryRepository) GetBySlug(_ context.Context, slug string) (*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.bySlug[slug]
	if !ok {
		return nil, &NotFoundError{Resource: "page", Key: slug}
	}
	return clonePage(m.byID[id]), nil
}

func (m *memoryRepository) List(_ context.Context) ([]*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Page, 0, len(m.byID))
	for _, record := range m.byID {
		records = append(records, clonePage(record))
	}
	return records, nil
}

func (m *memoryRepository) Update(_ context.Context, page *Page) (*Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.byID[page.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "page", Key: page.ID.String()}
	}

	oldSlug := existing.Slug
	cloned := clonePage(page)
	m.byID[cloned.ID] = cloned

	if oldSlug != "" && oldSlug != cloned.Slug {
		delete(m.bySlug, oldSlug)
	}
	if cloned.Slug != "" {
		m.bySlug[cloned.Slug] = cloned.ID
	}

	return clonePage(cloned), nil
}

func (m *memoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.byID[id]
	if !ok {
		return &NotFoundError{Resource: "page", Key: id.String()}
	}
	delete(m.byID, id)
	if existing.Slug != "" {
		delete(m.bySlug, existing.Slug)
	}
	return nil
}

func clonePage(src *Page) *Page {
	if src == nil {
		return nil
	}
	cloned := *src
	if src.SEOTitle != nil {
		v := *src.SEOTitle
		cloned.SEOTitle = &v
	}
	if src.SEODescription != nil {
		v := *src.SEODescription
		cloned.SEODescription = &v
	}
	if src.SEOKeywords != nil {
		v := *src.SEOKeywords
		cloned.SEOKeywords = &v
	}
	if src.PublishedAt != nil {
		v := *src.PublishedAt
		cloned.PublishedAt = &v
	}
	return &cloned
}
