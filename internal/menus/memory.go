package menus

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
)

type memoryMenuRepository struct {
	mu    sync.RWMutex
	menus map[uuid.UUID]*Menu
}

// NewMemoryMenuRepository returns an in-memory MenuRepository used by tests
// and the in-process storage mode.
func NewMemoryMenuRepository() MenuRepository {
	return &memoryMenuRepository{menus: make(map[uuid.UUID]*Menu)}
}

func (r *memoryMenuRepository) Create(_ context.Context, menu *Menu) (*Menu, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.menus[menu.ID] = cloneMenu(menu)
	return cloneMenu(menu), nil
}

func (r *memoryMenuRepository) GetByID(_ context.Context, id uuid.UUID) (*Menu, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	menu, ok := r.menus[id]
	if !ok {
		return nil, &NotFoundError{Resource: "menu", Key: id.String()}
	}
	return cloneMenu(menu), nil
}

func (r *memoryMenuRepository) GetByNameAndLocation(_ context.Context, name string, location Location) (*Menu, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, menu := range r.menus {
		if strings.EqualFold(menu.Name, name) && menu.Location == location {
			return cloneMenu(menu), nil
		}
	}
	return nil, &NotFoundError{Resource: "menu", Key: name}
}

func (r *memoryMenuRepository) GetByLocation(_ context.Context, location Location) (*Menu, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var match *Menu
	for _, menu := range r.menus {
		if menu.Location != location || !menu.IsActive {
			continue
		}
		if match == nil || menu.CreatedAt.Before(match.CreatedAt) {
			match = menu
		}
	}
	if match == nil {
		return nil, &NotFoundError{Resource: "menu", Key: string(location)}
	}
	return cloneMenu(match), nil
}

func (r *memoryMenuRepository) List(_ context.Context) ([]*Menu, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*Menu, 0, len(r.menus))
	for _, menu := range r.menus {
		result = append(result, cloneMenu(menu))
	}
	return result, nil
}

func (r *memoryMenuRepository) Update(_ context.Context, menu *Menu) (*Menu, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.menus[menu.ID]; !ok {
		return nil, &NotFoundError{Resource: "menu", Key: menu.ID.String()}
	}
	r.menus[menu.ID] = cloneMenu(menu)
	return cloneMenu(menu), nil
}

func (r *memoryMenuRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.menus[id]; !ok {
		return &NotFoundError{Resource: "menu", Key: id.String()}
	}
	delete(r.menus, id)
	return nil
}

type memoryItemRepository struct {
	mu     sync.RWMutex
	items  map[uuid.UUID]*Item
	byMenu map[uuid.UUID][]uuid.UUID
}

// NewMemoryItemRepository returns an in-memory ItemRepository.
func NewMemoryItemRepository() ItemRepository {
	return &memoryItemRepository{
		items:  make(map[uuid.UUID]*Item),
		byMenu: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (r *memoryItemRepository) Create(_ context.Context, item *Item) (*Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = cloneItem(item)
	r.byMenu[item.MenuID] = append(r.byMenu[item.MenuID], item.ID)
	return cloneItem(item), nil
}

func (r *memoryItemRepository) GetByID(_ context.Context, id uuid.UUID) (*Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, &NotFoundError{Resource: "menu item", Key: id.String()}
	}
	return cloneItem(item), nil
}

func (r *memoryItemRepository) ListByMenu(_ context.Context, menuID uuid.UUID) ([]*Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := r.byMenu[menuID]
	result := make([]*Item, 0, len(ids))
	for _, id := range ids {
		if item, ok := r.items[id]; ok {
			result = append(result, cloneItem(item))
		}
	}
	return result, nil
}

func (r *memoryItemRepository) Update(_ context.Context, item *Item) (*Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		return nil, &NotFoundError{Resource: "menu item", Key: item.ID.String()}
	}
	r.items[item.ID] = cloneItem(item)
	return cloneItem(item), nil
}

// BulkUpdateHierarchy validates the whole batch before the first write so a
// partial hierarchy can never be observed.
func (r *memoryItemRepository) BulkUpdateHierarchy(_ context.Context, items []*Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range items {
		if _, ok := r.items[item.ID]; !ok {
			return &NotFoundError{Resource: "menu item", Key: item.ID.String()}
		}
	}
	for _, item := range items {
		r.items[item.ID] = cloneItem(item)
	}
	return nil
}

func (r *memoryItemRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return &NotFoundError{Resource: "menu item", Key: id.String()}
	}
	delete(r.items, id)
	r.byMenu[item.MenuID] = removeUUID(r.byMenu[item.MenuID], id)
	return nil
}

func cloneMenu(menu *Menu) *Menu {
	if menu == nil {
		return nil
	}
	copied := *menu
	copied.Items = nil
	return &copied
}

func cloneItem(item *Item) *Item {
	if item == nil {
		return nil
	}
	copied := *item
	if item.ParentID != nil {
		parent := *item.ParentID
		copied.ParentID = &parent
	}
	if item.URL != nil {
		url := *item.URL
		copied.URL = &url
	}
	if item.PageID != nil {
		pageID := *item.PageID
		copied.PageID = &pageID
	}
	if item.CSSClass != nil {
		class := *item.CSSClass
		copied.CSSClass = &class
	}
	if item.Icon != nil {
		icon := *item.Icon
		copied.Icon = &icon
	}
	copied.Menu = nil
	copied.Parent = nil
	copied.Children = nil
	return &copied
}

func removeUUID(ids []uuid.UUID, target uuid.UUID) []uuid.UUID {
	result := ids[:0]
	for _, id := range ids {
		if id != target {
			result = append(result, id)
		}
	}
	return result
}
