package menus

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/prismcms/prism/internal/logging"
	"github.com/prismcms/prism/pkg/interfaces"
)

// IDGenerator produces unique identifiers for menus and items.
type IDGenerator func() uuid.UUID

// ServiceOption configures menu service behaviour.
type ServiceOption func(*service)

// WithClock overrides the internal time source.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides the ID generator.
func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithPageResolver wires the page lookup used for target validation and
// read-time enrichment.
func WithPageResolver(resolver PageResolver) ServiceOption {
	return func(s *service) {
		s.pages = resolver
	}
}

// WithURLResolver overrides how node URLs are built.
func WithURLResolver(resolver URLResolver) ServiceOption {
	return func(s *service) {
		if resolver != nil {
			s.urls = resolver
		}
	}
}

// WithLogger wires the structured logger used for service events.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	menus  MenuRepository
	items  ItemRepository
	pages  PageResolver
	urls   URLResolver
	logger interfaces.Logger
	now    func() time.Time
	id     IDGenerator
}

// NewService constructs the navigation service.
func NewService(menuRepo MenuRepository, itemRepo ItemRepository, opts ...ServiceOption) Service {
	s := &service{
		menus:  menuRepo,
		items:  itemRepo,
		urls:   slugURLResolver{},
		logger: logging.NoOp(),
		now:    time.Now,
		id:     uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateMenu registers a menu. The (name, location) pair must be unique.
func (s *service) CreateMenu(ctx context.Context, input CreateMenuInput) (*Menu, error) {
	if err := input.Actor.RequireEditor("create menus"); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if err := validation.Validate(name, validation.Required); err != nil {
		return nil, ErrMenuNameRequired
	}
	if !IsValidLocation(input.Location) {
		return nil, ErrMenuLocationInvalid
	}

	if existing, err := s.menus.GetByNameAndLocation(ctx, name, input.Location); err == nil && existing != nil {
		return nil, ErrMenuExists
	}

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	now := s.now()
	menu := &Menu{
		ID:        s.id(),
		Name:      name,
		Location:  input.Location,
		IsActive:  active,
		CreatedBy: input.Actor.ID,
		UpdatedBy: input.Actor.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.menus.Create(ctx, menu)
	if err != nil {
		return nil, err
	}

	logging.WithFields(s.logger, map[string]any{
		"menu_id":  created.ID.String(),
		"name":     created.Name,
		"location": string(created.Location),
	}).Info("menus.created")

	return created, nil
}

func (s *service) GetMenu(ctx context.Context, id uuid.UUID) (*Menu, error) {
	if id == uuid.Nil {
		return nil, ErrMenuNotFound
	}
	return s.getMenu(ctx, id)
}

func (s *service) GetMenuByLocation(ctx context.Context, location Location) (*Menu, error) {
	menu, err := s.menus.GetByLocation(ctx, location)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return nil, ErrMenuNotFound
		}
		return nil, err
	}
	return menu, nil
}

func (s *service) ListMenus(ctx context.Context) ([]*Menu, error) {
	return s.menus.List(ctx)
}

// DeleteMenu removes the menu and all of its items. Admin only.
func (s *service) DeleteMenu(ctx context.Context, req DeleteMenuRequest) error {
	if err := req.Actor.RequireAdmin("delete menus"); err != nil {
		return err
	}
	menu, err := s.getMenu(ctx, req.MenuID)
	if err != nil {
		return err
	}

	items, err := s.items.ListByMenu(ctx, menu.ID)
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := s.items.Delete(ctx, item.ID); err != nil {
			var notFound *NotFoundError
			if !errors.As(err, &notFound) {
				return err
			}
		}
	}

	if err := s.menus.Delete(ctx, menu.ID); err != nil {
		return err
	}

	logging.WithFields(s.logger, map[string]any{
		"menu_id": menu.ID.String(),
		"items":   len(items),
	}).Info("menus.deleted")

	return nil
}

// AddItem registers a menu item. At least one of URL/PageID is required;
// omitted positions append after the current siblings.
func (s *service) AddItem(ctx context.Context, input AddItemInput) (*Item, error) {
	if err := input.Actor.RequireEditor("add menu items"); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrItemTitleRequired
	}
	if (input.URL == nil || strings.TrimSpace(*input.URL) == "") && input.PageID == nil {
		return nil, ErrItemTargetRequired
	}

	menu, err := s.getMenu(ctx, input.MenuID)
	if err != nil {
		return nil, err
	}

	items, err := s.items.ListByMenu(ctx, menu.ID)
	if err != nil {
		return nil, err
	}

	if input.ParentID != nil {
		if _, ok := findItem(items, *input.ParentID); !ok {
			return nil, ErrItemParentInvalid
		}
	}

	if input.PageID != nil && s.pages != nil {
		if _, err := s.pages.GetByID(ctx, *input.PageID); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrItemPageNotFound, *input.PageID)
		}
	}

	position := 0
	if input.Position != nil {
		if *input.Position < 0 {
			return nil, ErrItemPositionInvalid
		}
		position = *input.Position
	} else {
		for _, sibling := range items {
			if uuidPtrEqual(sibling.ParentID, input.ParentID) && sibling.Position >= position {
				position = sibling.Position + 1
			}
		}
	}

	target := input.Target
	if target == "" {
		target = TargetSelf
	}

	now := s.now()
	item := &Item{
		ID:        s.id(),
		MenuID:    menu.ID,
		ParentID:  input.ParentID,
		Title:     title,
		URL:       input.URL,
		PageID:    input.PageID,
		Target:    target,
		Position:  position,
		IsVisible: true,
		CSSClass:  input.CSSClass,
		Icon:      input.Icon,
		CreatedBy: input.Actor.ID,
		UpdatedBy: input.Actor.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return s.items.Create(ctx, item)
}

// UpdateItem applies a partial update to presentation fields. Re-parenting
// goes through MoveItem so the cycle check always runs.
func (s *service) UpdateItem(ctx context.Context, input UpdateItemInput) (*Item, error) {
	if err := input.Actor.RequireEditor("update menu items"); err != nil {
		return nil, err
	}

	item, err := s.getItem(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrItemTitleRequired
		}
		item.Title = title
	}
	if input.URL != nil {
		item.URL = input.URL
	}
	if input.PageID != nil {
		if s.pages != nil {
			if _, err := s.pages.GetByID(ctx, *input.PageID); err != nil {
				return nil, fmt.Errorf("%w: %s", ErrItemPageNotFound, *input.PageID)
			}
		}
		item.PageID = input.PageID
	}
	if input.Target != nil {
		item.Target = *input.Target
	}
	if input.Position != nil {
		if *input.Position < 0 {
			return nil, ErrItemPositionInvalid
		}
		item.Position = *input.Position
	}
	if input.IsVisible != nil {
		item.IsVisible = *input.IsVisible
	}
	if input.CSSClass != nil {
		item.CSSClass = input.CSSClass
	}
	if input.Icon != nil {
		item.Icon = input.Icon
	}

	item.UpdatedBy = input.Actor.ID
	item.UpdatedAt = s.now()

	return s.items.Update(ctx, item)
}

// MoveItem re-parents an item after verifying the new parent is neither the
// item itself nor any transitive descendant. The walk covers the full subtree
// at arbitrary depth: display nesting limits are a UI concern, cycles must be
// impossible at any depth.
func (s *service) MoveItem(ctx context.Context, input MoveItemInput) (*Item, error) {
	if err := input.Actor.RequireEditor("move menu items"); err != nil {
		return nil, err
	}

	item, err := s.getItem(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}

	if input.NewParentID != nil {
		if *input.NewParentID == item.ID {
			return nil, ErrItemCycle
		}

		items, err := s.items.ListByMenu(ctx, item.MenuID)
		if err != nil {
			return nil, err
		}

		parent, ok := findItem(items, *input.NewParentID)
		if !ok || parent.MenuID != item.MenuID {
			return nil, ErrItemParentInvalid
		}

		if descendantSet(items, item.ID)[*input.NewParentID] {
			return nil, ErrItemCycle
		}
	}

	item.ParentID = input.NewParentID
	item.UpdatedBy = input.Actor.ID
	item.UpdatedAt = s.now()

	return s.items.Update(ctx, item)
}

// ReorderItems overwrites the hierarchy/positions for a menu's items
// atomically. Unknown items, duplicates, and proposed hierarchies containing
// a cycle reject the whole request before any write.
func (s *service) ReorderItems(ctx context.Context, input ReorderItemsInput) ([]*Item, error) {
	if err := input.Actor.RequireEditor("reorder menu items"); err != nil {
		return nil, err
	}

	menu, err := s.getMenu(ctx, input.MenuID)
	if err != nil {
		return nil, err
	}

	items, err := s.items.ListByMenu(ctx, menu.ID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 || len(input.Items) == 0 {
		return items, nil
	}

	byID := make(map[uuid.UUID]*Item, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	parentMap := make(map[uuid.UUID]*uuid.UUID, len(items))
	for _, item := range items {
		parentMap[item.ID] = item.ParentID
	}

	seen := make(map[uuid.UUID]struct{}, len(input.Items))
	for _, entry := range input.Items {
		if entry.ItemID == uuid.Nil {
			return nil, ErrItemNotFound
		}
		if entry.Position < 0 {
			return nil, ErrItemPositionInvalid
		}
		if _, ok := byID[entry.ItemID]; !ok {
			return nil, ErrItemNotFound
		}
		if _, dup := seen[entry.ItemID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrReorderItemDuplicate, entry.ItemID)
		}
		seen[entry.ItemID] = struct{}{}

		if entry.ParentID != nil {
			if *entry.ParentID == entry.ItemID {
				return nil, ErrItemCycle
			}
			if _, ok := byID[*entry.ParentID]; !ok {
				return nil, ErrItemParentInvalid
			}
		}
		parentMap[entry.ItemID] = entry.ParentID
	}

	if hasCycle(parentMap) {
		return nil, ErrItemCycle
	}

	now := s.now()
	dirty := make([]*Item, 0, len(input.Items))
	for _, entry := range input.Items {
		item := byID[entry.ItemID]
		if item.Position == entry.Position && uuidPtrEqual(item.ParentID, entry.ParentID) {
			continue
		}
		item.ParentID = entry.ParentID
		item.Position = entry.Position
		item.UpdatedAt = now
		item.UpdatedBy = input.Actor.ID
		dirty = append(dirty, item)
	}

	if len(dirty) > 0 {
		if err := s.items.BulkUpdateHierarchy(ctx, dirty); err != nil {
			return nil, err
		}
	}

	result := slices.Clone(items)
	slices.SortFunc(result, func(a, b *Item) int {
		if uuidPtrEqual(a.ParentID, b.ParentID) {
			return a.Position - b.Position
		}
		return strings.Compare(parentKey(a.ParentID), parentKey(b.ParentID))
	})
	return result, nil
}

// DeleteItem removes the item and all of its descendants, returning the
// number of descendants removed.
func (s *service) DeleteItem(ctx context.Context, req DeleteItemRequest) (int, error) {
	if err := req.Actor.RequireEditor("delete menu items"); err != nil {
		return 0, err
	}

	item, err := s.getItem(ctx, req.ItemID)
	if err != nil {
		return 0, err
	}

	items, err := s.items.ListByMenu(ctx, item.MenuID)
	if err != nil {
		return 0, err
	}

	descendants := descendantSet(items, item.ID)
	// Deletion order is unspecified: the schema cascades child rows and
	// rows already gone are tolerated below.
	for id := range descendants {
		if err := s.items.Delete(ctx, id); err != nil {
			var notFound *NotFoundError
			if !errors.As(err, &notFound) {
				return 0, err
			}
		}
	}
	if err := s.items.Delete(ctx, item.ID); err != nil {
		return 0, err
	}

	logging.WithFields(s.logger, map[string]any{
		"item_id":     item.ID.String(),
		"menu_id":     item.MenuID.String(),
		"descendants": len(descendants),
	}).Info("menus.item.deleted")

	return len(descendants), nil
}

// ResolveTree returns the menu's top-level items with recursively resolved
// children, sorted by position at every level. Page-backed nodes are
// enriched with the page's current title and slug at read time.
func (s *service) ResolveTree(ctx context.Context, menuID uuid.UUID) ([]NavigationNode, error) {
	menu, err := s.getMenu(ctx, menuID)
	if err != nil {
		return nil, err
	}

	items, err := s.items.ListByMenu(ctx, menu.ID)
	if err != nil {
		return nil, err
	}

	return s.buildTree(ctx, items)
}

func (s *service) ResolveTreeByLocation(ctx context.Context, location Location) ([]NavigationNode, error) {
	menu, err := s.GetMenuByLocation(ctx, location)
	if err != nil {
		return nil, err
	}
	return s.ResolveTree(ctx, menu.ID)
}

func (s *service) buildTree(ctx context.Context, items []*Item) ([]NavigationNode, error) {
	children := make(map[string][]*Item, len(items))
	for _, item := range items {
		key := parentKey(item.ParentID)
		children[key] = append(children[key], item)
	}
	for _, siblings := range children {
		slices.SortFunc(siblings, func(a, b *Item) int {
			return a.Position - b.Position
		})
	}

	var build func(parent *uuid.UUID) ([]NavigationNode, error)
	build = func(parent *uuid.UUID) ([]NavigationNode, error) {
		siblings := children[parentKey(parent)]
		nodes := make([]NavigationNode, 0, len(siblings))
		for _, item := range siblings {
			node, err := s.resolveNode(ctx, item)
			if err != nil {
				return nil, err
			}
			kids, err := build(&item.ID)
			if err != nil {
				return nil, err
			}
			node.Children = kids
			nodes = append(nodes, node)
		}
		return nodes, nil
	}

	return build(nil)
}

func (s *service) resolveNode(ctx context.Context, item *Item) (NavigationNode, error) {
	node := NavigationNode{
		ID:        item.ID,
		Title:     item.Title,
		Target:    item.Target,
		Position:  item.Position,
		IsVisible: item.IsVisible,
		PageID:    item.PageID,
	}
	if item.CSSClass != nil {
		node.CSSClass = *item.CSSClass
	}
	if item.Icon != nil {
		node.Icon = *item.Icon
	}
	if item.URL != nil {
		node.URL = *item.URL
	}

	if item.PageID != nil && s.pages != nil {
		page, err := s.pages.GetByID(ctx, *item.PageID)
		if err == nil && page != nil {
			node.Title = page.Title
			node.PageSlug = page.Slug
		}
	}

	if s.urls != nil {
		if url, err := s.urls.Resolve(ctx, node); err == nil && url != "" {
			node.URL = url
		}
	}

	return node, nil
}

func (s *service) getMenu(ctx context.Context, id uuid.UUID) (*Menu, error) {
	if id == uuid.Nil {
		return nil, ErrMenuNotFound
	}
	menu, err := s.menus.GetByID(ctx, id)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return nil, ErrMenuNotFound
		}
		return nil, err
	}
	return menu, nil
}

func (s *service) getItem(ctx context.Context, id uuid.UUID) (*Item, error) {
	if id == uuid.Nil {
		return nil, ErrItemNotFound
	}
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

// descendantSet walks the full subtree rooted at rootID, depth-first, at
// arbitrary depth. The visited set guards against pre-existing corrupt data
// so the walk always terminates.
func descendantSet(items []*Item, rootID uuid.UUID) map[uuid.UUID]bool {
	children := make(map[uuid.UUID][]uuid.UUID, len(items))
	for _, item := range items {
		if item.ParentID != nil {
			children[*item.ParentID] = append(children[*item.ParentID], item.ID)
		}
	}

	visited := make(map[uuid.UUID]bool)
	stack := []uuid.UUID{rootID}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, child := range children[current] {
			if visited[child] {
				continue
			}
			visited[child] = true
			stack = append(stack, child)
		}
	}
	delete(visited, rootID)
	return visited
}

func hasCycle(parents map[uuid.UUID]*uuid.UUID) bool {
	visited := make(map[uuid.UUID]int, len(parents))

	var visit func(uuid.UUID) bool
	visit = func(id uuid.UUID) bool {
		state := visited[id]
		if state == 1 {
			return true
		}
		if state == 2 {
			return false
		}
		visited[id] = 1
		if parent := parents[id]; parent != nil {
			if visit(*parent) {
				return true
			}
		}
		visited[id] = 2
		return false
	}

	for id := range parents {
		if visit(id) {
			return true
		}
	}
	return false
}

func findItem(items []*Item, id uuid.UUID) (*Item, bool) {
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return nil, false
}

func parentKey(id *uuid.UUID) string {
	if id == nil {
		return "root"
	}
	return id.String()
}

func uuidPtrEqual(a, b *uuid.UUID) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}
