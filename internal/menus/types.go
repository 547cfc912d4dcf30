package menus

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/prismcms/prism/internal/identity"
	"github.com/prismcms/prism/pages"
)

// Service describes navigation management capabilities.
type Service interface {
	CreateMenu(ctx context.Context, input CreateMenuInput) (*Menu, error)
	GetMenu(ctx context.Context, id uuid.UUID) (*Menu, error)
	GetMenuByLocation(ctx context.Context, location Location) (*Menu, error)
	ListMenus(ctx context.Context) ([]*Menu, error)
	DeleteMenu(ctx context.Context, req DeleteMenuRequest) error

	AddItem(ctx context.Context, input AddItemInput) (*Item, error)
	UpdateItem(ctx context.Context, input UpdateItemInput) (*Item, error)
	MoveItem(ctx context.Context, input MoveItemInput) (*Item, error)
	ReorderItems(ctx context.Context, input ReorderItemsInput) ([]*Item, error)
	// DeleteItem removes the item and every descendant, returning the count
	// of deleted descendants for caller confirmation.
	DeleteItem(ctx context.Context, req DeleteItemRequest) (int, error)

	ResolveTree(ctx context.Context, menuID uuid.UUID) ([]NavigationNode, error)
	ResolveTreeByLocation(ctx context.Context, location Location) ([]NavigationNode, error)
}

// CreateMenuInput captures the information required to register a menu.
// The (name, location) pair must be unique.
type CreateMenuInput struct {
	Name     string
	Location Location
	IsActive *bool
	Actor    identity.Actor
}

// AddItemInput captures the data required to register a menu item. At least
// one of URL/PageID is required. When Position is nil the item is appended
// after its siblings.
type AddItemInput struct {
	MenuID   uuid.UUID
	ParentID *uuid.UUID
	Title    string
	URL      *string
	PageID   *uuid.UUID
	Target   LinkTarget
	Position *int
	CSSClass *string
	Icon     *string
	Actor    identity.Actor
}

// UpdateItemInput captures mutable item fields. Nil fields are untouched.
type UpdateItemInput struct {
	ItemID    uuid.UUID
	Title     *string
	URL       *string
	PageID    *uuid.UUID
	Target    *LinkTarget
	Position  *int
	IsVisible *bool
	CSSClass  *string
	Icon      *string
	Actor     identity.Actor
}

// MoveItemInput re-parents an item. NewParentID nil promotes it to the root
// level. The full descendant set of the item is checked, at any depth, so a
// move can never introduce a cycle.
type MoveItemInput struct {
	ItemID      uuid.UUID
	NewParentID *uuid.UUID
	Actor       identity.Actor
}

// ReorderItemsInput defines a new hierarchical ordering for menu items,
// applied atomically.
type ReorderItemsInput struct {
	MenuID uuid.UUID
	Items  []ItemOrder
	Actor  identity.Actor
}

// ItemOrder describes the desired parent/position for a menu item.
type ItemOrder struct {
	ItemID   uuid.UUID
	ParentID *uuid.UUID
	Position int
}

// DeleteMenuRequest removes a menu and its items. Admin only.
type DeleteMenuRequest struct {
	MenuID uuid.UUID
	Actor  identity.Actor
}

// DeleteItemRequest removes an item, cascading to descendants.
type DeleteItemRequest struct {
	ItemID uuid.UUID
	Actor  identity.Actor
}

var (
	ErrMenuNameRequired     = errors.New("menus: name is required")
	ErrMenuLocationInvalid  = errors.New("menus: location is invalid")
	ErrMenuExists           = errors.New("menus: name and location pair already exists")
	ErrMenuNotFound         = errors.New("menus: menu not found")
	ErrItemNotFound         = errors.New("menus: menu item not found")
	ErrItemTitleRequired    = errors.New("menus: item title is required")
	ErrItemTargetRequired   = errors.New("menus: item requires a url or page reference")
	ErrItemPageNotFound     = errors.New("menus: referenced page not found")
	ErrItemParentInvalid    = errors.New("menus: parent menu item invalid")
	ErrItemCycle            = errors.New("menus: circular reference")
	ErrItemPositionInvalid  = errors.New("menus: position must be zero or positive")
	ErrReorderItemDuplicate = errors.New("menus: duplicate item in reorder request")
)

// NotFoundError is returned by repositories when a lookup misses.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.Key)
}

// NavigationNode represents a resolved menu item ready for presentation.
// Page-backed nodes carry the page's current title and slug, looked up at
// read time so renames surface without manual navigation edits.
type NavigationNode struct {
	ID        uuid.UUID        `json:"id"`
	Title     string           `json:"title"`
	URL       string           `json:"url"`
	Target    LinkTarget       `json:"target"`
	Position  int              `json:"position"`
	IsVisible bool             `json:"is_visible"`
	CSSClass  string           `json:"css_class,omitempty"`
	Icon      string           `json:"icon,omitempty"`
	PageID    *uuid.UUID       `json:"page_id,omitempty"`
	PageSlug  string           `json:"page_slug,omitempty"`
	Children  []NavigationNode `json:"children,omitempty"`
}

// MenuRepository persists menus.
type MenuRepository interface {
	Create(ctx context.Context, menu *Menu) (*Menu, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Menu, error)
	GetByNameAndLocation(ctx context.Context, name string, location Location) (*Menu, error)
	GetByLocation(ctx context.Context, location Location) (*Menu, error)
	List(ctx context.Context) ([]*Menu, error)
	Update(ctx context.Context, menu *Menu) (*Menu, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ItemRepository persists menu items.
type ItemRepository interface {
	Create(ctx context.Context, item *Item) (*Item, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Item, error)
	ListByMenu(ctx context.Context, menuID uuid.UUID) ([]*Item, error)
	Update(ctx context.Context, item *Item) (*Item, error)
	// BulkUpdateHierarchy writes parent/position for the batch atomically.
	BulkUpdateHierarchy(ctx context.Context, items []*Item) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PageResolver looks up pages for target validation and read-time enrichment.
type PageResolver interface {
	GetByID(ctx context.Context, id uuid.UUID) (*pages.Page, error)
}

// URLResolver builds the presentation URL for a resolved node. The default
// implementation uses the page slug or the raw URL directly.
type URLResolver interface {
	Resolve(ctx context.Context, node NavigationNode) (string, error)
}
