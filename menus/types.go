package menus

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Location identifies the chrome slot a menu renders into.
type Location string

const (
	LocationHeaderPrimary   Location = "header_primary"
	LocationHeaderSecondary Location = "header_secondary"
	LocationFooterPrimary   Location = "footer_primary"
	LocationFooterSecondary Location = "footer_secondary"
	LocationSidebar         Location = "sidebar"
)

// LinkTarget controls the anchor target of a rendered navigation item.
type LinkTarget string

const (
	TargetSelf  LinkTarget = "self"
	TargetBlank LinkTarget = "blank"
)

// Menu represents a navigational container that groups hierarchical items.
// The (name, location) pair is unique.
type Menu struct {
	bun.BaseModel `bun:"table:menus,alias:m"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	Location  Location  `bun:"location,notnull" json:"location"`
	IsActive  bool      `bun:"is_active,notnull,default:true" json:"is_active"`
	CreatedBy uuid.UUID `bun:"created_by,notnull,type:uuid" json:"created_by"`
	UpdatedBy uuid.UUID `bun:"updated_by,notnull,type:uuid" json:"updated_by"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
	Items     []*Item   `bun:"rel:has-many,join:id=menu_id" json:"items,omitempty"`
}

// Item describes a single navigational entry with optional hierarchy. Exactly
// one of URL/PageID is expected to be meaningful as the link target.
type Item struct {
	bun.BaseModel `bun:"table:menu_items,alias:mi"`

	ID        uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	MenuID    uuid.UUID  `bun:"menu_id,notnull,type:uuid" json:"menu_id"`
	ParentID  *uuid.UUID `bun:"parent_id,type:uuid" json:"parent_id,omitempty"`
	Title     string     `bun:"title,notnull" json:"title"`
	URL       *string    `bun:"url" json:"url,omitempty"`
	PageID    *uuid.UUID `bun:"page_id,type:uuid" json:"page_id,omitempty"`
	Target    LinkTarget `bun:"target,notnull,default:'self'" json:"target"`
	Position  int        `bun:"position,notnull,default:0" json:"position"`
	IsVisible bool       `bun:"is_visible,notnull,default:true" json:"is_visible"`
	CSSClass  *string    `bun:"css_class" json:"css_class,omitempty"`
	Icon      *string    `bun:"icon" json:"icon,omitempty"`
	CreatedBy uuid.UUID  `bun:"created_by,notnull,type:uuid" json:"created_by"`
	UpdatedBy uuid.UUID  `bun:"updated_by,notnull,type:uuid" json:"updated_by"`
	CreatedAt time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Menu     *Menu   `bun:"rel:belongs-to,join:menu_id=id" json:"menu,omitempty"`
	Parent   *Item   `bun:"rel:belongs-to,join:parent_id=id" json:"parent,omitempty"`
	Children []*Item `bun:"rel:has-many,join:id=parent_id" json:"children,omitempty"`
}

// IsValidLocation reports whether the value names a known chrome slot.
func IsValidLocation(location Location) bool {
	switch location {
	case LocationHeaderPrimary, LocationHeaderSecondary, LocationFooterPrimary, LocationFooterSecondary, LocationSidebar:
		return true
	default:
		return false
	}
}

// NormalizeTarget coerces arbitrary target strings, defaulting to self.
func NormalizeTarget(input string) LinkTarget {
	if LinkTarget(input) == TargetBlank {
		return TargetBlank
	}
	return TargetSelf
}
