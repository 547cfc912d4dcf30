package sections

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Template describes one renderable content-block type. Templates are seeded
// reference data: they live in the in-memory registry, not in the database.
type Template struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Category      string         `json:"category"`
	ComponentName string         `json:"component_name"`
	Description   string         `json:"description,omitempty"`
	Tags          []string       `json:"tags,omitempty"`
	DefaultProps  map[string]any `json:"default_props,omitempty"`
	Schema        map[string]any `json:"schema,omitempty"`
	IsActive      bool           `json:"is_active"`
}

// Instance is a concrete placement of a Template on a page. Props is stored
// as a JSON document whose shape is implied by the referenced template.
type Instance struct {
	bun.BaseModel `bun:"table:page_sections,alias:ps"`

	ID         uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	PageID     uuid.UUID      `bun:"page_id,notnull,type:uuid" json:"page_id"`
	TemplateID string         `bun:"template_id,notnull" json:"template_id"`
	Position   int            `bun:"position,notnull,default:0" json:"position"`
	Props      map[string]any `bun:"props,type:jsonb,notnull,default:'{}'::jsonb" json:"props"`
	CreatedBy  uuid.UUID      `bun:"created_by,notnull,type:uuid" json:"created_by"`
	UpdatedBy  uuid.UUID      `bun:"updated_by,notnull,type:uuid" json:"updated_by"`
	CreatedAt  time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt  time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}
