package sections

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/prismcms/prism/internal/identity"
)

// Service describes section composition capabilities for pages.
type Service interface {
	AddSection(ctx context.Context, input AddSectionInput) (*Instance, error)
	UpdateSection(ctx context.Context, input UpdateSectionInput) (*Instance, error)
	ReorderSections(ctx context.Context, input ReorderSectionsInput) ([]*Instance, error)
	RemoveSection(ctx context.Context, req RemoveSectionRequest) error

	GetSection(ctx context.Context, id uuid.UUID) (*Instance, error)
	ListByPage(ctx context.Context, pageID uuid.UUID) ([]*Instance, error)
}

// PageCascader wipes every section owned by a page in one call. It is not
// part of the public Service surface: bulk deletion is only reachable
// through the page deletion path, which carries its own role gate. The
// service returned by NewService implements it.
type PageCascader interface {
	DeleteByPage(ctx context.Context, pageID uuid.UUID) (int, error)
}

// AddSectionInput captures the data required to place a template on a page.
// When Position is nil the section is appended after the current maximum.
type AddSectionInput struct {
	PageID     uuid.UUID
	TemplateID string
	Props      map[string]any
	Position   *int
	Actor      identity.Actor
}

// UpdateSectionInput captures a partial section update. Nil fields are left
// untouched; there is no implicit reset to template defaults.
type UpdateSectionInput struct {
	SectionID uuid.UUID
	Props     map[string]any
	Position  *int
	Actor     identity.Actor
}

// ReorderSectionsInput assigns position = index+1 for each listed id in one
// atomic batch.
type ReorderSectionsInput struct {
	PageID     uuid.UUID
	SectionIDs []uuid.UUID
	Actor      identity.Actor
}

// RemoveSectionRequest deletes a single section row.
type RemoveSectionRequest struct {
	SectionID uuid.UUID
	Actor     identity.Actor
}

var (
	ErrSectionNotFound       = errors.New("sections: section not found")
	ErrSectionPageRequired   = errors.New("sections: page id is required")
	ErrTemplateUnknown       = errors.New("sections: template is not registered")
	ErrSectionPropsInvalid   = errors.New("sections: props do not match the template schema")
	ErrPositionInvalid       = errors.New("sections: position must be positive")
	ErrReorderIncomplete     = errors.New("sections: reorder must list sections owned by the page")
	ErrReorderDuplicate      = errors.New("sections: duplicate section in reorder request")
	ErrPageNotFound          = errors.New("sections: page not found")
	ErrTemplateEditorMissing = errors.New("sections: active template is missing a renderer or editor")
)

// NotFoundError is returned by repositories when a lookup misses.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.Key)
}

// Repository persists section instances.
type Repository interface {
	Create(ctx context.Context, instance *Instance) (*Instance, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Instance, error)
	ListByPage(ctx context.Context, pageID uuid.UUID) ([]*Instance, error)
	Update(ctx context.Context, instance *Instance) (*Instance, error)
	// BulkUpdatePositions writes every instance's position in one batch;
	// implementations must apply all rows or none.
	BulkUpdatePositions(ctx context.Context, instances []*Instance) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByPage(ctx context.Context, pageID uuid.UUID) (int, error)
}

// PageResolver confirms a page exists before sections are attached to it.
type PageResolver interface {
	Exists(ctx context.Context, pageID uuid.UUID) (bool, error)
}
