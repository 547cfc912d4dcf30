package sections

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/prismcms/prism/internal/schema"
)

// Registry is the read-only catalog of section templates. Templates are
// registered at construction time; there is no end-user mutation API.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Template
}

// ComponentSet reports which component names have both a preview renderer and
// an editor. The render package provides the implementation.
type ComponentSet interface {
	HasComponent(componentName string) bool
}

// NewRegistry constructs an empty template registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Template)}
}

// NewDefaultRegistry constructs a registry seeded with the built-in templates.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, tpl := range BuiltinTemplates() {
		if err := r.Register(tpl); err != nil {
			panic(fmt.Sprintf("sections: builtin template %s: %v", tpl.ID, err))
		}
	}
	return r
}

// Register adds a template to the catalog. The template's schema must compile.
func (r *Registry) Register(tpl Template) error {
	id := strings.TrimSpace(tpl.ID)
	if id == "" {
		return fmt.Errorf("sections: template id is required")
	}
	tpl.ID = id
	if strings.TrimSpace(tpl.ComponentName) == "" {
		return fmt.Errorf("sections: template %s has no component name", id)
	}
	if err := schema.ValidateSchema(tpl.Schema); err != nil {
		return fmt.Errorf("sections: template %s: %w", id, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[id] = tpl
	return nil
}

// Verify checks that every active template's component has both a preview
// renderer and an editor. Call it at startup so a missing pairing fails
// loudly before any page is served.
func (r *Registry) Verify(components ComponentSet) error {
	if components == nil {
		return nil
	}
	for _, tpl := range r.GetActive() {
		if !components.HasComponent(tpl.ComponentName) {
			return fmt.Errorf("%w: %s (%s)", ErrTemplateEditorMissing, tpl.ID, tpl.ComponentName)
		}
	}
	return nil
}

// Get returns the template regardless of active state: an inactive template
// is hidden from the picker but still renderable when already placed.
func (r *Registry) Get(id string) (Template, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tpl, ok := r.entries[strings.TrimSpace(id)]
	return tpl, ok
}

// GetActive returns the canonical list every filtered view derives from.
func (r *Registry) GetActive() []Template {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Template, 0, len(r.entries))
	for _, tpl := range r.entries {
		if tpl.IsActive {
			out = append(out, tpl)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// GetByCategory filters the active list by category.
func (r *Registry) GetByCategory(category string) []Template {
	category = strings.ToLower(strings.TrimSpace(category))
	return r.filterActive(func(tpl Template) bool {
		return strings.ToLower(tpl.Category) == category
	})
}

// GetByTag filters the active list by tag.
func (r *Registry) GetByTag(tag string) []Template {
	tag = strings.ToLower(strings.TrimSpace(tag))
	return r.filterActive(func(tpl Template) bool {
		for _, candidate := range tpl.Tags {
			if strings.ToLower(candidate) == tag {
				return true
			}
		}
		return false
	})
}

// Search matches the query case-insensitively over name, description, and
// tags. An empty query returns the full active list.
func (r *Registry) Search(query string) []Template {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return r.GetActive()
	}
	return r.filterActive(func(tpl Template) bool {
		if strings.Contains(strings.ToLower(tpl.Name), query) {
			return true
		}
		if strings.Contains(strings.ToLower(tpl.Description), query) {
			return true
		}
		return slices.ContainsFunc(tpl.Tags, func(tag string) bool {
			return strings.Contains(strings.ToLower(tag), query)
		})
	})
}

func (r *Registry) filterActive(keep func(Template) bool) []Template {
	active := r.GetActive()
	out := make([]Template, 0, len(active))
	for _, tpl := range active {
		if keep(tpl) {
			out = append(out, tpl)
		}
	}
	return out
}
