// Package prism is a headless page-composition engine: pages assembled from
// typed section templates, rendered server-side, and linked together through
// hierarchical navigation menus.
package prism

import (
	"github.com/prismcms/prism/internal/di"
	"github.com/prismcms/prism/internal/identity"
	"github.com/prismcms/prism/internal/menus"
	"github.com/prismcms/prism/internal/pages"
	"github.com/prismcms/prism/internal/render"
	"github.com/prismcms/prism/internal/sections"
)

// PageService exports the page management contract.
type PageService = pages.Service

// SectionService exports the section composition contract.
type SectionService = sections.Service

// MenuService exports the navigation contract.
type MenuService = menus.Service

// TemplateRegistry exports the section template catalog.
type TemplateRegistry = sections.Registry

// Renderer exports the section renderer.
type Renderer = render.Renderer

// Theme exports the render theme applied to every section.
type Theme = render.Theme

// Actor identifies the caller of a mutating operation.
type Actor = identity.Actor

// Role is the caller's already-verified capability level.
type Role = identity.Role

// Roles accepted by the role gate.
const (
	RoleAdmin  = identity.RoleAdmin
	RoleEditor = identity.RoleEditor
	RoleViewer = identity.RoleViewer
)

// Option re-exports container options so hosts can override bindings.
type Option = di.Option

var (
	WithBunDB           = di.WithBunDB
	WithCache           = di.WithCache
	WithLoggerProvider  = di.WithLoggerProvider
	WithRegistry        = di.WithRegistry
	WithRenderer        = di.WithRenderer
	WithMenuURLResolver = di.WithMenuURLResolver
)

// Module is the top level runtime facade. Construct it once and share it; all
// services it exposes are safe for concurrent use.
type Module struct {
	container *di.Container
}

// New constructs a module from the provided configuration and optional
// binding overrides.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Pages returns the page service.
func (m *Module) Pages() PageService {
	return m.container.Pages()
}

// Sections returns the section service.
func (m *Module) Sections() SectionService {
	return m.container.Sections()
}

// Menus returns the navigation service.
func (m *Module) Menus() MenuService {
	return m.container.Menus()
}

// Registry returns the section template catalog.
func (m *Module) Registry() *TemplateRegistry {
	return m.container.Registry()
}

// Renderer returns the section renderer.
func (m *Module) Renderer() *Renderer {
	return m.container.Renderer()
}

// Theme returns the configured render theme.
func (m *Module) Theme() Theme {
	return m.container.Theme()
}

// Container exposes the underlying dependency container for advanced
// integrations.
func (m *Module) Container() *di.Container {
	return m.container
}
