package render

import (
	"encoding/json"
	"html/template"
	"slices"
	"strings"

	"github.com/prismcms/prism/internal/logging"
	"github.com/prismcms/prism/internal/sections"
	"github.com/prismcms/prism/pkg/interfaces"
)

// Section is the renderer's input unit: a resolved template, the instance
// props in whatever form the caller has them (map, JSON string, or bytes),
// and the instance position.
type Section struct {
	Template sections.Template
	Props    any
	Position int
}

// TemplateResolver looks templates up by id. Inactive templates must still
// resolve so persisted placements keep rendering.
type TemplateResolver interface {
	Get(id string) (sections.Template, bool)
}

// Renderer dispatches sections to their component render functions. Rendering
// is a pure function of its inputs: the same sections, mode, and theme always
// produce identical markup.
type Renderer struct {
	components map[string]Component
	logger     interfaces.Logger
}

// RendererOption configures the renderer.
type RendererOption func(*Renderer)

// WithLogger wires the structured logger used for degraded-render warnings.
func WithLogger(logger interfaces.Logger) RendererOption {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithComponent registers or overrides a component. Both render functions
// must be present; partial components are ignored.
func WithComponent(name string, component Component) RendererOption {
	return func(r *Renderer) {
		if component.Preview == nil || component.Editor == nil {
			return
		}
		r.components[strings.TrimSpace(name)] = component
	}
}

// NewRenderer constructs a renderer with the built-in component table.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		components: builtinComponents(),
		logger:     logging.NoOp(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// HasComponent reports whether the component provides both a preview renderer
// and an editor. It satisfies the registry's ComponentSet contract.
func (r *Renderer) HasComponent(componentName string) bool {
	component, ok := r.components[componentName]
	return ok && component.Preview != nil && component.Editor != nil
}

// Render produces the public/preview document for the given sections. The
// input is not required to arrive pre-sorted; sections are ordered by
// ascending position before dispatch. A section whose component is unknown
// or whose render fails degrades to a visible fallback block and never takes
// down the rest of the page.
func (r *Renderer) Render(sectionList []Section, theme Theme) template.HTML {
	return r.render(sectionList, theme, func(component Component, theme Theme, props map[string]any) (template.HTML, error) {
		return component.Preview(theme, props)
	})
}

// RenderEditor produces the editable form document for the same sections,
// keyed by the same component names as Render.
func (r *Renderer) RenderEditor(sectionList []Section, theme Theme) template.HTML {
	return r.render(sectionList, theme, func(component Component, theme Theme, props map[string]any) (template.HTML, error) {
		return component.Editor(theme, props)
	})
}

func (r *Renderer) render(sectionList []Section, theme Theme, dispatch func(Component, Theme, map[string]any) (template.HTML, error)) template.HTML {
	theme = normalizeTheme(theme)

	ordered := slices.Clone(sectionList)
	slices.SortStableFunc(ordered, func(a, b Section) int {
		return a.Position - b.Position
	})

	var doc strings.Builder
	for i, section := range ordered {
		if i > 0 {
			doc.WriteString("\n")
		}

		props := NormalizeProps(section.Props)
		component, ok := r.components[section.Template.ComponentName]
		if !ok {
			doc.WriteString(string(r.fallback(section.Template, props, "unknown component")))
			continue
		}

		rendered, err := dispatch(component, theme, props)
		if err != nil {
			doc.WriteString(string(r.fallback(section.Template, props, err.Error())))
			continue
		}
		doc.WriteString(string(rendered))
	}
	return template.HTML(doc.String())
}

type fallbackView struct {
	Name string
	Dump string
}

// fallback renders the degraded block shown in place of a section that could
// not be dispatched: the template name plus a raw JSON dump of its props.
func (r *Renderer) fallback(tpl sections.Template, props map[string]any, reason string) template.HTML {
	name := tpl.Name
	if name == "" {
		name = tpl.ID
	}
	if name == "" {
		name = tpl.ComponentName
	}

	dump, err := json.MarshalIndent(props, "", "  ")
	if err != nil {
		dump = []byte("{}")
	}

	logging.WithFields(r.logger, map[string]any{
		"template":  tpl.ID,
		"component": tpl.ComponentName,
		"reason":    reason,
	}).Warn("render.section.degraded")

	rendered, err := execute("fallback", fallbackView{Name: name, Dump: string(dump)})
	if err != nil {
		return template.HTML("<section class=\"prism-section prism-section--fallback\"></section>")
	}
	return rendered
}

// FromInstances resolves persisted instances into renderer sections. An
// instance whose template id is no longer registered keeps a stub template so
// the renderer's fallback path can still show something useful.
func FromInstances(resolver TemplateResolver, instances []*sections.Instance) []Section {
	out := make([]Section, 0, len(instances))
	for _, instance := range instances {
		if instance == nil {
			continue
		}
		tpl, ok := sections.Template{}, false
		if resolver != nil {
			tpl, ok = resolver.Get(instance.TemplateID)
		}
		if !ok {
			tpl = sections.Template{ID: instance.TemplateID, Name: instance.TemplateID}
		}
		out = append(out, Section{
			Template: tpl,
			Props:    instance.Props,
			Position: instance.Position,
		})
	}
	return out
}
