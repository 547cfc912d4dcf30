package render_test

import (
	"errors"
	"html/template"
	"strings"
	"testing"

	"github.com/prismcms/prism/internal/render"
	"github.com/prismcms/prism/internal/sections"
)

func heroTemplate(t *testing.T) sections.Template {
	t.Helper()
	registry := sections.NewDefaultRegistry()
	tpl, ok := registry.Get(sections.TemplateHeroCentered)
	if !ok {
		t.Fatal("hero template missing from default registry")
	}
	return tpl
}

func textTemplate(t *testing.T) sections.Template {
	t.Helper()
	registry := sections.NewDefaultRegistry()
	tpl, ok := registry.Get(sections.TemplateTextBlock)
	if !ok {
		t.Fatal("text template missing from default registry")
	}
	return tpl
}

func TestRenderer_SortsByPositionBeforeDispatch(t *testing.T) {
	renderer := render.NewRenderer()

	// The hero arrives after the text block; output order follows position.
	input := []render.Section{
		{Template: textTemplate(t), Position: 2, Props: map[string]any{"body": "middle", "format": "plain"}},
		{Template: heroTemplate(t), Position: 1, Props: map[string]any{"headline": "On Top"}},
	}

	html := string(renderer.Render(input, render.Theme{}))
	heroAt := strings.Index(html, "On Top")
	textAt := strings.Index(html, "middle")
	if heroAt == -1 || textAt == -1 {
		t.Fatalf("expected both sections in output:\n%s", html)
	}
	if heroAt > textAt {
		t.Fatal("hero with lower position must render first")
	}
}

func TestRenderer_IsPure(t *testing.T) {
	renderer := render.NewRenderer()
	input := []render.Section{
		{Template: heroTemplate(t), Position: 1, Props: map[string]any{"headline": "Stable"}},
		{Template: textTemplate(t), Position: 2, Props: map[string]any{"body": "copy", "format": "plain"}},
	}

	first := renderer.Render(input, render.Theme{})
	for i := 0; i < 3; i++ {
		if got := renderer.Render(input, render.Theme{}); got != first {
			t.Fatalf("render %d differed from first render", i)
		}
	}
}

func TestRenderer_AcceptsStringAndMapProps(t *testing.T) {
	renderer := render.NewRenderer()
	tpl := heroTemplate(t)

	fromMap := renderer.Render([]render.Section{
		{Template: tpl, Position: 1, Props: map[string]any{"headline": "Same"}},
	}, render.Theme{})
	fromString := renderer.Render([]render.Section{
		{Template: tpl, Position: 1, Props: `{"headline": "Same"}`},
	}, render.Theme{})

	if fromMap != fromString {
		t.Fatalf("string props must render identically to map props:\n%s\n---\n%s", fromMap, fromString)
	}
}

func TestRenderer_MalformedStringPropsDegradeToEmpty(t *testing.T) {
	renderer := render.NewRenderer()
	html := string(renderer.Render([]render.Section{
		{Template: heroTemplate(t), Position: 1, Props: `{"headline": `},
	}, render.Theme{}))

	// Malformed props parse to an empty map; the section still renders.
	if !strings.Contains(html, "prism-section") {
		t.Fatalf("expected section markup, got:\n%s", html)
	}
}

func TestRenderer_UnknownComponentFallsBack(t *testing.T) {
	renderer := render.NewRenderer()

	ghost := sections.Template{
		ID:            "discontinued-widget",
		Name:          "Discontinued Widget",
		ComponentName: "DiscontinuedWidget",
	}
	input := []render.Section{
		{Template: ghost, Position: 1, Props: map[string]any{"legacy": "value"}},
		{Template: heroTemplate(t), Position: 2, Props: map[string]any{"headline": "Still Here"}},
	}

	html := string(renderer.Render(input, render.Theme{}))

	// Fallback shows the template name and a raw props dump.
	if !strings.Contains(html, "Discontinued Widget") {
		t.Fatalf("fallback must name the template:\n%s", html)
	}
	if !strings.Contains(html, "legacy") {
		t.Fatalf("fallback must dump props:\n%s", html)
	}
	// The neighbouring section renders normally.
	if !strings.Contains(html, "Still Here") {
		t.Fatalf("unknown component must not take down the page:\n%s", html)
	}
}

func TestRenderer_ComponentErrorIsIsolated(t *testing.T) {
	boom := render.Component{
		Preview: func(render.Theme, map[string]any) (template.HTML, error) {
			return "", errors.New("exploded")
		},
		Editor: func(render.Theme, map[string]any) (template.HTML, error) {
			return "", errors.New("exploded")
		},
	}
	renderer := render.NewRenderer(render.WithComponent("Boom", boom))

	failing := sections.Template{ID: "boom", Name: "Boom Block", ComponentName: "Boom"}
	input := []render.Section{
		{Template: failing, Position: 1},
		{Template: heroTemplate(t), Position: 2, Props: map[string]any{"headline": "Survivor"}},
	}

	html := string(renderer.Render(input, render.Theme{}))
	if !strings.Contains(html, "Boom Block") {
		t.Fatalf("expected fallback for failing component:\n%s", html)
	}
	if !strings.Contains(html, "Survivor") {
		t.Fatalf("expected surviving section:\n%s", html)
	}
}

func TestRenderer_EditorModeRendersForms(t *testing.T) {
	renderer := render.NewRenderer()
	input := []render.Section{
		{Template: heroTemplate(t), Position: 1, Props: map[string]any{"headline": "Edit Me"}},
	}

	html := string(renderer.RenderEditor(input, render.Theme{}))
	if !strings.Contains(html, "prism-editor") {
		t.Fatalf("expected editor form markup:\n%s", html)
	}
	if !strings.Contains(html, "Edit Me") {
		t.Fatalf("editor must carry current prop values:\n%s", html)
	}
}

func TestRenderer_MarkdownTextBlock(t *testing.T) {
	renderer := render.NewRenderer()
	input := []render.Section{
		{Template: textTemplate(t), Position: 1, Props: map[string]any{
			"body":   "# Heading\n\nparagraph",
			"format": "markdown",
		}},
	}

	html := string(renderer.Render(input, render.Theme{}))
	if !strings.Contains(html, "<h1") {
		t.Fatalf("expected markdown conversion:\n%s", html)
	}
}

func TestRenderer_PlainTextIsEscaped(t *testing.T) {
	renderer := render.NewRenderer()
	input := []render.Section{
		{Template: textTemplate(t), Position: 1, Props: map[string]any{
			"body":   "<script>alert(1)</script>",
			"format": "plain",
		}},
	}

	html := string(renderer.Render(input, render.Theme{}))
	if strings.Contains(html, "<script>") {
		t.Fatalf("plain text must be escaped:\n%s", html)
	}
}

func TestRenderer_SatisfiesRegistryVerify(t *testing.T) {
	registry := sections.NewDefaultRegistry()
	if err := registry.Verify(render.NewRenderer()); err != nil {
		t.Fatalf("default renderer must cover every builtin template: %v", err)
	}
}

func TestFromInstances_StubsUnresolvableTemplates(t *testing.T) {
	registry := sections.NewDefaultRegistry()
	instances := []*sections.Instance{
		{TemplateID: sections.TemplateHeroCentered, Position: 1, Props: map[string]any{"headline": "Known"}},
		{TemplateID: "retired-template", Position: 2, Props: map[string]any{"any": "thing"}},
	}

	resolved := render.FromInstances(registry, instances)
	if len(resolved) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(resolved))
	}
	if resolved[0].Template.ComponentName != sections.ComponentHeroCentered {
		t.Fatalf("known template not resolved: %+v", resolved[0].Template)
	}
	if resolved[1].Template.ID != "retired-template" || resolved[1].Template.ComponentName != "" {
		t.Fatalf("expected stub template for retired id: %+v", resolved[1].Template)
	}
}
