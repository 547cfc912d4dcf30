package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"

	"github.com/prismcms/prism/internal/sections"
)

// Component pairs the two render functions every registered component must
// provide: static markup for preview/publish and an editable form keyed by
// the same component name.
type Component struct {
	Preview func(theme Theme, props map[string]any) (template.HTML, error)
	Editor  func(theme Theme, props map[string]any) (template.HTML, error)
}

var markdown = goldmark.New()

func builtinComponents() map[string]Component {
	return map[string]Component{
		sections.ComponentHeroCentered: {
			Preview: previewHero("hero-centered"),
			Editor:  editorHero(sections.ComponentHeroCentered),
		},
		sections.ComponentHeroSplit: {
			Preview: previewHero("hero-split"),
			Editor:  editorHero(sections.ComponentHeroSplit),
		},
		sections.ComponentHeroImage: {
			Preview: previewHero("hero-image"),
			Editor:  editorHero(sections.ComponentHeroImage),
		},
		sections.ComponentTextBlock: {
			Preview: previewTextBlock,
			Editor:  editorTextBlock,
		},
		sections.ComponentImageText: {
			Preview: previewImageText,
			Editor:  editorImageText,
		},
		sections.ComponentCTABanner: {
			Preview: previewCTABanner,
			Editor:  editorCTABanner,
		},
	}
}

var componentTemplates = template.Must(template.New("components").Parse(`
{{define "hero"}}<section class="prism-section prism-hero prism-hero--{{.Variant}}" style="font-family: {{.Theme.FontStack}}">
  <div class="{{.Theme.ContainerCl}}">
    {{if .Props.ImageURL}}<img class="prism-hero__image" src="{{.Props.ImageURL}}" alt="{{.Props.ImageAlt}}">{{end}}
    <h1 class="prism-hero__headline">{{.Props.Headline}}</h1>
    {{if .Props.Subheadline}}<p class="prism-hero__subheadline">{{.Props.Subheadline}}</p>{{end}}
    {{if and .Props.CTALabel .Props.CTAURL}}<a class="prism-hero__cta" style="background: {{.Theme.PrimaryHue}}" href="{{.Props.CTAURL}}">{{.Props.CTALabel}}</a>{{end}}
  </div>
</section>{{end}}

{{define "text-block"}}<section class="prism-section prism-text-block">
  <div class="{{.Theme.ContainerCl}}">
    {{if .Props.Heading}}<h2 class="prism-text-block__heading">{{.Props.Heading}}</h2>{{end}}
    <div class="prism-text-block__body">{{.Body}}</div>
  </div>
</section>{{end}}

{{define "image-text"}}<section class="prism-section prism-image-text prism-image-text--{{.Side}}">
  <div class="{{.Theme.ContainerCl}}">
    <img class="prism-image-text__image" src="{{.Props.ImageURL}}" alt="{{.Props.ImageAlt}}">
    <div class="prism-image-text__copy">
      {{if .Props.Heading}}<h2>{{.Props.Heading}}</h2>{{end}}
      <p>{{.Props.Body}}</p>
    </div>
  </div>
</section>{{end}}

{{define "cta-banner"}}<section class="prism-section prism-cta-banner" style="background: {{.Theme.PrimaryHue}}">
  <div class="{{.Theme.ContainerCl}}">
    {{if .Props.Message}}<p class="prism-cta-banner__message">{{.Props.Message}}</p>{{end}}
    <a class="prism-cta-banner__action" href="{{.Props.CTAURL}}">{{.Props.CTALabel}}</a>
  </div>
</section>{{end}}

{{define "fallback"}}<section class="prism-section prism-section--fallback">
  <p class="prism-section__fallback-name">{{.Name}}</p>
  <pre class="prism-section__fallback-dump">{{.Dump}}</pre>
</section>{{end}}

{{define "editor-field"}}<label class="prism-editor__field">
  <span>{{.Label}}</span>
  <input type="text" name="{{.Name}}" value="{{.Value}}">
</label>{{end}}

{{define "editor-textarea"}}<label class="prism-editor__field">
  <span>{{.Label}}</span>
  <textarea name="{{.Name}}">{{.Value}}</textarea>
</label>{{end}}
`))

type heroView struct {
	Variant string
	Theme   Theme
	Props   HeroProps
}

func previewHero(variant string) func(Theme, map[string]any) (template.HTML, error) {
	return func(theme Theme, props map[string]any) (template.HTML, error) {
		var decoded HeroProps
		decodeInto(props, &decoded)
		return execute("hero", heroView{Variant: variant, Theme: theme, Props: decoded})
	}
}

type textBlockView struct {
	Theme Theme
	Props TextBlockProps
	Body  template.HTML
}

func previewTextBlock(theme Theme, props map[string]any) (template.HTML, error) {
	var decoded TextBlockProps
	decodeInto(props, &decoded)

	body, err := renderBody(decoded)
	if err != nil {
		return "", err
	}
	return execute("text-block", textBlockView{Theme: theme, Props: decoded, Body: body})
}

// renderBody interprets the body according to the declared format. HTML
// passes through as-is: the editor role is trusted for raw markup, matching
// the admin-authored content model.
func renderBody(props TextBlockProps) (template.HTML, error) {
	switch props.Format {
	case "markdown":
		var buf bytes.Buffer
		if err := markdown.Convert([]byte(props.Body), &buf); err != nil {
			return "", fmt.Errorf("render: markdown body: %w", err)
		}
		return template.HTML(buf.String()), nil
	case "html":
		return template.HTML(props.Body), nil
	default:
		return template.HTML(template.HTMLEscapeString(props.Body)), nil
	}
}

type imageTextView struct {
	Theme Theme
	Props ImageTextProps
	Side  string
}

func previewImageText(theme Theme, props map[string]any) (template.HTML, error) {
	var decoded ImageTextProps
	decodeInto(props, &decoded)
	side := decoded.Side
	if side != "right" {
		side = "left"
	}
	return execute("image-text", imageTextView{Theme: theme, Props: decoded, Side: side})
}

type ctaBannerView struct {
	Theme Theme
	Props CTABannerProps
}

func previewCTABanner(theme Theme, props map[string]any) (template.HTML, error) {
	var decoded CTABannerProps
	decodeInto(props, &decoded)
	return execute("cta-banner", ctaBannerView{Theme: theme, Props: decoded})
}

func editorHero(componentName string) func(Theme, map[string]any) (template.HTML, error) {
	return func(_ Theme, props map[string]any) (template.HTML, error) {
		var decoded HeroProps
		decodeInto(props, &decoded)
		return editorForm(componentName,
			field{"editor-field", "Headline", "headline", decoded.Headline},
			field{"editor-field", "Subheadline", "subheadline", decoded.Subheadline},
			field{"editor-field", "Image URL", "imageURL", decoded.ImageURL},
			field{"editor-field", "Image alt text", "imageAlt", decoded.ImageAlt},
			field{"editor-field", "CTA label", "ctaLabel", decoded.CTALabel},
			field{"editor-field", "CTA URL", "ctaURL", decoded.CTAURL},
		)
	}
}

func editorTextBlock(_ Theme, props map[string]any) (template.HTML, error) {
	var decoded TextBlockProps
	decodeInto(props, &decoded)
	return editorForm(sections.ComponentTextBlock,
		field{"editor-field", "Heading", "heading", decoded.Heading},
		field{"editor-textarea", "Body", "body", decoded.Body},
		field{"editor-field", "Format", "format", decoded.Format},
	)
}

func editorImageText(_ Theme, props map[string]any) (template.HTML, error) {
	var decoded ImageTextProps
	decodeInto(props, &decoded)
	return editorForm(sections.ComponentImageText,
		field{"editor-field", "Heading", "heading", decoded.Heading},
		field{"editor-textarea", "Body", "body", decoded.Body},
		field{"editor-field", "Image URL", "imageURL", decoded.ImageURL},
		field{"editor-field", "Image alt text", "imageAlt", decoded.ImageAlt},
		field{"editor-field", "Image side", "side", decoded.Side},
	)
}

func editorCTABanner(_ Theme, props map[string]any) (template.HTML, error) {
	var decoded CTABannerProps
	decodeInto(props, &decoded)
	return editorForm(sections.ComponentCTABanner,
		field{"editor-field", "Message", "message", decoded.Message},
		field{"editor-field", "CTA label", "ctaLabel", decoded.CTALabel},
		field{"editor-field", "CTA URL", "ctaURL", decoded.CTAURL},
	)
}

type field struct {
	tmpl  string
	Label string
	Name  string
	Value string
}

func editorForm(componentName string, fields ...field) (template.HTML, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<form class="prism-editor" data-component=%q>`, componentName)
	for _, f := range fields {
		rendered, err := execute(f.tmpl, f)
		if err != nil {
			return "", err
		}
		buf.WriteString("\n")
		buf.WriteString(string(rendered))
	}
	buf.WriteString("\n</form>")
	return template.HTML(buf.String()), nil
}

func execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := componentTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render: execute %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}
