package sections

// Component names are the closed dispatch keys the renderer matches on.
const (
	ComponentHeroCentered = "HeroCentered"
	ComponentHeroSplit    = "HeroSplit"
	ComponentHeroImage    = "HeroImage"
	ComponentTextBlock    = "TextBlock"
	ComponentImageText    = "ImageText"
	ComponentCTABanner    = "CTABanner"
)

// Template ids are stable string keys referenced by persisted instances.
const (
	TemplateHeroCentered = "hero-centered"
	TemplateHeroSplit    = "hero-split"
	TemplateHeroImage    = "hero-image"
	TemplateTextBlock    = "text-block"
	TemplateImageText    = "image-text"
	TemplateCTABanner    = "cta-banner"
)

// BuiltinTemplates returns the seeded catalog. The list is reference data:
// callers receive fresh copies on every invocation.
func BuiltinTemplates() []Template {
	return []Template{
		{
			ID:            TemplateHeroCentered,
			Name:          "Hero (Centered)",
			Category:      "hero",
			ComponentName: ComponentHeroCentered,
			Description:   "Full-width hero with centered headline, subheadline, and call to action.",
			Tags:          []string{"hero", "header", "landing"},
			DefaultProps: map[string]any{
				"headline":    "Welcome",
				"subheadline": "",
				"ctaLabel":    "",
				"ctaURL":      "",
			},
			Schema:   heroSchema(),
			IsActive: true,
		},
		{
			ID:            TemplateHeroSplit,
			Name:          "Hero (Split)",
			Category:      "hero",
			ComponentName: ComponentHeroSplit,
			Description:   "Two-column hero with copy on one side and an image on the other.",
			Tags:          []string{"hero", "header", "image"},
			DefaultProps: map[string]any{
				"headline":    "Welcome",
				"subheadline": "",
				"imageURL":    "",
				"imageAlt":    "",
				"ctaLabel":    "",
				"ctaURL":      "",
			},
			Schema:   heroImageSchema(),
			IsActive: true,
		},
		{
			ID:            TemplateHeroImage,
			Name:          "Hero (Background Image)",
			Category:      "hero",
			ComponentName: ComponentHeroImage,
			Description:   "Hero with a full-bleed background image behind the headline.",
			Tags:          []string{"hero", "header", "image"},
			DefaultProps: map[string]any{
				"headline":    "Welcome",
				"subheadline": "",
				"imageURL":    "",
				"imageAlt":    "",
				"ctaLabel":    "",
				"ctaURL":      "",
			},
			Schema:   heroImageSchema(),
			IsActive: true,
		},
		{
			ID:            TemplateTextBlock,
			Name:          "Text Block",
			Category:      "content",
			ComponentName: ComponentTextBlock,
			Description:   "Rich text column with optional heading. Body accepts plain text, HTML, or markdown.",
			Tags:          []string{"text", "content", "body"},
			DefaultProps: map[string]any{
				"heading": "",
				"body":    "",
				"format":  "plain",
			},
			Schema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"heading": map[string]any{"type": "string"},
					"body":    map[string]any{"type": "string"},
					"format": map[string]any{
						"type": "string",
						"enum": []any{"plain", "html", "markdown"},
					},
				},
				"additionalProperties": true,
			},
			IsActive: true,
		},
		{
			ID:            TemplateImageText,
			Name:          "Image + Text",
			Category:      "content",
			ComponentName: ComponentImageText,
			Description:   "Image alongside a text column, with configurable image placement.",
			Tags:          []string{"image", "text", "content"},
			DefaultProps: map[string]any{
				"heading":  "",
				"body":     "",
				"imageURL": "",
				"imageAlt": "",
				"side":     "left",
			},
			Schema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"heading":  map[string]any{"type": "string"},
					"body":     map[string]any{"type": "string"},
					"imageURL": map[string]any{"type": "string"},
					"imageAlt": map[string]any{"type": "string"},
					"side": map[string]any{
						"type": "string",
						"enum": []any{"left", "right"},
					},
				},
				"additionalProperties": true,
			},
			IsActive: true,
		},
		{
			ID:            TemplateCTABanner,
			Name:          "Call-to-Action Banner",
			Category:      "marketing",
			ComponentName: ComponentCTABanner,
			Description:   "Slim banner with a single message and action button.",
			Tags:          []string{"cta", "banner", "marketing"},
			DefaultProps: map[string]any{
				"message":  "",
				"ctaLabel": "Learn more",
				"ctaURL":   "#",
			},
			Schema: map[string]any{
				"type":     "object",
				"required": []any{"ctaLabel", "ctaURL"},
				"properties": map[string]any{
					"message":  map[string]any{"type": "string"},
					"ctaLabel": map[string]any{"type": "string"},
					"ctaURL":   map[string]any{"type": "string"},
				},
				"additionalProperties": true,
			},
			IsActive: true,
		},
	}
}

func heroSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []any{"headline"},
		"properties": map[string]any{
			"headline":    map[string]any{"type": "string"},
			"subheadline": map[string]any{"type": "string"},
			"ctaLabel":    map[string]any{"type": "string"},
			"ctaURL":      map[string]any{"type": "string"},
		},
		"additionalProperties": true,
	}
}

func heroImageSchema() map[string]any {
	schema := heroSchema()
	props := schema["properties"].(map[string]any)
	props["imageURL"] = map[string]any{"type": "string"}
	props["imageAlt"] = map[string]any{"type": "string"}
	return schema
}
