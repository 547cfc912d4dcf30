package render

// Theme carries the site-level presentation values renderers may consume.
// It is always passed explicitly; the zero value is not an error, it means
// "use the default theme".
type Theme struct {
	Name        string
	PrimaryHue  string
	FontStack   string
	ContainerCl string
}

// DefaultTheme returns the theme used when callers pass the zero value.
func DefaultTheme() Theme {
	return Theme{
		Name:        "default",
		PrimaryHue:  "#1f6feb",
		FontStack:   "system-ui, sans-serif",
		ContainerCl: "prism-container",
	}
}

func normalizeTheme(theme Theme) Theme {
	def := DefaultTheme()
	if theme.Name == "" {
		theme.Name = def.Name
	}
	if theme.PrimaryHue == "" {
		theme.PrimaryHue = def.PrimaryHue
	}
	if theme.FontStack == "" {
		theme.FontStack = def.FontStack
	}
	if theme.ContainerCl == "" {
		theme.ContainerCl = def.ContainerCl
	}
	return theme
}
