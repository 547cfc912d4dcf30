package render

import "encoding/json"

// HeroProps backs every hero variant. Unset fields render as empty strings.
type HeroProps struct {
	Headline    string `json:"headline"`
	Subheadline string `json:"subheadline"`
	ImageURL    string `json:"imageURL"`
	ImageAlt    string `json:"imageAlt"`
	CTALabel    string `json:"ctaLabel"`
	CTAURL      string `json:"ctaURL"`
}

// TextBlockProps backs the text block variant. Format selects how Body is
// interpreted: plain, html, or markdown.
type TextBlockProps struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
	Format  string `json:"format"`
}

// ImageTextProps backs the image + text variant.
type ImageTextProps struct {
	Heading  string `json:"heading"`
	Body     string `json:"body"`
	ImageURL string `json:"imageURL"`
	ImageAlt string `json:"imageAlt"`
	Side     string `json:"side"`
}

// CTABannerProps backs the call-to-action banner variant.
type CTABannerProps struct {
	Message  string `json:"message"`
	CTALabel string `json:"ctaLabel"`
	CTAURL   string `json:"ctaURL"`
}

// NormalizeProps accepts the prop forms observed in the wild: a live map, a
// JSON string or byte payload, or nothing. Parse failure degrades to an empty
// object, never an error.
func NormalizeProps(value any) map[string]any {
	switch typed := value.(type) {
	case nil:
		return map[string]any{}
	case map[string]any:
		if typed == nil {
			return map[string]any{}
		}
		return typed
	case string:
		return decodeProps([]byte(typed))
	case []byte:
		return decodeProps(typed)
	case json.RawMessage:
		return decodeProps(typed)
	default:
		return map[string]any{}
	}
}

func decodeProps(raw []byte) map[string]any {
	if len(raw) == 0 {
		return map[string]any{}
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil || decoded == nil {
		return map[string]any{}
	}
	return decoded
}

// decodeInto maps loose props onto a typed struct via a JSON round trip.
// Unknown keys are dropped, missing keys keep zero values.
func decodeInto(props map[string]any, target any) {
	encoded, err := json.Marshal(props)
	if err != nil {
		return
	}
	_ = json.Unmarshal(encoded, target)
}
