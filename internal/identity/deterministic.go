package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions
// (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// TemplateUUID derives the identity of a seeded section template.
func TemplateUUID(templateID string) uuid.UUID {
	return UUID("prism:section_template:" + strings.ToLower(strings.TrimSpace(templateID)))
}

// MenuUUID derives the identity of a seeded menu from its name and location.
func MenuUUID(name, location string) uuid.UUID {
	return UUID("prism:menu:" + strings.ToLower(strings.TrimSpace(name)) + ":" + strings.ToLower(strings.TrimSpace(location)))
}

// PageUUID derives the identity of a seeded page from its slug.
func PageUUID(slug string) uuid.UUID {
	return UUID("prism:page:" + strings.TrimSpace(slug))
}
