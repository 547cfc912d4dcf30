package pages

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/prismcms/prism/domain"
)

// Page is a published-addressable document composed of ordered sections.
type Page struct {
	bun.BaseModel `bun:"table:pages,alias:p"`

	ID             uuid.UUID     `bun:",pk,type:uuid" json:"id"`
	Title          string        `bun:"title,notnull" json:"title"`
	Slug           string        `bun:"slug,notnull,unique" json:"slug"`
	Status         domain.Status `bun:"status,notnull,default:'draft'" json:"status"`
	SEOTitle       *string       `bun:"seo_title" json:"seo_title,omitempty"`
	SEODescription *string       `bun:"seo_description" json:"seo_description,omitempty"`
	SEOKeywords    *string       `bun:"seo_keywords" json:"seo_keywords,omitempty"`
	PublishedAt    *time.Time    `bun:"published_at,nullzero" json:"published_at,omitempty"`
	CreatedBy      uuid.UUID     `bun:"created_by,notnull,type:uuid" json:"created_by"`
	UpdatedBy      uuid.UUID     `bun:"updated_by,notnull,type:uuid" json:"updated_by"`
	CreatedAt      time.Time     `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt      time.Time     `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// HomepageSlug addresses the single page allowed to own the site root.
const HomepageSlug = "/"

// IsPublished reports whether the page is visible on the public read path.
func (p *Page) IsPublished() bool {
	return p != nil && p.Status == domain.StatusPublished
}
