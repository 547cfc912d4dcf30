package pages

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/prismcms/prism/internal/domain"
	"github.com/prismcms/prism/internal/identity"
)

// Service describes page management capabilities.
type Service interface {
	Create(ctx context.Context, input CreatePageInput) (*Page, error)
	Update(ctx context.Context, input UpdatePageInput) (*Page, error)
	Publish(ctx context.Context, req PublishPageRequest) (*Page, error)
	Delete(ctx context.Context, req DeletePageRequest) error

	GetByID(ctx context.Context, id uuid.UUID) (*Page, error)
	GetBySlug(ctx context.Context, slug string) (*Page, error)
	// GetPublished is the public read path: it only returns pages whose
	// status is published.
	GetPublished(ctx context.Context, slug string) (*Page, error)
	List(ctx context.Context) ([]*Page, error)
}

// CreatePageInput captures the information required to register a page.
// New pages always start in draft.
type CreatePageInput struct {
	Title          string
	Slug           string
	SEOTitle       *string
	SEODescription *string
	SEOKeywords    *string
	Actor          identity.Actor
}

// UpdatePageInput captures mutable page fields. Nil fields are left untouched.
type UpdatePageInput struct {
	PageID         uuid.UUID
	Title          *string
	Slug           *string
	SEOTitle       *string
	SEODescription *string
	SEOKeywords    *string
	Actor          identity.Actor
}

// PublishPageRequest transitions a page to published, stamping PublishedAt.
type PublishPageRequest struct {
	PageID uuid.UUID
	Actor  identity.Actor
}

// DeletePageRequest removes a page. Owned sections are cascaded by the
// section store.
type DeletePageRequest struct {
	PageID uuid.UUID
	Actor  identity.Actor
}

var (
	ErrPageTitleRequired = errors.New("pages: title is required")
	ErrPageSlugRequired  = errors.New("pages: slug is required")
	ErrPageSlugInvalid   = errors.New("pages: slug must be path-shaped and start with /")
	ErrPageSlugExists    = errors.New("pages: slug already exists")
	ErrPageNotFound      = errors.New("pages: page not found")
)

// NotFoundError is returned by repositories when a lookup misses.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.Key)
}

// Repository persists pages.
type Repository interface {
	Create(ctx context.Context, page *Page) (*Page, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Page, error)
	GetBySlug(ctx context.Context, slug string) (*Page, error)
	List(ctx context.Context) ([]*Page, error)
	Update(ctx context.Context, page *Page) (*Page, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SectionCascader removes the sections owned by a page when the page is
// deleted. The sections module provides the implementation.
type SectionCascader interface {
	DeleteByPage(ctx context.Context, pageID uuid.UUID) (int, error)
}

// Statuses exposed for convenience so callers do not need the domain package.
const (
	StatusDraft     = domain.StatusDraft
	StatusPublished = domain.StatusPublished
	StatusScheduled = domain.StatusScheduled
)
