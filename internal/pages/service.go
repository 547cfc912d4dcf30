package pages

import (
	"context"
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/prismcms/prism/internal/domain"
	"github.com/prismcms/prism/internal/logging"
	"github.com/prismcms/prism/pkg/interfaces"
)

// IDGenerator produces unique identifiers for new pages.
type IDGenerator func() uuid.UUID

// ServiceOption configures page service behaviour.
type ServiceOption func(*service)

// WithClock overrides the internal time source.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides the ID generator.
func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithSectionCascader wires the collaborator that removes a deleted page's
// sections.
func WithSectionCascader(cascader SectionCascader) ServiceOption {
	return func(s *service) {
		s.sections = cascader
	}
}

// WithLogger wires the structured logger used for service events.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	repo     Repository
	sections SectionCascader
	logger   interfaces.Logger
	now      func() time.Time
	id       IDGenerator
}

// NewService constructs the page service.
func NewService(repo Repository, opts ...ServiceOption) Service {
	s := &service{
		repo:   repo,
		logger: logging.NoOp(),
		now:    time.Now,
		id:     uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers a new draft page after validating title, slug shape, and
// slug uniqueness. Editors and admins may create pages.
func (s *service) Create(ctx context.Context, input CreatePageInput) (*Page, error) {
	if err := input.Actor.RequireEditor("create pages"); err != nil {
		return nil, err
	}
	if err := validateCreatePageInput(input); err != nil {
		return nil, err
	}

	normalized, err := NormalizePageSlug(input.Slug)
	if err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetBySlug(ctx, normalized); err == nil && existing != nil {
		return nil, ErrPageSlugExists
	}

	now := s.now()
	page := &Page{
		ID:             s.id(),
		Title:          strings.TrimSpace(input.Title),
		Slug:           normalized,
		Status:         domain.StatusDraft,
		SEOTitle:       input.SEOTitle,
		SEODescription: input.SEODescription,
		SEOKeywords:    input.SEOKeywords,
		CreatedBy:      input.Actor.ID,
		UpdatedBy:      input.Actor.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.repo.Create(ctx, page)
	if err != nil {
		return nil, err
	}

	logging.WithFields(s.logger, map[string]any{
		"page_id": created.ID.String(),
		"slug":    created.Slug,
	}).Info("pages.created")

	return created, nil
}

// Update applies a partial update. A slug change re-runs normalization and
// uniqueness checks before anything is written.
func (s *service) Update(ctx context.Context, input UpdatePageInput) (*Page, error) {
	if err := input.Actor.RequireEditor("update pages"); err != nil {
		return nil, err
	}
	if input.PageID == uuid.Nil {
		return nil, ErrPageNotFound
	}

	page, err := s.getPage(ctx, input.PageID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrPageTitleRequired
		}
		page.Title = title
	}
	if input.Slug != nil {
		normalized, err := NormalizePageSlug(*input.Slug)
		if err != nil {
			return nil, err
		}
		if normalized != page.Slug {
			if existing, err := s.repo.GetBySlug(ctx, normalized); err == nil && existing != nil && existing.ID != page.ID {
				return nil, ErrPageSlugExists
			}
			page.Slug = normalized
		}
	}
	if input.SEOTitle != nil {
		page.SEOTitle = input.SEOTitle
	}
	if input.SEODescription != nil {
		page.SEODescription = input.SEODescription
	}
	if input.SEOKeywords != nil {
		page.SEOKeywords = input.SEOKeywords
	}

	page.UpdatedBy = input.Actor.ID
	page.UpdatedAt = s.now()

	return s.repo.Update(ctx, page)
}

// Publish transitions the page to published and stamps PublishedAt. Only
// admins may publish.
func (s *service) Publish(ctx context.Context, req PublishPageRequest) (*Page, error) {
	if err := req.Actor.RequireAdmin("publish pages"); err != nil {
		return nil, err
	}
	if req.PageID == uuid.Nil {
		return nil, ErrPageNotFound
	}

	page, err := s.getPage(ctx, req.PageID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	page.Status = domain.StatusPublished
	page.PublishedAt = &now
	page.UpdatedBy = req.Actor.ID
	page.UpdatedAt = now

	published, err := s.repo.Update(ctx, page)
	if err != nil {
		return nil, err
	}

	logging.WithFields(s.logger, map[string]any{
		"page_id": published.ID.String(),
		"slug":    published.Slug,
	}).Info("pages.published")

	return published, nil
}

// Delete removes the page and cascades to its sections. Only admins may
// delete pages.
func (s *service) Delete(ctx context.Context, req DeletePageRequest) error {
	if err := req.Actor.RequireAdmin("delete pages"); err != nil {
		return err
	}
	if req.PageID == uuid.Nil {
		return ErrPageNotFound
	}

	page, err := s.getPage(ctx, req.PageID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, page.ID); err != nil {
		return err
	}

	removed := 0
	if s.sections != nil {
		if removed, err = s.sections.DeleteByPage(ctx, page.ID); err != nil {
			return err
		}
	}

	logging.WithFields(s.logger, map[string]any{
		"page_id":          page.ID.String(),
		"slug":             page.Slug,
		"sections_removed": removed,
	}).Info("pages.deleted")

	return nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*Page, error) {
	if id == uuid.Nil {
		return nil, ErrPageNotFound
	}
	return s.getPage(ctx, id)
}

func (s *service) GetBySlug(ctx context.Context, slugValue string) (*Page, error) {
	page, err := s.repo.GetBySlug(ctx, strings.TrimSpace(slugValue))
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return page, nil
}

func (s *service) GetPublished(ctx context.Context, slugValue string) (*Page, error) {
	page, err := s.GetBySlug(ctx, slugValue)
	if err != nil {
		return nil, err
	}
	if !page.IsPublished() {
		return nil, ErrPageNotFound
	}
	return page, nil
}

func (s *service) List(ctx context.Context) ([]*Page, error) {
	return s.repo.List(ctx)
}

func (s *service) getPage(ctx context.Context, id uuid.UUID) (*Page, error) {
	page, err := s.repo.GetByID(ctx, id)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return page, nil
}

func validateCreatePageInput(input CreatePageInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Title, validation.Required),
		validation.Field(&input.Slug, validation.Required),
	)
	if err == nil {
		return nil
	}
	if errs, ok := err.(validation.Errors); ok {
		if _, bad := errs["Title"]; bad {
			return ErrPageTitleRequired
		}
		if _, bad := errs["Slug"]; bad {
			return ErrPageSlugRequired
		}
	}
	return err
}

// NormalizePageSlug validates and normalizes a path-shaped slug. The root
// slug "/" is preserved as-is; every other slug has each path segment run
// through the default slug normalizer.
func NormalizePageSlug(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", ErrPageSlugRequired
	}
	if !strings.HasPrefix(trimmed, "/") {
		return "", ErrPageSlugInvalid
	}
	if trimmed == HomepageSlug {
		return HomepageSlug, nil
	}

	segments := strings.Split(strings.Trim(trimmed, "/"), "/")
	normalized := make([]string, 0, len(segments))
	for _, segment := range segments {
		if segment == "" {
			return "", ErrPageSlugInvalid
		}
		part, err := slug.Normalize(segment)
		if err != nil || part == "" {
			return "", ErrPageSlugInvalid
		}
		normalized = append(normalized, part)
	}
	return "/" + strings.Join(normalized, "/"), nil
}
