package sections

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/prismcms/prism/internal/logging"
	"github.com/prismcms/prism/internal/schema"
	"github.com/prismcms/prism/pkg/interfaces"
)

// IDGenerator produces unique identifiers for new section instances.
type IDGenerator func() uuid.UUID

// ServiceOption configures section service behaviour.
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

// WithPageResolver wires the collaborator used to confirm pages exist.
func WithPageResolver(resolver PageResolver) ServiceOption {
	return func(s *service) {
		s.pages = resolver
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
	registry *Registry
	pages    PageResolver
	logger   interfaces.Logger
	now      func() time.Time
	id       IDGenerator
}

// NewService constructs the section service backed by the given registry.
func NewService(repo Repository, registry *Registry, opts ...ServiceOption) Service {
	s := &service{
		repo:     repo,
		registry: registry,
		logger:   logging.NoOp(),
		now:      time.Now,
		id:       uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddSection places a template on a page. Props default to the template's
// defaults, overridden by caller-supplied values, and are validated against
// the template schema before anything is written.
func (s *service) AddSection(ctx context.Context, input AddSectionInput) (*Instance, error) {
	if err := input.Actor.RequireEditor("add sections"); err != nil {
		return nil, err
	}
	if input.PageID == uuid.Nil {
		return nil, ErrSectionPageRequired
	}

	tpl, ok := s.registry.Get(input.TemplateID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTemplateUnknown, input.TemplateID)
	}

	if err := s.ensurePage(ctx, input.PageID); err != nil {
		return nil, err
	}

	props := seedProps(tpl.DefaultProps, input.Props)
	if err := schema.ValidatePayload(tpl.Schema, props); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSectionPropsInvalid, err)
	}

	position := 0
	if input.Position != nil {
		if *input.Position < 0 {
			return nil, ErrPositionInvalid
		}
		position = *input.Position
	} else {
		existing, err := s.repo.ListByPage(ctx, input.PageID)
		if err != nil {
			return nil, err
		}
		for _, instance := range existing {
			if instance.Position >= position {
				position = instance.Position + 1
			}
		}
	}

	now := s.now()
	instance := &Instance{
		ID:         s.id(),
		PageID:     input.PageID,
		TemplateID: tpl.ID,
		Position:   position,
		Props:      props,
		CreatedBy:  input.Actor.ID,
		UpdatedBy:  input.Actor.ID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.repo.Create(ctx, instance)
	if err != nil {
		return nil, err
	}

	logging.WithFields(s.logger, map[string]any{
		"section_id": created.ID.String(),
		"page_id":    created.PageID.String(),
		"template":   created.TemplateID,
		"position":   created.Position,
	}).Info("sections.added")

	return created, nil
}

// UpdateSection applies a partial update. Unspecified fields are untouched.
func (s *service) UpdateSection(ctx context.Context, input UpdateSectionInput) (*Instance, error) {
	if err := input.Actor.RequireEditor("update sections"); err != nil {
		return nil, err
	}
	if input.SectionID == uuid.Nil {
		return nil, ErrSectionNotFound
	}

	instance, err := s.getSection(ctx, input.SectionID)
	if err != nil {
		return nil, err
	}

	if input.Props != nil {
		props := maps.Clone(input.Props)
		if tpl, ok := s.registry.Get(instance.TemplateID); ok {
			if err := schema.ValidatePayload(tpl.Schema, props); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrSectionPropsInvalid, err)
			}
		}
		instance.Props = props
	}
	if input.Position != nil {
		if *input.Position < 0 {
			return nil, ErrPositionInvalid
		}
		instance.Position = *input.Position
	}

	instance.UpdatedBy = input.Actor.ID
	instance.UpdatedAt = s.now()

	return s.repo.Update(ctx, instance)
}

// ReorderSections assigns position = index+1 for each listed id in one atomic
// batch. Every id must belong to the page; unknown or duplicated ids reject
// the whole request before any write.
func (s *service) ReorderSections(ctx context.Context, input ReorderSectionsInput) ([]*Instance, error) {
	if err := input.Actor.RequireEditor("reorder sections"); err != nil {
		return nil, err
	}
	if input.PageID == uuid.Nil {
		return nil, ErrSectionPageRequired
	}

	existing, err := s.repo.ListByPage(ctx, input.PageID)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*Instance, len(existing))
	for _, instance := range existing {
		byID[instance.ID] = instance
	}

	seen := make(map[uuid.UUID]struct{}, len(input.SectionIDs))
	dirty := make([]*Instance, 0, len(input.SectionIDs))
	now := s.now()
	for idx, id := range input.SectionIDs {
		instance, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrReorderIncomplete, id)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: %s", ErrReorderDuplicate, id)
		}
		seen[id] = struct{}{}

		instance.Position = idx + 1
		instance.UpdatedAt = now
		instance.UpdatedBy = input.Actor.ID
		dirty = append(dirty, instance)
	}

	if len(dirty) > 0 {
		if err := s.repo.BulkUpdatePositions(ctx, dirty); err != nil {
			return nil, err
		}
	}

	result := slices.Clone(existing)
	slices.SortFunc(result, func(a, b *Instance) int {
		return a.Position - b.Position
	})

	logging.WithFields(s.logger, map[string]any{
		"page_id": input.PageID.String(),
		"count":   len(dirty),
	}).Info("sections.reordered")

	return result, nil
}

// RemoveSection deletes a single section row. No cascade beyond it.
func (s *service) RemoveSection(ctx context.Context, req RemoveSectionRequest) error {
	if err := req.Actor.RequireEditor("remove sections"); err != nil {
		return err
	}
	if req.SectionID == uuid.Nil {
		return ErrSectionNotFound
	}
	if _, err := s.getSection(ctx, req.SectionID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, req.SectionID)
}

func (s *service) GetSection(ctx context.Context, id uuid.UUID) (*Instance, error) {
	if id == uuid.Nil {
		return nil, ErrSectionNotFound
	}
	return s.getSection(ctx, id)
}

// ListByPage returns the page's sections sorted by ascending position.
func (s *service) ListByPage(ctx context.Context, pageID uuid.UUID) ([]*Instance, error) {
	if pageID == uuid.Nil {
		return nil, ErrSectionPageRequired
	}
	instances, err := s.repo.ListByPage(ctx, pageID)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(instances, func(a, b *Instance) int {
		return a.Position - b.Position
	})
	return instances, nil
}

// DeleteByPage removes every section owned by the page, returning the count.
// It backs the page deletion cascade.
func (s *service) DeleteByPage(ctx context.Context, pageID uuid.UUID) (int, error) {
	if pageID == uuid.Nil {
		return 0, ErrSectionPageRequired
	}
	return s.repo.DeleteByPage(ctx, pageID)
}

func (s *service) getSection(ctx context.Context, id uuid.UUID) (*Instance, error) {
	instance, err := s.repo.GetByID(ctx, id)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return nil, ErrSectionNotFound
		}
		return nil, err
	}
	return instance, nil
}

func (s *service) ensurePage(ctx context.Context, pageID uuid.UUID) error {
	if s.pages == nil {
		return nil
	}
	exists, err := s.pages.Exists(ctx, pageID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrPageNotFound
	}
	return nil
}

func seedProps(defaults, overrides map[string]any) map[string]any {
	props := make(map[string]any, len(defaults)+len(overrides))
	maps.Copy(props, defaults)
	maps.Copy(props, overrides)
	return props
}
