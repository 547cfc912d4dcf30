package sections_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/prismcms/prism/internal/identity"
	"github.com/prismcms/prism/internal/sections"
)

var (
	editor = identity.Actor{ID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Role: identity.RoleEditor}
	viewer = identity.Actor{ID: uuid.MustParse("33333333-3333-3333-3333-333333333333"), Role: identity.RoleViewer}
)

var pageID = uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")

type staticPages map[uuid.UUID]bool

func (p staticPages) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	return p[id], nil
}

func newService(t *testing.T, opts ...sections.ServiceOption) sections.Service {
	t.Helper()
	counter := 0
	base := append([]sections.ServiceOption{
		sections.WithClock(func() time.Time {
			return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		}),
		sections.WithIDGenerator(func() uuid.UUID {
			counter++
			return uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012d", counter))
		}),
		sections.WithPageResolver(staticPages{pageID: true}),
	}, opts...)
	return sections.NewService(sections.NewMemoryRepository(), sections.NewDefaultRegistry(), base...)
}

func mustAddSection(t *testing.T, svc sections.Service, templateID string, props map[string]any) *sections.Instance {
	t.Helper()
	instance, err := svc.AddSection(context.Background(), sections.AddSectionInput{
		PageID:     pageID,
		TemplateID: templateID,
		Props:      props,
		Actor:      editor,
	})
	if err != nil {
		t.Fatalf("AddSection %s: %v", templateID, err)
	}
	return instance
}

func TestService_AddSection_SeedsDefaultsAndOverrides(t *testing.T) {
	svc := newService(t)
	instance := mustAddSection(t, svc, sections.TemplateHeroCentered, map[string]any{
		"headline": "Launch Week",
	})

	if instance.Props["headline"] != "Launch Week" {
		t.Fatalf("override lost: %v", instance.Props["headline"])
	}
	// Unspecified keys come from the template defaults.
	if _, ok := instance.Props["subheadline"]; !ok {
		t.Fatal("expected default subheadline to be seeded")
	}
	if instance.TemplateID != sections.TemplateHeroCentered {
		t.Fatalf("unexpected template id %q", instance.TemplateID)
	}
}

func TestService_AddSection_UnknownTemplate(t *testing.T) {
	svc := newService(t)
	_, err := svc.AddSection(context.Background(), sections.AddSectionInput{
		PageID:     pageID,
		TemplateID: "carousel-9000",
		Actor:      editor,
	})
	if !errors.Is(err, sections.ErrTemplateUnknown) {
		t.Fatalf("expected ErrTemplateUnknown, got %v", err)
	}

	// The rejection leaves the page untouched.
	list, err := svc.ListByPage(context.Background(), pageID)
	if err != nil {
		t.Fatalf("ListByPage: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected no sections after rejected add, got %d", len(list))
	}
}

func TestService_AddSection_SchemaRejection(t *testing.T) {
	svc := newService(t)
	_, err := svc.AddSection(context.Background(), sections.AddSectionInput{
		PageID:     pageID,
		TemplateID: sections.TemplateHeroCentered,
		Props:      map[string]any{"headline": 42},
		Actor:      editor,
	})
	if !errors.Is(err, sections.ErrSectionPropsInvalid) {
		t.Fatalf("expected ErrSectionPropsInvalid, got %v", err)
	}
}

func TestService_AddSection_UnknownPage(t *testing.T) {
	svc := newService(t)
	_, err := svc.AddSection(context.Background(), sections.AddSectionInput{
		PageID:     uuid.MustParse("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb"),
		TemplateID: sections.TemplateHeroCentered,
		Actor:      editor,
	})
	if !errors.Is(err, sections.ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound, got %v", err)
	}
}

func TestService_AddSection_AppendsAfterMaxPosition(t *testing.T) {
	svc := newService(t)
	first := mustAddSection(t, svc, sections.TemplateHeroCentered, nil)
	second := mustAddSection(t, svc, sections.TemplateTextBlock, nil)

	if second.Position <= first.Position {
		t.Fatalf("expected append after %d, got %d", first.Position, second.Position)
	}

	// An explicit position wins over append.
	pos := 10
	explicit, err := svc.AddSection(context.Background(), sections.AddSectionInput{
		PageID:     pageID,
		TemplateID: sections.TemplateCTABanner,
		Position:   &pos,
		Actor:      editor,
	})
	if err != nil {
		t.Fatalf("AddSection explicit position: %v", err)
	}
	if explicit.Position != 10 {
		t.Fatalf("expected position 10, got %d", explicit.Position)
	}
}

func TestService_UpdateSection_RevalidatesProps(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	instance := mustAddSection(t, svc, sections.TemplateHeroCentered, nil)

	_, err := svc.UpdateSection(ctx, sections.UpdateSectionInput{
		SectionID: instance.ID,
		Props:     map[string]any{"headline": true},
		Actor:     editor,
	})
	if !errors.Is(err, sections.ErrSectionPropsInvalid) {
		t.Fatalf("expected ErrSectionPropsInvalid, got %v", err)
	}

	updated, err := svc.UpdateSection(ctx, sections.UpdateSectionInput{
		SectionID: instance.ID,
		Props:     map[string]any{"headline": "Fresh"},
		Actor:     editor,
	})
	if err != nil {
		t.Fatalf("UpdateSection: %v", err)
	}
	if updated.Props["headline"] != "Fresh" {
		t.Fatalf("expected updated headline, got %v", updated.Props["headline"])
	}
}

func TestService_ReorderSections_PermutationDefinesOrder(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	hero := mustAddSection(t, svc, sections.TemplateHeroCentered, nil)
	text := mustAddSection(t, svc, sections.TemplateTextBlock, nil)
	cta := mustAddSection(t, svc, sections.TemplateCTABanner, nil)

	// Move the text block before the hero.
	result, err := svc.ReorderSections(ctx, sections.ReorderSectionsInput{
		PageID:     pageID,
		SectionIDs: []uuid.UUID{text.ID, hero.ID, cta.ID},
		Actor:      editor,
	})
	if err != nil {
		t.Fatalf("ReorderSections: %v", err)
	}

	if result[0].ID != text.ID || result[1].ID != hero.ID || result[2].ID != cta.ID {
		t.Fatalf("unexpected order: %v %v %v", result[0].ID, result[1].ID, result[2].ID)
	}
	for i, instance := range result {
		if instance.Position != i+1 {
			t.Fatalf("expected position %d, got %d", i+1, instance.Position)
		}
	}

	// Reads observe the new order.
	list, err := svc.ListByPage(ctx, pageID)
	if err != nil {
		t.Fatalf("ListByPage: %v", err)
	}
	if list[0].ID != text.ID {
		t.Fatalf("expected text block first after reorder, got %v", list[0].ID)
	}
}

func TestService_ReorderSections_RejectsForeignAndDuplicateIDs(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	hero := mustAddSection(t, svc, sections.TemplateHeroCentered, nil)
	text := mustAddSection(t, svc, sections.TemplateTextBlock, nil)

	_, err := svc.ReorderSections(ctx, sections.ReorderSectionsInput{
		PageID:     pageID,
		SectionIDs: []uuid.UUID{hero.ID, uuid.MustParse("99999999-9999-9999-9999-999999999999")},
		Actor:      editor,
	})
	if !errors.Is(err, sections.ErrReorderIncomplete) {
		t.Fatalf("expected ErrReorderIncomplete, got %v", err)
	}

	_, err = svc.ReorderSections(ctx, sections.ReorderSectionsInput{
		PageID:     pageID,
		SectionIDs: []uuid.UUID{hero.ID, hero.ID},
		Actor:      editor,
	})
	if !errors.Is(err, sections.ErrReorderDuplicate) {
		t.Fatalf("expected ErrReorderDuplicate, got %v", err)
	}

	// Rejected batches never touch persisted order.
	list, err := svc.ListByPage(ctx, pageID)
	if err != nil {
		t.Fatalf("ListByPage: %v", err)
	}
	if list[0].ID != hero.ID || list[1].ID != text.ID {
		t.Fatal("rejected reorder mutated persisted order")
	}
}

func TestService_RemoveSection(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	instance := mustAddSection(t, svc, sections.TemplateHeroCentered, nil)

	if err := svc.RemoveSection(ctx, sections.RemoveSectionRequest{SectionID: instance.ID, Actor: editor}); err != nil {
		t.Fatalf("RemoveSection: %v", err)
	}
	if _, err := svc.GetSection(ctx, instance.ID); !errors.Is(err, sections.ErrSectionNotFound) {
		t.Fatalf("expected ErrSectionNotFound, got %v", err)
	}
}

func TestService_PageCascade_ReturnsCount(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	mustAddSection(t, svc, sections.TemplateHeroCentered, nil)
	mustAddSection(t, svc, sections.TemplateTextBlock, nil)
	mustAddSection(t, svc, sections.TemplateCTABanner, nil)

	// Bulk deletion lives on the cascader contract, not the public Service
	// surface: only the page deletion path, which is role-gated, reaches it.
	cascader, ok := svc.(sections.PageCascader)
	if !ok {
		t.Fatal("expected service to implement PageCascader")
	}

	removed, err := cascader.DeleteByPage(ctx, pageID)
	if err != nil {
		t.Fatalf("DeleteByPage: %v", err)
	}
	if removed != 3 {
		t.Fatalf("expected 3 sections removed, got %d", removed)
	}

	list, err := svc.ListByPage(ctx, pageID)
	if err != nil {
		t.Fatalf("ListByPage: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected no sections left, got %d", len(list))
	}
}

func TestService_RoleGate(t *testing.T) {
	svc := newService(t)
	_, err := svc.AddSection(context.Background(), sections.AddSectionInput{
		PageID:     pageID,
		TemplateID: sections.TemplateHeroCentered,
		Actor:      viewer,
	})
	if !errors.Is(err, identity.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for viewer, got %v", err)
	}
}
