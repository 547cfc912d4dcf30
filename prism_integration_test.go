package prism_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	prism "github.com/prismcms/prism"
	"github.com/prismcms/prism/internal/identity"
	"github.com/prismcms/prism/internal/menus"
	"github.com/prismcms/prism/internal/pages"
	"github.com/prismcms/prism/internal/render"
	"github.com/prismcms/prism/internal/sections"
)

func newModule(t *testing.T) *prism.Module {
	t.Helper()
	cfg := prism.DefaultConfig()
	cfg.Logging.Provider = "noop"
	module, err := prism.New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return module
}

func TestModule_PageCompositionLifecycle(t *testing.T) {
	ctx := context.Background()
	module := newModule(t)

	editor := prism.Actor{ID: uuid.New(), Role: prism.RoleEditor}
	admin := prism.Actor{ID: uuid.New(), Role: prism.RoleAdmin}

	page, err := module.Pages().Create(ctx, pages.CreatePageInput{
		Title: "Landing",
		Slug:  "/landing",
		Actor: editor,
	})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}

	hero, err := module.Sections().AddSection(ctx, sections.AddSectionInput{
		PageID:     page.ID,
		TemplateID: sections.TemplateHeroCentered,
		Props:      map[string]any{"headline": "Ship Faster"},
		Actor:      editor,
	})
	if err != nil {
		t.Fatalf("add hero: %v", err)
	}
	text, err := module.Sections().AddSection(ctx, sections.AddSectionInput{
		PageID:     page.ID,
		TemplateID: sections.TemplateTextBlock,
		Props:      map[string]any{"body": "All about shipping.", "format": "plain"},
		Actor:      editor,
	})
	if err != nil {
		t.Fatalf("add text: %v", err)
	}

	// Flip the order and render: the text block must come out first.
	if _, err := module.Sections().ReorderSections(ctx, sections.ReorderSectionsInput{
		PageID:     page.ID,
		SectionIDs: []uuid.UUID{text.ID, hero.ID},
		Actor:      editor,
	}); err != nil {
		t.Fatalf("reorder: %v", err)
	}

	placed, err := module.Sections().ListByPage(ctx, page.ID)
	if err != nil {
		t.Fatalf("list sections: %v", err)
	}
	html := string(module.Renderer().Render(render.FromInstances(module.Registry(), placed), module.Theme()))
	if textAt, heroAt := strings.Index(html, "All about shipping."), strings.Index(html, "Ship Faster"); textAt == -1 || heroAt == -1 || textAt > heroAt {
		t.Fatalf("expected text before hero after reorder:\n%s", html)
	}

	// Publish gate: editors cannot, admins can.
	if _, err := module.Pages().Publish(ctx, pages.PublishPageRequest{PageID: page.ID, Actor: editor}); err == nil {
		t.Fatal("expected publish to be admin-only")
	}
	if _, err := module.Pages().Publish(ctx, pages.PublishPageRequest{PageID: page.ID, Actor: admin}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if _, err := module.Pages().GetPublished(ctx, "/landing"); err != nil {
		t.Fatalf("get published: %v", err)
	}

	// Deleting the page removes its sections.
	if err := module.Pages().Delete(ctx, pages.DeletePageRequest{PageID: page.ID, Actor: admin}); err != nil {
		t.Fatalf("delete page: %v", err)
	}
	remaining, err := module.Sections().ListByPage(ctx, page.ID)
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected cascade to remove sections, %d left", len(remaining))
	}
}

func TestModule_NavigationReflectsPageRenames(t *testing.T) {
	ctx := context.Background()
	module := newModule(t)

	editor := prism.Actor{ID: uuid.New(), Role: prism.RoleEditor}

	page, err := module.Pages().Create(ctx, pages.CreatePageInput{
		Title: "Pricing",
		Slug:  "/pricing",
		Actor: editor,
	})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}

	menu, err := module.Menus().CreateMenu(ctx, menus.CreateMenuInput{
		Name:     "Header",
		Location: menus.LocationHeaderPrimary,
		Actor:    editor,
	})
	if err != nil {
		t.Fatalf("create menu: %v", err)
	}
	if _, err := module.Menus().AddItem(ctx, menus.AddItemInput{
		MenuID: menu.ID,
		Title:  "Pricing",
		PageID: &page.ID,
		Actor:  editor,
	}); err != nil {
		t.Fatalf("add item: %v", err)
	}

	newTitle := "Plans"
	if _, err := module.Pages().Update(ctx, pages.UpdatePageInput{
		PageID: page.ID,
		Title:  &newTitle,
		Actor:  editor,
	}); err != nil {
		t.Fatalf("rename page: %v", err)
	}

	tree, err := module.Menus().ResolveTreeByLocation(ctx, menus.LocationHeaderPrimary)
	if err != nil {
		t.Fatalf("resolve tree: %v", err)
	}
	if len(tree) != 1 || tree[0].Title != "Plans" {
		t.Fatalf("expected renamed title in navigation, got %+v", tree)
	}
}

func TestModule_ConfigValidation(t *testing.T) {
	cfg := prism.DefaultConfig()
	cfg.Storage.Provider = "etcd"
	if _, err := prism.New(cfg); !errors.Is(err, prism.ErrStorageProviderUnknown) {
		t.Fatalf("expected ErrStorageProviderUnknown, got %v", err)
	}
}

func TestModule_SectionWipeRequiresPageDeletion(t *testing.T) {
	ctx := context.Background()
	module := newModule(t)

	editor := prism.Actor{ID: uuid.New(), Role: prism.RoleEditor}
	viewer := prism.Actor{ID: uuid.New(), Role: prism.RoleViewer}
	admin := prism.Actor{ID: uuid.New(), Role: prism.RoleAdmin}

	page, err := module.Pages().Create(ctx, pages.CreatePageInput{
		Title: "Features",
		Slug:  "/features",
		Actor: editor,
	})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}
	for _, tpl := range []string{sections.TemplateHeroCentered, sections.TemplateTextBlock, sections.TemplateCTABanner} {
		if _, err := module.Sections().AddSection(ctx, sections.AddSectionInput{
			PageID:     page.ID,
			TemplateID: tpl,
			Actor:      editor,
		}); err != nil {
			t.Fatalf("add section %s: %v", tpl, err)
		}
	}

	placed, err := module.Sections().ListByPage(ctx, page.ID)
	if err != nil {
		t.Fatalf("list sections: %v", err)
	}
	if len(placed) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(placed))
	}

	// A viewer cannot remove even a single section, and the service surface
	// offers no credential-free bulk delete around that gate.
	err = module.Sections().RemoveSection(ctx, sections.RemoveSectionRequest{
		SectionID: placed[0].ID,
		Actor:     viewer,
	})
	if !errors.Is(err, identity.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for viewer, got %v", err)
	}

	// Page deletion is the only bulk path and it is admin-only.
	err = module.Pages().Delete(ctx, pages.DeletePageRequest{PageID: page.ID, Actor: editor})
	if !errors.Is(err, identity.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for editor page delete, got %v", err)
	}
	if err := module.Pages().Delete(ctx, pages.DeletePageRequest{PageID: page.ID, Actor: admin}); err != nil {
		t.Fatalf("admin page delete: %v", err)
	}

	remaining, err := module.Sections().ListByPage(ctx, page.ID)
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected cascade to wipe sections, got %d", len(remaining))
	}
}
