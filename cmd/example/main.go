package main

import (
	"context"
	"fmt"
	"log"

	urlkit "github.com/goliatone/go-urlkit"
	"github.com/google/uuid"

	prism "github.com/prismcms/prism"
	"github.com/prismcms/prism/internal/menus"
	"github.com/prismcms/prism/internal/pages"
	"github.com/prismcms/prism/internal/render"
	"github.com/prismcms/prism/internal/sections"
)

func main() {
	ctx := context.Background()

	cfg := prism.DefaultConfig()
	cfg.Render.PrimaryHue = "#4f46e5"
	cfg.Navigation.RouteConfig = &urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    "frontend",
				BaseURL: "https://example.com",
				Paths: map[string]string{
					"page": "/pages/:slug",
				},
			},
		},
	}
	cfg.Navigation.URLKit = prism.URLKitResolverConfig{
		Group:     "frontend",
		PageRoute: "page",
		SlugParam: "slug",
	}

	module, err := prism.New(cfg)
	if err != nil {
		log.Fatalf("prism: %v", err)
	}

	editor := prism.Actor{ID: uuid.New(), Role: prism.RoleEditor}
	admin := prism.Actor{ID: uuid.New(), Role: prism.RoleAdmin}

	page, err := module.Pages().Create(ctx, pages.CreatePageInput{
		Title: "Welcome",
		Slug:  "/welcome",
		Actor: editor,
	})
	if err != nil {
		log.Fatalf("create page: %v", err)
	}

	if _, err := module.Sections().AddSection(ctx, sections.AddSectionInput{
		PageID:     page.ID,
		TemplateID: sections.TemplateHeroCentered,
		Props: map[string]any{
			"headline":    "Build pages from sections",
			"subheadline": "Typed templates, validated props, server-side rendering.",
			"ctaLabel":    "Get started",
			"ctaURL":      "/docs",
		},
		Actor: editor,
	}); err != nil {
		log.Fatalf("add hero: %v", err)
	}

	if _, err := module.Sections().AddSection(ctx, sections.AddSectionInput{
		PageID:     page.ID,
		TemplateID: sections.TemplateTextBlock,
		Props: map[string]any{
			"heading": "Why sections",
			"body":    "## Composable\n\nEvery page is an ordered list of typed sections.",
			"format":  "markdown",
		},
		Actor: editor,
	}); err != nil {
		log.Fatalf("add text block: %v", err)
	}

	if _, err := module.Pages().Publish(ctx, pages.PublishPageRequest{PageID: page.ID, Actor: admin}); err != nil {
		log.Fatalf("publish: %v", err)
	}

	menu, err := module.Menus().CreateMenu(ctx, menus.CreateMenuInput{
		Name:     "Header",
		Location: menus.LocationHeaderPrimary,
		Actor:    editor,
	})
	if err != nil {
		log.Fatalf("create menu: %v", err)
	}
	if _, err := module.Menus().AddItem(ctx, menus.AddItemInput{
		MenuID: menu.ID,
		Title:  "Welcome",
		PageID: &page.ID,
		Actor:  editor,
	}); err != nil {
		log.Fatalf("add menu item: %v", err)
	}
	docsURL := "/docs"
	if _, err := module.Menus().AddItem(ctx, menus.AddItemInput{
		MenuID: menu.ID,
		Title:  "Docs",
		URL:    &docsURL,
		Actor:  editor,
	}); err != nil {
		log.Fatalf("add docs item: %v", err)
	}

	placed, err := module.Sections().ListByPage(ctx, page.ID)
	if err != nil {
		log.Fatalf("list sections: %v", err)
	}
	html := module.Renderer().Render(render.FromInstances(module.Registry(), placed), module.Theme())
	fmt.Println("--- page ---")
	fmt.Println(html)

	tree, err := module.Menus().ResolveTreeByLocation(ctx, menus.LocationHeaderPrimary)
	if err != nil {
		log.Fatalf("resolve navigation: %v", err)
	}
	fmt.Println("--- navigation ---")
	for _, node := range tree {
		fmt.Printf("%s -> %s\n", node.Title, node.URL)
	}
}
