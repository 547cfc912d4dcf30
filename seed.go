package prism

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/prismcms/prism/domain"
	"github.com/prismcms/prism/internal/identity"
	"github.com/prismcms/prism/internal/menus"
	"github.com/prismcms/prism/internal/pages"
)

var ErrSeedModuleRequired = errors.New("prism: module is required")

// SeedOptions declares pages and menus that should exist after seeding.
// Seeding is idempotent: records are keyed by deterministic IDs derived from
// their natural keys (page slug, menu name+location), so re-running a seed
// against the same store converges instead of duplicating.
type SeedOptions struct {
	Actor Actor
	Pages []SeedPage
	Menus []SeedMenu
}

// SeedPage declares a page by slug. Existing pages are left untouched.
type SeedPage struct {
	Title   string
	Slug    string
	Publish bool
}

// SeedMenu declares a menu and its item tree. Items are only created when the
// menu itself is new; existing menus keep their curated structure.
type SeedMenu struct {
	Name     string
	Location menus.Location
	Items    []SeedMenuItem
}

// SeedMenuItem declares one navigation entry. PageSlug takes precedence over
// URL and must name a page in the same seed run or already in the store.
type SeedMenuItem struct {
	Title    string
	URL      string
	PageSlug string
	Children []SeedMenuItem
}

// Seed ensures the declared pages and menus exist. Pages are created first so
// menu items can reference them by slug.
func Seed(ctx context.Context, module *Module, opts SeedOptions) error {
	if module == nil {
		return ErrSeedModuleRequired
	}
	if ctx == nil {
		ctx = context.Background()
	}

	for _, page := range opts.Pages {
		if err := seedPage(ctx, module, page, opts.Actor); err != nil {
			return err
		}
	}
	for _, menu := range opts.Menus {
		if err := seedMenu(ctx, module, menu, opts.Actor); err != nil {
			return err
		}
	}
	return nil
}

func seedPage(ctx context.Context, module *Module, seed SeedPage, actor Actor) error {
	slugValue, err := pages.NormalizePageSlug(seed.Slug)
	if err != nil {
		return fmt.Errorf("prism: seed page %q: %w", seed.Slug, err)
	}
	if strings.TrimSpace(seed.Title) == "" {
		return fmt.Errorf("prism: seed page %q: %w", slugValue, pages.ErrPageTitleRequired)
	}

	repo := module.container.PageRepository()
	if _, err := repo.GetBySlug(ctx, slugValue); err == nil {
		return nil
	} else if !isPageNotFound(err) {
		return err
	}

	now := time.Now().UTC()
	page := &pages.Page{
		ID:        identity.PageUUID(slugValue),
		Title:     strings.TrimSpace(seed.Title),
		Slug:      slugValue,
		Status:    domain.StatusDraft,
		CreatedBy: actor.ID,
		UpdatedBy: actor.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if seed.Publish {
		page.Status = domain.StatusPublished
		publishedAt := now
		page.PublishedAt = &publishedAt
	}
	_, err = repo.Create(ctx, page)
	return err
}

func seedMenu(ctx context.Context, module *Module, seed SeedMenu, actor Actor) error {
	name := strings.TrimSpace(seed.Name)
	if name == "" {
		return menus.ErrMenuNameRequired
	}
	if !menus.IsValidLocation(seed.Location) {
		return fmt.Errorf("prism: seed menu %q: %w", name, menus.ErrMenuLocationInvalid)
	}

	repo := module.container.MenuRepository()
	if _, err := repo.GetByNameAndLocation(ctx, name, seed.Location); err == nil {
		return nil
	} else if !isMenuNotFound(err) {
		return err
	}

	now := time.Now().UTC()
	menu := &menus.Menu{
		ID:        identity.MenuUUID(name, string(seed.Location)),
		Name:      name,
		Location:  seed.Location,
		IsActive:  true,
		CreatedBy: actor.ID,
		UpdatedBy: actor.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := repo.Create(ctx, menu); err != nil {
		return err
	}
	return seedMenuItems(ctx, module, menu.ID, nil, seed.Items, actor)
}

func seedMenuItems(ctx context.Context, module *Module, menuID uuid.UUID, parentID *uuid.UUID, items []SeedMenuItem, actor Actor) error {
	svc := module.Menus()
	for _, item := range items {
		input := menus.AddItemInput{
			MenuID:   menuID,
			ParentID: parentID,
			Title:    item.Title,
			Actor:    actor,
		}
		switch {
		case strings.TrimSpace(item.PageSlug) != "":
			page, err := module.Pages().GetBySlug(ctx, item.PageSlug)
			if err != nil {
				return fmt.Errorf("prism: seed menu item %q: %w", item.Title, err)
			}
			pageID := page.ID
			input.PageID = &pageID
		case strings.TrimSpace(item.URL) != "":
			url := strings.TrimSpace(item.URL)
			input.URL = &url
		}

		created, err := svc.AddItem(ctx, input)
		if err != nil {
			return fmt.Errorf("prism: seed menu item %q: %w", item.Title, err)
		}
		if len(item.Children) > 0 {
			childParent := created.ID
			if err := seedMenuItems(ctx, module, menuID, &childParent, item.Children, actor); err != nil {
				return err
			}
		}
	}
	return nil
}

func isPageNotFound(err error) bool {
	var notFound *pages.NotFoundError
	return errors.Is(err, pages.ErrPageNotFound) || errors.As(err, &notFound)
}

func isMenuNotFound(err error) bool {
	var notFound *menus.NotFoundError
	return errors.Is(err, menus.ErrMenuNotFound) || errors.As(err, &notFound)
}
