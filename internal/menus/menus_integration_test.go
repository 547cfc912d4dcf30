package menus_test

import (
	"context"
	"testing"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/prismcms/prism/internal/menus"
	"github.com/prismcms/prism/pkg/testsupport"
)

func newBunDB(t *testing.T) *bun.DB {
	t.Helper()

	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("new sqlite db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	bunDB := bun.NewDB(sqlDB, sqlitedialect.New())
	bunDB.SetMaxOpenConns(1)

	ctx := context.Background()
	models := []any{
		(*menus.Menu)(nil),
		(*menus.Item)(nil),
	}
	for _, model := range models {
		if _, err := bunDB.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			t.Fatalf("create table %T: %v", model, err)
		}
	}
	return bunDB
}

func TestMenuService_WithBunStorageAndCache(t *testing.T) {
	ctx := context.Background()
	bunDB := newBunDB(t)

	cacheCfg := repocache.DefaultConfig()
	cacheCfg.TTL = time.Minute
	cacheService, err := repocache.NewCacheService(cacheCfg)
	if err != nil {
		t.Fatalf("new cache service: %v", err)
	}
	keySerializer := repocache.NewDefaultKeySerializer()

	menuRepo := menus.NewBunMenuRepositoryWithCache(bunDB, cacheService, keySerializer)
	itemRepo := menus.NewBunItemRepositoryWithCache(bunDB, cacheService, keySerializer)
	svc := menus.NewService(menuRepo, itemRepo)

	menu, err := svc.CreateMenu(ctx, menus.CreateMenuInput{
		Name:     "Header",
		Location: menus.LocationHeaderPrimary,
		Actor:    editor,
	})
	if err != nil {
		t.Fatalf("create menu: %v", err)
	}

	homeURL := "/"
	root, err := svc.AddItem(ctx, menus.AddItemInput{
		MenuID: menu.ID,
		Title:  "Home",
		URL:    &homeURL,
		Actor:  editor,
	})
	if err != nil {
		t.Fatalf("add root item: %v", err)
	}
	childURL := "/news"
	child, err := svc.AddItem(ctx, menus.AddItemInput{
		MenuID:   menu.ID,
		ParentID: &root.ID,
		Title:    "News",
		URL:      &childURL,
		Actor:    editor,
	})
	if err != nil {
		t.Fatalf("add child item: %v", err)
	}

	// Reorder through the transactional bulk path, then resolve.
	if _, err := svc.ReorderItems(ctx, menus.ReorderItemsInput{
		MenuID: menu.ID,
		Items: []menus.ItemOrder{
			{ItemID: child.ID, ParentID: nil, Position: 0},
			{ItemID: root.ID, ParentID: nil, Position: 1},
		},
		Actor: editor,
	}); err != nil {
		t.Fatalf("reorder: %v", err)
	}

	tree, err := svc.ResolveTreeByLocation(ctx, menus.LocationHeaderPrimary)
	if err != nil {
		t.Fatalf("resolve tree: %v", err)
	}
	if len(tree) != 2 {
		t.Fatalf("expected two root nodes after promotion, got %d", len(tree))
	}
	if tree[0].Title != "News" || tree[1].Title != "Home" {
		t.Fatalf("unexpected order: %s, %s", tree[0].Title, tree[1].Title)
	}

	// Cache invalidation on delete: the read after delete must miss.
	removed, err := svc.DeleteItem(ctx, menus.DeleteItemRequest{ItemID: root.ID, Actor: editor})
	if err != nil {
		t.Fatalf("delete item: %v", err)
	}
	if removed != 0 {
		t.Fatalf("expected no descendants after promotion, got %d", removed)
	}

	if _, err := svc.GetMenuByLocation(ctx, menus.LocationHeaderPrimary); err != nil {
		t.Fatalf("get menu by location: %v", err)
	}

	count, err := bunDB.NewSelect().Model((*menus.Item)(nil)).Count(ctx)
	if err != nil {
		t.Fatalf("count items: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one item row left, got %d", count)
	}
}
