package di

import (
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	urlkit "github.com/goliatone/go-urlkit"
	"github.com/uptrace/bun"

	"github.com/prismcms/prism/internal/logging"
	"github.com/prismcms/prism/internal/logging/gologger"
	"github.com/prismcms/prism/internal/menus"
	"github.com/prismcms/prism/internal/pages"
	"github.com/prismcms/prism/internal/render"
	"github.com/prismcms/prism/internal/runtimeconfig"
	"github.com/prismcms/prism/internal/sections"
	"github.com/prismcms/prism/pkg/interfaces"
)

// Container wires module dependencies: repositories by storage provider,
// services with their collaborators, the renderer, and logging.
type Container struct {
	Config runtimeconfig.Config

	logProvider interfaces.LoggerProvider

	bunDB         *bun.DB
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	pageRepo     pages.Repository
	sectionRepo  sections.Repository
	menuRepo     menus.MenuRepository
	menuItemRepo menus.ItemRepository

	registry        *sections.Registry
	renderer        *render.Renderer
	theme           render.Theme
	menuURLResolver menus.URLResolver
	routeManager    *urlkit.RouteManager

	pageSvc    pages.Service
	sectionSvc sections.Service
	menuSvc    menus.Service
}

// Option mutates the container before services are wired.
type Option func(*Container)

// WithBunDB hands the container an open database connection for the bun
// storage provider.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the cache service used by navigation repositories.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the logging provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.logProvider = provider
		}
	}
}

// WithRegistry overrides the default template registry.
func WithRegistry(registry *sections.Registry) Option {
	return func(c *Container) {
		if registry != nil {
			c.registry = registry
		}
	}
}

// WithRenderer overrides the default renderer.
func WithRenderer(renderer *render.Renderer) Option {
	return func(c *Container) {
		if renderer != nil {
			c.renderer = renderer
		}
	}
}

// WithMenuURLResolver overrides how navigation nodes resolve their URLs.
func WithMenuURLResolver(resolver menus.URLResolver) Option {
	return func(c *Container) {
		c.menuURLResolver = resolver
	}
}

// WithPageRepository overrides the page repository binding.
func WithPageRepository(repo pages.Repository) Option {
	return func(c *Container) {
		c.pageRepo = repo
	}
}

// WithSectionRepository overrides the section repository binding.
func WithSectionRepository(repo sections.Repository) Option {
	return func(c *Container) {
		c.sectionRepo = repo
	}
}

// WithMenuRepositories overrides the navigation repository bindings.
func WithMenuRepositories(menuRepo menus.MenuRepository, itemRepo menus.ItemRepository) Option {
	return func(c *Container) {
		c.menuRepo = menuRepo
		c.menuItemRepo = itemRepo
	}
}

// NewContainer validates the configuration and wires every service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:   cfg,
		cacheTTL: cacheTTL,
		registry: sections.NewDefaultRegistry(),
		theme: render.Theme{
			Name:        cfg.Render.ThemeName,
			PrimaryHue:  cfg.Render.PrimaryHue,
			FontStack:   cfg.Render.FontStack,
			ContainerCl: cfg.Render.ContainerCl,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureRepositories()
	c.configureNavigation()
	if err := c.configureRenderer(); err != nil {
		return nil, err
	}
	c.configureServices()

	return c, nil
}

func (c *Container) configureLogging() error {
	if c.logProvider != nil {
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "noop":
		c.logProvider = logging.NoOpProvider()
	default:
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return err
		}
		c.logProvider = provider
	}
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		cfg.TTL = c.cacheTTL
		if service, err := repocache.NewCacheService(cfg); err == nil {
			c.cacheService = service
		}
	}
	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB != nil && c.Config.UsesBunStorage() {
		if c.pageRepo == nil {
			c.pageRepo = pages.NewBunRepository(c.bunDB)
		}
		if c.sectionRepo == nil {
			c.sectionRepo = sections.NewBunRepository(c.bunDB)
		}
		if c.menuRepo == nil {
			c.menuRepo = menus.NewBunMenuRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		}
		if c.menuItemRepo == nil {
			c.menuItemRepo = menus.NewBunItemRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		}
		return
	}

	if c.pageRepo == nil {
		c.pageRepo = pages.NewMemoryRepository()
	}
	if c.sectionRepo == nil {
		c.sectionRepo = sections.NewMemoryRepository()
	}
	if c.menuRepo == nil {
		c.menuRepo = menus.NewMemoryMenuRepository()
	}
	if c.menuItemRepo == nil {
		c.menuItemRepo = menus.NewMemoryItemRepository()
	}
}

func (c *Container) configureNavigation() {
	if c.menuURLResolver != nil {
		return
	}

	navCfg := c.Config.Navigation
	if navCfg.RouteConfig == nil {
		c.menuURLResolver = menus.NewSlugURLResolver()
		return
	}

	manager := urlkit.NewRouteManager(navCfg.RouteConfig)
	c.routeManager = manager
	c.menuURLResolver = menus.NewURLKitResolver(menus.URLKitResolverOptions{
		Manager:   manager,
		Group:     strings.TrimSpace(navCfg.URLKit.Group),
		PageRoute: navCfg.URLKit.PageRoute,
		SlugParam: navCfg.URLKit.SlugParam,
	})
}

func (c *Container) configureRenderer() error {
	if c.renderer == nil {
		c.renderer = render.NewRenderer(
			render.WithLogger(logging.RenderLogger(c.logProvider)),
		)
	}
	// Every active template must have a component pairing before the module
	// serves a single page.
	return c.registry.Verify(c.renderer)
}

func (c *Container) configureServices() {
	c.sectionSvc = sections.NewService(c.sectionRepo, c.registry,
		sections.WithPageResolver(pageExistenceAdapter{repo: c.pageRepo}),
		sections.WithLogger(logging.SectionsLogger(c.logProvider)),
	)

	pageOpts := []pages.ServiceOption{
		pages.WithLogger(logging.PagesLogger(c.logProvider)),
	}
	if cascader, ok := c.sectionSvc.(sections.PageCascader); ok {
		pageOpts = append(pageOpts, pages.WithSectionCascader(cascader))
	}
	c.pageSvc = pages.NewService(c.pageRepo, pageOpts...)

	c.menuSvc = menus.NewService(c.menuRepo, c.menuItemRepo,
		menus.WithPageResolver(pageLookupAdapter{repo: c.pageRepo}),
		menus.WithURLResolver(c.menuURLResolver),
		menus.WithLogger(logging.MenusLogger(c.logProvider)),
	)
}

// Pages returns the configured page service.
func (c *Container) Pages() pages.Service {
	return c.pageSvc
}

// Sections returns the configured section service.
func (c *Container) Sections() sections.Service {
	return c.sectionSvc
}

// Menus returns the configured navigation service.
func (c *Container) Menus() menus.Service {
	return c.menuSvc
}

// Registry returns the section template catalog.
func (c *Container) Registry() *sections.Registry {
	return c.registry
}

// Renderer returns the configured section renderer.
func (c *Container) Renderer() *render.Renderer {
	return c.renderer
}

// Theme returns the theme applied to render calls.
func (c *Container) Theme() render.Theme {
	return c.theme
}

// PageRepository exposes the page store for seeding and host integrations.
func (c *Container) PageRepository() pages.Repository {
	return c.pageRepo
}

// MenuRepository exposes the menu store for seeding and host integrations.
func (c *Container) MenuRepository() menus.MenuRepository {
	return c.menuRepo
}

// LoggerProvider exposes the logging provider for host integrations.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.logProvider
}

// RouteManager exposes the urlkit route manager when navigation routing is
// configured.
func (c *Container) RouteManager() *urlkit.RouteManager {
	return c.routeManager
}
