package menus

import (
	"context"
	"strings"
	"sync"

	urlkit "github.com/goliatone/go-urlkit"
)

// slugURLResolver is the default URLResolver: page-backed nodes resolve to
// the page slug, everything else keeps its raw URL.
type slugURLResolver struct{}

func (slugURLResolver) Resolve(_ context.Context, node NavigationNode) (string, error) {
	if node.PageSlug != "" {
		return node.PageSlug, nil
	}
	return node.URL, nil
}

// NewSlugURLResolver returns the default slug-based resolver.
func NewSlugURLResolver() URLResolver {
	return slugURLResolver{}
}

// URLKitResolverOptions configures the go-urlkit backed resolver.
type URLKitResolverOptions struct {
	Manager   *urlkit.RouteManager
	Group     string
	PageRoute string
	SlugParam string
}

// URLKitResolver builds node URLs through a go-urlkit RouteManager so menu
// links follow the application's route templates instead of raw slugs.
// Nodes without a page slug fall back to their stored URL untouched.
type URLKitResolver struct {
	manager   *urlkit.RouteManager
	group     string
	pageRoute string
	slugParam string

	mu         sync.RWMutex
	groupCache map[string]*urlkit.Group
}

// NewURLKitResolver constructs a resolver backed by go-urlkit.
func NewURLKitResolver(opts URLKitResolverOptions) *URLKitResolver {
	if opts.PageRoute == "" {
		opts.PageRoute = "page"
	}
	if opts.SlugParam == "" {
		opts.SlugParam = "slug"
	}
	return &URLKitResolver{
		manager:    opts.Manager,
		group:      strings.TrimSpace(opts.Group),
		pageRoute:  opts.PageRoute,
		slugParam:  opts.SlugParam,
		groupCache: make(map[string]*urlkit.Group),
	}
}

func (r *URLKitResolver) Resolve(_ context.Context, node NavigationNode) (string, error) {
	if r == nil || r.manager == nil || node.PageSlug == "" {
		return node.URL, nil
	}

	group, err := r.groupForPath(r.group)
	if err != nil || group == nil {
		return node.URL, err
	}

	// Route templates expect slugs without the leading separator.
	slug := strings.TrimPrefix(node.PageSlug, "/")
	url, ok := r.safeBuild(group, slug)
	if !ok {
		return node.URL, nil
	}
	return url, nil
}

func (r *URLKitResolver) safeBuild(group *urlkit.Group, slug string) (url string, ok bool) {
	// Builder panics on unknown routes; treat that as unresolvable.
	defer func() {
		if recovered := recover(); recovered != nil {
			url, ok = "", false
		}
	}()
	built, err := group.Builder(r.pageRoute).WithParam(r.slugParam, slug).Build()
	if err != nil {
		return "", false
	}
	return built, true
}

func (r *URLKitResolver) groupForPath(path string) (group *urlkit.Group, err error) {
	if path == "" {
		return nil, nil
	}

	r.mu.RLock()
	cached, ok := r.groupCache[path]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	defer func() {
		// Group panics on unknown names; treat that as unresolvable.
		if recovered := recover(); recovered != nil {
			group, err = nil, nil
		}
	}()

	resolved := r.manager.Group(path)
	r.mu.Lock()
	r.groupCache[path] = resolved
	r.mu.Unlock()
	return resolved, nil
}
