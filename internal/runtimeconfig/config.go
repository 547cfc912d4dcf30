package runtimeconfig

import (
	"errors"
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"
)

var (
	ErrStorageProviderUnknown = errors.New("prism config: storage provider is invalid")
	ErrStorageDSNRequired     = errors.New("prism config: storage dsn is required for the bun provider")
	ErrCacheTTLInvalid        = errors.New("prism config: cache ttl must be zero or positive")
	ErrLoggingProviderUnknown = errors.New("prism config: logging provider is invalid")
	ErrLoggingLevelInvalid    = errors.New("prism config: logging level is invalid")
	ErrLoggingFormatInvalid   = errors.New("prism config: logging format is invalid")
)

// Config aggregates adapter bindings for the module. Fields use simple types
// so host applications can populate them from their own config layers.
type Config struct {
	Storage    StorageConfig
	Cache      CacheConfig
	Navigation NavigationConfig
	Render     RenderConfig
	Logging    LoggingConfig
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	// Provider is "memory" or "bun". The bun provider expects the host to
	// hand a *bun.DB to the container; DSN is informational for hosts that
	// open the connection themselves.
	Provider string
	Driver   string
	DSN      string
}

// CacheConfig captures read-cache behaviour for navigation repositories.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// NavigationConfig captures routing configuration for menu URL resolution.
type NavigationConfig struct {
	RouteConfig *urlkit.Config
	URLKit      URLKitResolverConfig
}

// URLKitResolverConfig configures the go-urlkit based resolver.
type URLKitResolverConfig struct {
	Group     string
	PageRoute string
	SlugParam string
}

// RenderConfig captures theme defaults applied to every render call.
type RenderConfig struct {
	ThemeName   string
	PrimaryHue  string
	FontStack   string
	ContainerCl string
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns the in-process defaults: memory storage, caching off,
// and console logging.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Provider: "memory",
		},
		Cache: CacheConfig{
			Enabled:    false,
			DefaultTTL: time.Minute,
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "console",
		},
	}
}

// Validate reports the first configuration inconsistency.
func (cfg Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(cfg.Storage.Provider)) {
	case "", "memory", "bun":
	default:
		return ErrStorageProviderUnknown
	}
	if strings.EqualFold(cfg.Storage.Provider, "bun") && strings.TrimSpace(cfg.Storage.DSN) == "" && strings.TrimSpace(cfg.Storage.Driver) == "" {
		return ErrStorageDSNRequired
	}
	if cfg.Cache.DefaultTTL < 0 {
		return ErrCacheTTLInvalid
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Logging.Provider)) {
	case "", "gologger", "noop":
	default:
		return ErrLoggingProviderUnknown
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Logging.Level)) {
	case "", "debug", "info", "warn", "error":
	default:
		return ErrLoggingLevelInvalid
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Logging.Format)) {
	case "", "console", "json":
	default:
		return ErrLoggingFormatInvalid
	}
	return nil
}

// UsesBunStorage reports whether the bun provider is selected.
func (cfg Config) UsesBunStorage() bool {
	return strings.EqualFold(strings.TrimSpace(cfg.Storage.Provider), "bun")
}
