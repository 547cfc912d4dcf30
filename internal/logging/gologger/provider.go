// Package gologger adapts goliatone/go-logger to the module's logging
// contracts so services stay decoupled from the concrete logging stack.
package gologger

import (
	"context"
	"fmt"
	"sort"
	"strings"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/prismcms/prism/internal/logging"
	"github.com/prismcms/prism/pkg/interfaces"
)

// Config captures the options exposed by the go-logger adapter.
type Config struct {
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// Provider hands out named go-logger children as interfaces.Logger values.
type Provider struct {
	root *glog.BaseLogger
}

// NewProvider builds the go-logger root from cfg. Unknown formats are
// rejected so a typo in configuration fails fast instead of silently
// falling back to JSON.
func NewProvider(cfg Config) (*Provider, error) {
	opts := make([]glog.Option, 0, 3)
	if level, ok := levelOption(cfg.Level); ok {
		opts = append(opts, glog.WithLevel(level))
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "json":
		opts = append(opts, glog.WithLoggerTypeJSON())
	case "console":
		opts = append(opts, glog.WithLoggerTypeConsole())
	case "pretty":
		opts = append(opts, glog.WithLoggerTypePretty())
	default:
		return nil, fmt.Errorf("logging: unsupported go-logger format %q", cfg.Format)
	}
	if cfg.AddSource {
		opts = append(opts, glog.WithAddSource(true))
	}

	root := glog.NewLogger(opts...)
	var focus []string
	for _, name := range cfg.Focus {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			focus = append(focus, trimmed)
		}
	}
	if len(focus) > 0 {
		root.Focus(focus...)
	}
	return &Provider{root: root}, nil
}

// GetLogger implements interfaces.LoggerProvider. An empty name returns the
// root logger.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil || p.root == nil {
		return logging.NoOp()
	}
	if name = strings.TrimSpace(name); name == "" {
		return adapt(p.root)
	}
	return adapt(p.root.GetLogger(name))
}

func adapt(inner glog.Logger) interfaces.Logger {
	if inner == nil {
		return logging.NoOp()
	}
	return &glogAdapter{inner: inner}
}

type glogAdapter struct {
	inner glog.Logger
}

func (a *glogAdapter) Trace(msg string, args ...any) { a.inner.Trace(msg, args...) }
func (a *glogAdapter) Debug(msg string, args ...any) { a.inner.Debug(msg, args...) }
func (a *glogAdapter) Info(msg string, args ...any)  { a.inner.Info(msg, args...) }
func (a *glogAdapter) Warn(msg string, args ...any)  { a.inner.Warn(msg, args...) }
func (a *glogAdapter) Error(msg string, args ...any) { a.inner.Error(msg, args...) }
func (a *glogAdapter) Fatal(msg string, args ...any) { a.inner.Fatal(msg, args...) }

func (a *glogAdapter) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return a
	}
	if fl, ok := a.inner.(glog.FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		for k, v := range fields {
			copied[k] = v
		}
		return adapt(fl.WithFields(copied))
	}
	// Older go-logger versions only expose With; feed it sorted pairs so
	// output stays stable across calls.
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]any, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, k, fields[k])
	}
	if wl, ok := a.inner.(interface{ With(...any) *glog.BaseLogger }); ok {
		return adapt(wl.With(pairs...))
	}
	return a
}

func (a *glogAdapter) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return a
	}
	return adapt(a.inner.WithContext(ctx))
}

func levelOption(level string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return glog.Trace, true
	case "debug":
		return glog.Debug, true
	case "info":
		return glog.Info, true
	case "warn", "warning":
		return glog.Warn, true
	case "error":
		return glog.Error, true
	case "fatal":
		return glog.Fatal, true
	default:
		return "", false
	}
}
