package gologger

import (
	"context"
	"fmt"
	"maps"
	"strings"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-themes/internal/logging"
	"github.com/goliatone/go-themes/pkg/interfaces"
)

// Config mirrors the logging block of the runtime configuration.
type Config struct {
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// Provider exposes go-logger child loggers through interfaces.LoggerProvider.
type Provider struct {
	root *glog.BaseLogger
}

var _ interfaces.LoggerProvider = (*Provider)(nil)

var levels = map[string]string{
	"trace":   glog.Trace,
	"debug":   glog.Debug,
	"info":    glog.Info,
	"warn":    glog.Warn,
	"warning": glog.Warn,
	"error":   glog.Error,
	"fatal":   glog.Fatal,
}

// NewProvider builds a go-logger root from cfg.
func NewProvider(cfg Config) (*Provider, error) {
	var opts []glog.Option

	if raw := strings.ToLower(strings.TrimSpace(cfg.Level)); raw != "" {
		level, ok := levels[raw]
		if !ok {
			return nil, fmt.Errorf("gologger: unsupported level %q", cfg.Level)
		}
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
		return nil, fmt.Errorf("gologger: unsupported format %q", cfg.Format)
	}

	if cfg.AddSource {
		opts = append(opts, glog.WithAddSource(true))
	}

	root := glog.NewLogger(opts...)

	var focus []string
	for _, name := range cfg.Focus {
		if name = strings.TrimSpace(name); name != "" {
			focus = append(focus, name)
		}
	}
	if len(focus) > 0 {
		root.Focus(focus...)
	}

	return &Provider{root: root}, nil
}

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
	return bridge{inner: inner}
}

type bridge struct {
	inner glog.Logger
}

func (b bridge) Trace(msg string, args ...any) { b.inner.Trace(msg, args...) }
func (b bridge) Debug(msg string, args ...any) { b.inner.Debug(msg, args...) }
func (b bridge) Info(msg string, args ...any)  { b.inner.Info(msg, args...) }
func (b bridge) Warn(msg string, args ...any)  { b.inner.Warn(msg, args...) }
func (b bridge) Error(msg string, args ...any) { b.inner.Error(msg, args...) }
func (b bridge) Fatal(msg string, args ...any) { b.inner.Fatal(msg, args...) }

// WithFields forwards to go-logger when the underlying logger supports
// structured fields; otherwise the receiver is returned unchanged.
func (b bridge) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return b
	}
	if fl, ok := b.inner.(glog.FieldsLogger); ok {
		return adapt(fl.WithFields(maps.Clone(fields)))
	}
	return b
}

func (b bridge) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return b
	}
	return adapt(b.inner.WithContext(ctx))
}
