// Package urls turns public-relative paths into absolute URLs.
package urls

import (
	"fmt"
	"strings"
	"sync"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-themes/pkg/interfaces"
)

// Provider resolves a path relative to the public root into a URL.
type Provider interface {
	BaseURL(path string) string
}

// Static joins paths onto a fixed base. An empty base yields root-relative
// URLs ("/themes/starter").
type Static struct {
	Base string
}

func (s Static) BaseURL(p string) string {
	return join(s.Base, p)
}

// URLKitOptions configures a go-urlkit backed provider.
type URLKitOptions struct {
	Manager *urlkit.RouteManager
	// Group is a dotted group path, e.g. "cdn" or "frontend.es".
	Group string
	// Route names the group route that yields the group root. Defaults to "base".
	Route    string
	Fallback Provider
	Logger   interfaces.Logger
}

// URLKit resolves the public root through a go-urlkit route group and joins
// paths onto it. Lookup failures fall back to Fallback.
type URLKit struct {
	manager  *urlkit.RouteManager
	group    string
	route    string
	fallback Provider
	logger   interfaces.Logger

	once sync.Once
	root string
	err  error
}

// NewURLKit builds a URLKit provider.
func NewURLKit(opts URLKitOptions) *URLKit {
	route := strings.TrimSpace(opts.Route)
	if route == "" {
		route = "base"
	}
	fallback := opts.Fallback
	if fallback == nil {
		fallback = Static{}
	}
	return &URLKit{
		manager:  opts.Manager,
		group:    strings.TrimSpace(opts.Group),
		route:    route,
		fallback: fallback,
		logger:   opts.Logger,
	}
}

func (u *URLKit) BaseURL(p string) string {
	u.once.Do(func() {
		u.root, u.err = u.resolveRoot()
		if u.err != nil && u.logger != nil {
			u.logger.Warn("urls.urlkit.fallback", "group", u.group, "route", u.route, "error", u.err)
		}
	})
	if u.err != nil {
		return u.fallback.BaseURL(p)
	}
	return join(u.root, p)
}

func (u *URLKit) resolveRoot() (string, error) {
	if u.manager == nil {
		return "", fmt.Errorf("urls: route manager not configured")
	}
	if u.group == "" {
		return "", fmt.Errorf("urls: route group not configured")
	}

	parts := strings.Split(u.group, ".")
	group, err := lookupGroup(u.manager, parts[0])
	if err != nil {
		return "", err
	}
	for _, part := range parts[1:] {
		if group, err = lookupChild(group, part); err != nil {
			return "", err
		}
	}

	builder, err := safeBuilder(group, u.route)
	if err != nil {
		return "", err
	}
	return builder.Build()
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			group, err = nil, fmt.Errorf("urls: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	if group == nil {
		return nil, fmt.Errorf("urls: route group %q not found", name)
	}
	return group, nil
}

func lookupChild(parent *urlkit.Group, name string) (group *urlkit.Group, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			group, err = nil, fmt.Errorf("urls: child group %q not found", name)
		}
	}()
	group = parent.Group(name)
	if group == nil {
		return nil, fmt.Errorf("urls: child group %q not found", name)
	}
	return group, nil
}

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			builder, err = nil, fmt.Errorf("urls: route %q: %v", route, rec)
		}
	}()
	return group.Builder(route), nil
}

func join(base, p string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	p = strings.TrimLeft(p, "/")
	if p == "" {
		if base == "" {
			return "/"
		}
		return base
	}
	return base + "/" + p
}
