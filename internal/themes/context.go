package themes

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Route identifies the handler serving the current request. It is used to
// derive a page title when none is given.
type Route struct {
	Controller string
	Method     string
}

type routeKey struct{}

// WithRoute attaches route to ctx.
func WithRoute(ctx context.Context, route Route) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, routeKey{}, route)
}

// RouteFromContext returns the route stored by WithRoute.
func RouteFromContext(ctx context.Context) (Route, bool) {
	if ctx == nil {
		return Route{}, false
	}
	route, ok := ctx.Value(routeKey{}).(Route)
	if !ok || strings.TrimSpace(route.Controller) == "" {
		return Route{}, false
	}
	return route, true
}

// Title formats the route as "Controller | Method", keeping only the last
// segment of a namespaced controller and upper-casing the method's first
// letter.
func (r Route) Title() string {
	controller := strings.TrimSpace(r.Controller)
	if idx := strings.LastIndexAny(controller, `\/.`); idx >= 0 {
		controller = controller[idx+1:]
	}
	return controller + " | " + cases.Title(language.Und, cases.NoLower).String(strings.TrimSpace(r.Method))
}
