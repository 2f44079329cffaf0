package themes

import (
	"bytes"
	"context"
	"html/template"
	"io"
	"strings"

	"github.com/goliatone/go-themes/internal/assets"
	"github.com/goliatone/go-themes/internal/logging"
	"github.com/goliatone/go-themes/internal/markdown"
	"github.com/goliatone/go-themes/pkg/interfaces"
)

// RenderOption tunes a single Render call.
type RenderOption func(*renderOptions)

type renderOptions struct {
	pageTitle *string
}

// WithPageTitle forces the page title, overriding data and route derivation.
func WithPageTitle(title string) RenderOption {
	return func(o *renderOptions) { o.pageTitle = &title }
}

// Render merges data into the theme variables, renders the content view (or
// uses view literally when no such view exists), derives the page title and
// writes the layout to w. Nothing is written when an error is returned.
func (t *Theme) Render(ctx context.Context, w io.Writer, view string, data map[string]any, opts ...RenderOption) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	var ro renderOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&ro)
		}
	}
	ctx = logging.ContextWithFields(ctx, map[string]any{"theme": t.cfg.Theme, "view": view})
	logger := t.logger.WithContext(ctx)

	t.SetVars(data)

	layouts := t.layouts(t.cfg.ThemeDir())
	if layouts == nil || !layouts.Exists(t.cfg.Template) {
		logger.Error("themes.render.missing_template", "theme", t.cfg.Theme, "template", t.cfg.Template)
		return missingTemplate(t.cfg.Theme, t.cfg.Template)
	}
	layouts = t.bind(layouts)

	content, meta, err := t.renderContent(view)
	if err != nil {
		return err
	}
	t.vars[VarContent] = content
	t.vars[VarPageTitle] = t.pageTitle(ctx, ro, data, meta)

	names := []string{t.cfg.Template}
	if !t.cfg.UseFullTemplate {
		names = nil
		if t.cfg.Header != "" && layouts.Exists(t.cfg.Header) {
			names = append(names, t.cfg.Header)
		}
		names = append(names, t.cfg.Template)
		if t.cfg.Footer != "" && layouts.Exists(t.cfg.Footer) {
			names = append(names, t.cfg.Footer)
		}
	}

	var buf bytes.Buffer
	for _, name := range names {
		if _, err := layouts.Render(name, map[string]any(t.vars), &buf); err != nil {
			logger.Error("themes.render.failed", "template", name, "error", err)
			return renderFailed("layout", name, err)
		}
	}
	written, err := buf.WriteTo(w)
	if err != nil {
		return err
	}
	logger.Debug("themes.render.completed", "theme", t.cfg.Theme, "templates", strings.Join(names, ","), "bytes", written)
	return nil
}

func (t *Theme) renderContent(view string) (template.HTML, map[string]any, error) {
	if strings.TrimSpace(view) == "" {
		return "", nil, nil
	}
	if t.views == nil || !t.views.Exists(view) {
		return template.HTML(view), nil, nil
	}
	renderer := t.bind(t.views)
	out, err := renderer.Render(view, map[string]any(t.vars))
	if err != nil {
		return "", nil, renderFailed("view", view, err)
	}
	var meta map[string]any
	if provider, ok := t.views.(interfaces.MetadataProvider); ok {
		if meta, err = provider.Metadata(view); err != nil {
			t.logger.Debug("themes.render.metadata_failed", "view", view, "error", err)
			meta = nil
		}
	}
	return template.HTML(out), meta, nil
}

// pageTitle applies, in order: the WithPageTitle option, data["page_title"],
// the view's front matter title, an existing page_title variable, the route
// in ctx, and finally "".
func (t *Theme) pageTitle(ctx context.Context, ro renderOptions, data, meta map[string]any) string {
	if ro.pageTitle != nil {
		return *ro.pageTitle
	}
	if title, ok := data[VarPageTitle].(string); ok {
		return title
	}
	if title := markdown.Title(meta); title != "" {
		return title
	}
	if title, ok := t.vars[VarPageTitle].(string); ok {
		return title
	}
	if route, ok := RouteFromContext(ctx); ok {
		return route.Title()
	}
	return ""
}

// bind rebinds the layout helper funcs to this theme when the renderer
// supports it.
func (t *Theme) bind(renderer interfaces.TemplateRenderer) interfaces.TemplateRenderer {
	fr, ok := renderer.(interfaces.FuncsRenderer)
	if !ok {
		return renderer
	}
	return fr.WithFuncs(t.funcs())
}

func (t *Theme) funcs() map[string]any {
	layout := t.Layout()
	urlFunc := func(dir assets.Dir) func(...string) string {
		return func(parts ...string) string {
			return layout.URL(dir) + strings.TrimLeft(strings.Join(parts, ""), "/")
		}
	}
	return map[string]any{
		"renderCSS":  func() template.HTML { return template.HTML(t.CSS()) },
		"renderJS":   func() template.HTML { return template.HTML(t.JS()) },
		"theme_url":  urlFunc(assets.DirTheme),
		"css_url":    urlFunc(assets.DirCSS),
		"js_url":     urlFunc(assets.DirJS),
		"image_url":  urlFunc(assets.DirImage),
		"plugin_url": urlFunc(assets.DirPlugin),
		"asset":      t.manifest.Asset,
	}
}
