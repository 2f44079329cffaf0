package themes

import (
	"html/template"
	"io/fs"
	"os"

	"github.com/goliatone/go-themes/internal/manifest"
	"github.com/goliatone/go-themes/internal/urls"
	"github.com/goliatone/go-themes/internal/views"
	"github.com/goliatone/go-themes/pkg/interfaces"
	"github.com/google/uuid"
)

// LayoutSource returns the renderer for a theme directory, given relative to
// the public root (e.g. "themes/starter").
type LayoutSource func(themeDir string) interfaces.TemplateRenderer

// Option configures a Theme.
type Option func(*Theme)

// WithFS sets the filesystem rooted at the public directory. Defaults to
// os.DirFS(Config.PublicDir).
func WithFS(fsys fs.FS) Option {
	return func(t *Theme) {
		if fsys != nil {
			t.fsys = fsys
		}
	}
}

// WithURLProvider sets the base URL provider. Defaults to urls.Static with
// Config.BaseURL.
func WithURLProvider(provider urls.Provider) Option {
	return func(t *Theme) {
		if provider != nil {
			t.urls = provider
		}
	}
}

// WithViews sets the renderer consulted for content views.
func WithViews(renderer interfaces.TemplateRenderer) Option {
	return func(t *Theme) { t.views = renderer }
}

// WithLayouts sets the layout renderer factory.
func WithLayouts(source LayoutSource) Option {
	return func(t *Theme) {
		if source != nil {
			t.layouts = source
		}
	}
}

// WithManifests enables go-theme manifest lookups.
func WithManifests(selector *manifest.Selector) Option {
	return func(t *Theme) { t.manifests = selector }
}

// WithTranslator sets the translator used for {{token}} fallbacks.
func WithTranslator(translator interfaces.Translator) Option {
	return func(t *Theme) {
		if translator != nil {
			t.translator = translator
		}
	}
}

// WithMissingTranslationHandler sets the handler for unresolved tokens.
func WithMissingTranslationHandler(handler interfaces.MissingTranslationHandler) Option {
	return func(t *Theme) { t.onMissing = handler }
}

// WithLoggerProvider sets the logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(t *Theme) { t.loggerProvider = provider }
}

// WithID overrides the random per-request identifier.
func WithID(id uuid.UUID) Option {
	return func(t *Theme) {
		if id != uuid.Nil {
			t.id = id
		}
	}
}

// LayoutFuncs declares the helper funcs available to layout templates. The
// values are placeholders; each render rebinds them to the rendering theme.
func LayoutFuncs() template.FuncMap {
	empty := func(...string) string { return "" }
	return template.FuncMap{
		"renderCSS":  func() template.HTML { return "" },
		"renderJS":   func() template.HTML { return "" },
		"theme_url":  empty,
		"css_url":    empty,
		"js_url":     empty,
		"image_url":  empty,
		"plugin_url": empty,
		"asset":      func(string) string { return "" },
		"safeHTML":   views.SafeHTML,
	}
}

// DirLayouts builds layout engines over sub-directories of fsys.
func DirLayouts(fsys fs.FS, ext string) LayoutSource {
	return func(themeDir string) interfaces.TemplateRenderer {
		sub, err := fs.Sub(fsys, themeDir)
		if err != nil {
			sub = nil
		}
		return views.New(sub, views.WithExtension(ext), views.WithFuncs(LayoutFuncs()))
	}
}

func defaultFS(publicDir string) fs.FS {
	if publicDir == "" {
		publicDir = "."
	}
	return os.DirFS(publicDir)
}
