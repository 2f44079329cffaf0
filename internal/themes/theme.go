package themes

import (
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-themes/internal/assets"
	"github.com/goliatone/go-themes/internal/i18n"
	"github.com/goliatone/go-themes/internal/identity"
	"github.com/goliatone/go-themes/internal/logging"
	"github.com/goliatone/go-themes/internal/manifest"
	"github.com/goliatone/go-themes/internal/plugins"
	"github.com/goliatone/go-themes/internal/runtimeconfig"
	"github.com/goliatone/go-themes/internal/urls"
	"github.com/goliatone/go-themes/internal/util"
	"github.com/goliatone/go-themes/pkg/interfaces"
)

// Well-known variable names.
const (
	VarThemeURL     = "theme_url"
	VarCSSURL       = "css_url"
	VarJSURL        = "js_url"
	VarImageURL     = "image_url"
	VarPluginURL    = "plugin_url"
	VarContent      = "content"
	VarPageTitle    = "page_title"
	VarThemeTokens  = "theme_tokens"
	VarThemeCSSVars = "theme_css_vars"
)

// Vars holds the values passed to layout templates.
type Vars map[string]any

// Theme is the per-request theme context: configuration overrides, template
// variables and the registered assets. A Theme must not be shared between
// goroutines.
type Theme struct {
	id      uuid.UUID
	initial runtimeconfig.Config
	cfg     runtimeconfig.Config
	vars    Vars

	fsys        fs.FS
	urls        urls.Provider
	views       interfaces.TemplateRenderer
	layouts     LayoutSource
	manifests   *manifest.Selector
	manifest    manifest.Context
	translator  interfaces.Translator
	onMissing   interfaces.MissingTranslationHandler
	substituter *i18n.Substituter

	collector *assets.Collector
	plugins   *plugins.Loader

	loggerProvider interfaces.LoggerProvider
	logger         interfaces.Logger
}

// New builds a Theme for cfg. cfg is copied; later changes to it do not
// affect the theme.
func New(cfg runtimeconfig.Config, opts ...Option) *Theme {
	t := &Theme{
		id:      identity.RequestID(),
		initial: cfg.Clone(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	if t.fsys == nil {
		t.fsys = defaultFS(cfg.PublicDir)
	}
	if t.urls == nil {
		t.urls = urls.Static{Base: cfg.BaseURL}
	}
	if t.layouts == nil {
		t.layouts = DirLayouts(t.fsys, cfg.TemplateExt)
	}
	if t.translator == nil {
		t.translator = i18n.EchoTranslator{}
	}
	t.logger = logging.WithFields(logging.RenderLogger(t.loggerProvider), map[string]any{"request_id": t.id.String()})

	t.substituter = &i18n.Substituter{Translator: t.translator, Locale: cfg.Locale, OnMissing: t.onMissing}
	assetsLogger := logging.WithFields(logging.AssetsLogger(t.loggerProvider), map[string]any{"request_id": t.id.String()})
	t.collector = assets.NewCollector(assets.Generator{}, t.substituter, assetsLogger)

	t.cfg = t.initial.Clone()
	t.vars = Vars{}
	t.rebind()
	return t
}

// ID returns the per-request identifier.
func (t *Theme) ID() uuid.UUID { return t.id }

// Config returns a copy of the effective configuration.
func (t *Theme) Config() runtimeconfig.Config { return t.cfg.Clone() }

// Vars returns a copy of the template variables.
func (t *Theme) Vars() Vars { return Vars(util.CloneAnyMap(t.vars)) }

// Layout describes the active theme's directories.
func (t *Theme) Layout() assets.Layout {
	return assets.Layout{
		ThemePath:  t.cfg.ThemePath,
		Theme:      t.cfg.Theme,
		CSSPath:    t.cfg.CSSPath,
		JSPath:     t.cfg.JSPath,
		ImagePath:  t.cfg.ImagePath,
		PluginPath: t.cfg.PluginPath,
		URLs:       t.urls,
	}
}

// rebind points the generator and plugin loader at the active theme and
// refreshes the URL and manifest variables.
func (t *Theme) rebind() {
	resolver := assets.Resolver{FS: t.fsys, Layout: t.Layout()}
	t.collector.SetGenerator(assets.Generator{Resolver: resolver})

	table := plugins.FromConfig(t.cfg.Plugins)
	pluginLogger := logging.WithFields(logging.PluginsLogger(t.loggerProvider), map[string]any{"request_id": t.id.String()})
	t.plugins = plugins.NewLoader(table, resolver, t.collector, pluginLogger)

	layout := resolver.Layout
	t.vars[VarThemeURL] = layout.URL(assets.DirTheme)
	t.vars[VarCSSURL] = layout.URL(assets.DirCSS)
	t.vars[VarJSURL] = layout.URL(assets.DirJS)
	t.vars[VarImageURL] = layout.URL(assets.DirImage)
	t.vars[VarPluginURL] = layout.URL(assets.DirPlugin)

	t.selectManifest()
}

func (t *Theme) selectManifest() {
	t.manifest = manifest.NewContext(nil, t.cfg.CSSVariablePrefix)
	if t.manifests != nil {
		dir := filepath.Join(t.cfg.PublicDir, filepath.FromSlash(t.cfg.ThemeDir()))
		selection, err := t.manifests.Select(t.cfg.Theme, dir, t.cfg.Variant)
		if err != nil {
			t.logger.Debug("themes.manifest.skipped", "theme", t.cfg.Theme, "error", err)
		} else {
			t.manifest = manifest.NewContext(selection, t.cfg.CSSVariablePrefix)
		}
	}
	t.vars[VarThemeTokens] = t.manifest.Tokens
	t.vars[VarThemeCSSVars] = t.manifest.CSSVars
}

// SetTheme switches the active theme. Blank names and names containing path
// separators are ignored. Assets registered before the switch keep their
// URLs.
func (t *Theme) SetTheme(name string) *Theme {
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		if name != "" {
			t.logger.Warn("themes.set_theme.rejected", "theme", name)
		}
		return t
	}
	t.cfg.Theme = name
	t.rebind()
	return t
}

// SetHeader overrides the header template. An empty name disables it.
func (t *Theme) SetHeader(name string) *Theme {
	t.cfg.Header = strings.TrimSpace(name)
	return t
}

// SetTemplate overrides the main template. Blank names are ignored.
func (t *Theme) SetTemplate(name string) *Theme {
	t.cfg.Template = util.FirstNonEmpty(strings.TrimSpace(name), t.cfg.Template)
	return t
}

// SetFooter overrides the footer template. An empty name disables it.
func (t *Theme) SetFooter(name string) *Theme {
	t.cfg.Footer = strings.TrimSpace(name)
	return t
}

// UseFullTemplate renders only the main template when enabled.
func (t *Theme) UseFullTemplate(enabled bool) *Theme {
	t.cfg.UseFullTemplate = enabled
	return t
}

func (t *Theme) SetVar(key string, value any) *Theme {
	t.vars[key] = value
	return t
}

func (t *Theme) SetVars(values map[string]any) *Theme {
	for key, value := range values {
		t.vars[key] = value
	}
	return t
}

func (t *Theme) SetPageTitle(title string) *Theme {
	t.vars[VarPageTitle] = title
	return t
}

// AddCSS registers stylesheets; see assets.Collector.AddCSS.
func (t *Theme) AddCSS(files assets.FileList, opts ...assets.AddOption) *Theme {
	t.collector.AddCSS(files, opts...)
	return t
}

// AddJS registers scripts; see assets.Collector.AddJS.
func (t *Theme) AddJS(files assets.FileList, opts ...assets.AddOption) *Theme {
	t.collector.AddJS(files, opts...)
	return t
}

// AddExternalCSS registers ready stylesheet URLs.
func (t *Theme) AddExternalCSS(hrefs assets.FileList, opts ...assets.AddOption) *Theme {
	return t.AddCSS(hrefs, append(opts, assets.AsExternal())...)
}

// AddExternalJS registers ready script URLs.
func (t *Theme) AddExternalJS(srcs assets.FileList, opts ...assets.AddOption) *Theme {
	return t.AddJS(srcs, append(opts, assets.AsExternal())...)
}

func (t *Theme) AddInlineJS(script string, opts ...assets.AddOption) *Theme {
	t.collector.AddInlineJS(script, opts...)
	return t
}

// AddI18nJS translates script (or the theme js file it names) and registers
// it inline.
func (t *Theme) AddI18nJS(script string, langs map[string]string, opts ...assets.AddOption) error {
	return t.collector.AddI18nJS(script, langs, opts...)
}

// Translate reads textOrPath when it names a regular file and substitutes
// its {{token}} placeholders from langs, then the theme's translator.
func (t *Theme) Translate(textOrPath string, langs map[string]string) (string, error) {
	return t.substituter.Translate(textOrPath, langs)
}

// LoadPlugins registers the named plugins at priority.
func (t *Theme) LoadPlugins(names assets.FileList, priority int) error {
	return t.plugins.Load(names, priority)
}

func (t *Theme) RenderCSS(w io.Writer) error { return t.collector.RenderCSS(w) }
func (t *Theme) RenderJS(w io.Writer) error  { return t.collector.RenderJS(w) }

func (t *Theme) CSS() string { return t.collector.CSS() }
func (t *Theme) JS() string  { return t.collector.JS() }

// Buckets returns a snapshot of the registered assets of type at.
func (t *Theme) Buckets(at assets.Type) []assets.Bucket {
	return t.collector.Buckets(at)
}

// Reset restores the configuration the theme was created with and drops all
// variables and assets.
func (t *Theme) Reset() *Theme {
	t.cfg = t.initial.Clone()
	t.vars = Vars{}
	t.collector.Reset()
	t.rebind()
	return t
}
