// Package themes renders pages through swappable theme directories and
// collects the CSS and JS assets each page needs.
//
// A Module is built once per process from a Config. Each request calls Init
// for a fresh Theme, registers assets and variables on it and calls Render.
package themes

import (
	"github.com/goliatone/go-themes/internal/assets"
	"github.com/goliatone/go-themes/internal/di"
	"github.com/goliatone/go-themes/internal/i18n"
	core "github.com/goliatone/go-themes/internal/themes"
	"github.com/goliatone/go-themes/pkg/interfaces"
)

// Theme is the per-request theme context.
type Theme = core.Theme

// Vars holds template variables.
type Vars = core.Vars

// Route identifies the request handler for page title derivation.
type Route = core.Route

// ThemeOption tunes a single Theme built by Init.
type ThemeOption = core.Option

// RenderOption tunes a single Render call.
type RenderOption = core.RenderOption

// Option configures the Module's shared collaborators.
type Option = di.Option

// FileList is an ordered list of asset names.
type FileList = assets.FileList

// AddOption tunes an asset registration.
type AddOption = assets.AddOption

// AssetType selects CSS or JS buckets.
type AssetType = assets.Type

// Bucket groups asset tags registered at one priority.
type Bucket = assets.Bucket

// Catalog is a YAML or JSON translation catalog usable as a Translator.
type Catalog = i18n.Catalog

const (
	CSS = assets.CSS
	JS  = assets.JS
)

// Well-known template variables.
const (
	VarThemeURL     = core.VarThemeURL
	VarCSSURL       = core.VarCSSURL
	VarJSURL        = core.VarJSURL
	VarImageURL     = core.VarImageURL
	VarPluginURL    = core.VarPluginURL
	VarContent      = core.VarContent
	VarPageTitle    = core.VarPageTitle
	VarThemeTokens  = core.VarThemeTokens
	VarThemeCSSVars = core.VarThemeCSSVars
)

var (
	WithFS                        = di.WithFS
	WithViewsFS                   = di.WithViewsFS
	WithViews                     = di.WithViews
	WithURLProvider               = di.WithURLProvider
	WithRouteManager              = di.WithRouteManager
	WithTranslator                = di.WithTranslator
	WithMissingTranslationHandler = di.WithMissingTranslationHandler
	WithLoggerProvider            = di.WithLoggerProvider
	WithManifestLoader            = di.WithManifestLoader

	WithPageTitle = core.WithPageTitle
	WithRoute     = core.WithRoute
	WithRequestID = core.WithID

	Files      = assets.Files
	ParseFiles = assets.ParseFiles

	WithPriority = assets.WithPriority
	AsExternal   = assets.AsExternal
	AsInline     = assets.AsInline
	WithI18n     = assets.WithI18n

	LoadCatalog = i18n.LoadCatalog
)

// Translate substitutes {{token}} placeholders in textOrPath, reading it
// first when it names a regular file. Tokens missing from langs fall back to
// the token name. Use Theme.Translate to go through a configured translator.
func Translate(textOrPath string, langs map[string]string) (string, error) {
	return i18n.NewSubstituter("").Translate(textOrPath, langs)
}

// Module is the process-wide theme runtime.
type Module struct {
	container *di.Container
}

// New validates cfg and wires the shared collaborators.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Config returns a copy of the module configuration.
func (m *Module) Config() Config {
	return m.container.Config.Clone()
}

// Init returns a fresh Theme seeded from the module configuration. Themes
// must not be shared across requests.
func (m *Module) Init(opts ...ThemeOption) *Theme {
	return m.container.NewTheme(opts...)
}

// Views returns the renderer used for content views.
func (m *Module) Views() interfaces.TemplateRenderer {
	return m.container.Views()
}

// LoggerProvider returns the configured logger provider, or nil when
// logging is disabled.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	return m.container.LoggerProvider()
}
