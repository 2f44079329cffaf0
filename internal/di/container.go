package di

import (
	"io/fs"
	"os"
	"strings"
	"sync"

	goerrors "github.com/goliatone/go-errors"
	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-themes/internal/i18n"
	"github.com/goliatone/go-themes/internal/logging"
	"github.com/goliatone/go-themes/internal/logging/console"
	"github.com/goliatone/go-themes/internal/logging/gologger"
	"github.com/goliatone/go-themes/internal/manifest"
	"github.com/goliatone/go-themes/internal/markdown"
	"github.com/goliatone/go-themes/internal/runtimeconfig"
	"github.com/goliatone/go-themes/internal/themes"
	"github.com/goliatone/go-themes/internal/urls"
	"github.com/goliatone/go-themes/internal/views"
	"github.com/goliatone/go-themes/pkg/interfaces"
)

// Container wires the long-lived collaborators shared by every per-request
// Theme. It is safe for concurrent use once built.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	fsys           fs.FS
	viewsFS        fs.FS
	urls           urls.Provider
	routeManager   *urlkit.RouteManager
	views          interfaces.TemplateRenderer
	translator     interfaces.Translator
	onMissing      interfaces.MissingTranslationHandler
	manifestLoader manifest.Loader
	manifests      *manifest.Selector

	layoutsMu sync.Mutex
	layouts   map[string]interfaces.TemplateRenderer
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider built from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) { c.loggerProvider = provider }
}

// WithFS sets the filesystem rooted at the public directory.
func WithFS(fsys fs.FS) Option {
	return func(c *Container) { c.fsys = fsys }
}

// WithViewsFS sets the filesystem holding content views. Defaults to
// os.DirFS(Config.ViewsDir).
func WithViewsFS(fsys fs.FS) Option {
	return func(c *Container) { c.viewsFS = fsys }
}

// WithViews overrides the content view renderer.
func WithViews(renderer interfaces.TemplateRenderer) Option {
	return func(c *Container) { c.views = renderer }
}

// WithURLProvider overrides the base URL provider.
func WithURLProvider(provider urls.Provider) Option {
	return func(c *Container) { c.urls = provider }
}

// WithRouteManager supplies the go-urlkit manager used to resolve
// Config.URLGroup.
func WithRouteManager(manager *urlkit.RouteManager) Option {
	return func(c *Container) { c.routeManager = manager }
}

// WithTranslator sets the translator consulted for {{token}} fallbacks.
func WithTranslator(translator interfaces.Translator) Option {
	return func(c *Container) { c.translator = translator }
}

// WithMissingTranslationHandler sets the handler for unresolved tokens.
func WithMissingTranslationHandler(handler interfaces.MissingTranslationHandler) Option {
	return func(c *Container) { c.onMissing = handler }
}

// WithManifestLoader overrides how theme manifests are read.
func WithManifestLoader(loader manifest.Loader) Option {
	return func(c *Container) { c.manifestLoader = loader }
}

// NewContainer validates cfg and wires the shared collaborators.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config:  cfg.Clone(),
		layouts: map[string]interfaces.TemplateRenderer{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	c.configureFS()
	c.configureURLs()
	c.configureViews()
	c.configureManifests()

	if c.translator == nil {
		c.translator = i18n.EchoTranslator{}
	}

	logging.ConfigLogger(c.loggerProvider).Debug("themes.container.ready",
		"theme", c.Config.Theme,
		"public_dir", c.Config.PublicDir,
		"manifest", c.manifests != nil,
	)
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}
	logCfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(logCfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     logCfg.Level,
			Format:    logCfg.Format,
			AddSource: logCfg.AddSource,
			Focus:     logCfg.Focus,
		})
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryBadInput, "logging: configure go-logger provider").
				WithTextCode("LOGGER_CONFIG_INVALID")
		}
		c.loggerProvider = provider
	default:
		provider, err := console.NewProvider(console.Options{Level: logCfg.Level})
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryBadInput, "logging: configure console provider").
				WithTextCode("LOGGER_CONFIG_INVALID")
		}
		c.loggerProvider = provider
	}
	return nil
}

func (c *Container) configureFS() {
	if c.fsys == nil {
		c.fsys = os.DirFS(dirOrDot(c.Config.PublicDir))
	}
	if c.viewsFS == nil && c.views == nil {
		c.viewsFS = os.DirFS(dirOrDot(c.Config.ViewsDir))
	}
}

func (c *Container) configureURLs() {
	if c.urls != nil {
		return
	}
	fallback := urls.Static{Base: c.Config.BaseURL}
	group := strings.TrimSpace(c.Config.URLGroup)
	if c.routeManager == nil && group != "" {
		if routeCfg := c.Config.RouteConfig(); routeCfg != nil {
			c.routeManager = urlkit.NewRouteManager(routeCfg)
		}
	}
	if c.routeManager == nil || group == "" {
		c.urls = fallback
		return
	}
	c.urls = urls.NewURLKit(urls.URLKitOptions{
		Manager:  c.routeManager,
		Group:    group,
		Fallback: fallback,
		Logger:   logging.ConfigLogger(c.loggerProvider),
	})
}

func (c *Container) configureViews() {
	if c.views != nil {
		return
	}
	c.views = views.New(c.viewsFS,
		views.WithExtension(c.Config.TemplateExt),
		views.WithFuncs(themes.LayoutFuncs()),
		views.WithMarkdown(markdown.NewParser(markdown.Options{})),
	)
}

func (c *Container) configureManifests() {
	if !c.Config.Features.Manifest {
		return
	}
	loader := c.manifestLoader
	if loader == nil {
		loader = manifest.DirLoader{}
	}
	c.manifests = manifest.NewSelector(manifest.Options{
		Loader:         loader,
		DefaultTheme:   c.Config.Theme,
		DefaultVariant: c.Config.Variant,
	})
}

// Layouts returns the layout renderer for themeDir, parsing its templates on
// first use.
func (c *Container) Layouts(themeDir string) interfaces.TemplateRenderer {
	c.layoutsMu.Lock()
	defer c.layoutsMu.Unlock()
	if renderer, ok := c.layouts[themeDir]; ok {
		return renderer
	}
	renderer := themes.DirLayouts(c.fsys, c.Config.TemplateExt)(themeDir)
	c.layouts[themeDir] = renderer
	return renderer
}

// NewTheme builds a fresh per-request Theme sharing the container's
// collaborators. opts are applied last.
func (c *Container) NewTheme(opts ...themes.Option) *themes.Theme {
	base := []themes.Option{
		themes.WithFS(c.fsys),
		themes.WithURLProvider(c.urls),
		themes.WithViews(c.views),
		themes.WithLayouts(c.Layouts),
		themes.WithManifests(c.manifests),
		themes.WithTranslator(c.translator),
		themes.WithMissingTranslationHandler(c.onMissing),
		themes.WithLoggerProvider(c.loggerProvider),
	}
	return themes.New(c.Config, append(base, opts...)...)
}

func (c *Container) LoggerProvider() interfaces.LoggerProvider { return c.loggerProvider }

func (c *Container) URLProvider() urls.Provider { return c.urls }

func (c *Container) Views() interfaces.TemplateRenderer { return c.views }

func (c *Container) RouteManager() *urlkit.RouteManager { return c.routeManager }

func dirOrDot(dir string) string {
	if strings.TrimSpace(dir) == "" {
		return "."
	}
	return dir
}
