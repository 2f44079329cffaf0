package runtimeconfig

import (
	"fmt"
	"path"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	urlkit "github.com/goliatone/go-urlkit"
)

const (
	DefaultTheme       = "starter"
	DefaultPluginName  = "bootbox"
	DefaultTemplateExt = ".html"
)

// Config is the typed theme configuration. Every key the asset manager reads
// is a named field; there is no dynamic lookup.
type Config struct {
	Theme             string                      `yaml:"theme" json:"theme"`
	PublicDir         string                      `yaml:"public_dir" json:"public_dir"`
	BaseURL           string                      `yaml:"base_url" json:"base_url"`
	ThemePath         string                      `yaml:"theme_path" json:"theme_path"`
	CSSPath           string                      `yaml:"css_path" json:"css_path"`
	JSPath            string                      `yaml:"js_path" json:"js_path"`
	ImagePath         string                      `yaml:"image_path" json:"image_path"`
	PluginPath        string                      `yaml:"plugin_path" json:"plugin_path"`
	Header            string                      `yaml:"header" json:"header"`
	Template          string                      `yaml:"template" json:"template"`
	Footer            string                      `yaml:"footer" json:"footer"`
	UseFullTemplate   bool                        `yaml:"use_full_template" json:"use_full_template"`
	TemplateExt       string                      `yaml:"template_ext" json:"template_ext"`
	ViewsDir          string                      `yaml:"views_dir" json:"views_dir"`
	Plugins           map[string]PluginDefinition `yaml:"plugins" json:"plugins"`
	Locale            string                      `yaml:"locale" json:"locale"`
	Variant           string                      `yaml:"variant" json:"variant"`
	CSSVariablePrefix string                      `yaml:"css_variable_prefix" json:"css_variable_prefix"`
	URLGroup          string                      `yaml:"url_group" json:"url_group"`
	Routes            []RouteGroup                `yaml:"routes" json:"routes"`
	Features          Features                    `yaml:"features" json:"features"`
	Logging           LoggingConfig               `yaml:"logging" json:"logging"`
}

// PluginDefinition lists the files a plugin ships, relative to the plugin
// directory of the active theme.
type PluginDefinition struct {
	CSS []string `yaml:"css" json:"css"`
	JS  []string `yaml:"js" json:"js"`
}

// RouteGroup is the file-friendly form of a go-urlkit group.
type RouteGroup struct {
	Name    string            `yaml:"name" json:"name"`
	BaseURL string            `yaml:"base_url" json:"base_url"`
	Path    string            `yaml:"path" json:"path"`
	Paths   map[string]string `yaml:"paths" json:"paths"`
	Groups  []RouteGroup      `yaml:"groups" json:"groups"`
}

// Features toggles optional subsystems.
type Features struct {
	Logger   bool `yaml:"logger" json:"logger"`
	Manifest bool `yaml:"manifest" json:"manifest"`
}

// LoggingConfig selects the logger provider used when Features.Logger is on.
type LoggingConfig struct {
	Provider  string   `yaml:"provider" json:"provider"`
	Level     string   `yaml:"level" json:"level"`
	Format    string   `yaml:"format" json:"format"`
	AddSource bool     `yaml:"add_source" json:"add_source"`
	Focus     []string `yaml:"focus" json:"focus"`
}

// DefaultConfig returns the stock layout: a "starter" theme under
// public/themes with header, index and footer templates and the bootbox
// plugin registered.
func DefaultConfig() Config {
	return Config{
		Theme:       DefaultTheme,
		PublicDir:   "public",
		ThemePath:   "themes",
		CSSPath:     "css",
		JSPath:      "js",
		ImagePath:   "img",
		PluginPath:  "plugins",
		Header:      "header",
		Template:    "index",
		Footer:      "footer",
		TemplateExt: DefaultTemplateExt,
		ViewsDir:    "views",
		Plugins: map[string]PluginDefinition{
			DefaultPluginName: {JS: []string{"bootbox/bootbox-en.min.js"}},
		},
		Locale:            "en",
		CSSVariablePrefix: "theme",
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Clone returns a deep copy so per-request overrides never leak back into a
// shared configuration.
func (cfg Config) Clone() Config {
	out := cfg
	if cfg.Plugins != nil {
		out.Plugins = make(map[string]PluginDefinition, len(cfg.Plugins))
		for name, def := range cfg.Plugins {
			out.Plugins[name] = PluginDefinition{
				CSS: append([]string(nil), def.CSS...),
				JS:  append([]string(nil), def.JS...),
			}
		}
	}
	out.Routes = cloneGroups(cfg.Routes)
	out.Logging.Focus = append([]string(nil), cfg.Logging.Focus...)
	return out
}

// ThemeDir is the public path of the active theme relative to PublicDir,
// e.g. "themes/starter".
func (cfg Config) ThemeDir() string {
	return path.Join(cfg.ThemePath, cfg.Theme)
}

// RouteConfig converts Routes into a go-urlkit configuration. It returns nil
// when no routes are configured.
func (cfg Config) RouteConfig() *urlkit.Config {
	if len(cfg.Routes) == 0 {
		return nil
	}
	return &urlkit.Config{Groups: toURLKitGroups(cfg.Routes)}
}

// Validate checks the configuration with ozzo-validation and reports failures
// as a go-errors validation error.
func (cfg Config) Validate() error {
	if err := goerrors.ValidateWithOzzo(cfg.validate, "themes: invalid configuration"); err != nil {
		return err
	}
	return nil
}

func (cfg Config) validate() error {
	return validation.ValidateStruct(&cfg,
		validation.Field(&cfg.Theme, validation.Required, validation.By(noSeparators)),
		validation.Field(&cfg.ThemePath, validation.Required),
		validation.Field(&cfg.CSSPath, validation.Required),
		validation.Field(&cfg.JSPath, validation.Required),
		validation.Field(&cfg.ImagePath, validation.Required),
		validation.Field(&cfg.PluginPath, validation.Required),
		validation.Field(&cfg.Template, validation.Required),
		validation.Field(&cfg.TemplateExt, validation.By(extension)),
		validation.Field(&cfg.Plugins, validation.By(pluginTable)),
		validation.Field(&cfg.Logging),
	)
}

// Validate implements validation.Validatable so nested failures are reported
// under the logging key.
func (l LoggingConfig) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Provider, validation.By(oneOf("console", "gologger"))),
		validation.Field(&l.Level, validation.By(oneOf("trace", "debug", "info", "warn", "warning", "error", "fatal"))),
		validation.Field(&l.Format, validation.By(oneOf("json", "console", "pretty"))),
	)
}

func noSeparators(value any) error {
	s, _ := value.(string)
	if strings.ContainsAny(s, `/\`) || s == "." || s == ".." {
		return validation.NewError("themes.config.theme_name", "theme name must be a single path segment")
	}
	return nil
}

func extension(value any) error {
	s, _ := value.(string)
	if s != "" && !strings.HasPrefix(s, ".") {
		return validation.NewError("themes.config.template_ext", "template extension must start with a dot")
	}
	return nil
}

func pluginTable(value any) error {
	plugins, _ := value.(map[string]PluginDefinition)
	for name, def := range plugins {
		if strings.TrimSpace(name) == "" {
			return validation.NewError("themes.config.plugin_name", "plugin name is required")
		}
		if len(def.CSS)+len(def.JS) == 0 {
			return validation.NewError("themes.config.plugin_empty", fmt.Sprintf("plugin %q declares no files", name))
		}
		for _, file := range append(append([]string{}, def.CSS...), def.JS...) {
			if strings.TrimSpace(file) == "" {
				return validation.NewError("themes.config.plugin_file", fmt.Sprintf("plugin %q has an empty file entry", name))
			}
		}
	}
	return nil
}

func oneOf(allowed ...string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			return nil
		}
		for _, candidate := range allowed {
			if s == candidate {
				return nil
			}
		}
		return validation.NewError("themes.config.enum", fmt.Sprintf("must be one of %s", strings.Join(allowed, ", ")))
	}
}

func toURLKitGroups(groups []RouteGroup) []urlkit.GroupConfig {
	if len(groups) == 0 {
		return nil
	}
	out := make([]urlkit.GroupConfig, 0, len(groups))
	for _, group := range groups {
		out = append(out, urlkit.GroupConfig{
			Name:    group.Name,
			BaseURL: group.BaseURL,
			Path:    group.Path,
			Paths:   group.Paths,
			Groups:  toURLKitGroups(group.Groups),
		})
	}
	return out
}

func cloneGroups(groups []RouteGroup) []RouteGroup {
	if groups == nil {
		return nil
	}
	out := make([]RouteGroup, len(groups))
	for i, group := range groups {
		out[i] = group
		if group.Paths != nil {
			out[i].Paths = make(map[string]string, len(group.Paths))
			for k, v := range group.Paths {
				out[i].Paths[k] = v
			}
		}
		out[i].Groups = cloneGroups(group.Groups)
	}
	return out
}
