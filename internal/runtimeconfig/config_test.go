package runtimeconfig_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-themes/internal/runtimeconfig"
)

func TestDefaultConfigMatchesStockLayout(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()

	checks := map[string][2]string{
		"theme":      {cfg.Theme, "starter"},
		"theme_path": {cfg.ThemePath, "themes"},
		"css_path":   {cfg.CSSPath, "css"},
		"js_path":    {cfg.JSPath, "js"},
		"image_path": {cfg.ImagePath, "img"},
		"plugin":     {cfg.PluginPath, "plugins"},
		"header":     {cfg.Header, "header"},
		"template":   {cfg.Template, "index"},
		"footer":     {cfg.Footer, "footer"},
	}
	for name, pair := range checks {
		if pair[0] != pair[1] {
			t.Fatalf("%s: expected %q, got %q", name, pair[1], pair[0])
		}
	}
	if cfg.UseFullTemplate {
		t.Fatalf("expected split layout by default")
	}
	bootbox, ok := cfg.Plugins["bootbox"]
	if !ok || len(bootbox.JS) != 1 || bootbox.JS[0] != "bootbox/bootbox-en.min.js" {
		t.Fatalf("expected bootbox plugin, got %#v", cfg.Plugins)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.ThemeDir() != "themes/starter" {
		t.Fatalf("unexpected theme dir %q", cfg.ThemeDir())
	}
}

func TestValidateReportsCategory(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*runtimeconfig.Config)
	}{
		{"missing theme", func(c *runtimeconfig.Config) { c.Theme = "" }},
		{"theme with separator", func(c *runtimeconfig.Config) { c.Theme = "../admin" }},
		{"missing template", func(c *runtimeconfig.Config) { c.Template = "" }},
		{"bad extension", func(c *runtimeconfig.Config) { c.TemplateExt = "html" }},
		{"empty plugin", func(c *runtimeconfig.Config) {
			c.Plugins["empty"] = runtimeconfig.PluginDefinition{}
		}},
		{"unknown provider", func(c *runtimeconfig.Config) { c.Logging.Provider = "syslog" }},
		{"unknown level", func(c *runtimeconfig.Config) { c.Logging.Level = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
				t.Fatalf("expected validation category, got %v", err)
			}
		})
	}
}

func TestCloneIsolatesPlugins(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	clone := cfg.Clone()
	clone.Plugins["bootbox"] = runtimeconfig.PluginDefinition{CSS: []string{"x.css"}}

	if len(cfg.Plugins["bootbox"].CSS) != 0 {
		t.Fatalf("clone mutated the source plugin table")
	}
}

func TestRouteConfigConvertsGroups(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	if cfg.RouteConfig() != nil {
		t.Fatalf("expected nil route config without routes")
	}
	cfg.Routes = []runtimeconfig.RouteGroup{{
		Name:    "cdn",
		BaseURL: "https://cdn.example.com",
		Paths:   map[string]string{"base": "/"},
		Groups:  []runtimeconfig.RouteGroup{{Name: "es", Path: "/es"}},
	}}
	rc := cfg.RouteConfig()
	if rc == nil || len(rc.Groups) != 1 || rc.Groups[0].BaseURL != "https://cdn.example.com" {
		t.Fatalf("unexpected route config %#v", rc)
	}
	if len(rc.Groups[0].Groups) != 1 || rc.Groups[0].Groups[0].Path != "/es" {
		t.Fatalf("expected nested group, got %#v", rc.Groups[0].Groups)
	}
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "themes.yaml")
	doc := `
theme: admin
use_full_template: true
plugins:
  datatables:
    css: [datatables/datatables.min.css]
    js: [datatables/datatables.min.js]
logging:
  provider: gologger
  format: pretty
`
	if err := os.WriteFile(file, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := runtimeconfig.LoadConfig(file)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Theme != "admin" || !cfg.UseFullTemplate {
		t.Fatalf("overrides not applied: %#v", cfg)
	}
	if cfg.CSSPath != "css" || cfg.Template != "index" {
		t.Fatalf("defaults lost: css=%q template=%q", cfg.CSSPath, cfg.Template)
	}
	if _, ok := cfg.Plugins["bootbox"]; !ok {
		t.Fatalf("expected default plugin to survive overlay")
	}
	if len(cfg.Plugins["datatables"].CSS) != 1 {
		t.Fatalf("expected datatables plugin, got %#v", cfg.Plugins)
	}
}

func TestParseConfigAcceptsJSON(t *testing.T) {
	cfg, err := runtimeconfig.ParseConfig([]byte(`{"theme": "dark", "features": {"manifest": true}}`))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Theme != "dark" || !cfg.Features.Manifest {
		t.Fatalf("unexpected config %#v", cfg)
	}
}

func TestParseConfigRejectsSchemaViolations(t *testing.T) {
	_, err := runtimeconfig.ParseConfig([]byte("theme: starter\nunknown_key: 1\n"))
	if !errors.Is(err, runtimeconfig.ErrConfigSchema) {
		t.Fatalf("expected schema error, got %v", err)
	}
	if !strings.Contains(err.Error(), "unknown_key") {
		t.Fatalf("expected offending key in message, got %v", err)
	}

	_, err = runtimeconfig.ParseConfig([]byte("use_full_template: maybe\n"))
	if !errors.Is(err, runtimeconfig.ErrConfigSchema) {
		t.Fatalf("expected schema error for non-boolean, got %v", err)
	}
}

func TestParseConfigEmptyDocumentYieldsDefaults(t *testing.T) {
	cfg, err := runtimeconfig.ParseConfig(nil)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Theme != runtimeconfig.DefaultTheme {
		t.Fatalf("expected default theme, got %q", cfg.Theme)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := runtimeconfig.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if !goerrors.IsCategory(err, goerrors.CategoryNotFound) {
		t.Fatalf("expected not found category, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped os.ErrNotExist, got %v", err)
	}
}
