package themes_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	themes "github.com/goliatone/go-themes"
	"github.com/goliatone/go-themes/pkg/testsupport"
)

func newModule(t *testing.T, cfg themes.Config) *themes.Module {
	t.Helper()
	public := testsupport.ThemeFS(map[string]string{
		"themes/starter/header.html":                       `<title>{{ .page_title }}</title>{{ renderCSS }}`,
		"themes/starter/index.html":                        `<main>{{ .content }}</main>`,
		"themes/starter/footer.html":                       `{{ renderJS }}`,
		"themes/starter/css/site.css":                      "body{}",
		"themes/starter/js/i18n.js":                        `alert("{{greeting}}")`,
		"themes/starter/plugins/bootbox/bootbox-en.min.js": "x",
	})
	views := fstest.MapFS{
		"welcome.html": {Data: []byte(`Hello {{ .name }}`)},
	}
	module, err := themes.New(cfg, themes.WithFS(public), themes.WithViewsFS(views))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return module
}

func TestModuleRendersPage(t *testing.T) {
	cfg := themes.DefaultConfig()
	cfg.BaseURL = "https://example.com"
	module := newModule(t, cfg)

	theme := module.Init()
	theme.AddCSS(themes.ParseFiles("site, missing"))
	if err := theme.AddI18nJS("i18n.js", map[string]string{"greeting": "hola"}); err != nil {
		t.Fatalf("AddI18nJS: %v", err)
	}
	if err := theme.LoadPlugins(themes.Files("bootbox"), 10); err != nil {
		t.Fatalf("LoadPlugins: %v", err)
	}

	ctx := themes.WithRoute(context.Background(), themes.Route{Controller: "Welcome", Method: "index"})
	var buf bytes.Buffer
	if err := theme.Render(ctx, &buf, "welcome", map[string]any{"name": "Ana"}); err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := `<title>Welcome | Index</title>` +
		`<link rel="stylesheet" href="https://example.com/themes/starter/css/site.css?v=1700000000">` +
		`<main>Hello Ana</main>` +
		`<script>alert("hola")</script>` + "\n" +
		`<script src="https://example.com/themes/starter/plugins/bootbox/bootbox-en.min.js"></script>`
	if buf.String() != want {
		t.Fatalf("unexpected page\nwant: %s\ngot:  %s", want, buf.String())
	}
}

func TestInitReturnsIndependentThemes(t *testing.T) {
	module := newModule(t, themes.DefaultConfig())

	first := module.Init()
	first.AddCSS(themes.Files("site")).SetVar("user", "ana")

	second := module.Init()
	if second.CSS() != "" {
		t.Fatalf("expected isolated assets, got %q", second.CSS())
	}
	if _, ok := second.Vars()["user"]; ok {
		t.Fatal("expected isolated vars")
	}
}

func TestSentinelErrorsAreExported(t *testing.T) {
	module := newModule(t, themes.DefaultConfig())
	theme := module.Init()

	if err := theme.LoadPlugins(themes.Files("unknown"), 0); !errors.Is(err, themes.ErrPluginNotRegistered) {
		t.Fatalf("expected ErrPluginNotRegistered, got %v", err)
	}

	var buf bytes.Buffer
	err := theme.SetTemplate("missing").Render(context.Background(), &buf, "x", nil)
	if !errors.Is(err, themes.ErrMissingTemplateView) {
		t.Fatalf("expected ErrMissingTemplateView, got %v", err)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "themes.yaml")
	raw := strings.Join([]string{
		"theme: admin",
		"base_url: https://example.com",
		"plugins:",
		"  datatables:",
		"    css: [datatables/datatables.min.css]",
		"    js: [datatables/datatables.min.js]",
	}, "\n")
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := themes.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Theme != "admin" || cfg.BaseURL != "https://example.com" {
		t.Fatalf("unexpected config %#v", cfg)
	}
	if _, ok := cfg.Plugins["bootbox"]; !ok {
		t.Fatal("expected default plugins kept")
	}
	if _, ok := cfg.Plugins["datatables"]; !ok {
		t.Fatal("expected datatables plugin merged")
	}
}

func TestParseConfigRejectsUnknownKeys(t *testing.T) {
	if _, err := themes.ParseConfig([]byte("colour: red\n")); !errors.Is(err, themes.ErrConfigSchema) {
		t.Fatalf("expected ErrConfigSchema, got %v", err)
	}
}

func TestTranslateSubstitutesTokens(t *testing.T) {
	got, err := themes.Translate("Hi {{name}}, {{ name }}!", map[string]string{"name": "Jhony"})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got != "Hi Jhony, Jhony!" {
		t.Fatalf("unexpected translation %q", got)
	}

	path := filepath.Join(t.TempDir(), "greeting.js")
	if err := os.WriteFile(path, []byte(`say("{{name}}")`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err = themes.Translate(path, map[string]string{"name": "Jhony"})
	if err != nil {
		t.Fatalf("Translate file: %v", err)
	}
	if got != `say("Jhony")` || strings.Contains(got, "{{name}}") {
		t.Fatalf("unexpected file translation %q", got)
	}
	raw, _ := os.ReadFile(path)
	if string(raw) != `say("{{name}}")` {
		t.Fatalf("source file was modified: %q", raw)
	}
}

func TestThemeTranslateUsesModuleTranslator(t *testing.T) {
	cfg := themes.DefaultConfig()
	module := newModule(t, cfg)
	got, err := module.Init().Translate("{{name}} says {{greeting}}", map[string]string{"name": "Jhony"})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got != "Jhony says greeting" {
		t.Fatalf("unexpected translation %q", got)
	}
}
