package assets

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/goliatone/go-themes/internal/urls"
)

var fixtureTime = time.Unix(1700000000, 0)

func starterLayout() Layout {
	return Layout{
		ThemePath:  "themes",
		Theme:      "starter",
		CSSPath:    "css",
		JSPath:     "js",
		ImagePath:  "img",
		PluginPath: "plugins",
		URLs:       urls.Static{Base: "http://localhost"},
	}
}

func starterFS() fstest.MapFS {
	file := func(body string) *fstest.MapFile {
		return &fstest.MapFile{Data: []byte(body), ModTime: fixtureTime}
	}
	return fstest.MapFS{
		"themes/starter/css/style.css":    file("body{}"),
		"themes/starter/css/grid.css":     file(".row{}"),
		"themes/starter/js/app.js":        file("app()"),
		"themes/starter/js/messages.js":   file("alert('{{hello}}');"),
		"themes/starter/secret.txt":       file("nope"),
		"themes/starter/css/nested/a.css": file("a{}"),
	}
}

func newTestCollector() *Collector {
	return NewCollector(Generator{Resolver: Resolver{FS: starterFS(), Layout: starterLayout()}}, nil, nil)
}

func TestTagMarkup(t *testing.T) {
	if got := LinkTag("x.css"); got != `<link rel="stylesheet" href="x.css">` {
		t.Fatalf("unexpected link tag %q", got)
	}
	if got := ScriptTag("x.js"); got != `<script src="x.js"></script>` {
		t.Fatalf("unexpected script tag %q", got)
	}
	if got := InlineScriptTag("go()"); got != `<script>go()</script>` {
		t.Fatalf("unexpected inline tag %q", got)
	}
}

func TestParseFilesMatchesFiles(t *testing.T) {
	if !reflect.DeepEqual(ParseFiles("a.css, b.css"), Files("a.css", "b.css")) {
		t.Fatalf("expected equivalent lists")
	}
	if got := ParseFiles(" a.css ,, "); !reflect.DeepEqual(got, FileList{"a.css"}) {
		t.Fatalf("expected blank items dropped, got %v", got)
	}
}

func TestLayoutURLs(t *testing.T) {
	l := starterLayout()
	cases := map[Dir]string{
		DirTheme:  "http://localhost/themes/starter/",
		DirCSS:    "http://localhost/themes/starter/css/",
		DirJS:     "http://localhost/themes/starter/js/",
		DirImage:  "http://localhost/themes/starter/img/",
		DirPlugin: "http://localhost/themes/starter/plugins/",
	}
	for dir, want := range cases {
		if got := l.URL(dir); got != want {
			t.Fatalf("dir %d: want %q got %q", dir, want, got)
		}
	}
}

func TestLocalTagAddsExtensionAndVersion(t *testing.T) {
	g := Generator{Resolver: Resolver{FS: starterFS(), Layout: starterLayout()}}

	tag, ok := g.Link("style", Local)
	if !ok {
		t.Fatalf("expected style to resolve")
	}
	want := `<link rel="stylesheet" href="http://localhost/themes/starter/css/style.css?v=1700000000">`
	if tag != want {
		t.Fatalf("want %s got %s", want, tag)
	}

	tag, ok = g.Script("app", Local)
	if !ok || tag != `<script src="http://localhost/themes/starter/js/app.js?v=1700000000"></script>` {
		t.Fatalf("unexpected script tag %q ok=%v", tag, ok)
	}

	if _, ok := g.Link("nested/a", Local); !ok {
		t.Fatalf("expected nested file to resolve")
	}
}

func TestLocalTagRejectsMissingAndTraversal(t *testing.T) {
	g := Generator{Resolver: Resolver{FS: starterFS(), Layout: starterLayout()}}

	for _, name := range []string{"missing.css", "../secret.txt", "nested"} {
		if tag, ok := g.Link(name, Local); ok {
			t.Fatalf("%s: expected no tag, got %q", name, tag)
		}
	}
}

func TestExternalAndInlineTags(t *testing.T) {
	g := Generator{}
	if tag, ok := g.Link("https://cdn.example.com/x.css", External); !ok || tag != LinkTag("https://cdn.example.com/x.css") {
		t.Fatalf("unexpected external link %q", tag)
	}
	if tag, ok := g.Script("go()", Inline); !ok || tag != "<script>go()</script>" {
		t.Fatalf("unexpected inline script %q", tag)
	}
}

func TestAddCSSBuckets(t *testing.T) {
	c := newTestCollector()
	c.AddCSS(Files("style.css"))
	c.AddCSS(Files("grid.css"), WithPriority(-1))
	c.AddCSS(ParseFiles("https://cdn.example.com/a.css"), AsExternal(), WithPriority(5))
	c.AddCSS(Files("missing.css"))

	buckets := c.Buckets(CSS)
	if len(buckets) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(buckets))
	}
	priorities := []int{buckets[0].Priority, buckets[1].Priority, buckets[2].Priority}
	if !reflect.DeepEqual(priorities, []int{-1, 0, 5}) {
		t.Fatalf("unexpected priorities %v", priorities)
	}
	if len(buckets[1].Entries) != 1 || buckets[1].Entries[0].Source != "style.css" {
		t.Fatalf("unexpected default bucket %#v", buckets[1])
	}
	if buckets[2].Entries[0].Kind != External {
		t.Fatalf("expected external entry")
	}
}

func TestRenderOrdersAndDeduplicates(t *testing.T) {
	c := newTestCollector()
	c.AddCSS(Files("style.css"), WithPriority(10))
	c.AddCSS(Files("grid.css"), WithPriority(1))
	c.AddCSS(Files("style.css"), WithPriority(1))
	c.AddCSS(Files("grid.css"), WithPriority(20))

	if c.css.Len() != 4 {
		t.Fatalf("expected duplicates kept in registry, got %d", c.css.Len())
	}

	lines := strings.Split(c.CSS(), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 tags, got %d: %q", len(lines), c.CSS())
	}
	if !strings.Contains(lines[0], "grid.css") || !strings.Contains(lines[1], "style.css") {
		t.Fatalf("unexpected order %q", lines)
	}

	var sb strings.Builder
	if err := c.RenderCSS(&sb); err != nil {
		t.Fatalf("RenderCSS: %v", err)
	}
	if sb.String() != c.CSS() {
		t.Fatalf("RenderCSS and CSS disagree")
	}
}

func TestRenderEmptyRegistry(t *testing.T) {
	c := newTestCollector()
	if c.CSS() != "" || c.JS() != "" {
		t.Fatalf("expected empty output")
	}
}

func TestAddJSInlineWithI18n(t *testing.T) {
	c := newTestCollector()
	c.AddJS(Files("alert('Hello {{name}}!');"), AsInline(), WithPriority(9), WithI18n(map[string]string{"name": "Jhony"}))

	if !strings.Contains(c.JS(), "Hello Jhony!") {
		t.Fatalf("expected substituted script, got %q", c.JS())
	}
	buckets := c.Buckets(JS)
	if len(buckets) != 1 || buckets[0].Priority != 9 {
		t.Fatalf("unexpected buckets %#v", buckets)
	}
}

func TestAddInlineJSIgnoresBlank(t *testing.T) {
	c := newTestCollector()
	c.AddInlineJS("   \n")
	if c.js.Len() != 0 {
		t.Fatalf("expected blank script ignored")
	}
	c.AddInlineJS("  go()  ")
	if c.JS() != "<script>go()</script>" {
		t.Fatalf("expected trimmed script, got %q", c.JS())
	}
}

func TestAddI18nJSReadsThemeFile(t *testing.T) {
	c := newTestCollector()
	if err := c.AddI18nJS("messages.js", map[string]string{"hello": "Hola"}); err != nil {
		t.Fatalf("AddI18nJS: %v", err)
	}
	if c.JS() != "<script>alert('Hola');</script>" {
		t.Fatalf("unexpected script %q", c.JS())
	}
	if err := c.AddI18nJS("absent.js", nil); err == nil {
		t.Fatalf("expected error for missing script file")
	}
	if err := c.AddI18nJS("console.log('{{x}}')", map[string]string{"x": "y"}); err != nil {
		t.Fatalf("AddI18nJS raw: %v", err)
	}
	if !strings.HasSuffix(c.JS(), "<script>console.log('y')</script>") {
		t.Fatalf("unexpected output %q", c.JS())
	}
}

func TestResetClearsRegistries(t *testing.T) {
	c := newTestCollector()
	c.AddCSS(Files("style"))
	c.AddJS(Files("app"))
	c.Reset()
	if len(c.Buckets(CSS)) != 0 || len(c.Buckets(JS)) != 0 {
		t.Fatalf("expected empty buckets after reset")
	}
}

func TestCacheBusterTracksModTime(t *testing.T) {
	public := t.TempDir()
	cssDir := filepath.Join(public, "themes", "starter", "css")
	if err := os.MkdirAll(cssDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	file := filepath.Join(cssDir, "site.css")
	if err := os.WriteFile(file, []byte("body{}"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	g := Generator{Resolver: Resolver{FS: os.DirFS(public), Layout: starterLayout()}}

	first := time.Unix(1600000000, 0)
	if err := os.Chtimes(file, first, first); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	tag, ok := g.Link("site", Local)
	if !ok || !strings.Contains(tag, "?v=1600000000") {
		t.Fatalf("unexpected tag %q", tag)
	}

	second := time.Unix(1600000500, 0)
	if err := os.Chtimes(file, second, second); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	tag, _ = g.Link("site", Local)
	if !strings.Contains(tag, "?v=1600000500") {
		t.Fatalf("expected refreshed version, got %q", tag)
	}
}
