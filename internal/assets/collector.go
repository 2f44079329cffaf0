package assets

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/goliatone/go-themes/internal/i18n"
	"github.com/goliatone/go-themes/internal/identity"
	"github.com/goliatone/go-themes/internal/logging"
	"github.com/goliatone/go-themes/pkg/interfaces"
)

// Type distinguishes the two asset families.
type Type int

const (
	CSS Type = iota
	JS
)

func (t Type) String() string {
	if t == JS {
		return "js"
	}
	return "css"
}

// AddOption tunes a single registration call.
type AddOption func(*addOptions)

type addOptions struct {
	priority int
	kind     Kind
	langs    map[string]string
}

// WithPriority places entries in the bucket for p. Lower renders first.
func WithPriority(p int) AddOption {
	return func(o *addOptions) { o.priority = p }
}

func WithKind(kind Kind) AddOption {
	return func(o *addOptions) { o.kind = kind }
}

// AsExternal marks names as ready URLs.
func AsExternal() AddOption { return WithKind(External) }

// AsInline marks names as script source.
func AsInline() AddOption { return WithKind(Inline) }

// WithI18n substitutes {{token}} placeholders in inline scripts.
func WithI18n(langs map[string]string) AddOption {
	return func(o *addOptions) { o.langs = langs }
}

func resolveAddOptions(opts []AddOption) addOptions {
	var o addOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// Collector owns the CSS and JS registries of one theme context.
type Collector struct {
	generator   Generator
	substituter *i18n.Substituter
	css         *Registry
	js          *Registry
	logger      interfaces.Logger
}

// NewCollector returns a collector generating tags with g. A nil substituter
// uses the echo translator; a nil logger discards output.
func NewCollector(g Generator, substituter *i18n.Substituter, logger interfaces.Logger) *Collector {
	if substituter == nil {
		substituter = i18n.NewSubstituter("")
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Collector{
		generator:   g,
		substituter: substituter,
		css:         NewRegistry(),
		js:          NewRegistry(),
		logger:      logger,
	}
}

// SetGenerator swaps the generator used for later registrations. Entries
// already registered keep their tags.
func (c *Collector) SetGenerator(g Generator) { c.generator = g }

// AddCSS registers stylesheets. Local names without an extension get ".css";
// missing local files are skipped.
func (c *Collector) AddCSS(files FileList, opts ...AddOption) {
	o := resolveAddOptions(opts)
	for _, name := range files {
		tag, ok := c.generator.Link(name, o.kind)
		if !ok {
			c.logger.Debug("assets.css.skipped", "file", name, "kind", o.kind.String())
			continue
		}
		c.css.Add(newEntry(name, tag, o.priority, o.kind))
	}
}

// AddJS registers scripts. Inline kinds route each item through AddInlineJS.
func (c *Collector) AddJS(files FileList, opts ...AddOption) {
	o := resolveAddOptions(opts)
	if o.kind == Inline {
		for _, script := range files {
			c.AddInlineJS(script, opts...)
		}
		return
	}
	for _, name := range files {
		tag, ok := c.generator.Script(name, o.kind)
		if !ok {
			c.logger.Debug("assets.js.skipped", "file", name, "kind", o.kind.String())
			continue
		}
		c.js.Add(newEntry(name, tag, o.priority, o.kind))
	}
}

// AddInlineJS registers a script body. Blank scripts are ignored.
func (c *Collector) AddInlineJS(script string, opts ...AddOption) {
	source := strings.TrimSpace(script)
	if source == "" {
		return
	}
	o := resolveAddOptions(opts)
	code := source
	if o.langs != nil {
		code = c.substituter.Replace(source, o.langs)
	}
	c.js.Add(newEntry(source, InlineScriptTag(code), o.priority, Inline))
}

// AddI18nJS translates script and registers it inline. A value ending in
// ".js" is read from the theme's js directory first.
func (c *Collector) AddI18nJS(script string, langs map[string]string, opts ...AddOption) error {
	source := strings.TrimSpace(script)
	if source == "" {
		return nil
	}
	text := source
	if path.Ext(source) == ".js" {
		raw, err := c.generator.Resolver.ReadFile(DirJS, source)
		if err != nil {
			return fmt.Errorf("assets: read i18n script %s: %w", source, err)
		}
		text = string(raw)
	}
	code := strings.TrimSpace(c.substituter.Replace(text, langs))
	if code == "" {
		return nil
	}
	o := resolveAddOptions(opts)
	c.js.Add(newEntry(source, InlineScriptTag(code), o.priority, Inline))
	return nil
}

// AddExternal registers a ready URL. Plugins use it once their files have
// been checked on disk.
func (c *Collector) AddExternal(t Type, url string, priority int) {
	if t == JS {
		c.js.Add(newEntry(url, ScriptTag(url), priority, External))
		return
	}
	c.css.Add(newEntry(url, LinkTag(url), priority, External))
}

func (c *Collector) RenderCSS(w io.Writer) error { return c.css.Render(w) }
func (c *Collector) RenderJS(w io.Writer) error  { return c.js.Render(w) }

func (c *Collector) CSS() string { return c.css.String() }
func (c *Collector) JS() string  { return c.js.String() }

// Buckets returns a snapshot of the buckets for t.
func (c *Collector) Buckets(t Type) []Bucket {
	if t == JS {
		return c.js.Buckets()
	}
	return c.css.Buckets()
}

// Reset drops every registered asset.
func (c *Collector) Reset() {
	c.css.Reset()
	c.js.Reset()
}

func newEntry(source, tag string, priority int, kind Kind) Entry {
	return Entry{
		Hash:     identity.AssetHash(source),
		Tag:      tag,
		Priority: priority,
		Kind:     kind,
		Source:   source,
	}
}
