// Package views renders html/template layouts and Markdown content views from
// a filesystem.
package views

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/goliatone/go-themes/internal/markdown"
	"github.com/goliatone/go-themes/pkg/interfaces"
)

const markdownExt = ".md"

// Option configures an Engine.
type Option func(*Engine)

// WithExtension sets the template extension tried for names without one.
// Defaults to ".html".
func WithExtension(ext string) Option {
	return func(e *Engine) {
		if ext = strings.TrimSpace(ext); ext != "" {
			e.ext = ext
		}
	}
}

// WithFuncs registers template funcs available at parse time. Funcs used by
// templates must be declared here; WithFuncs on the engine can later rebind
// them per render.
func WithFuncs(funcs template.FuncMap) Option {
	return func(e *Engine) {
		for name, fn := range funcs {
			e.funcs[name] = fn
		}
	}
}

// WithMarkdown sets the parser used for .md views.
func WithMarkdown(parser *markdown.Parser) Option {
	return func(e *Engine) {
		if parser != nil {
			e.markdown = parser
		}
	}
}

// Engine implements interfaces.TemplateRenderer over an fs.FS. Each view is
// parsed on its first render and cached. Parsed views are only ever cloned,
// never executed, so funcs can be rebound per render with WithFuncs.
type Engine struct {
	fsys      fs.FS
	ext       string
	funcs     template.FuncMap
	overrides template.FuncMap
	markdown  *markdown.Parser
	parsed    *parsedSet
}

// parsedSet caches parsed views by file. Parse failures are not cached.
type parsedSet struct {
	mu    sync.Mutex
	files map[string]*template.Template
}

var (
	_ interfaces.TemplateRenderer = (*Engine)(nil)
	_ interfaces.FuncsRenderer    = (*Engine)(nil)
	_ interfaces.MetadataProvider = (*Engine)(nil)
)

// New returns an engine reading templates from fsys.
func New(fsys fs.FS, opts ...Option) *Engine {
	e := &Engine{
		fsys:   fsys,
		ext:    ".html",
		funcs:  template.FuncMap{"safeHTML": SafeHTML},
		parsed: &parsedSet{files: map[string]*template.Template{}},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	if e.markdown == nil {
		e.markdown = markdown.NewParser(markdown.Options{})
	}
	return e
}

// template parses file on first use. Only views that are rendered are
// parsed, so unrelated files under the same root cannot break a render.
func (e *Engine) template(file string) (*template.Template, error) {
	e.parsed.mu.Lock()
	defer e.parsed.mu.Unlock()
	if tpl, ok := e.parsed.files[file]; ok {
		return tpl, nil
	}
	raw, err := fs.ReadFile(e.fsys, file)
	if err != nil {
		return nil, err
	}
	tpl, err := template.New(file).Funcs(e.funcs).Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("views: parse %s: %w", file, err)
	}
	e.parsed.files[file] = tpl
	return tpl, nil
}

// isView reports whether name carries a view extension: the template
// extension, ".tmpl" or ".md".
func (e *Engine) isView(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	return ext == strings.ToLower(e.ext) || ext == ".tmpl" || ext == markdownExt
}

// resolve maps a view name to a file in fsys. Names without an extension try
// the template extension then ".md".
func (e *Engine) resolve(name string) (string, bool) {
	name = strings.TrimPrefix(path.Clean("/"+strings.TrimSpace(name)), "/")
	if name == "" || e.fsys == nil {
		return "", false
	}
	candidates := []string{name + e.ext, name + markdownExt}
	if e.isView(name) {
		candidates = []string{name}
	}
	for _, candidate := range candidates {
		info, err := fs.Stat(e.fsys, candidate)
		if err == nil && info.Mode().IsRegular() {
			return candidate, true
		}
	}
	return "", false
}

// Exists reports whether name resolves to a template or Markdown file.
func (e *Engine) Exists(name string) bool {
	_, ok := e.resolve(name)
	return ok
}

// Render executes the named view with data. When out is given the result is
// written there and the returned string is empty.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	file, ok := e.resolve(name)
	if !ok {
		return "", fmt.Errorf("views: template %q not found", name)
	}
	if path.Ext(file) == markdownExt {
		html, err := e.renderMarkdown(file)
		if err != nil {
			return "", err
		}
		return emit(out, func(w io.Writer) error {
			_, err := w.Write(html)
			return err
		})
	}

	tpl, err := e.executable(file)
	if err != nil {
		return "", err
	}
	return emit(out, func(w io.Writer) error {
		return tpl.Execute(w, data)
	})
}

// RenderString parses content as a one-off template and executes it.
func (e *Engine) RenderString(content string, data any, out ...io.Writer) (string, error) {
	tpl, err := template.New("inline").Funcs(e.funcs).Funcs(e.overrides).Parse(content)
	if err != nil {
		return "", fmt.Errorf("views: parse inline template: %w", err)
	}
	return emit(out, func(w io.Writer) error { return tpl.Execute(w, data) })
}

// WithFuncs returns a renderer sharing the parsed templates with funcs
// rebound. Only names declared at construction can be referenced by
// templates; others are still usable from RenderString.
func (e *Engine) WithFuncs(funcs map[string]any) interfaces.TemplateRenderer {
	overrides := make(template.FuncMap, len(e.overrides)+len(funcs))
	for name, fn := range e.overrides {
		overrides[name] = fn
	}
	for name, fn := range funcs {
		overrides[name] = fn
	}
	clone := *e
	clone.overrides = overrides
	return &clone
}

// Metadata returns the front matter of a Markdown view. Template views have
// no metadata.
func (e *Engine) Metadata(name string) (map[string]any, error) {
	file, ok := e.resolve(name)
	if !ok || path.Ext(file) != markdownExt {
		return nil, nil
	}
	raw, err := fs.ReadFile(e.fsys, file)
	if err != nil {
		return nil, err
	}
	meta, _, err := markdown.ParseFrontMatter(raw)
	return meta, err
}

func (e *Engine) executable(file string) (*template.Template, error) {
	base, err := e.template(file)
	if err != nil {
		return nil, err
	}
	tpl, err := base.Clone()
	if err != nil {
		return nil, err
	}
	if len(e.overrides) > 0 {
		tpl.Funcs(e.overrides)
	}
	return tpl, nil
}

func (e *Engine) renderMarkdown(file string) ([]byte, error) {
	raw, err := fs.ReadFile(e.fsys, file)
	if err != nil {
		return nil, err
	}
	_, body, err := markdown.ParseFrontMatter(raw)
	if err != nil {
		return nil, err
	}
	return e.markdown.Convert(body)
}

func emit(out []io.Writer, write func(io.Writer) error) (string, error) {
	if len(out) > 0 && out[0] != nil {
		return "", write(out[0])
	}
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SafeHTML marks value as trusted HTML.
func SafeHTML(value any) template.HTML {
	switch v := value.(type) {
	case nil:
		return ""
	case template.HTML:
		return v
	case string:
		return template.HTML(v)
	default:
		return template.HTML(fmt.Sprint(v))
	}
}
