package interfaces

import (
	"io"
)

// TemplateRenderer locates and renders named views. Names are relative to the
// renderer root; a name without extension may be resolved against the
// renderer's default extensions.
type TemplateRenderer interface {
	Exists(name string) bool
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
}

// FuncsRenderer is an optional extension for renderers that accept helper
// functions at render time. WithFuncs returns a renderer scoped to funcs and
// leaves the receiver untouched.
type FuncsRenderer interface {
	WithFuncs(funcs map[string]any) TemplateRenderer
}

// MetadataProvider is an optional extension for renderers whose views carry
// metadata (for example markdown front matter).
type MetadataProvider interface {
	Metadata(name string) (map[string]any, error)
}
