package assets

import "strconv"

// Kind selects how an asset name is turned into a tag.
type Kind int

const (
	// Local names a file inside the theme's css or js directory.
	Local Kind = iota
	// External is a ready URL used verbatim.
	External
	// Inline is script source embedded in the page.
	Inline
)

func (k Kind) String() string {
	switch k {
	case External:
		return "external"
	case Inline:
		return "inline"
	default:
		return "local"
	}
}

func LinkTag(href string) string {
	return `<link rel="stylesheet" href="` + href + `">`
}

func ScriptTag(src string) string {
	return `<script src="` + src + `"></script>`
}

func InlineScriptTag(code string) string {
	return "<script>" + code + "</script>"
}

// Generator turns asset names into tags, resolving local files against the
// theme and appending a ?v=<mtime> cache buster.
type Generator struct {
	Resolver Resolver
}

// Link returns the stylesheet tag for name. ok is false when a local file
// does not exist.
func (g Generator) Link(name string, kind Kind) (tag string, ok bool) {
	switch kind {
	case External:
		return LinkTag(name), true
	case Inline:
		return "", false
	}
	href, ok := g.localURL(DirCSS, WithExt(name, ".css"))
	if !ok {
		return "", false
	}
	return LinkTag(href), true
}

// Script returns the script tag for name. Inline kinds wrap name as code.
func (g Generator) Script(name string, kind Kind) (tag string, ok bool) {
	switch kind {
	case External:
		return ScriptTag(name), true
	case Inline:
		return InlineScriptTag(name), true
	}
	src, ok := g.localURL(DirJS, WithExt(name, ".js"))
	if !ok {
		return "", false
	}
	return ScriptTag(src), true
}

func (g Generator) localURL(dir Dir, name string) (string, bool) {
	info, ok := g.Resolver.Stat(dir, name)
	if !ok {
		return "", false
	}
	return g.Resolver.Layout.URL(dir) + name + "?v=" + strconv.FormatInt(info.ModTime().Unix(), 10), true
}
