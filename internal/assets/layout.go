package assets

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/goliatone/go-themes/internal/urls"
)

// Dir names a directory of the active theme.
type Dir int

const (
	DirTheme Dir = iota
	DirCSS
	DirJS
	DirImage
	DirPlugin
)

// Layout describes where a theme lives, both on disk (relative to the public
// root) and as a URL.
type Layout struct {
	ThemePath  string
	Theme      string
	CSSPath    string
	JSPath     string
	ImagePath  string
	PluginPath string
	URLs       urls.Provider
}

// Rel returns the public-relative path of dir, e.g. "themes/starter/css".
func (l Layout) Rel(dir Dir) string {
	base := path.Join(l.ThemePath, l.Theme)
	switch dir {
	case DirCSS:
		return path.Join(base, l.CSSPath)
	case DirJS:
		return path.Join(base, l.JSPath)
	case DirImage:
		return path.Join(base, l.ImagePath)
	case DirPlugin:
		return path.Join(base, l.PluginPath)
	default:
		return base
	}
}

// URL returns the absolute URL of dir with a trailing slash, ready for a
// file name to be appended.
func (l Layout) URL(dir Dir) string {
	provider := l.URLs
	if provider == nil {
		provider = urls.Static{}
	}
	return strings.TrimRight(provider.BaseURL(l.Rel(dir)), "/") + "/"
}

// Resolver locates theme files inside a filesystem rooted at the public
// directory.
type Resolver struct {
	FS     fs.FS
	Layout Layout
}

// Path joins name onto dir and rejects names that would escape it.
func (r Resolver) Path(dir Dir, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("assets: file name required")
	}
	base := r.Layout.Rel(dir)
	clean := path.Join(base, name)
	if clean != base && !strings.HasPrefix(clean, base+"/") {
		return "", fmt.Errorf("assets: %q escapes %s", name, base)
	}
	if !fs.ValidPath(clean) {
		return "", fmt.Errorf("assets: invalid path %q", clean)
	}
	return clean, nil
}

// Stat returns file info for name under dir when it is a regular file.
func (r Resolver) Stat(dir Dir, name string) (fs.FileInfo, bool) {
	if r.FS == nil {
		return nil, false
	}
	rel, err := r.Path(dir, name)
	if err != nil {
		return nil, false
	}
	info, err := fs.Stat(r.FS, rel)
	if err != nil || !info.Mode().IsRegular() {
		return nil, false
	}
	return info, true
}

// Exists reports whether name is a regular file under dir.
func (r Resolver) Exists(dir Dir, name string) bool {
	_, ok := r.Stat(dir, name)
	return ok
}

// ReadFile reads name under dir.
func (r Resolver) ReadFile(dir Dir, name string) ([]byte, error) {
	if r.FS == nil {
		return nil, fmt.Errorf("assets: filesystem not configured")
	}
	rel, err := r.Path(dir, name)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(r.FS, rel)
}

// WithExt appends ext when name has no extension.
func WithExt(name, ext string) string {
	if path.Ext(name) == "" {
		return name + ext
	}
	return name
}
