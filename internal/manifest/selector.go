// Package manifest selects go-theme manifests for theme directories and
// exposes their tokens and asset keys to layouts.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	gotheme "github.com/goliatone/go-theme"
	"github.com/google/uuid"

	"github.com/goliatone/go-themes/internal/identity"
)

// Loader reads a manifest from a theme directory.
type Loader interface {
	Load(themeDir string) (*gotheme.Manifest, error)
}

// DirLoader loads manifests from the local filesystem.
type DirLoader struct{}

func (DirLoader) Load(themeDir string) (*gotheme.Manifest, error) {
	cleaned := filepath.Clean(strings.TrimSpace(themeDir))
	if cleaned == "" || cleaned == "." {
		return nil, fmt.Errorf("manifest: theme directory required")
	}
	return gotheme.LoadDir(os.DirFS(cleaned), ".")
}

// Options configures a Selector.
type Options struct {
	Loader         Loader
	DefaultTheme   string
	DefaultVariant string
}

// Selector caches manifests per theme directory and resolves variant
// selections. It is safe for concurrent use.
type Selector struct {
	registry       *gotheme.MemoryRegistry
	loader         Loader
	defaultTheme   string
	defaultVariant string

	mu        sync.Mutex
	manifests map[uuid.UUID]*gotheme.Manifest
	failures  map[uuid.UUID]error
}

func NewSelector(opts Options) *Selector {
	loader := opts.Loader
	if loader == nil {
		loader = DirLoader{}
	}
	return &Selector{
		registry:       gotheme.NewRegistry(),
		loader:         loader,
		defaultTheme:   strings.TrimSpace(opts.DefaultTheme),
		defaultVariant: strings.TrimSpace(opts.DefaultVariant),
		manifests:      map[uuid.UUID]*gotheme.Manifest{},
		failures:       map[uuid.UUID]error{},
	}
}

// Select loads (once) the manifest found in themeDir, registers it under
// name and returns the selection for variant.
func (s *Selector) Select(name, themeDir, variant string) (*gotheme.Selection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("manifest: theme name required")
	}
	if _, err := s.ensure(name, themeDir); err != nil {
		return nil, err
	}

	if variant = strings.TrimSpace(variant); variant == "" {
		variant = s.defaultVariant
	}
	selector := gotheme.Selector{
		Registry:       s.registry,
		DefaultTheme:   s.defaultTheme,
		DefaultVariant: s.defaultVariant,
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("manifest: select %s: %w", name, err)
	}
	return selection, nil
}

func (s *Selector) ensure(name, themeDir string) (*gotheme.Manifest, error) {
	id := identity.ThemeID(themeDir)

	s.mu.Lock()
	defer s.mu.Unlock()

	if manifest, ok := s.manifests[id]; ok {
		return manifest, nil
	}
	if err, ok := s.failures[id]; ok {
		return nil, err
	}

	manifest, err := s.loader.Load(themeDir)
	if err != nil {
		err = fmt.Errorf("manifest: load %s: %w", themeDir, err)
		s.failures[id] = err
		return nil, err
	}

	normalized := *manifest
	if !strings.EqualFold(strings.TrimSpace(normalized.Name), name) {
		normalized.Name = name
	}
	if err := s.registry.Register(&normalized); err != nil {
		err = fmt.Errorf("manifest: register %s: %w", name, err)
		s.failures[id] = err
		return nil, err
	}
	s.manifests[id] = &normalized
	return &normalized, nil
}

// Context is the template-facing view of a selection.
type Context struct {
	Name    string
	Variant string
	Tokens  map[string]string
	CSSVars map[string]string
	Asset   func(key string) string
}

// NewContext flattens selection for templates. A nil selection yields empty
// maps and an asset func returning "".
func NewContext(selection *gotheme.Selection, cssPrefix string) Context {
	if selection == nil {
		return Context{
			Tokens:  map[string]string{},
			CSSVars: map[string]string{},
			Asset:   func(string) string { return "" },
		}
	}
	return Context{
		Name:    selection.Theme,
		Variant: selection.Variant,
		Tokens:  selection.Tokens(),
		CSSVars: selection.CSSVariables(cssPrefix),
		Asset: func(key string) string {
			url, _ := selection.Asset(key)
			return url
		},
	}
}
