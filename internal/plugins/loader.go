package plugins

import (
	"errors"
	"sort"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-themes/internal/assets"
	"github.com/goliatone/go-themes/internal/logging"
	"github.com/goliatone/go-themes/internal/runtimeconfig"
	"github.com/goliatone/go-themes/pkg/interfaces"
)

const (
	codeNotRegistered = "PLUGIN_NOT_REGISTERED"
	codeFileNotFound  = "PLUGIN_FILE_NOT_FOUND"
)

var (
	// ErrPluginNotRegistered is returned for names missing from the plugin table.
	ErrPluginNotRegistered = errors.New("themes: plugin not registered")
	// ErrPluginNotFound is returned when a declared plugin file is absent.
	ErrPluginNotFound = errors.New("themes: plugin file not found")
)

// Definition lists the files a plugin ships, relative to the plugin directory.
type Definition struct {
	CSS []string
	JS  []string
}

// Table maps plugin names to their definitions.
type Table map[string]Definition

// FromConfig builds a Table from the configured plugin definitions.
func FromConfig(defs map[string]runtimeconfig.PluginDefinition) Table {
	table := make(Table, len(defs))
	for name, def := range defs {
		table[name] = Definition{CSS: def.CSS, JS: def.JS}
	}
	return table
}

// Loader registers plugin files into a collector.
type Loader struct {
	table     Table
	resolver  assets.Resolver
	collector *assets.Collector
	logger    interfaces.Logger
}

// NewLoader wires a loader. A nil logger discards output.
func NewLoader(table Table, resolver assets.Resolver, collector *assets.Collector, logger interfaces.Logger) *Loader {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Loader{table: table, resolver: resolver, collector: collector, logger: logger}
}

// Load registers every plugin in names, in caller order, at priority. Each
// plugin contributes its CSS files then its JS files in declared order. The
// first unknown plugin or missing file aborts the call; files registered
// before the failure stay registered.
func (l *Loader) Load(names assets.FileList, priority int) error {
	for _, name := range names {
		def, ok := l.table[name]
		if !ok {
			return goerrors.Wrap(ErrPluginNotRegistered, goerrors.CategoryNotFound, "plugin "+name+" is not registered").
				WithTextCode(codeNotRegistered).
				WithMetadata(map[string]any{"plugin": name})
		}
		if err := l.register(name, assets.CSS, def.CSS, priority); err != nil {
			return err
		}
		if err := l.register(name, assets.JS, def.JS, priority); err != nil {
			return err
		}
		l.logger.Debug("plugins.loaded", "plugin", name, "css", len(def.CSS), "js", len(def.JS), "priority", priority)
	}
	return nil
}

func (l *Loader) register(plugin string, t assets.Type, files []string, priority int) error {
	base := l.resolver.Layout.URL(assets.DirPlugin)
	for _, file := range files {
		if !l.resolver.Exists(assets.DirPlugin, file) {
			l.logger.Warn("plugins.file.missing", "plugin", plugin, "file", file)
			return goerrors.Wrap(ErrPluginNotFound, goerrors.CategoryNotFound, "plugin file "+file+" not found").
				WithTextCode(codeFileNotFound).
				WithMetadata(map[string]any{"plugin": plugin, "file": file})
		}
		l.collector.AddExternal(t, base+file, priority)
	}
	return nil
}

// Names returns the registered plugin names in sorted order.
func (t Table) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
