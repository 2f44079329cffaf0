package themes

import (
	"github.com/goliatone/go-themes/internal/plugins"
	"github.com/goliatone/go-themes/internal/runtimeconfig"
	core "github.com/goliatone/go-themes/internal/themes"
)

var (
	ErrConfigSchema        = runtimeconfig.ErrConfigSchema
	ErrMissingTemplateView = core.ErrMissingTemplateView
	ErrPluginNotRegistered = plugins.ErrPluginNotRegistered
	ErrPluginNotFound      = plugins.ErrPluginNotFound
)

type (
	Config           = runtimeconfig.Config
	PluginDefinition = runtimeconfig.PluginDefinition
	RouteGroup       = runtimeconfig.RouteGroup
	Features         = runtimeconfig.Features
	LoggingConfig    = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a YAML or JSON configuration file, validates it against
// the configuration schema and overlays it on DefaultConfig.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.LoadConfig(path)
}

// ParseConfig is LoadConfig for an in-memory document.
func ParseConfig(raw []byte) (Config, error) {
	return runtimeconfig.ParseConfig(raw)
}
