package main

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-themes/internal/plugins"
)

type PluginsCmd struct{}

func (p *PluginsCmd) Run(root *CLI) error {
	cfg, err := root.config()
	if err != nil {
		return err
	}
	table := plugins.FromConfig(cfg.Plugins)
	for _, name := range table.Names() {
		def := table[name]
		fmt.Fprintf(root.out, "%s\tcss=%s\tjs=%s\n", name, strings.Join(def.CSS, ","), strings.Join(def.JS, ","))
	}
	return nil
}
