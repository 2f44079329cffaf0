package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	themes "github.com/goliatone/go-themes"
)

// CLI holds the global flags shared by every subcommand.
type CLI struct {
	Config  string `short:"c" help:"Configuration file path (YAML or JSON)" type:"path"`
	Public  string `help:"Override the public directory"`
	Views   string `help:"Override the content views directory"`
	Theme   string `short:"t" help:"Override the active theme"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Render  RenderCmd  `cmd:"" help:"Render a view through the active theme"`
	Assets  AssetsCmd  `cmd:"" help:"List the tags generated for the given assets"`
	Plugins PluginsCmd `cmd:"" help:"List configured plugins"`

	out io.Writer
}

// AssetFlags registers assets before a command runs.
type AssetFlags struct {
	CSS      []string `help:"Stylesheets to register" sep:","`
	JS       []string `help:"Scripts to register" sep:","`
	Plugin   []string `help:"Plugins to load" sep:","`
	Priority int      `short:"p" help:"Priority bucket for registered assets" default:"0"`
}

func (f AssetFlags) apply(theme *themes.Theme) error {
	opts := []themes.AddOption{themes.WithPriority(f.Priority)}
	theme.AddCSS(themes.Files(f.CSS...), opts...)
	theme.AddJS(themes.Files(f.JS...), opts...)
	if len(f.Plugin) == 0 {
		return nil
	}
	return theme.LoadPlugins(themes.Files(f.Plugin...), f.Priority)
}

type RenderCmd struct {
	AssetFlags `embed:""`

	View       string            `arg:"" help:"View name, or literal content when no such view exists"`
	Data       map[string]string `short:"d" help:"Template variable as key=value"`
	PageTitle  string            `help:"Force the page title"`
	Controller string            `help:"Controller used to derive the page title"`
	Method     string            `help:"Controller method used to derive the page title"`
	Catalog    string            `help:"Translations catalog (YAML or JSON)" type:"path"`
	Output     string            `short:"o" help:"Write the page to a file instead of stdout" type:"path"`
}

func (r *RenderCmd) Run(root *CLI) error {
	var opts []themes.Option
	if r.Catalog != "" {
		catalog, err := themes.LoadCatalog(r.Catalog)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		opts = append(opts, themes.WithTranslator(catalog))
	}
	module, err := root.module(opts...)
	if err != nil {
		return err
	}

	theme := module.Init()
	if err := r.apply(theme); err != nil {
		return err
	}

	ctx := context.Background()
	if r.Controller != "" {
		ctx = themes.WithRoute(ctx, themes.Route{Controller: r.Controller, Method: r.Method})
	}
	var renderOpts []themes.RenderOption
	if r.PageTitle != "" {
		renderOpts = append(renderOpts, themes.WithPageTitle(r.PageTitle))
	}

	data := make(map[string]any, len(r.Data))
	for key, value := range r.Data {
		data[key] = value
	}

	if r.Output == "" {
		return theme.Render(ctx, root.out, r.View, data, renderOpts...)
	}
	// The page is buffered so a failed render leaves an existing file intact.
	var page bytes.Buffer
	if err := theme.Render(ctx, &page, r.View, data, renderOpts...); err != nil {
		return err
	}
	if err := os.WriteFile(r.Output, page.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

type AssetsCmd struct {
	AssetFlags `embed:""`
}

func (a *AssetsCmd) Run(root *CLI) error {
	module, err := root.module()
	if err != nil {
		return err
	}
	theme := module.Init()
	if err := a.apply(theme); err != nil {
		return err
	}
	for _, at := range []themes.AssetType{themes.CSS, themes.JS} {
		for _, bucket := range theme.Buckets(at) {
			for _, entry := range bucket.Entries {
				fmt.Fprintf(root.out, "%s\t%d\t%s\n", at, bucket.Priority, entry.Tag)
			}
		}
	}
	return nil
}

func (c *CLI) config() (themes.Config, error) {
	cfg := themes.DefaultConfig()
	if c.Config != "" {
		loaded, err := themes.LoadConfig(c.Config)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if c.Public != "" {
		cfg.PublicDir = c.Public
	}
	if c.Views != "" {
		cfg.ViewsDir = c.Views
	}
	if c.Theme != "" {
		cfg.Theme = c.Theme
	}
	if c.Verbose {
		cfg.Features.Logger = true
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

func (c *CLI) module(opts ...themes.Option) (*themes.Module, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	return themes.New(cfg, opts...)
}

func run(args []string, out io.Writer) error {
	cli := CLI{out: out}
	parser, err := kong.New(&cli,
		kong.Name("themes"),
		kong.Description("Render pages and inspect assets of go-themes theme directories."),
		kong.UsageOnError(),
	)
	if err != nil {
		return err
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	return ctx.Run(&cli)
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "themes:", err)
		os.Exit(1)
	}
}
