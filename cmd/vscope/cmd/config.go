package cmd

import (
	"fmt"
	"io"

	"github.com/go-drift/vscope/internal/config"
)

func init() {
	RegisterCommand(&Command{
		Name:  "config",
		Short: "Show the resolved configuration",
		Long: `Resolve and print the configuration of a project directory.

Settings come from vscope.yaml or vscope.toml when present; anything
unset falls back to its default.`,
		Usage: "vscope config [dir]",
		Run:   runConfig,
	})
}

func runConfig(args []string, out io.Writer) error {
	dir, err := projectDir(args)
	if err != nil {
		return err
	}
	cfg, err := config.Resolve(dir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	source := cfg.Source
	if source == "" {
		source = "(defaults)"
	}
	limit := fmt.Sprint(cfg.MaxUnitsPerFlush)
	if cfg.MaxUnitsPerFlush == 0 {
		limit = "unlimited"
	}

	fmt.Fprintf(out, "source:              %s\n", source)
	fmt.Fprintf(out, "module:              %s\n", cfg.ModulePath)
	fmt.Fprintf(out, "app.name:            %s\n", cfg.AppName)
	fmt.Fprintf(out, "max_units_per_flush: %s\n", limit)
	fmt.Fprintf(out, "auto_flush:          %t\n", cfg.AutoFlush)
	fmt.Fprintf(out, "log.level:           %s\n", cfg.LogLevel)
	fmt.Fprintf(out, "log.development:     %t\n", cfg.LogDevelopment)
	return nil
}
