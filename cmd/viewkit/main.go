package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/viewkit/internal/config"
	"github.com/vango-dev/viewkit/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╦  ╦┬┌─┐┬ ┬┬┌─┬┌┬┐
  ╚╗╔╝│├┤ ││││├┴┐│ │
   ╚╝ ┴└─┘└┴┘┴ ┴┴ ┴
`

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "viewkit",
		Short: "Views, streams and host components for server-rendered UIs",
		Long: `viewkit serves a live todo list built from views over a host
component, a clock stream and snapshot persistence.

Configuration is read from viewkit.yaml (or --config) and can be
overridden with VIEWKIT_ environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Configuration file (default: ./viewkit.yaml if present)")

	load := func() (*config.Config, error) {
		return loadConfig(configPath)
	}

	rootCmd.AddCommand(
		serveCmd(load),
		renderCmd(load),
		snapshotCmd(load),
		configCmd(load),
		versionCmd(),
	)
	return rootCmd
}

// loadConfig loads and validates the configuration. Without an explicit
// path, viewkit.yaml in the working directory is used when it exists.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if _, err := os.Stat(config.FileName); err == nil {
			path = config.FileName
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
