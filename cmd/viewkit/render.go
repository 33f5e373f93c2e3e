package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vango-dev/viewkit/internal/config"
	"github.com/vango-dev/viewkit/internal/demo"
	"github.com/vango-dev/viewkit/internal/errors"
)

func renderCmd(load func() (*config.Config, error)) *cobra.Command {
	var contentOnly bool

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the page to standard output",
		Long: `Render the todo page once, using the state stored in the
configured snapshot backend, and print the HTML.

Examples:
  viewkit render > index.html
  viewkit render --content`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			return runRender(cfg, cmd.OutOrStdout(), contentOnly)
		},
	}

	cmd.Flags().BoolVar(&contentOnly, "content", false, "Render only the live region, without the document shell")

	return cmd
}

func runRender(cfg *config.Config, out io.Writer, contentOnly bool) error {
	logger := newLogger(cfg, io.Discard)

	store, closeStore, err := openStore(cfg.Snapshot)
	if err != nil {
		return err
	}
	defer closeStore()

	app, err := demo.New(demo.Config{
		Logger:      logger,
		Namespace:   cfg.Metrics.Namespace,
		Store:       store,
		SnapshotKey: cfg.Snapshot.Key,
		QueueSize:   cfg.Host.QueueSize,
		Tick:        cfg.Demo.Tick,
	})
	if err != nil {
		return errors.New("VK201").Wrap(err)
	}
	defer app.Close()

	if contentOnly {
		html, err := app.RenderContent()
		if err != nil {
			return errors.New("VK201").Wrap(err)
		}
		_, err = fmt.Fprintln(out, html)
		return err
	}
	if err := app.RenderPage(out); err != nil {
		return errors.New("VK201").Wrap(err)
	}
	return nil
}
