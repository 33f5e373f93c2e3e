package main

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/viewkit/internal/config"
	"github.com/vango-dev/viewkit/internal/demo"
	"github.com/vango-dev/viewkit/internal/errors"
	"github.com/vango-dev/viewkit/pkg/snapshot"
)

func snapshotCmd(load func() (*config.Config, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Inspect stored snapshots",
	}
	cmd.AddCommand(snapshotListCmd(load), snapshotShowCmd(load))
	return cmd
}

func snapshotListCmd(load func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List snapshot keys (bolt backend only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if cfg.Snapshot.Backend != config.BackendBolt {
				return errors.New("VK202").
					WithDetail("listing is not supported by the " + cfg.Snapshot.Backend + " backend").
					WithSuggestion("Set snapshot.backend to bolt")
			}

			store, err := snapshot.OpenBolt(cfg.Snapshot.Path)
			if err != nil {
				return errors.New("VK300").WithDetail("bolt database " + cfg.Snapshot.Path).Wrap(err)
			}
			defer store.Close()

			keys, err := store.Keys()
			if err != nil {
				return errors.New("VK300").Wrap(err)
			}
			out := cmd.OutOrStdout()
			if len(keys) == 0 {
				warn(out, "No snapshots in %s", cfg.Snapshot.Path)
				return nil
			}
			for _, k := range keys {
				fmt.Fprintln(out, k)
			}
			return nil
		},
	}
}

func snapshotShowCmd(load func() (*config.Config, error)) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show [key]",
		Short: "Decode and print a snapshot",
		Long: `Decode the snapshot stored under key (default: snapshot.key) and
print it as YAML or JSON.

Examples:
  viewkit snapshot show
  viewkit snapshot show todos --format=json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			key := cfg.Snapshot.Key
			if len(args) == 1 {
				key = args[0]
			}
			if format != "yaml" && format != "json" {
				return errors.New("VK202").
					WithDetail("format " + format + " is not supported").
					WithSuggestion("Use yaml or json")
			}

			store, closeStore, err := openStore(cfg.Snapshot)
			if err != nil {
				return err
			}
			defer closeStore()

			state, err := loadState(cmd.Context(), store, key)
			if err != nil {
				return err
			}
			return printState(cmd.OutOrStdout(), state, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format (yaml or json)")

	return cmd
}

func loadState(ctx context.Context, store snapshot.Store, key string) (demo.State, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	data, err := store.Load(ctx, key)
	if stderrors.Is(err, snapshot.ErrNotFound) {
		return demo.State{}, errors.New("VK301").WithDetail("key " + key)
	}
	if err != nil {
		return demo.State{}, errors.New("VK300").Wrap(err)
	}
	state, err := snapshot.Decode[demo.State](data)
	if err != nil {
		return demo.State{}, errors.New("VK302").WithDetail("key " + key).Wrap(err)
	}
	return state, nil
}

func printState(w io.Writer, state demo.State, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(state)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(state); err != nil {
		return err
	}
	return enc.Close()
}
