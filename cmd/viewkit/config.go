package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/viewkit/internal/config"
)

func configCmd(load func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after defaults, the configuration file and
VIEWKIT_ environment overrides have been applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if cfg.Path() != "" {
				fmt.Fprintf(out, "# %s\n", cfg.Path())
			}
			_, err = out.Write(data)
			return err
		},
	}
}
