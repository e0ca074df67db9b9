package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vmunix/animeta/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create and check configuration files",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "Write the example configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultPath()
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "test [path]",
		Short: "Load and validate a configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ctx.flags.config
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				discovered, err := config.Discover()
				if err != nil {
					return err
				}
				path = discovered
			}
			cfg, err := config.Load(path)
			var cfgErr *config.ConfigError
			if errors.As(err, &cfgErr) && ctx.flags.json && len(cfgErr.Problems) > 0 {
				if werr := writeJSON(cmd, map[string]any{"path": path, "valid": false, "problems": cfgErr.Problems}); werr != nil {
					return werr
				}
				return err
			}
			if err != nil {
				return err
			}
			if ctx.flags.json {
				return writeJSON(cmd, map[string]any{"path": path, "valid": true})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: OK (cache: %s, language: %s)\n", path, cfg.Cache.Driver, cfg.Metadata.Language)
			return nil
		},
	})

	return cmd
}
