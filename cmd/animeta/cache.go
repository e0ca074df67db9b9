package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached catalog data",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "prune",
		Short: "Remove expired cache entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureServices()
			if err != nil {
				return err
			}
			n, err := svc.store.Prune(cmd.Context())
			if err != nil {
				return fmt.Errorf("prune cache: %w", err)
			}
			if ctx.flags.json {
				return writeJSON(cmd, map[string]int64{"removed": n})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d expired entries\n", n)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "invalidate <anidb|tvdb> <id> | invalidate mappings",
		Short: "Drop cached data for a series or the mapping list",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureServices()
			if err != nil {
				return err
			}

			kind := strings.ToLower(args[0])
			if kind == "mappings" {
				if err := svc.mappings.Invalidate(cmd.Context()); err != nil {
					return err
				}
				svc.index.Reset()
				fmt.Fprintln(cmd.OutOrStdout(), "Invalidated mapping list")
				return nil
			}

			if len(args) != 2 {
				return fmt.Errorf("%s needs a series id", kind)
			}
			id, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[1])
			}
			switch kind {
			case "anidb":
				err = svc.anidb.InvalidateSeries(cmd.Context(), id)
			case "tvdb":
				err = svc.tvdb.InvalidateSeries(cmd.Context(), id)
			default:
				return fmt.Errorf("unknown catalog %q (expected anidb, tvdb or mappings)", args[0])
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Invalidated %s series %d\n", kind, id)
			return nil
		},
	})

	return cmd
}
