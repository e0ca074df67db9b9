package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/vmunix/animeta/internal/process"
	"github.com/vmunix/animeta/internal/propmap"
	"github.com/vmunix/animeta/pkg/animelist"
)

func newMappingCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "mapping <anidb|tvdb> <id>",
		Short: "Show the anime-list mapping for a series id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[1])
			}
			svc, err := ctx.ensureServices()
			if err != nil {
				return err
			}

			var mappings []animelist.SeriesMapping
			switch strings.ToLower(args[0]) {
			case "anidb":
				rc := process.ResultContext{Source: process.SourceAniDb, ItemType: process.Series}
				m, err := svc.index.ResolveByPrimaryID(cmd.Context(), id, rc).Get()
				if err != nil {
					return err
				}
				mappings = []animelist.SeriesMapping{m}
			case "tvdb":
				rc := process.ResultContext{Source: process.SourceTvDb, ItemType: process.Series}
				if mappings, err = svc.index.ResolveBySecondaryID(cmd.Context(), id, rc).Get(); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown catalog %q (expected anidb or tvdb)", args[0])
			}

			if ctx.flags.json {
				return writeJSON(cmd, mappings)
			}
			rows := lo.Map(mappings, func(m animelist.SeriesMapping, _ int) []string {
				season := strconv.Itoa(m.DefaultSeason)
				if m.Absolute {
					season = "absolute"
				}
				return []string{strconv.Itoa(m.AniDbID), strconv.Itoa(m.TvDbID), season,
					strconv.Itoa(m.EpisodeOffset), strconv.Itoa(len(m.Groups)), m.Name}
			})
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"AniDB", "TVDB", "Season", "Offset", "Groups", "Name"}, rows,
				[]columnAlignment{alignRight, alignRight, alignRight, alignRight, alignRight}))
			return nil
		},
	}
}

type itemDefinition struct {
	ItemType string `json:"itemType"`
	propmap.Definition
}

func newMappingsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "mappings [series|season|episode]",
		Short: "List the property mappings applied to each item type",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			types := []process.ItemType{process.Series, process.Season, process.Episode}
			if len(args) == 1 {
				t, err := process.ParseItemType(args[0])
				if err != nil {
					return err
				}
				types = []process.ItemType{t}
			}
			svc, err := ctx.ensureServices()
			if err != nil {
				return err
			}

			var defs []itemDefinition
			for _, t := range types {
				for _, d := range svc.engine.Definitions(t) {
					defs = append(defs, itemDefinition{ItemType: t.String(), Definition: d})
				}
			}
			if ctx.flags.json {
				return writeJSON(cmd, defs)
			}
			rows := lo.Map(defs, func(d itemDefinition, _ int) []string {
				return []string{d.ItemType, d.Source, d.Field, d.Name, d.PayloadType}
			})
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Item", "Source", "Field", "Mapping", "Payload"}, rows, nil))
			return nil
		},
	}
}
