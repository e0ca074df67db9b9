package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/animeta/internal/pipeline"
	"github.com/vmunix/animeta/internal/process"
)

type identifyFlags struct {
	name        string
	index       int
	parentIndex int
	anidb       int
	tvdb        int
	seriesAniDb int
	seriesTvDb  int
	language    string
}

func (f *identifyFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.name, "name", "n", "", "Item name")
	cmd.Flags().IntVar(&f.index, "index", 0, "Season or episode number")
	cmd.Flags().IntVar(&f.parentIndex, "parent-index", 0, "Season number of an episode (0 for specials)")
	cmd.Flags().IntVar(&f.anidb, "anidb", 0, "Known AniDB id")
	cmd.Flags().IntVar(&f.tvdb, "tvdb", 0, "Known TVDB id")
	cmd.Flags().IntVar(&f.seriesAniDb, "series-anidb", 0, "AniDB id of the parent series")
	cmd.Flags().IntVar(&f.seriesTvDb, "series-tvdb", 0, "TVDB id of the parent series")
	cmd.Flags().StringVar(&f.language, "language", "", "Preferred title language")
}

func providerIDs(anidb, tvdb int) map[string]string {
	ids := map[string]string{}
	if anidb > 0 {
		ids[process.SourceAniDb] = strconv.Itoa(anidb)
	}
	if tvdb > 0 {
		ids[process.SourceTvDb] = strconv.Itoa(tvdb)
	}
	return ids
}

func (f *identifyFlags) lookupInfo(cmd *cobra.Command) pipeline.LookupInfo {
	info := pipeline.LookupInfo{
		Name:              f.name,
		Language:          f.language,
		ProviderIDs:       providerIDs(f.anidb, f.tvdb),
		SeriesProviderIDs: providerIDs(f.seriesAniDb, f.seriesTvDb),
	}
	// Zero is a valid parent index (specials), so only set flags count.
	if cmd.Flags().Changed("index") {
		info.Index = &f.index
	}
	if cmd.Flags().Changed("parent-index") {
		info.ParentIndex = &f.parentIndex
	}
	return info
}

func newIdentifyCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "identify",
		Short: "Identify an item and print its metadata",
	}
	for _, itemType := range []process.ItemType{process.Series, process.Season, process.Episode} {
		cmd.AddCommand(newIdentifyItemCommand(ctx, itemType))
	}
	cmd.AddCommand(newIdentifyBatchCommand(ctx))
	return cmd
}

func newIdentifyItemCommand(ctx *commandContext, itemType process.ItemType) *cobra.Command {
	flags := &identifyFlags{}
	name := strings.ToLower(itemType.String())
	cmd := &cobra.Command{
		Use:   name + " [name]",
		Short: "Identify a " + name,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				flags.name = args[0]
			}
			svc, err := ctx.ensureServices()
			if err != nil {
				return err
			}

			res, err := svc.pipeline.Identify(cmd.Context(), itemType, flags.lookupInfo(cmd)).Get()
			if err != nil {
				return err
			}
			if ctx.flags.json {
				return writeJSON(cmd, res.Record)
			}
			printRecord(cmd, res.Record)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func readRequests(cmd *cobra.Command, path string) ([]pipeline.Request, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	var reqs []pipeline.Request
	if err := json.NewDecoder(r).Decode(&reqs); err != nil {
		return nil, fmt.Errorf("decode requests: %w", err)
	}
	return reqs, nil
}

func newIdentifyBatchCommand(ctx *commandContext) *cobra.Command {
	var parallel int
	cmd := &cobra.Command{
		Use:   "batch <file|->",
		Short: "Identify every item in a JSON request file",
		Long: `Reads a JSON array of requests such as

  [{"type": "series", "name": "Tenchi Muyou!"},
   {"type": "episode", "index": 2, "parentIndex": 1, "seriesProviderIds": {"AniDb": "56"}}]

and identifies them concurrently. Item failures are reported per entry.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reqs, err := readRequests(cmd, args[0])
			if err != nil {
				return err
			}
			svc, err := ctx.ensureServices()
			if err != nil {
				return err
			}

			results, err := svc.pipeline.IdentifyAll(cmd.Context(), reqs, parallel)
			if err != nil {
				return err
			}
			if ctx.flags.json {
				return writeJSON(cmd, results)
			}

			rows := make([][]string, 0, len(results))
			failed := 0
			for _, r := range results {
				status, detail := "ok", ""
				if r.Record != nil {
					detail = r.Record.Name
				} else {
					status, detail = "failed", r.Error
					failed++
				}
				rows = append(rows, []string{strconv.Itoa(r.Index), r.Name, status, detail})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"#", "Request", "Status", "Result"}, rows,
				[]columnAlignment{alignRight}))
			fmt.Fprintf(cmd.OutOrStdout(), "%d identified, %d failed\n", len(results)-failed, failed)
			return nil
		},
	}
	cmd.Flags().IntVarP(&parallel, "parallel", "p", 4, "Items identified at once")
	return cmd
}
