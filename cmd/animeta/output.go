package main

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/vmunix/animeta/internal/propmap"
)

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printRecord renders a record as a two column field table, leaving out
// empty fields.
func printRecord(cmd *cobra.Command, r propmap.Record) {
	rows := [][]string{
		{"Type", r.Type},
		{"Name", r.Name},
		{"Original title", r.OriginalTitle},
	}
	if v, ok := r.IndexNumber.Get(); ok {
		rows = append(rows, []string{"Index", fmt.Sprint(v)})
	}
	if v, ok := r.ParentIndexNumber.Get(); ok {
		rows = append(rows, []string{"Parent index", fmt.Sprint(v)})
	}
	if !r.PremiereDate.IsZero() {
		rows = append(rows, []string{"Premiered", r.PremiereDate.Format("2006-01-02")})
	}
	if !r.EndDate.IsZero() {
		rows = append(rows, []string{"Ended", r.EndDate.Format("2006-01-02")})
	}
	if r.CommunityRating > 0 {
		rows = append(rows, []string{"Rating", fmt.Sprintf("%.2f", r.CommunityRating)})
	}
	rows = append(rows,
		[]string{"Genres", strings.Join(r.Genres, ", ")},
		[]string{"Tags", strings.Join(r.Tags, ", ")},
		[]string{"Studios", strings.Join(r.Studios, ", ")},
		[]string{"Air days", strings.Join(r.AirDays, ", ")},
		[]string{"Air time", r.AirTime},
	)
	for _, source := range slices.Sorted(maps.Keys(r.ProviderIDs)) {
		rows = append(rows, []string{source + " id", r.ProviderIDs[source]})
		rows = append(rows, []string{source + " page", r.ExternalURLs[source]})
	}
	rows = lo.Filter(rows, func(row []string, _ int) bool { return row[1] != "" })

	fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows, nil))
	if r.Overview != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", r.Overview)
	}
}
