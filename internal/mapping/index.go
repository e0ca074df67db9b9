// Package mapping correlates AniDB and TVDB series ids.
package mapping

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/samber/lo"
	"github.com/samber/mo"

	"github.com/vmunix/animeta/internal/process"
	"github.com/vmunix/animeta/pkg/animelist"
)

//go:generate mockgen -destination=mocks/mock_list.go -package=mocks github.com/vmunix/animeta/internal/mapping List

// List provides the full set of series mappings.
type List interface {
	Mappings(ctx context.Context) ([]animelist.SeriesMapping, error)
}

// Index answers id lookups against the mapping list. The list is loaded on
// first use and kept for the life of the Index; a failed load is retried
// by the next lookup.
type Index struct {
	list List
	log  *slog.Logger

	mu       sync.Mutex
	mappings []animelist.SeriesMapping
	loaded   bool
}

// NewIndex creates an index over list. log may be nil.
func NewIndex(list List, log *slog.Logger) *Index {
	if log != nil {
		log = log.With("component", "mapping")
	}
	return &Index{list: list, log: log}
}

func (x *Index) load(ctx context.Context) ([]animelist.SeriesMapping, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.loaded {
		return x.mappings, nil
	}

	mappings, err := x.list.Mappings(ctx)
	if err != nil {
		return nil, err
	}

	x.mappings = mappings
	x.loaded = true
	if x.log != nil {
		x.log.Info("loaded series mappings", "count", len(mappings))
	}
	return mappings, nil
}

// Reset drops the loaded list so the next lookup reloads it.
func (x *Index) Reset() {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.mappings = nil
	x.loaded = false
}

func (x *Index) loadFailure(rc process.ResultContext, err error) *process.Failure {
	return rc.Wrap(process.UpstreamFailure, err, "Failed to load series mappings")
}

// ResolveByPrimaryID returns the single mapping for an AniDB series. No
// mapping and several mappings are both failures.
func (x *Index) ResolveByPrimaryID(ctx context.Context, aniDbID int, rc process.ResultContext) mo.Result[animelist.SeriesMapping] {
	mappings, err := x.load(ctx)
	if err != nil {
		return mo.Err[animelist.SeriesMapping](x.loadFailure(rc, err))
	}

	matches := lo.Filter(mappings, func(m animelist.SeriesMapping, _ int) bool {
		return m.AniDbID == aniDbID
	})

	switch len(matches) {
	case 0:
		return mo.Err[animelist.SeriesMapping](rc.Failed(process.NotFound,
			fmt.Sprintf("No series mapping for AniDb series Id '%d'", aniDbID)))
	case 1:
		return mo.Ok(matches[0])
	default:
		return mo.Err[animelist.SeriesMapping](rc.Failed(process.Ambiguous,
			fmt.Sprintf("Multiple series mappings match AniDb series Id '%d'", aniDbID)))
	}
}

// ResolveBySecondaryID returns every mapping for a TVDB series in list
// order. A TVDB series often spans several AniDB entries, one per season.
func (x *Index) ResolveBySecondaryID(ctx context.Context, tvDbID int, rc process.ResultContext) mo.Result[[]animelist.SeriesMapping] {
	mappings, err := x.load(ctx)
	if err != nil {
		return mo.Err[[]animelist.SeriesMapping](x.loadFailure(rc, err))
	}

	matches := lo.Filter(mappings, func(m animelist.SeriesMapping, _ int) bool {
		return m.TvDbID == tvDbID
	})
	if len(matches) == 0 {
		return mo.Err[[]animelist.SeriesMapping](rc.Failed(process.NotFound,
			fmt.Sprintf("No series mapping for TvDb series Id '%d'", tvDbID)))
	}
	return mo.Ok(matches)
}
