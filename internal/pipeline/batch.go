package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/animeta/internal/process"
	"github.com/vmunix/animeta/internal/propmap"
)

// Request is one entry of a batch file.
type Request struct {
	Type string `json:"type"`
	LookupInfo
}

// BatchResult is the outcome of one request. Exactly one of Record and
// Error is set.
type BatchResult struct {
	Index  int             `json:"index"`
	Name   string          `json:"name"`
	Record *propmap.Record `json:"record,omitempty"`
	Error  string          `json:"error,omitempty"`

	Err error `json:"-"`
}

// IdentifyAll identifies every request with at most parallel running at
// once. Item failures are reported per result and do not stop the batch;
// cancelling ctx does.
func (p *Pipeline) IdentifyAll(ctx context.Context, reqs []Request, parallel int) ([]BatchResult, error) {
	if parallel < 1 {
		parallel = 1
	}
	results := make([]BatchResult, len(reqs))
	for i, req := range reqs {
		results[i] = BatchResult{Index: i, Name: req.Name}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	for i, req := range reqs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			results[i] = p.identifyRequest(gctx, i, req)
			return gctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}

func (p *Pipeline) identifyRequest(ctx context.Context, i int, req Request) BatchResult {
	result := BatchResult{Index: i, Name: req.Name}

	itemType, err := process.ParseItemType(req.Type)
	if err != nil {
		result.Err = fmt.Errorf("request %d: %w", i, err)
		result.Error = result.Err.Error()
		return result
	}

	res := p.Identify(ctx, itemType, req.LookupInfo)
	if res.IsError() {
		result.Err = res.Error()
		result.Error = result.Err.Error()
		return result
	}
	record := res.MustGet().Record
	result.Record = &record
	return result
}
