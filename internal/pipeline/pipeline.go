// Package pipeline identifies an item in the primary catalog, gathers the
// other catalogs' data for it and projects the result onto a record.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/samber/mo"

	"github.com/vmunix/animeta/internal/process"
	"github.com/vmunix/animeta/internal/propmap"
)

// Resolution is a successfully identified item and its record.
type Resolution struct {
	Item   *process.MediaItem
	Record propmap.Record
}

// Pipeline runs identification. It keeps no per-item state and is safe
// for concurrent use.
type Pipeline struct {
	registry *process.Registry
	engine   *propmap.Engine
	language string
	log      *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLanguage sets the language used when lookup info has none.
func WithLanguage(lang string) Option {
	return func(p *Pipeline) { p.language = lang }
}

// WithLogger sets a logger. A nil logger is ignored.
func WithLogger(log *slog.Logger) Option {
	return func(p *Pipeline) {
		if log != nil {
			p.log = log.With("component", "pipeline")
		}
	}
}

func New(registry *process.Registry, engine *propmap.Engine, opts ...Option) *Pipeline {
	p := &Pipeline{registry: registry, engine: engine, language: "en"}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Identify resolves one item. The first failing stage ends the run.
func (p *Pipeline) Identify(ctx context.Context, itemType process.ItemType, info LookupInfo) mo.Result[Resolution] {
	start := time.Now()
	d := BuildDescriptor(itemType, info, p.language)

	log := p.log
	if log != nil {
		log = log.With("run_id", uuid.NewString(), "item", d.String())
		log.Debug("identifying item", "existing_ids", d.ExistingIDs())
	}

	res := p.identify(ctx, d, log)
	if log != nil {
		if res.IsError() {
			log.Info("identification failed", "error", res.Error(), "duration_ms", time.Since(start).Milliseconds())
		} else {
			log.Info("identified item", "name", res.MustGet().Record.Name,
				"sources", res.MustGet().Item.Sources(), "duration_ms", time.Since(start).Milliseconds())
		}
	}
	return res
}

func (p *Pipeline) identify(ctx context.Context, d process.ItemDescriptor, log *slog.Logger) mo.Result[Resolution] {
	primary := p.registry.Primary()

	identified := primary.Identify(ctx, d)
	if identified.IsError() {
		return mo.Err[Resolution](identified.Error())
	}
	item := process.NewMediaItem(d, d.ItemType(), identified.MustGet())

	built := p.build(ctx, item, log)
	if built.IsError() {
		return mo.Err[Resolution](built.Error())
	}
	item = built.MustGet()

	projected := p.engine.Project(item)
	if projected.IsError() {
		return mo.Err[Resolution](projected.Error())
	}
	return mo.Ok(Resolution{Item: item, Record: projected.MustGet()})
}

// build adds each secondary source's data in registry order. A source
// with no loader for the item type is skipped when it can borrow the
// primary data instead.
func (p *Pipeline) build(ctx context.Context, item *process.MediaItem, log *slog.Logger) mo.Result[*process.MediaItem] {
	itemType := item.ItemType()

	for _, source := range p.registry.Secondary() {
		if err := ctx.Err(); err != nil {
			return mo.Err[*process.MediaItem](err)
		}

		found := source.FindLoader(itemType)
		if found.IsError() {
			if source.ShouldUsePlaceholder(itemType) {
				if log != nil {
					log.Debug("no loader, using placeholder data", "source", source.Name())
				}
				continue
			}
			return mo.Err[*process.MediaItem](withItemName(found.Error(), item))
		}

		loaded := found.MustGet().LoadFrom(ctx, item)
		if loaded.IsError() {
			return mo.Err[*process.MediaItem](loaded.Error())
		}

		added := item.AddData(loaded.MustGet())
		if added.IsError() {
			return added
		}
		item = added.MustGet()

		if log != nil {
			log.Debug("loaded source data", "source", source.Name())
		}
	}
	return mo.Ok(item)
}

// withItemName fills in the item name on failures raised where only the
// source and item type were known.
func withItemName(err error, item *process.MediaItem) error {
	f := process.AsFailure(err)
	if f.ItemName != "" {
		return f
	}
	named := *f
	named.ItemName = item.Descriptor().Identifier().Name
	return &named
}
