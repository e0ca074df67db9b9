package propmap

import (
	"log/slog"

	"github.com/samber/lo"
	"github.com/samber/mo"

	"github.com/vmunix/animeta/internal/process"
)

// Definition describes one mapping for display.
type Definition struct {
	Name        string `json:"name"`
	Source      string `json:"source"`
	PayloadType string `json:"payloadType"`
	Field       string `json:"field"`
}

// Engine projects media items onto records.
type Engine struct {
	registry *process.Registry
	set      *Set
	opts     Options
	log      *slog.Logger
}

// NewEngine creates an engine applying set in the registry's source order.
// log may be nil.
func NewEngine(registry *process.Registry, set *Set, opts Options, log *slog.Logger) *Engine {
	if log != nil {
		log = log.With("component", "propmap")
	}
	return &Engine{registry: registry, set: set, opts: opts, log: log}
}

// Project builds the record for item. Sources are visited in registry
// order and each applies its mappings in declared order. A merging field
// (genres, tags, studios, provider ids) collects values from every source;
// any other field belongs to the first source with a mapping that applies
// to it. Mappings whose predicate fails are skipped.
func (e *Engine) Project(item *process.MediaItem) mo.Result[Record] {
	r := newRecord(item.ItemType())
	owners := map[Field]string{}

	for _, source := range e.registry.Sources() {
		sd, ok := item.DataFrom(source).Get()
		if !ok {
			continue
		}
		for _, m := range e.set.For(source.Name(), item.ItemType()) {
			if !e.allowed(m) || !m.CanApply(sd, r) {
				continue
			}
			if !m.Field.merges() {
				if owner, taken := owners[m.Field]; taken && owner != m.Source {
					continue
				}
				owners[m.Field] = m.Source
			}
			m.Apply(sd, r)
		}
	}

	finish(r)

	if e.log != nil {
		e.log.Debug("projected record", "type", r.Type, "name", r.Name, "sources", item.Sources())
	}
	return mo.Ok(*r)
}

func (e *Engine) allowed(m Mapping) bool {
	source, ok := e.opts.FieldSources[m.Field]
	return !ok || source == m.Source
}

// finish removes duplicates left by merging sources and adds the catalog
// links for the provider ids.
func finish(r *Record) {
	r.Genres = nilIfEmpty(lo.Uniq(r.Genres))
	r.Tags = nilIfEmpty(lo.Without(lo.Uniq(r.Tags), r.Genres...))
	r.Studios = nilIfEmpty(lo.Uniq(r.Studios))
	r.ExternalURLs = externalURLs(r.ItemType, r.ProviderIDs)
}

func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}

// Definitions lists the mappings applied to items of the given type, in
// the order they run.
func (e *Engine) Definitions(itemType process.ItemType) []Definition {
	var defs []Definition
	for _, source := range e.registry.Sources() {
		for _, m := range e.set.For(source.Name(), itemType) {
			if !e.allowed(m) {
				continue
			}
			defs = append(defs, Definition{
				Name:        m.Name,
				Source:      m.Source,
				PayloadType: m.PayloadType,
				Field:       m.Field.String(),
			})
		}
	}
	return defs
}
