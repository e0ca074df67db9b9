package process

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

//go:generate mockgen -destination=mocks/mock_source.go -package=mocks github.com/vmunix/animeta/internal/process Source,Loader,Identifier

// Source is a configured catalog.
type Source interface {
	Name() string
	// ShouldUsePlaceholder reports whether items of this type borrow another
	// source's data instead of having their own.
	ShouldUsePlaceholder(itemType ItemType) bool
	FindLoader(itemType ItemType) mo.Result[Loader]
}

// Loader produces one source's data for one kind of item.
type Loader interface {
	SourceName() string
	CanLoadFrom(itemType ItemType) bool
	// LoadFrom reads the descriptor from item and may use ids that earlier
	// sources already resolved.
	LoadFrom(ctx context.Context, item *MediaItem) mo.Result[SourceData]
}

// Identifier resolves an item's identity in the primary catalog, producing
// the data a MediaItem starts from.
type Identifier interface {
	Identify(ctx context.Context, descriptor ItemDescriptor) mo.Result[SourceData]
}

// PrimarySource is the catalog that identifies items.
type PrimarySource interface {
	Source
	Identifier
}

type loaderKey struct {
	source   string
	itemType ItemType
}

// LoaderTable is built once at startup and maps (source, item type) to the
// first registered loader that can serve it.
type LoaderTable struct {
	loaders  map[loaderKey]Loader
	shadowed []Loader
}

var allItemTypes = []ItemType{Series, Season, Episode}

// NewLoaderTable indexes loaders in registration order. A loader that can
// serve a key already taken by an earlier loader is recorded as shadowed,
// even when it still wins other keys.
func NewLoaderTable(loaders ...Loader) *LoaderTable {
	t := &LoaderTable{loaders: make(map[loaderKey]Loader)}
	for _, l := range loaders {
		shadowed := false
		for _, it := range allItemTypes {
			if !l.CanLoadFrom(it) {
				continue
			}
			key := loaderKey{source: l.SourceName(), itemType: it}
			if _, taken := t.loaders[key]; taken {
				shadowed = true
				continue
			}
			t.loaders[key] = l
		}
		if shadowed {
			t.shadowed = append(t.shadowed, l)
		}
	}
	return t
}

// Find returns the loader for the source and item type.
func (t *LoaderTable) Find(source string, itemType ItemType) mo.Result[Loader] {
	l, ok := t.loaders[loaderKey{source: source, itemType: itemType}]
	if !ok {
		return mo.Err[Loader](&Failure{
			Kind:     NoLoaderAvailable,
			Source:   source,
			ItemType: itemType,
			Reason:   "No source data loader for this source and media item type",
		})
	}
	return mo.Ok(l)
}

// Shadowed lists loaders that lose at least one lookup to an earlier loader.
func (t *LoaderTable) Shadowed() []Loader {
	return t.shadowed
}

// Registry is the ordered set of configured sources. The first is primary.
type Registry struct {
	primary PrimarySource
	sources []Source
}

// NewRegistry builds a registry; source names must be unique.
func NewRegistry(primary PrimarySource, others ...Source) (*Registry, error) {
	if primary == nil {
		return nil, fmt.Errorf("registry: primary source is required")
	}
	sources := append([]Source{primary}, others...)
	names := lo.Map(sources, func(s Source, _ int) string { return s.Name() })
	if dups := lo.FindDuplicates(names); len(dups) > 0 {
		return nil, fmt.Errorf("registry: duplicate source names %v", dups)
	}
	return &Registry{primary: primary, sources: sources}, nil
}

func (r *Registry) Primary() PrimarySource { return r.primary }

// Sources returns every source in declared order, primary first.
func (r *Registry) Sources() []Source {
	return append([]Source(nil), r.sources...)
}

// Secondary returns every source after the primary, in declared order.
func (r *Registry) Secondary() []Source {
	return append([]Source(nil), r.sources[1:]...)
}

// Source looks a source up by name.
func (r *Registry) Source(name string) mo.Option[Source] {
	s, ok := lo.Find(r.sources, func(s Source) bool { return s.Name() == name })
	if !ok {
		return mo.None[Source]()
	}
	return mo.Some(s)
}
