package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/samber/mo"
)

// DefaultMaxPages bounds a paginated fetch whose next links never end.
const DefaultMaxPages = 100

// ErrTooManyPages is returned when a paginated fetch exceeds its page limit.
var ErrTooManyPages = errors.New("too many pages")

// PageLinks describes where a page sits in a paginated response.
type PageLinks struct {
	Current int
	Last    int
	Next    mo.Option[int]
	Prev    mo.Option[int]
}

// Page is one page of a paginated response.
type Page[T any] struct {
	Items []T
	Links PageLinks
}

// Fetcher returns cached values and fetches them on a miss.
type Fetcher struct {
	store    Store
	log      *slog.Logger
	maxPages int
}

// NewFetcher creates a fetcher on store. log may be nil.
func NewFetcher(store Store, log *slog.Logger) *Fetcher {
	if log != nil {
		log = log.With("component", "cache")
	}
	return &Fetcher{store: store, log: log, maxPages: DefaultMaxPages}
}

// WithMaxPages returns a copy of f with a different page limit.
func (f *Fetcher) WithMaxPages(n int) *Fetcher {
	cp := *f
	cp.maxPages = n
	return &cp
}

// Store returns the underlying store.
func (f *Fetcher) Store() Store { return f.store }

// Fetch returns the value cached under key, or calls fn and caches its
// result. Errors from fn are returned and nothing is cached.
func Fetch[T any](ctx context.Context, f *Fetcher, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	if v, ok := lookup[T](ctx, f, key); ok {
		return v, nil
	}

	v, err := fn(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	f.persist(ctx, key, v)
	return v, nil
}

// FetchPaged returns the items cached under key, or fetches every page
// starting at first and caches the concatenation. Pages are fetched one at
// a time following each page's Next link. An error on any page discards
// the pages already fetched.
func FetchPaged[T any](ctx context.Context, f *Fetcher, key string, first int,
	pageFn func(ctx context.Context, page int) (Page[T], error)) ([]T, error) {
	if v, ok := lookup[[]T](ctx, f, key); ok {
		return v, nil
	}

	var items []T
	next := mo.Some(first)
	for fetched := 0; ; fetched++ {
		page, ok := next.Get()
		if !ok {
			break
		}
		if fetched >= f.maxPages {
			return nil, fmt.Errorf("fetch %s: %w (limit %d)", key, ErrTooManyPages, f.maxPages)
		}

		p, err := pageFn(ctx, page)
		if err != nil {
			return nil, err
		}
		items = append(items, p.Items...)
		next = p.Links.Next
	}

	if items == nil {
		items = []T{}
	}
	f.persist(ctx, key, items)
	return items, nil
}

func lookup[T any](ctx context.Context, f *Fetcher, key string) (T, bool) {
	var v T
	data, ok := f.store.Get(ctx, key)
	if !ok {
		return v, false
	}
	if err := json.Unmarshal(data, &v); err != nil {
		if f.log != nil {
			f.log.Warn("discarding corrupt cache entry", "key", key, "error", err)
		}
		var zero T
		return zero, false
	}
	if f.log != nil {
		f.log.Debug("cache hit", "key", key)
	}
	return v, true
}

func (f *Fetcher) persist(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		if f.log != nil {
			f.log.Warn("failed to encode cache entry", "key", key, "error", err)
		}
		return
	}
	if err := f.store.Put(ctx, key, data); err != nil && f.log != nil {
		f.log.Warn("failed to write cache entry", "key", key, "error", err)
	}
}
