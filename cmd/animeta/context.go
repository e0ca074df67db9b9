package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"
	_ "modernc.org/sqlite"

	"github.com/vmunix/animeta/internal/cache"
	"github.com/vmunix/animeta/internal/catalog"
	"github.com/vmunix/animeta/internal/config"
	"github.com/vmunix/animeta/internal/mapping"
	"github.com/vmunix/animeta/internal/migrations"
	"github.com/vmunix/animeta/internal/pipeline"
	"github.com/vmunix/animeta/internal/process"
	"github.com/vmunix/animeta/internal/propmap"
	"github.com/vmunix/animeta/internal/sources"
	"github.com/vmunix/animeta/internal/titles"
	"github.com/vmunix/animeta/pkg/anidb"
	"github.com/vmunix/animeta/pkg/animelist"
	"github.com/vmunix/animeta/pkg/tvdb"
)

type globalFlags struct {
	config  string
	json    bool
	verbose bool
}

// services is everything a command may need, built once per invocation.
type services struct {
	cfg      *config.Config
	log      *slog.Logger
	store    cache.Store
	anidb    *catalog.AniDBService
	tvdb     *catalog.TVDBService
	mappings *catalog.MappingService
	index    *mapping.Index
	engine   *propmap.Engine
	pipeline *pipeline.Pipeline
}

type commandContext struct {
	flags *globalFlags

	once     sync.Once
	services *services
	err      error
	closers  []func() error
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

// loadConfig reads the --config file, or the discovered one. With neither,
// defaults are used and the TVDB key comes from TVDB_API_KEY.
func (c *commandContext) loadConfig() (*config.Config, error) {
	path := strings.TrimSpace(c.flags.config)
	if path == "" {
		discovered, err := config.Discover()
		if err != nil {
			if os.Getenv("ANIMETA_CONFIG") != "" {
				return nil, err
			}
			cfg := config.Default()
			cfg.TVDB.APIKey = os.Getenv("TVDB_API_KEY")
			return cfg, nil
		}
		path = discovered
	}
	return config.Load(path)
}

func (c *commandContext) ensureServices() (*services, error) {
	c.once.Do(func() {
		cfg, err := c.loadConfig()
		if err != nil {
			c.err = err
			return
		}
		c.services, c.err = c.build(cfg)
	})
	return c.services, c.err
}

func (c *commandContext) close() error {
	var errs []error
	for _, fn := range c.closers {
		if err := fn(); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	if len(errs) > 0 {
		return fmt.Errorf("close: %v", errs)
	}
	return nil
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newLogger(cfg config.LogConfig, verbose bool) *slog.Logger {
	level := parseLogLevel(cfg.Level)
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func (c *commandContext) openStore(cfg config.CacheConfig) (cache.Store, error) {
	ttls := cache.DefaultTTLs()
	ttls.Default = cfg.DefaultTTL
	maps.Copy(ttls.ByPrefix, cfg.TTLs)

	switch cfg.Driver {
	case "memory":
		return cache.NewMemoryStore(ttls), nil
	case "file":
		return cache.NewFileStore(afero.NewOsFs(), cfg.Path, ttls)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}
	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	c.closers = append(c.closers, db.Close)
	return cache.NewSQLiteStore(db, ttls), nil
}

func canonicalSource(name string) (string, bool) {
	for _, s := range []string{process.SourceAniDb, process.SourceTvDb} {
		if strings.EqualFold(s, name) {
			return s, true
		}
	}
	return "", false
}

func propmapOptions(cfg config.MetadataConfig) (propmap.Options, error) {
	pref, err := titles.ParsePreference(cfg.TitlePreference)
	if err != nil {
		return propmap.Options{}, err
	}
	opts := propmap.DefaultOptions()
	opts.TitlePreference = pref
	if cfg.MaxGenres != nil {
		opts.MaxGenres = *cfg.MaxGenres
	}
	if cfg.AddAnimeGenre != nil {
		opts.AddAnimeGenre = *cfg.AddAnimeGenre
	}
	if cfg.MoveExcessGenresToTags != nil {
		opts.MoveExcessGenresToTags = *cfg.MoveExcessGenresToTags
	}
	if len(cfg.FieldSources) > 0 {
		opts.FieldSources = make(map[propmap.Field]string, len(cfg.FieldSources))
		for name, source := range cfg.FieldSources {
			field, err := propmap.ParseField(name)
			if err != nil {
				return propmap.Options{}, err
			}
			canonical, ok := canonicalSource(source)
			if !ok {
				return propmap.Options{}, fmt.Errorf("unknown source %q for field %s", source, name)
			}
			opts.FieldSources[field] = canonical
		}
	}
	return opts, nil
}

func (c *commandContext) build(cfg *config.Config) (*services, error) {
	log := newLogger(cfg.Log, c.flags.verbose)

	store, err := c.openStore(cfg.Cache)
	if err != nil {
		return nil, err
	}
	fetcher := cache.NewFetcher(store, log).WithMaxPages(cfg.Cache.MaxPages)

	anidbOpts := []anidb.Option{
		anidb.WithRequestInterval(*cfg.AniDB.RequestInterval),
		anidb.WithLogger(log),
	}
	if cfg.AniDB.BaseURL != "" {
		anidbOpts = append(anidbOpts, anidb.WithBaseURL(cfg.AniDB.BaseURL))
	}
	if cfg.AniDB.TitlesURL != "" {
		anidbOpts = append(anidbOpts, anidb.WithTitlesURL(cfg.AniDB.TitlesURL))
	}
	anidbClient := anidb.New(cfg.AniDB.Client, cfg.AniDB.ClientVersion, anidbOpts...)

	tvdbOpts := []tvdb.Option{tvdb.WithLogger(log)}
	if cfg.TVDB.BaseURL != "" {
		tvdbOpts = append(tvdbOpts, tvdb.WithBaseURL(cfg.TVDB.BaseURL))
	}
	tvdbClient := tvdb.New(cfg.TVDB.APIKey, tvdbOpts...)

	listClient := animelist.NewClient(animelist.WithURL(cfg.Mapping.AnimeListURL), animelist.WithLogger(log))

	catalogLog := log.With("component", "catalog")
	s := &services{
		cfg:      cfg,
		log:      log,
		store:    store,
		anidb:    catalog.NewAniDBService(anidbClient, fetcher, catalogLog),
		tvdb:     catalog.NewTVDBService(tvdbClient, fetcher, catalogLog),
		mappings: catalog.NewMappingService(listClient, fetcher, catalogLog),
	}
	s.index = mapping.NewIndex(s.mappings, log)

	loaders := process.NewLoaderTable(
		sources.NewTvDbSeriesLoader(s.tvdb, s.index, log),
		sources.NewTvDbEpisodeLoader(s.tvdb, s.index, log),
	)
	for _, l := range loaders.Shadowed() {
		log.Warn("loader shadowed, an earlier loader serves some of its item types", "source", l.SourceName())
	}

	opts, err := propmapOptions(cfg.Metadata)
	if err != nil {
		return nil, err
	}

	primary := sources.NewAniDb(s.anidb, s.index, loaders,
		sources.WithTitlePreference(opts.TitlePreference),
		sources.WithMatcher(titles.NewMatcher(cfg.Metadata.TitleMatchThreshold)),
		sources.WithLogger(log),
	)
	registry, err := process.NewRegistry(primary, sources.NewTvDb(loaders))
	if err != nil {
		return nil, err
	}

	s.engine = propmap.NewEngine(registry, propmap.DefaultSet(opts), opts, log)
	s.pipeline = pipeline.New(registry, s.engine,
		pipeline.WithLanguage(cfg.Metadata.Language),
		pipeline.WithLogger(log),
	)
	return s, nil
}
