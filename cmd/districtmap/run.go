package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/devcompany145/Business-developers-ai/internal/ai"
	"github.com/devcompany145/Business-developers-ai/internal/config"
	"github.com/devcompany145/Business-developers-ai/internal/i18n"
	"github.com/devcompany145/Business-developers-ai/internal/logging"
	"github.com/devcompany145/Business-developers-ai/internal/metrics"
	"github.com/devcompany145/Business-developers-ai/internal/server"
	"github.com/devcompany145/Business-developers-ai/internal/session"
	"github.com/devcompany145/Business-developers-ai/internal/store"
	"github.com/devcompany145/Business-developers-ai/internal/watch"
	"github.com/devcompany145/Business-developers-ai/pkg/analytics"
	"github.com/devcompany145/Business-developers-ai/pkg/camera"
	"github.com/devcompany145/Business-developers-ai/pkg/district"
	"github.com/devcompany145/Business-developers-ai/pkg/mapmode"
	"github.com/devcompany145/Business-developers-ai/pkg/match"
	"github.com/devcompany145/Business-developers-ai/pkg/scene"
	"github.com/devcompany145/Business-developers-ai/pkg/scene2d"
	"github.com/devcompany145/Business-developers-ai/pkg/validation"
)

const (
	pruneInterval  = 5 * time.Minute
	sessionMaxIdle = 30 * time.Minute
	shutdownGrace  = 10 * time.Second
)

// loadConfig reads and validates the configuration.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadDistrict reads the snapshot at path, or the configured seed when path
// is empty. A directory is read as a project holding district.yaml.
func loadDistrict(cfg *config.Config, path string) (*district.Snapshot, error) {
	if path == "" {
		path = cfg.District.Seed
	}
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		return district.LoadProject(path)
	}
	return district.Load(path)
}

// loadAndValidate loads the district and runs record validation.
func loadAndValidate(cfg *config.Config, path string) (*district.Snapshot, *validation.Report, error) {
	snap, err := loadDistrict(cfg, path)
	if err != nil {
		return nil, nil, fmt.Errorf("loading district: %w", err)
	}
	return snap, validation.ValidateSnapshot(snap), nil
}

func geometry(cfg *config.Config) session.Geometry {
	return session.Geometry{
		ContainerSize: cfg.Grid.ContainerSize,
		Padding:       cfg.Grid.Padding,
		Gap:           cfg.Grid.Gap,
		GlobeRadius:   cfg.Grid.GlobeRadius,
	}
}

// newAIClient returns nil when no provider is configured.
func newAIClient(cfg *config.Config, reg *metrics.Registry, logger logging.Logger) *ai.Client {
	if !cfg.AIEnabled() {
		return nil
	}
	provider := ai.NewOpenAIProvider(cfg.AI.APIKey, cfg.AI.Model, cfg.AI.BaseURL)
	client := ai.NewClient(provider, ai.Options{
		Model:     cfg.AI.Model,
		MaxTokens: cfg.AI.MaxTokens,
		Timeout:   cfg.AI.Timeout,
	}, logger)
	if reg != nil {
		client.OnCall = reg.RecordAICall
	}
	return client
}

func runServe(ctx context.Context, configPath, addr string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	logging.SetDefault(logger)

	bundle, err := i18n.New(cfg.I18n.DefaultLanguage, cfg.I18n.Dir)
	if err != nil {
		return fmt.Errorf("loading catalogs: %w", err)
	}

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	empty, err := st.Empty(ctx)
	if err != nil {
		return fmt.Errorf("checking store: %w", err)
	}
	if empty {
		snap, report, err := loadAndValidate(cfg, "")
		if err != nil {
			return err
		}
		if err := report.Err(); err != nil {
			return fmt.Errorf("seed %s: %w", cfg.District.Seed, err)
		}
		if err := st.Seed(ctx, snap); err != nil {
			return fmt.Errorf("seeding store: %w", err)
		}
		logger.Info("store seeded",
			logging.String("seed", cfg.District.Seed),
			logging.Int("businesses", len(snap.Businesses)))
	}

	reg := metrics.NewRegistry()
	deps := session.Deps{
		Geometry: geometry(cfg),
		Sensitivity: camera.Sensitivity{
			Wheel: cfg.Camera.WheelSensitivity,
			Pinch: cfg.Camera.PinchSensitivity,
		},
		Host:       st,
		Translator: bundle.Translator,
		Logger:     logger,
		Metrics:    reg,
	}
	if client := newAIClient(cfg, reg, logger); client != nil {
		deps.Searcher, deps.Analyst, deps.Matcher = client, client, client
	} else {
		logger.Warn("AI provider not configured; search, analysis and matching are disabled",
			logging.String("provider", string(cfg.AI.Provider)))
	}

	mgr := session.NewManager(deps, st)
	if err := mgr.Refresh(ctx); err != nil {
		return fmt.Errorf("loading district: %w", err)
	}

	srv := server.New(server.Config{
		Addr:           cfg.Server.Addr,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RequestTimeout: cfg.Server.RequestTimeout,
	}, mgr, bundle, reg, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		mgr.RunPruner(gctx, pruneInterval, sessionMaxIdle)
		return nil
	})
	if cfg.District.Watch {
		w := watch.NewSeed(cfg.District.Seed, 0, func(ctx context.Context, snap *district.Snapshot) error {
			if err := validation.ValidateSnapshot(snap).Err(); err != nil {
				return err
			}
			if err := st.Seed(ctx, snap); err != nil {
				return err
			}
			return mgr.Refresh(ctx)
		}, logger)
		g.Go(func() error { return w.Run(gctx) })
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runScene(configPath, path string, opts sceneOptions) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	snap, _, err := loadAndValidate(cfg, path)
	if err != nil {
		return err
	}
	mode, err := mapmode.Parse(opts.mode)
	if err != nil {
		return err
	}
	bundle, err := i18n.New(cfg.I18n.DefaultLanguage, cfg.I18n.Dir)
	if err != nil {
		return fmt.Errorf("loading catalogs: %w", err)
	}
	translate := bundle.Translator(cfg.I18n.DefaultLanguage)

	view := camera.Default(mode)
	if opts.zoom > 0 {
		view.Zoom = camera.Clamp(opts.zoom, camera.MinZoom, camera.MaxZoom)
	}
	layout := geometry(cfg).Layout(snap.Grid)

	f := scene.Compose(scene.Input{
		Businesses:  snap.Businesses,
		Filter:      scene.Filter{Category: opts.category, Query: opts.query},
		Mode:        mode,
		Interaction: mapmode.DefaultInteraction(mode),
		View:        view,
		Layout:      layout,
		SelectedID:  opts.selected,
		HoveredID:   opts.hovered,
		Translate:   translate,
	})

	var out any = f
	if opts.flat {
		out = scene2d.Assemble2D(f, layout.Grid, translate)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func runValidate(configPath, path string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	snap, report, err := loadAndValidate(cfg, path)
	if err != nil {
		return err
	}

	_, analyticsReport := analytics.Resolve(snap, analytics.DefaultTopN)
	report.Merge(analyticsReport)

	// Every mode is composed so placement and relationship problems that only
	// show up in one of them are caught.
	layout := geometry(cfg).Layout(snap.Grid)
	for _, mode := range mapmode.All() {
		f := scene.Compose(scene.Input{
			Businesses: snap.Businesses,
			Mode:       mode,
			View:       camera.Default(mode),
			Layout:     layout,
		})
		report.Merge(scene.ValidateFrame(f))
	}

	printValidationReport(report)

	if !report.Valid {
		os.Exit(1)
	}
	return nil
}

func runAnalyze(ctx context.Context, configPath, path string, useAI bool, query, lang string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	snap, report, err := loadAndValidate(cfg, path)
	if err != nil {
		return err
	}
	if !report.Valid {
		printValidationReport(report)
		return fmt.Errorf("district has validation errors; fix before analyzing")
	}

	summary, analyticsReport := analytics.Resolve(snap, analytics.DefaultTopN)
	printSummary(summary)
	if len(analyticsReport.Warnings) > 0 {
		fmt.Println()
		printValidationReport(analyticsReport)
	}

	if !useAI && query == "" {
		return nil
	}
	client := newAIClient(cfg, nil, logging.NewNop())
	if client == nil {
		return errors.New("AI provider not configured: set ai.provider and an API key")
	}
	if lang == "" {
		lang = cfg.I18n.DefaultLanguage
	}

	var (
		insight string
		found   *ai.SearchResult
	)
	g, gctx := errgroup.WithContext(ctx)
	if useAI {
		g.Go(func() error {
			var err error
			insight, err = client.Analyze(gctx, snap, lang)
			return err
		})
	}
	if query != "" {
		g.Go(func() error {
			var err error
			found, err = client.Search(gctx, query, snap.Businesses, lang)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("AI request failed: %w", err)
	}

	if insight != "" {
		fmt.Println()
		printInsight(insight)
	}
	if found != nil {
		fmt.Println()
		printSearch(query, found, snap.Businesses)
	}
	return nil
}

func runMatches(ctx context.Context, configPath, path string, o matchesOptions) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	snap, _, err := loadAndValidate(cfg, path)
	if err != nil {
		return err
	}
	profile, err := loadProfile(o.profile)
	if err != nil {
		return err
	}
	client := newAIClient(cfg, nil, logging.NewNop())
	if client == nil {
		return errors.New("AI provider not configured: set ai.provider and an API key")
	}
	lang := o.lang
	if lang == "" {
		lang = cfg.I18n.DefaultLanguage
	}

	found, err := client.Match(ctx, profile, snap.Businesses, lang)
	if err != nil {
		return fmt.Errorf("matching: %w", err)
	}

	opts := o.opts
	opts.SortBy = match.ParseSortBy(o.sortBy)
	opts.Desc = !o.asc
	ranked := match.Rank(found, snap.Businesses, opts)
	printMatches(ranked)

	if o.intro == "" {
		return nil
	}
	for _, r := range ranked {
		if r.Business.ID != o.intro {
			continue
		}
		bundle, err := i18n.New(cfg.I18n.DefaultLanguage, cfg.I18n.Dir)
		if err != nil {
			return fmt.Errorf("loading catalogs: %w", err)
		}
		fmt.Println()
		printIntroduction(match.ComposeIntroduction(profile, r.Business, r.Match, bundle.Translator(lang)))
		return nil
	}
	return fmt.Errorf("no match for business %q", o.intro)
}

func loadProfile(path string) (match.Profile, error) {
	var p match.Profile
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("reading profile: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parsing profile YAML: %w", err)
	}
	if p.Company == "" {
		return p, errors.New("profile: company is required")
	}
	return p, nil
}

func runConfigInit(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("%s already exists", configPath)
	}
	if err := config.DefaultConfig().Save(configPath); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", configPath)
	return nil
}

func runConfigShow(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.AI.APIKey != "" {
		cfg.AI.APIKey = "********"
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(cfg)
}
