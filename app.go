package fleettracker

import (
	"context"
	"fmt"

	"github.com/theoremus-urban-solutions/fleet-tracker/config"
	"github.com/theoremus-urban-solutions/fleet-tracker/converter"
	"github.com/theoremus-urban-solutions/fleet-tracker/internal"
	"github.com/theoremus-urban-solutions/fleet-tracker/phonebook"
	"github.com/theoremus-urban-solutions/fleet-tracker/telemetry"
	"github.com/theoremus-urban-solutions/fleet-tracker/tracking"
	"github.com/theoremus-urban-solutions/fleet-tracker/utils"
)

// App holds the long-lived components built from configuration.
type App struct {
	Config    config.AppConfig
	Tracker   *tracking.Tracker
	Persons   phonebook.Store
	Converter *converter.Converter

	cache   *ResponseCache
	closers []func()
}

// NewApp builds the tracker, phonebook store and telemetry sink described
// by cfg. A nil clock selects the wall clock.
func NewApp(ctx context.Context, cfg config.AppConfig, clock utils.Clock) (*App, error) {
	sc := cfg.Simulator
	var rng tracking.Rand
	if sc.Seed != 0 {
		rng = tracking.NewSeededRand(sc.Seed)
	}
	sim := tracking.NewSimulator(tracking.Options{
		Status: tracking.StatusPolicyByName(sc.StatusPolicy, sc.IdleThreshold(), sc.StaleAfter()),
	}, rng, clock)

	app := &App{
		Config: cfg,
		Tracker: tracking.NewTracker(sim, tracking.TrackerOptions{
			DeviceCount: sc.DeviceCount,
			Interval:    sc.TickInterval(),
			RoutePoints: sc.RoutePoints,
		}),
		cache: NewResponseCache(),
	}
	app.Converter = converter.NewConverter(converter.ConverterOptions{
		Codespace: cfg.Feed.Codespace,
		Interval:  app.Tracker.Interval(),
	})

	store, err := app.openPhonebook(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Persons = store

	if tc := cfg.Telemetry; tc.InfluxURL != "" {
		sink := telemetry.NewInfluxSink(tc.InfluxURL, tc.Token, tc.Org, tc.Bucket)
		app.Tracker.Subscribe(sink)
		app.closers = append(app.closers, sink.Close)
		internal.Logf("telemetry: writing positions to %s bucket %s", tc.InfluxURL, tc.Bucket)
	}
	return app, nil
}

func (a *App) openPhonebook(ctx context.Context) (phonebook.Store, error) {
	pc := a.Config.Phonebook
	var store phonebook.Store
	switch pc.Driver {
	case "", "memory":
		store = phonebook.NewMemoryStore()
	case "sqlite":
		s, err := phonebook.OpenSQLite(pc.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open phonebook %s: %w", pc.SQLitePath, err)
		}
		a.closers = append(a.closers, func() { _ = s.Close() })
		store = s
	case "remote":
		store = phonebook.NewClient(pc.RemoteURL, nil)
	default:
		return nil, fmt.Errorf("unknown phonebook driver %q", pc.Driver)
	}
	if pc.Seed {
		if err := phonebook.Seed(ctx, store); err != nil {
			return nil, fmt.Errorf("seed phonebook: %w", err)
		}
	}
	return store, nil
}

// Run ticks the tracker until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	return a.Tracker.Run(ctx)
}

// Close releases stores and sinks opened by NewApp.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
