package tracking

import (
	"context"
	"sync"
	"time"

	"github.com/theoremus-urban-solutions/fleet-tracker/internal"
	"github.com/theoremus-urban-solutions/fleet-tracker/utils"
)

// DefaultInterval is the reference tick period.
const DefaultInterval = 5 * time.Second

// Observer receives every snapshot the tracker publishes. Observers run on
// the tick goroutine and must not retain mutable state from the snapshot.
type Observer interface {
	Publish(ctx context.Context, snap Snapshot) error
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, snap Snapshot) error

func (f ObserverFunc) Publish(ctx context.Context, snap Snapshot) error { return f(ctx, snap) }

// TrackerOptions configures a Tracker.
type TrackerOptions struct {
	DeviceCount int
	Interval    time.Duration
	RoutePoints int
	Clock       utils.Clock
}

// Tracker owns the device set, advances it on a fixed cadence and publishes
// snapshots. Snapshot and Route are safe for concurrent use; Step and Run
// are serialized so the device set has a single writer.
type Tracker struct {
	sim      *Simulator
	clock    utils.Clock
	interval time.Duration

	stepMu sync.Mutex

	mu      sync.RWMutex
	current Snapshot
	routes  map[string]Route

	obsMu     sync.Mutex
	observers []Observer
}

// NewTracker initializes the device set and routes and publishes the
// initial snapshot with sequence 0.
func NewTracker(sim *Simulator, opts TrackerOptions) *Tracker {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Clock == nil {
		opts.Clock = sim.clock
	}
	t := &Tracker{
		sim:      sim,
		clock:    opts.Clock,
		interval: opts.Interval,
		routes:   map[string]Route{},
	}
	devices := sim.Initialize(opts.DeviceCount)
	for _, d := range devices {
		t.routes[d.ID] = sim.GenerateRoute(d.ID, opts.RoutePoints)
	}
	t.current = NewSnapshot(0, t.clock.Now(), devices)
	return t
}

// Interval is the tick period.
func (t *Tracker) Interval() time.Duration { return t.interval }

// Snapshot returns the most recently published snapshot.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current
}

// Route returns the generated route for a device.
func (t *Tracker) Route(deviceID string) (Route, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	r, ok := t.routes[deviceID]
	if !ok {
		return Route{}, false
	}
	pts := make([]Position, len(r.Points))
	copy(pts, r.Points)
	return Route{DeviceID: r.DeviceID, Points: pts}, true
}

// Subscribe registers an observer for future snapshots.
func (t *Tracker) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Step applies one tick, publishes the result and notifies observers.
func (t *Tracker) Step(ctx context.Context) Snapshot {
	t.stepMu.Lock()
	defer t.stepMu.Unlock()

	prev := t.Snapshot()
	next := NewSnapshot(prev.Seq()+1, t.clock.Now(), t.sim.Tick(prev.devices))

	t.mu.Lock()
	t.current = next
	t.mu.Unlock()

	t.notify(ctx, next)
	return next
}

func (t *Tracker) notify(ctx context.Context, snap Snapshot) {
	t.obsMu.Lock()
	observers := append([]Observer(nil), t.observers...)
	t.obsMu.Unlock()

	for _, o := range observers {
		if err := o.Publish(ctx, snap); err != nil {
			internal.Logf("tracker: observer failed on seq %d: %v", snap.Seq(), err)
		}
	}
}

// Run ticks until ctx is cancelled. Cancellation only stops future ticks.
func (t *Tracker) Run(ctx context.Context) error {
	ticker := t.clock.NewTicker(t.interval)
	defer ticker.Stop()

	internal.Logf("tracker: %d devices, tick every %s", t.Snapshot().Len(), t.interval)
	for {
		select {
		case <-ctx.Done():
			internal.Logf("tracker: stopped at seq %d", t.Snapshot().Seq())
			return nil
		case <-ticker.C():
			t.Step(ctx)
		}
	}
}
