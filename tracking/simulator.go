package tracking

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/theoremus-urban-solutions/fleet-tracker/utils"
)

// Rand is the random source used by the simulator. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// Options tunes the random walk. The zero value of a field selects the
// default from DefaultOptions.
type Options struct {
	InitialStep     float64       // random-walk step applied to seed positions
	PositionJitter  float64       // max per-axis position change per tick
	SpeedJitter     float64       // max speed change per tick, km/h
	MaxInitialSpeed float64       // initial speed upper bound, km/h
	MaxBackdate     time.Duration // initial LastUpdate is up to this far in the past
	Locations       []ReferenceLocation
	Status          StatusPolicy
}

// DefaultOptions returns the reference simulation parameters.
func DefaultOptions() Options {
	return Options{
		InitialStep:     0.001,
		PositionJitter:  0.005,
		SpeedJitter:     5,
		MaxInitialSpeed: 120,
		MaxBackdate:     5 * time.Minute,
		Locations:       ReferenceLocations,
		Status:          UniformStatus{},
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.InitialStep <= 0 {
		o.InitialStep = def.InitialStep
	}
	if o.PositionJitter <= 0 {
		o.PositionJitter = def.PositionJitter
	}
	if o.SpeedJitter <= 0 {
		o.SpeedJitter = def.SpeedJitter
	}
	if o.MaxInitialSpeed <= 0 {
		o.MaxInitialSpeed = def.MaxInitialSpeed
	}
	if o.MaxBackdate <= 0 {
		o.MaxBackdate = def.MaxBackdate
	}
	if len(o.Locations) == 0 {
		o.Locations = def.Locations
	}
	if o.Status == nil {
		o.Status = def.Status
	}
	return o
}

// Simulator generates and advances device state. It is not safe for
// concurrent use; a Tracker serializes access to it.
type Simulator struct {
	opts  Options
	rng   Rand
	clock utils.Clock
}

// NewSimulator creates a simulator. A nil rng is replaced by a time-seeded
// PCG source and a nil clock by the real clock.
func NewSimulator(opts Options, rng Rand, clock utils.Clock) *Simulator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	if clock == nil {
		clock = utils.RealClock{}
	}
	return &Simulator{opts: opts.withDefaults(), rng: rng, clock: clock}
}

// NewSeededRand returns a deterministic random source for seed.
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Initialize creates count devices seeded around the reference locations.
func (s *Simulator) Initialize(count int) []Device {
	if count <= 0 {
		return []Device{}
	}
	now := s.clock.Now()
	devices := make([]Device, 0, count)
	for i := 0; i < count; i++ {
		loc := s.opts.Locations[i%len(s.opts.Locations)]
		backdate := time.Duration(s.rng.Float64() * float64(s.opts.MaxBackdate))
		d := Device{
			ID:         fmt.Sprintf("device-%d", i+1),
			Name:       fmt.Sprintf("%s Tracker %d", loc.Name, i+1),
			Position:   RandomWalk(loc.Position, s.opts.InitialStep, s.rng),
			Speed:      s.rng.Float64() * s.opts.MaxInitialSpeed,
			LastUpdate: now.Add(-backdate),
		}
		d.Status = s.opts.Status.Next(d, now, s.rng)
		devices = append(devices, d)
	}
	return devices
}

// Tick advances every device by one simulation step and returns the new set.
// The input slice is left untouched.
func (s *Simulator) Tick(devices []Device) []Device {
	now := s.clock.Now()
	next := make([]Device, len(devices))
	for i, d := range devices {
		d.Position = Position{
			Lat: d.Lat + s.uniform(s.opts.PositionJitter),
			Lng: d.Lng + s.uniform(s.opts.PositionJitter),
		}.Clamped()
		d.Speed = advanceSpeed(d.Speed, s.uniform(s.opts.SpeedJitter))
		// Status sees the previous report time so a long gap reads as stale.
		d.Status = s.opts.Status.Next(d, now, s.rng)
		// LastUpdate is strictly monotonic per device even if the clock stalls.
		ts := now
		if !ts.After(d.LastUpdate) {
			ts = d.LastUpdate.Add(time.Nanosecond)
		}
		d.LastUpdate = ts
		next[i] = d
	}
	return next
}

// uniform returns a value in [-bound, bound).
func (s *Simulator) uniform(bound float64) float64 {
	return (s.rng.Float64() - 0.5) * 2 * bound
}

func advanceSpeed(speed, delta float64) float64 {
	return math.Max(0, speed+delta)
}

// RandomWalk moves from by a random distance of at most step degrees in a
// random direction. Longitude movement is scaled by cos(latitude) and the
// result is clamped to valid coordinates.
func RandomWalk(from Position, step float64, rng Rand) Position {
	angle := rng.Float64() * 2 * math.Pi
	distance := (rng.Float64() - 0.5) * 2 * step

	deltaLat := distance * math.Cos(angle)
	deltaLng := distance * math.Sin(angle) * math.Cos(from.Lat*math.Pi/180)

	return Position{Lat: from.Lat + deltaLat, Lng: from.Lng + deltaLng}.Clamped()
}
