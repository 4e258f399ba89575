package tracking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/theoremus-urban-solutions/fleet-tracker/utils"
)

func TestStatusValid(t *testing.T) {
	for _, s := range Statuses {
		assert.True(t, s.Valid())
	}
	assert.False(t, Status("parked").Valid())
	assert.False(t, Status("").Valid())
}

func TestUniformStatus(t *testing.T) {
	p := UniformStatus{}
	for i, want := range Statuses {
		assert.Equal(t, want, p.Next(Device{}, testStart, fixedRand{n: i}))
	}
}

func TestMotionStatus(t *testing.T) {
	p := MotionStatus{IdleBelowKMH: 3, StaleAfter: 2 * time.Minute}
	tests := []struct {
		name   string
		device Device
		want   Status
	}{
		{"moving and fresh", Device{Speed: 50, LastUpdate: testStart}, StatusOnline},
		{"slow and fresh", Device{Speed: 1, LastUpdate: testStart}, StatusIdle},
		{"stale", Device{Speed: 50, LastUpdate: testStart.Add(-3 * time.Minute)}, StatusOffline},
		{"exactly at threshold", Device{Speed: 3, LastUpdate: testStart.Add(-2 * time.Minute)}, StatusOnline},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Next(tt.device, testStart, nil))
		})
	}

	never := MotionStatus{IdleBelowKMH: 3}
	assert.Equal(t, StatusOnline, never.Next(Device{Speed: 10}, testStart, nil))
}

func TestMotionStatus_InSimulator(t *testing.T) {
	clock := utils.NewMockClock(testStart)
	policy := MotionStatus{IdleBelowKMH: 5, StaleAfter: 5 * time.Minute}
	sim := NewSimulator(Options{Status: policy}, NewSeededRand(12), clock)
	devices := sim.Initialize(20)

	// Regular ticks keep every device reporting.
	for i := 0; i < 5; i++ {
		clock.Advance(DefaultInterval)
		devices = sim.Tick(devices)
	}
	for _, d := range devices {
		if d.Speed < 5 {
			assert.Equal(t, StatusIdle, d.Status, d.ID)
		} else {
			assert.Equal(t, StatusOnline, d.Status, d.ID)
		}
	}

	// A gap longer than StaleAfter since the last report marks every device offline.
	clock.Advance(10 * time.Minute)
	devices = sim.Tick(devices)
	for _, d := range devices {
		assert.Equal(t, StatusOffline, d.Status, d.ID)
		assert.Equal(t, clock.Now(), d.LastUpdate, d.ID)
	}

	// The next regular tick sees a fresh report again.
	clock.Advance(DefaultInterval)
	devices = sim.Tick(devices)
	for _, d := range devices {
		assert.NotEqual(t, StatusOffline, d.Status, d.ID)
	}
}

func TestStatusPolicyByName(t *testing.T) {
	assert.IsType(t, UniformStatus{}, StatusPolicyByName("uniform", 0, 0))
	assert.IsType(t, UniformStatus{}, StatusPolicyByName("", 0, 0))
	p := StatusPolicyByName("motion", 4, time.Minute)
	assert.Equal(t, MotionStatus{IdleBelowKMH: 4, StaleAfter: time.Minute}, p)
}
