package tracking

import "time"

// StatusPolicy decides the status a device reports after an update.
type StatusPolicy interface {
	Next(d Device, now time.Time, rng Rand) Status
}

// UniformStatus resamples the status uniformly at random on every update,
// independent of the device's previous status or motion.
type UniformStatus struct{}

func (UniformStatus) Next(_ Device, _ time.Time, rng Rand) Status {
	return Statuses[rng.IntN(len(Statuses))]
}

// MotionStatus derives the status from the device itself: offline when its
// last report is older than StaleAfter, idle when it moves slower than
// IdleBelowKMH, online otherwise. A zero StaleAfter never reports offline.
type MotionStatus struct {
	IdleBelowKMH float64
	StaleAfter   time.Duration
}

func (p MotionStatus) Next(d Device, now time.Time, _ Rand) Status {
	if p.StaleAfter > 0 && now.Sub(d.LastUpdate) > p.StaleAfter {
		return StatusOffline
	}
	if d.Speed < p.IdleBelowKMH {
		return StatusIdle
	}
	return StatusOnline
}

// StatusPolicyByName maps a configured policy name to a StatusPolicy.
// Unknown names fall back to UniformStatus.
func StatusPolicyByName(name string, idleBelowKMH float64, staleAfter time.Duration) StatusPolicy {
	if name == "motion" {
		return MotionStatus{IdleBelowKMH: idleBelowKMH, StaleAfter: staleAfter}
	}
	return UniformStatus{}
}
