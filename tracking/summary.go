package tracking

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// Summary aggregates a snapshot for dashboard counters.
type Summary struct {
	Seq               uint64    `json:"seq"`
	TakenAt           time.Time `json:"taken_at"`
	Total             int       `json:"total"`
	Online            int       `json:"online"`
	Idle              int       `json:"idle"`
	Offline           int       `json:"offline"`
	AvgSpeedKMH       float64   `json:"avg_speed_kmh"`
	SpeedStdDevKMH    float64   `json:"speed_stddev_kmh"`
	DistancePerTickKM float64   `json:"distance_per_tick_km"`
}

// Summarize counts devices per status and computes speed statistics.
// DistancePerTickKM estimates the fleet-wide distance covered during one
// tick interval at current speeds.
func Summarize(snap Snapshot, interval time.Duration) Summary {
	sum := Summary{Seq: snap.Seq(), TakenAt: snap.TakenAt(), Total: snap.Len()}
	speeds := make([]float64, 0, snap.Len())
	for _, d := range snap.devices {
		switch d.Status {
		case StatusOnline:
			sum.Online++
		case StatusIdle:
			sum.Idle++
		case StatusOffline:
			sum.Offline++
		}
		speeds = append(speeds, d.Speed)
	}
	if len(speeds) == 0 {
		return sum
	}
	sum.AvgSpeedKMH = stat.Mean(speeds, nil)
	if len(speeds) > 1 {
		sum.SpeedStdDevKMH = stat.StdDev(speeds, nil)
	}
	sum.DistancePerTickKM = sum.AvgSpeedKMH * float64(len(speeds)) * interval.Hours()
	return sum
}
