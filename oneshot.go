package fleettracker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/theoremus-urban-solutions/fleet-tracker/converter"
	"github.com/theoremus-urban-solutions/fleet-tracker/tracking"
)

// Oneshot advances the tracker by ticks steps and encodes one document.
// call is devices, summary, vm or gtfsrt. devices and summary are JSON
// only, vm takes json|xml and gtfsrt takes json|pb.
func (a *App) Oneshot(ctx context.Context, call, format string, ticks int) ([]byte, error) {
	switch call {
	case "devices", "summary":
		if format != "json" {
			return nil, &QueryError{Msg: fmt.Sprintf("Unsupported format for %s: %s", call, format)}
		}
	case "vm", "gtfsrt":
	default:
		return nil, fmt.Errorf("unknown call %q", call)
	}

	for i := 0; i < ticks; i++ {
		a.Tracker.Step(ctx)
	}
	snap := a.Tracker.Snapshot()
	switch call {
	case "devices":
		return json.MarshalIndent(snap, "", "  ")
	case "summary":
		return json.MarshalIndent(tracking.Summarize(snap, a.Tracker.Interval()), "", "  ")
	case "vm":
		return a.VehicleMonitoring(converter.Filter{}, format)
	default:
		return a.VehiclePositions(format)
	}
}
