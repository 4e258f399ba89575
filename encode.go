package fleettracker

import (
	"github.com/theoremus-urban-solutions/fleet-tracker/converter"
	"github.com/theoremus-urban-solutions/fleet-tracker/formatter"
	"github.com/theoremus-urban-solutions/fleet-tracker/gtfsrt"
)

// VehicleMonitoring encodes the current snapshot as SIRI VM in format
// ("json" or "xml"), memoized per snapshot sequence.
func (a *App) VehicleMonitoring(f converter.Filter, format string) ([]byte, error) {
	if format != "json" && format != "xml" {
		return nil, &QueryError{Msg: "Unsupported format: " + format}
	}
	snap := a.Tracker.Snapshot()
	key := memoKey("vm", format, f.VehicleRef, f.Status)
	return a.cache.Get(snap.Seq(), key, func() ([]byte, error) {
		res := a.Converter.VehicleMonitoring(snap, f)
		rb := formatter.NewResponseBuilder()
		if format == "xml" {
			return rb.BuildXML(res), nil
		}
		return rb.BuildJSON(res)
	})
}

// VehiclePositions encodes the current snapshot as a GTFS-Realtime feed in
// format ("pb" or "json"), memoized per snapshot sequence.
func (a *App) VehiclePositions(format string) ([]byte, error) {
	snap := a.Tracker.Snapshot()
	switch format {
	case "pb":
		return a.cache.Get(snap.Seq(), memoKey("gtfsrt", format), func() ([]byte, error) {
			return gtfsrt.MarshalPB(snap)
		})
	case "json":
		return a.cache.Get(snap.Seq(), memoKey("gtfsrt", format), func() ([]byte, error) {
			return gtfsrt.MarshalJSON(snap)
		})
	}
	return nil, &QueryError{Msg: "Unsupported format: " + format}
}
