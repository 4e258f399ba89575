package fleettracker

import "github.com/theoremus-urban-solutions/fleet-tracker/internal"

// InitLogging sends log output to stdout with microsecond timestamps.
func InitLogging() {
	internal.InitLogging()
}
