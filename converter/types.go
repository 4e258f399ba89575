package converter

import "time"

// ConverterOptions contains all configuration needed for snapshot to SIRI
// conversion. It has no dependencies on config files.
type ConverterOptions struct {
	// Codespace prefixes SIRI references, e.g. {codespace}:VehicleRef:{id}.
	// Defaults to "FLEET".
	Codespace string

	// Interval is the tick period. ValidUntil is the snapshot time plus
	// Interval; zero omits ValidUntil.
	Interval time.Duration
}

// Filter narrows a VM response. Empty fields match everything.
type Filter struct {
	// VehicleRef matches a device id or a full VehicleRef, case-insensitively
	VehicleRef string
	// Status matches the tracking status (online, idle, offline)
	Status string
}
