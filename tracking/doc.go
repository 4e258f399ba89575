// Package tracking simulates a fleet of GPS-tracked devices.
//
// This package handles:
// - Seeding a fixed set of devices around reference locations
// - Advancing every device on each tick with a bounded random walk
// - Publishing immutable snapshots of the device set to observers
// - Generating mock route traces for map overlays
//
// The Snapshot type is a point-in-time copy of all devices. A Tracker owns
// the only mutable reference to the device set and replaces its published
// snapshot once per tick; readers never see a partially updated set.
package tracking
