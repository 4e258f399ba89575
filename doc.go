// Package fleettracker serves a simulated fleet of GPS trackers over HTTP.
//
// An App wires a tracking.Tracker, a phonebook.Store and optional InfluxDB
// telemetry from a config.AppConfig. A Server exposes the live snapshot as
// JSON, SIRI Vehicle Monitoring and GTFS-Realtime, plus geocoding and
// phonebook endpoints.
package fleettracker
