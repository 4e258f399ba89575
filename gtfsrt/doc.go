// Package gtfsrt encodes tracker snapshots as GTFS-Realtime VehiclePositions
// feeds.
//
// A feed is a FULL_DATASET FeedMessage with one VehiclePosition entity per
// device. The entity id and VehicleDescriptor id are the device id, the
// label is the device name and speed is converted from km/h to m/s.
// Feeds can be written as binary protobuf or as protojson.
package gtfsrt
