// Package telemetry forwards tracker snapshots to InfluxDB.
package telemetry

import (
	"context"
	"fmt"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/theoremus-urban-solutions/fleet-tracker/tracking"
)

// Measurement is the InfluxDB measurement written for each device.
const Measurement = "device_position"

// pointWriter is the subset of api.WriteAPIBlocking the sink uses.
type pointWriter interface {
	WritePoint(ctx context.Context, point ...*write.Point) error
}

// InfluxSink writes every published snapshot as one point per device.
// It implements tracking.Observer.
type InfluxSink struct {
	client influxdb2.Client
	writer pointWriter
}

// NewInfluxSink connects to url with token and writes into org/bucket.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	client := influxdb2.NewClient(url, token)
	return &InfluxSink{client: client, writer: client.WriteAPIBlocking(org, bucket)}
}

func newSink(w pointWriter) *InfluxSink {
	return &InfluxSink{writer: w}
}

// Publish writes snap in a single batch.
func (s *InfluxSink) Publish(ctx context.Context, snap tracking.Snapshot) error {
	devices := snap.Devices()
	if len(devices) == 0 {
		return nil
	}
	points := make([]*write.Point, 0, len(devices))
	for _, d := range devices {
		points = append(points, Point(d))
	}
	if err := s.writer.WritePoint(ctx, points...); err != nil {
		return fmt.Errorf("error writing to InfluxDB: %w", err)
	}
	return nil
}

// Point converts a device to an InfluxDB point stamped with its LastUpdate.
func Point(d tracking.Device) *write.Point {
	return influxdb2.NewPoint(
		Measurement,
		map[string]string{"device_id": d.ID, "status": string(d.Status)},
		map[string]any{"lat": d.Lat, "lng": d.Lng, "speed": d.Speed},
		d.LastUpdate,
	)
}

// Close releases the client. It is a no-op for sinks without one.
func (s *InfluxSink) Close() {
	if s.client != nil {
		s.client.Close()
	}
}

var _ tracking.Observer = (*InfluxSink)(nil)
