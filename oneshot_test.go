package fleettracker

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/fleet-tracker/gtfsrt"
	"github.com/theoremus-urban-solutions/fleet-tracker/tracking"
)

func TestOneshot(t *testing.T) {
	tests := []struct {
		call, format string
		check        func(t *testing.T, out []byte)
	}{
		{"devices", "json", func(t *testing.T, out []byte) {
			var snap tracking.Snapshot
			require.NoError(t, json.Unmarshal(out, &snap))
			assert.Equal(t, uint64(2), snap.Seq())
			assert.Equal(t, 5, snap.Len())
		}},
		{"summary", "json", func(t *testing.T, out []byte) {
			var sum tracking.Summary
			require.NoError(t, json.Unmarshal(out, &sum))
			assert.Equal(t, 5, sum.Total)
		}},
		{"vm", "json", func(t *testing.T, out []byte) {
			assert.True(t, json.Valid(out))
			assert.Contains(t, string(out), "VehicleActivity")
		}},
		{"vm", "xml", func(t *testing.T, out []byte) {
			assert.True(t, bytes.HasPrefix(out, []byte("<?xml")))
		}},
		{"gtfsrt", "pb", func(t *testing.T, out []byte) {
			feed, err := gtfsrt.Decode(out)
			require.NoError(t, err)
			assert.Len(t, feed.GetEntity(), 5)
		}},
		{"gtfsrt", "json", func(t *testing.T, out []byte) {
			assert.True(t, json.Valid(out))
			assert.Contains(t, string(out), "vehicle")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.call+"/"+tt.format, func(t *testing.T) {
			app, _ := newTestApp(t, testConfig)
			out, err := app.Oneshot(context.Background(), tt.call, tt.format, 2)
			require.NoError(t, err)
			tt.check(t, out)
		})
	}
}

func TestOneshot_UnsupportedFormats(t *testing.T) {
	tests := []struct{ call, format string }{
		{"devices", "xml"},
		{"summary", "pb"},
		{"vm", "pb"},
		{"gtfsrt", "xml"},
	}
	for _, tt := range tests {
		t.Run(tt.call+"/"+tt.format, func(t *testing.T) {
			app, _ := newTestApp(t, testConfig)
			_, err := app.Oneshot(context.Background(), tt.call, tt.format, 1)
			var qe *QueryError
			require.ErrorAs(t, err, &qe)
			assert.Contains(t, qe.Msg, tt.format)
		})
	}

	app, _ := newTestApp(t, testConfig)
	_, err := app.Oneshot(context.Background(), "stops", "json", 0)
	assert.ErrorContains(t, err, `unknown call "stops"`)
	assert.Equal(t, uint64(0), app.Tracker.Snapshot().Seq(), "rejected calls do not tick")
}
