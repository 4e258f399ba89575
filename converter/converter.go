package converter

import (
	"math"
	"strings"

	"github.com/theoremus-urban-solutions/fleet-tracker/siri"
	"github.com/theoremus-urban-solutions/fleet-tracker/tracking"
	"github.com/theoremus-urban-solutions/fleet-tracker/utils"
)

// DefaultCodespace is used when ConverterOptions.Codespace is empty.
const DefaultCodespace = "FLEET"

// Converter produces SIRI responses from snapshots
type Converter struct {
	opts ConverterOptions
}

// NewConverter creates a new converter instance
func NewConverter(opts ConverterOptions) *Converter {
	if opts.Codespace == "" {
		opts.Codespace = DefaultCodespace
	}
	return &Converter{opts: opts}
}

// Codespace returns the configured codespace.
func (c *Converter) Codespace() string { return c.opts.Codespace }

// VehicleRef formats a device id as {codespace}:VehicleRef:{id}.
func (c *Converter) VehicleRef(deviceID string) string {
	return c.opts.Codespace + ":VehicleRef:" + deviceID
}

// VehicleMonitoring builds a complete VM response for snap.
func (c *Converter) VehicleMonitoring(snap tracking.Snapshot, f Filter) *siri.SiriResponse {
	ts := utils.Iso8601(snap.TakenAt())
	vm := siri.VehicleMonitoring{
		ResponseTimestamp: ts,
		ValidUntil:        utils.ValidUntil(snap.TakenAt(), c.opts.Interval),
		VehicleActivity:   []siri.VehicleActivityEntry{},
	}
	for _, d := range snap.Devices() {
		if !c.matches(d, f) {
			continue
		}
		vm.VehicleActivity = append(vm.VehicleActivity, c.activity(d, vm.ValidUntil))
	}
	return &siri.SiriResponse{Siri: siri.SiriServiceDelivery{ServiceDelivery: siri.ServiceDelivery{
		ResponseTimestamp:         ts,
		ProducerRef:               c.opts.Codespace,
		VehicleMonitoringDelivery: []siri.VehicleMonitoring{vm},
	}}}
}

func (c *Converter) activity(d tracking.Device, validUntil string) siri.VehicleActivityEntry {
	velocity := int(math.Round(d.Speed))
	return siri.VehicleActivityEntry{
		RecordedAtTime: utils.Iso8601(d.LastUpdate),
		ValidUntilTime: validUntil,
		MonitoredVehicleJourney: siri.MonitoredVehicleJourney{
			VehicleJourneyName: d.Name,
			Monitored:          d.Status != tracking.StatusOffline,
			DataSource:         c.opts.Codespace,
			VehicleLocation:    &siri.VehicleLocation{Latitude: d.Lat, Longitude: d.Lng},
			Velocity:           &velocity,
			VehicleStatus:      VehicleStatus(d.Status),
			VehicleRef:         c.VehicleRef(d.ID),
		},
	}
}

func (c *Converter) matches(d tracking.Device, f Filter) bool {
	if f.Status != "" && !strings.EqualFold(string(d.Status), strings.TrimSpace(f.Status)) {
		return false
	}
	if ref := strings.TrimSpace(f.VehicleRef); ref != "" {
		if !strings.EqualFold(ref, d.ID) && !strings.EqualFold(ref, c.VehicleRef(d.ID)) {
			return false
		}
	}
	return true
}

// VehicleStatus maps a tracking status to the SIRI VehicleStatus value.
func VehicleStatus(s tracking.Status) string {
	switch s {
	case tracking.StatusOnline:
		return siri.VehicleStatusInProgress
	case tracking.StatusIdle:
		return siri.VehicleStatusAssigned
	default:
		return siri.VehicleStatusNotExpected
	}
}
