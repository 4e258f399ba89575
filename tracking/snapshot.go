package tracking

import (
	"encoding/json"
	"time"
)

// Snapshot is an immutable copy of the device set at a point in time.
type Snapshot struct {
	seq     uint64
	takenAt time.Time
	devices []Device
}

// NewSnapshot copies devices into a new snapshot.
func NewSnapshot(seq uint64, takenAt time.Time, devices []Device) Snapshot {
	cp := make([]Device, len(devices))
	copy(cp, devices)
	return Snapshot{seq: seq, takenAt: takenAt, devices: cp}
}

// Seq is the number of ticks applied before this snapshot was taken.
func (s Snapshot) Seq() uint64 { return s.seq }

func (s Snapshot) TakenAt() time.Time { return s.takenAt }

func (s Snapshot) Len() int { return len(s.devices) }

// Devices returns a copy of the device set.
func (s Snapshot) Devices() []Device {
	cp := make([]Device, len(s.devices))
	copy(cp, s.devices)
	return cp
}

// Device looks up a device by id.
func (s Snapshot) Device(id string) (Device, bool) {
	for _, d := range s.devices {
		if d.ID == id {
			return d, true
		}
	}
	return Device{}, false
}

type snapshotJSON struct {
	Seq     uint64    `json:"seq"`
	TakenAt time.Time `json:"taken_at"`
	Devices []Device  `json:"devices"`
}

func (s Snapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(snapshotJSON{Seq: s.seq, TakenAt: s.takenAt, Devices: s.Devices()})
}

func (s *Snapshot) UnmarshalJSON(b []byte) error {
	var raw snapshotJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*s = NewSnapshot(raw.Seq, raw.TakenAt, raw.Devices)
	return nil
}
