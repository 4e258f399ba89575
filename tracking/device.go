package tracking

import (
	"time"

	"github.com/theoremus-urban-solutions/fleet-tracker/utils"
)

// Status is the reported connectivity state of a device.
type Status string

const (
	StatusOnline  Status = "online"
	StatusIdle    Status = "idle"
	StatusOffline Status = "offline"
)

// Statuses lists every Status in sampling order.
var Statuses = []Status{StatusOnline, StatusOffline, StatusIdle}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusOnline, StatusIdle, StatusOffline:
		return true
	}
	return false
}

// Position is a WGS84 coordinate pair.
type Position struct {
	Lat float64 `json:"latitude"`
	Lng float64 `json:"longitude"`
}

// Clamped returns p limited to the valid latitude and longitude ranges.
func (p Position) Clamped() Position {
	return Position{Lat: utils.ClampLatitude(p.Lat), Lng: utils.ClampLongitude(p.Lng)}
}

// Valid reports whether p lies within the valid coordinate ranges.
func (p Position) Valid() bool {
	return utils.ValidCoordinate(p.Lat, p.Lng)
}

// Device is a simulated tracked entity. It holds no references, so copying a
// Device copies all of its state.
type Device struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Position
	Speed      float64   `json:"speed"` // km/h
	Status     Status    `json:"status"`
	LastUpdate time.Time `json:"last_update"`
}

// ReferenceLocation is a named seed point for new devices.
type ReferenceLocation struct {
	Name string
	Position
}

// ReferenceLocations are the cities devices are seeded around, in order.
var ReferenceLocations = []ReferenceLocation{
	{Name: "Helsinki", Position: Position{Lat: 60.1699, Lng: 24.9384}},
	{Name: "Tampere", Position: Position{Lat: 61.4978, Lng: 23.7603}},
	{Name: "Turku", Position: Position{Lat: 60.4518, Lng: 22.2666}},
	{Name: "Oulu", Position: Position{Lat: 64.2008, Lng: 27.7241}},
	{Name: "Jyväskylä", Position: Position{Lat: 62.2411, Lng: 25.7482}},
}
