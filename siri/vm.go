package siri

// VehicleMonitoring represents the VehicleMonitoring delivery
type VehicleMonitoring struct {
	ResponseTimestamp string                 `json:"ResponseTimestamp"`
	ValidUntil        string                 `json:"ValidUntil,omitempty"`
	VehicleActivity   []VehicleActivityEntry `json:"VehicleActivity"`
}

// VehicleActivityEntry represents a single vehicle's activity
type VehicleActivityEntry struct {
	RecordedAtTime          string                  `json:"RecordedAtTime"`
	ValidUntilTime          string                  `json:"ValidUntilTime,omitempty"`
	MonitoredVehicleJourney MonitoredVehicleJourney `json:"MonitoredVehicleJourney"`
}

// MonitoredVehicleJourney contains details about a monitored vehicle
type MonitoredVehicleJourney struct {
	VehicleJourneyName string           `json:"VehicleJourneyName,omitempty"`
	Monitored          bool             `json:"Monitored"`
	DataSource         string           `json:"DataSource"`
	VehicleLocation    *VehicleLocation `json:"VehicleLocation,omitempty"`
	Velocity           *int             `json:"Velocity,omitempty"` // km/h
	VehicleStatus      string           `json:"VehicleStatus,omitempty"`
	VehicleRef         string           `json:"VehicleRef"`
}

// VehicleLocation represents the geographical location of a vehicle
type VehicleLocation struct {
	Latitude  float64 `json:"Latitude"`
	Longitude float64 `json:"Longitude"`
}
