package config

import "time"

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host           string   `yaml:"host"`
	Port           int      `yaml:"port" validate:"gte=0,lte=65535"`
	ReadTimeoutMS  int      `yaml:"readTimeoutMS" validate:"gte=0"`
	WriteTimeoutMS int      `yaml:"writeTimeoutMS" validate:"gte=0"`
	AllowedOrigins []string `yaml:"allowedOrigins" validate:"dive,url"`
}

// SimulatorConfig contains live device simulation parameters
type SimulatorConfig struct {
	DeviceCount    int      `yaml:"deviceCount" validate:"gte=0,lte=10000"`
	TickIntervalMS int      `yaml:"tickIntervalMS" validate:"gte=0"`
	RoutePoints    int      `yaml:"routePoints" validate:"gte=0"`
	Seed           uint64   `yaml:"seed"` // 0 seeds from the wall clock
	StatusPolicy   string   `yaml:"statusPolicy" validate:"omitempty,oneof=uniform motion"`
	IdleBelowKMH   *float64 `yaml:"idleBelowKMH" validate:"omitempty,gte=0"` // absent means DefaultIdleBelowKMH
	StaleAfterMS   int      `yaml:"staleAfterMS" validate:"gte=0"`
}

// PhonebookConfig selects the backing store for name/number records
type PhonebookConfig struct {
	Driver     string `yaml:"driver" validate:"omitempty,oneof=memory sqlite remote"`
	SQLitePath string `yaml:"sqlitePath" validate:"required_if=Driver sqlite"`
	RemoteURL  string `yaml:"remoteURL" validate:"omitempty,url"`
	Seed       bool   `yaml:"seed"`
}

// TelemetryConfig enables the InfluxDB position sink when InfluxURL is set
type TelemetryConfig struct {
	InfluxURL string `yaml:"influxURL" validate:"omitempty,url"`
	Token     string `yaml:"token" validate:"required_with=InfluxURL"`
	Org       string `yaml:"org" validate:"required_with=InfluxURL"`
	Bucket    string `yaml:"bucket" validate:"required_with=InfluxURL"`
}

// FeedConfig contains settings shared by the SIRI and GTFS-RT encoders
type FeedConfig struct {
	Codespace string `yaml:"codespace" validate:"omitempty,alphanum"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server    ServerConfig    `yaml:"server"`
	Simulator SimulatorConfig `yaml:"simulator"`
	Phonebook PhonebookConfig `yaml:"phonebook"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Feed      FeedConfig      `yaml:"feed"`
}

// TickInterval is the simulator period as a duration.
func (c SimulatorConfig) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMS) * time.Millisecond
}

// DefaultIdleBelowKMH is the idle threshold used when idleBelowKMH is absent.
const DefaultIdleBelowKMH = 5.0

// IdleThreshold is the motion status idle threshold. An explicit 0 disables
// idle reporting.
func (c SimulatorConfig) IdleThreshold() float64 {
	if c.IdleBelowKMH == nil {
		return DefaultIdleBelowKMH
	}
	return *c.IdleBelowKMH
}

// StaleAfter is the motion status staleness threshold as a duration.
func (c SimulatorConfig) StaleAfter() time.Duration {
	return time.Duration(c.StaleAfterMS) * time.Millisecond
}

func (c ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutMS) * time.Millisecond
}

func (c ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutMS) * time.Millisecond
}
