package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the global application configuration
var Config AppConfig

// DefaultPaths are searched in order when no explicit path is given.
var DefaultPaths = []string{"config.yml", "./config/config.yml"}

// LoadAppConfig loads the first readable path (or DefaultPaths) into Config.
func LoadAppConfig(paths ...string) error {
	cfg, err := Load(paths...)
	if err != nil {
		return err
	}
	Config = cfg
	return nil
}

// Load reads, overlays, validates and defaults a configuration without
// touching the global Config.
func Load(paths ...string) (AppConfig, error) {
	if len(paths) == 0 {
		paths = DefaultPaths
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return AppConfig{}, fmt.Errorf("load .env: %w", err)
	}

	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return AppConfig{}, err
	}
	return Parse(data)
}

// Parse decodes YAML, applies FLEET_* overrides, validates and fills defaults.
func Parse(data []byte) (AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, err
	}
	if err := applyEnv(&cfg); err != nil {
		return AppConfig{}, err
	}
	if err := Validate(cfg); err != nil {
		return AppConfig{}, err
	}
	ApplyDefaults(&cfg)
	return cfg, nil
}

// Validate checks struct tags and cross-field rules.
func Validate(cfg AppConfig) error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return err
	}
	if cfg.Phonebook.Driver == "remote" && cfg.Phonebook.RemoteURL == "" {
		return errors.New("phonebook: remoteURL is required for the remote driver")
	}
	return nil
}

// ApplyDefaults fills zero values with the reference settings.
func ApplyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 16181
	}
	if cfg.Server.ReadTimeoutMS == 0 {
		cfg.Server.ReadTimeoutMS = 10000
	}
	if cfg.Server.WriteTimeoutMS == 0 {
		cfg.Server.WriteTimeoutMS = 30000
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"http://localhost:5173"}
	}
	if cfg.Simulator.DeviceCount == 0 {
		cfg.Simulator.DeviceCount = 5
	}
	if cfg.Simulator.TickIntervalMS == 0 {
		cfg.Simulator.TickIntervalMS = 5000
	}
	if cfg.Simulator.RoutePoints == 0 {
		cfg.Simulator.RoutePoints = 20
	}
	if cfg.Simulator.StatusPolicy == "" {
		cfg.Simulator.StatusPolicy = "uniform"
	}
	if cfg.Simulator.IdleBelowKMH == nil {
		idle := DefaultIdleBelowKMH
		cfg.Simulator.IdleBelowKMH = &idle
	}
	if cfg.Phonebook.Driver == "" {
		cfg.Phonebook.Driver = "memory"
	}
	if cfg.Feed.Codespace == "" {
		cfg.Feed.Codespace = "FLEET"
	}
}

func applyEnv(cfg *AppConfig) error {
	str := map[string]*string{
		"FLEET_SERVER_HOST":           &cfg.Server.Host,
		"FLEET_PHONEBOOK_DRIVER":      &cfg.Phonebook.Driver,
		"FLEET_PHONEBOOK_SQLITE_PATH": &cfg.Phonebook.SQLitePath,
		"FLEET_PHONEBOOK_REMOTE_URL":  &cfg.Phonebook.RemoteURL,
		"FLEET_INFLUX_URL":            &cfg.Telemetry.InfluxURL,
		"FLEET_INFLUX_TOKEN":          &cfg.Telemetry.Token,
		"FLEET_INFLUX_ORG":            &cfg.Telemetry.Org,
		"FLEET_INFLUX_BUCKET":         &cfg.Telemetry.Bucket,
		"FLEET_CODESPACE":             &cfg.Feed.Codespace,
	}
	for key, dst := range str {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"FLEET_SERVER_PORT":      &cfg.Server.Port,
		"FLEET_DEVICE_COUNT":     &cfg.Simulator.DeviceCount,
		"FLEET_TICK_INTERVAL_MS": &cfg.Simulator.TickIntervalMS,
	}
	for key, dst := range ints {
		v, ok := os.LookupEnv(key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
	}
	return nil
}
