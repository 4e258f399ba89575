// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml, optionally overlaid by a .env
// file and FLEET_* environment variables, and validated using struct tags.
package config
