// Package config holds process settings, game tuning and frame constants.
package config

import "os"

// Environment variables read by the binaries.
const (
	EnvSSHHost        = "SSH_HOST"
	EnvSSHPort        = "SSH_PORT"
	EnvSSHHostKey     = "SSH_HOST_KEY"
	EnvMetricsAddr    = "METRICS_ADDR"
	EnvTuningFile     = "COINSHOVE_CONFIG"
	EnvLogLevel       = "LOG_LEVEL"
	EnvWebHost        = "WEB_HOST"
	EnvWebPort        = "WEB_PORT"
	EnvSSHDisplayHost = "SSH_DISPLAY_HOST"
)

// GetEnv returns the value of the environment variable named by key, or
// fallback when it is unset. A variable set to "" is returned as "".
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
