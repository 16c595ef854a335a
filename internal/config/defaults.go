package config

import "time"

// DefaultConfigFile is the config file looked up when --config is not given.
const DefaultConfigFile = ".mockweb.yml"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
		},
		Progress: ProgressConfig{
			StepDelayMS: 800,
		},
		Data: DataConfig{
			SessionTTLMinutes: 24 * 60,
		},
		Log: LogConfig{
			Level:  "info",
			Format: LogFormatConsole,
		},
	}
}

// StepDelay returns the configured stage pause as a duration.
func (c *Config) StepDelay() time.Duration {
	return time.Duration(c.Progress.StepDelayMS) * time.Millisecond
}

// SessionTTL returns how long an idle session is kept, or zero for no expiry.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Data.SessionTTLMinutes) * time.Minute
}
