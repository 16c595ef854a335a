package config

// LogFormat selects the log encoder.
type LogFormat string

const (
	LogFormatConsole LogFormat = "console"
	LogFormatJSON    LogFormat = "json"
)

// Config is the top-level mockweb configuration, corresponding to .mockweb.yml.
type Config struct {
	Server     ServerConfig   `yaml:"server" koanf:"server"`
	Progress   ProgressConfig `yaml:"progress" koanf:"progress"`
	Data       DataConfig     `yaml:"data" koanf:"data"`
	Log        LogConfig      `yaml:"log" koanf:"log"`
	RandomSeed uint64         `yaml:"random_seed" koanf:"random_seed"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// ProgressConfig controls the cosmetic pauses between generation stages.
type ProgressConfig struct {
	StepDelayMS int `yaml:"step_delay_ms" koanf:"step_delay_ms"`
}

// DataConfig locates session storage. An empty DBPath keeps sessions in memory.
// Sessions idle for SessionTTLMinutes are dropped; zero keeps them forever.
type DataConfig struct {
	DBPath            string `yaml:"db_path" koanf:"db_path"`
	SessionTTLMinutes int    `yaml:"session_ttl_minutes" koanf:"session_ttl_minutes"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level  string    `yaml:"level" koanf:"level"`
	Format LogFormat `yaml:"format" koanf:"format"`
}
