// Package config loads graphsyncd's configuration: viper layered over
// defaults, a project config file, and environment variables, unmarshaled
// into a typed struct.
package config

// Config is graphsyncd's full configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Dev    DevConfig    `mapstructure:"dev"`
}

// ServerConfig holds the listening address. LogTheme is loaded but not read
// by the logger, which takes its theme from GRAPHSYNC_LOG_THEME.
type ServerConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	LogTheme string `mapstructure:"log_theme"`
}

// DevConfig configures the --dev autoreload supervisor.
type DevConfig struct {
	WatchPaths     []string `mapstructure:"watch_paths"`
	DebounceMillis int      `mapstructure:"debounce_millis"`
}
