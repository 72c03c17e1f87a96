package config

import "github.com/spf13/viper"

// SetDefaults configures default values for every configuration option,
// one v.SetDefault call per key, grouped by section.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8765)
	v.SetDefault("server.log_theme", "everforest")

	v.SetDefault("dev.watch_paths", []string{"."})
	v.SetDefault("dev.debounce_millis", 300)
}
