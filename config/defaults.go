package config

import (
	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Database defaults
	v.SetDefault("database.path", "go.db")

	// Closure defaults
	v.SetDefault("closure.policies", []string{"isa_partof"})

	// Export defaults
	v.SetDefault("export.format", "gaf")
}

// BindEnvVars explicitly binds configuration that is commonly set per
// environment rather than per project
func BindEnvVars(v *viper.Viper) {
	v.BindEnv("database.path", "GODB_DATABASE_PATH")
}
