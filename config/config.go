package config

import "fmt"

// Config represents the core go-db configuration
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Closure  ClosureConfig  `mapstructure:"closure"`
	Validate ValidateConfig `mapstructure:"validate"`
	Export   ExportConfig   `mapstructure:"export"`
}

// DatabaseConfig configures the SQLite database
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// ClosureConfig configures closure materialization
type ClosureConfig struct {
	// Policies to materialize on `go-db materialize` (default: isa_partof)
	Policies []string `mapstructure:"policies"`
}

// ValidateConfig configures the validation run
type ValidateConfig struct {
	// Rule codes to skip (e.g., ["GORULE:0000029"])
	SkipRules []string `mapstructure:"skip_rules"`
	// References considered retracted, consulted by the retracted-reference rule
	RetractedReferences []string `mapstructure:"retracted_references"`
}

// ExportConfig configures annotation export
type ExportConfig struct {
	Format string `mapstructure:"format"` // currently only "gaf"
}

// GetDatabasePath returns the configured database path
func (c *Config) GetDatabasePath() string {
	if c.Database.Path == "" {
		return "go.db" // Fallback default
	}
	return c.Database.Path
}

// GetClosurePolicies returns the policies to materialize
func (c *Config) GetClosurePolicies() []string {
	if len(c.Closure.Policies) == 0 {
		return []string{"isa_partof"}
	}
	return c.Closure.Policies
}

// SkipsRule reports whether validation is configured to skip the rule code
func (c *Config) SkipsRule(code string) bool {
	for _, skip := range c.Validate.SkipRules {
		if skip == code {
			return true
		}
	}
	return false
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Database: %s, Closure: %v, Export: %s}",
		c.GetDatabasePath(), c.GetClosurePolicies(), c.Export.Format)
}
