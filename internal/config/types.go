package config

// Config is the tool's own settings file (~/.awsp/config.yaml). It never
// holds credentials; profiles live in the shared AWS files.
type Config struct {
	Defaults Defaults `yaml:"defaults"`
}

// Defaults contains settings applied when command flags don't say otherwise.
type Defaults struct {
	Shell     string `yaml:"shell"`               // dialect for switch/init output
	Region    string `yaml:"region,omitempty"`    // suggested region for new profiles
	Output    string `yaml:"output,omitempty"`    // suggested AWS CLI output format
	Validator string `yaml:"validator,omitempty"` // "cli" or "sdk"
}

// NewConfig creates a configuration with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Defaults: Defaults{
			Shell:     "bash",
			Output:    "json",
			Validator: "cli",
		},
	}
}
