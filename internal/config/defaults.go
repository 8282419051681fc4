package config

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:          8080,
		DataDir:       "data",
		DefaultSector: "consultoria",
		Links:         map[string]string{},
	}
}
