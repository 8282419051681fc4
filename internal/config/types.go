package config

// Config is the top-level painel configuration, corresponding to painel.yml.
type Config struct {
	// Port the HTTP API listens on.
	Port int `yaml:"port" koanf:"port"`
	// DataDir holds the SQLite database and the preferences file.
	DataDir string `yaml:"data_dir" koanf:"data_dir"`
	// DefaultSector is used when no sector can be resolved.
	DefaultSector string `yaml:"default_sector" koanf:"default_sector"`
	// AllowAllOrigins opens CORS to any origin (dev mode).
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	// Links maps link-slot keys (e.g. "consultoria-comercial") to
	// fallback Power BI URLs used when no binding is persisted.
	Links map[string]string `yaml:"links" koanf:"links"`
}
