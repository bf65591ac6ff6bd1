package config

import "time"

// Config holds runtime settings for the assistant CLI.
//
// RequestTimeout bounds every ordinary API call; UploadTimeout is the larger
// budget applied to multipart file ingests only.
type Config struct {
	ServerEndpointAddr  string        `env:"ASSISTANT_SERVER_ADDR"`
	DatabasePath        string        `env:"ASSISTANT_DB_PATH"`
	RequestTimeout      time.Duration `env:"ASSISTANT_REQUEST_TIMEOUT"`
	UploadTimeout       time.Duration `env:"ASSISTANT_UPLOAD_TIMEOUT"`
	OnlineCheckInterval time.Duration `env:"ASSISTANT_ONLINE_CHECK_INTERVAL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:8000"
	c.DatabasePath = "assistant.db"
	c.RequestTimeout = 15 * time.Second
	c.UploadTimeout = 5 * time.Minute
	c.OnlineCheckInterval = 3 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
