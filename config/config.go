package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/DanielWijono/minton3t-ranking/app/observability"
)

const (
	defaultHTTPAddress    = ":8080"
	defaultReadTimeout    = 15 * time.Second
	defaultWriteTimeout   = 30 * time.Second
	defaultUploadMaxBytes = 10 << 20
	defaultRateLimit      = 1.0
	defaultRateBurst      = 5
	defaultServiceName    = "minton3t-ranking"
)

// Config struct to hold the configuration settings
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	HTTP          HTTPConfig          `yaml:"http"`
	Upload        UploadConfig        `yaml:"upload"`
	MVP           MVPConfig           `yaml:"mvp"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN         string `yaml:"dsn"`
	AutoMigrate bool   `yaml:"auto_migrate"`
}

// HTTPConfig holds the API server configuration.
type HTTPConfig struct {
	Address        string        `yaml:"address"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
}

// UploadConfig limits the admin upload endpoints.
type UploadConfig struct {
	MaxBytes int64 `yaml:"max_bytes"`
	// RateLimit is the sustained uploads per second allowed per client IP.
	RateLimit float64 `yaml:"rate_limit"`
	RateBurst int     `yaml:"rate_burst"`
}

// MVPConfig holds MVP flow settings.
type MVPConfig struct {
	// AllowedYears restricts the years an MVP period may be synced for. Empty accepts any year.
	AllowedYears []int `yaml:"allowed_years"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	ServiceName    string `yaml:"service_name"`
	Environment    string `yaml:"environment"`
	LogLevel       string `yaml:"log_level"`
	MetricsEnabled bool   `yaml:"metrics_enabled"`
}

// LoadConfig loads the configuration from a YAML file, then applies environment overrides.
// When the file cannot be read, the configuration comes from the environment alone.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return loadConfigFromEnv()
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	cfg.setDefaults()

	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("postgres dsn not set (config file or DATABASE_URL)")
	}
	return &cfg, nil
}

// loadConfigFromEnv loads the configuration from environment variables.
func loadConfigFromEnv() (*Config, error) {
	var cfg Config

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}
	cfg.setDefaults()

	return &cfg, nil
}

// applyEnv overrides cfg with every environment variable that is set.
func applyEnv(cfg *Config) error {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("AUTO_MIGRATE"); v != "" {
		cfg.Postgres.AutoMigrate = v == "true"
	}
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("UPLOAD_MAX_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid UPLOAD_MAX_BYTES value: %v", err)
		}
		cfg.Upload.MaxBytes = n
	}
	if v := os.Getenv("MVP_ALLOWED_YEARS"); v != "" {
		years := make([]int, 0, 4)
		for _, s := range splitList(v) {
			y, err := strconv.Atoi(s)
			if err != nil {
				return fmt.Errorf("invalid MVP_ALLOWED_YEARS value %q: %v", s, err)
			}
			years = append(years, y)
		}
		cfg.MVP.AllowedYears = years
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		cfg.Observability.MetricsEnabled = v == "true"
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = defaultHTTPAddress
	}
	if c.HTTP.ReadTimeout == 0 {
		c.HTTP.ReadTimeout = defaultReadTimeout
	}
	if c.HTTP.WriteTimeout == 0 {
		c.HTTP.WriteTimeout = defaultWriteTimeout
	}
	if c.Upload.MaxBytes <= 0 {
		c.Upload.MaxBytes = defaultUploadMaxBytes
	}
	if c.Upload.RateLimit <= 0 {
		c.Upload.RateLimit = defaultRateLimit
	}
	if c.Upload.RateBurst <= 0 {
		c.Upload.RateBurst = defaultRateBurst
	}
	if c.Observability.ServiceName == "" {
		c.Observability.ServiceName = defaultServiceName
	}
	if c.Observability.Environment == "" {
		c.Observability.Environment = "development"
	}
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ToObsConfig maps the observability section onto observability.Config.
func ToObsConfig(appCfg *Config) observability.Config {
	return observability.Config{
		ServiceName:    appCfg.Observability.ServiceName,
		Environment:    appCfg.Observability.Environment,
		LogLevel:       appCfg.Observability.LogLevel,
		MetricsEnabled: appCfg.Observability.MetricsEnabled,
	}
}
