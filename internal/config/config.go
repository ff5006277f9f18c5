// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Providers ProvidersConfig `mapstructure:"providers"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
}

// ServerConfig holds the HTTP API server settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	HealthPort      int           `mapstructure:"health_port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// ProvidersConfig holds settings shared by all upstream data providers.
type ProvidersConfig struct {
	// Timeout applies to every individual provider call; fan-out width
	// makes unbounded waits unacceptable.
	Timeout time.Duration `mapstructure:"timeout"`

	CoinGecko CoinGeckoConfig `mapstructure:"coingecko"`
	GoPlus    GoPlusConfig    `mapstructure:"goplus"`
	Cex       CexConfig       `mapstructure:"cex"`
}

// CoinGeckoConfig holds token metadata provider settings.
type CoinGeckoConfig struct {
	BaseURL           string `mapstructure:"base_url"`
	APIKey            string `mapstructure:"api_key"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute"`
}

// GoPlusConfig holds security scan provider settings.
type GoPlusConfig struct {
	BaseURL           string `mapstructure:"base_url"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute"`
}

// CexConfig holds settings for the direct exchange ticker adapters.
type CexConfig struct {
	// BaseURLs overrides per-exchange API endpoints, keyed by exchange
	// identifier. Used by tests; production uses adapter defaults.
	BaseURLs map[string]string `mapstructure:"base_urls"`

	// Breaker settings shared by all CEX adapters.
	BreakerMaxFailures  int           `mapstructure:"breaker_max_failures"`
	BreakerOpenInterval time.Duration `mapstructure:"breaker_open_interval"`
}

// CacheConfig holds result cache TTLs and sizing.
type CacheConfig struct {
	PriceTTL   time.Duration `mapstructure:"price_ttl"`
	SearchTTL  time.Duration `mapstructure:"search_ttl"`
	MaxEntries int           `mapstructure:"max_entries"`
}

// TelemetryConfig holds observability configuration.
type TelemetryConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ServiceName    string `mapstructure:"service_name"`
	OTLPEndpoint   string `mapstructure:"otlp_endpoint"`
	PrometheusPort int    `mapstructure:"prometheus_port"`
}

// Load loads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables
	v.SetEnvPrefix("TL")
	v.AutomaticEnv()

	bindEnvVars(v)
	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, use env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func bindEnvVars(v *viper.Viper) {
	// App
	v.BindEnv("app.name", "TL_APP_NAME", "SERVICE_NAME")
	v.BindEnv("app.environment", "TL_ENVIRONMENT", "ENVIRONMENT")
	v.BindEnv("app.log_level", "TL_LOG_LEVEL", "LOG_LEVEL")

	// Server
	v.BindEnv("server.port", "TL_HTTP_PORT", "PORT")
	v.BindEnv("server.health_port", "TL_HEALTH_PORT")

	// Providers
	v.BindEnv("providers.timeout", "TL_PROVIDER_TIMEOUT")
	v.BindEnv("providers.coingecko.api_key", "TL_COINGECKO_API_KEY", "COINGECKO_API_KEY")
	v.BindEnv("providers.coingecko.base_url", "TL_COINGECKO_BASE_URL")
	v.BindEnv("providers.goplus.base_url", "TL_GOPLUS_BASE_URL")

	// Cache
	v.BindEnv("cache.price_ttl", "TL_CACHE_PRICE_TTL")
	v.BindEnv("cache.search_ttl", "TL_CACHE_SEARCH_TTL")

	// Telemetry
	v.BindEnv("telemetry.enabled", "TL_OTEL_ENABLED", "OTEL_ENABLED")
	v.BindEnv("telemetry.service_name", "TL_OTEL_SERVICE_NAME", "OTEL_SERVICE_NAME")
	v.BindEnv("telemetry.otlp_endpoint", "TL_OTEL_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "tokenlens")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	// Server defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.health_port", 8081)
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")

	// Provider defaults
	v.SetDefault("providers.timeout", "5s")
	v.SetDefault("providers.coingecko.base_url", "https://api.coingecko.com/api/v3")
	v.SetDefault("providers.coingecko.requests_per_minute", 30)
	v.SetDefault("providers.goplus.base_url", "https://api.gopluslabs.io/api/v1")
	v.SetDefault("providers.goplus.requests_per_minute", 30)
	v.SetDefault("providers.cex.breaker_max_failures", 5)
	v.SetDefault("providers.cex.breaker_open_interval", "30s")

	// Cache defaults
	v.SetDefault("cache.price_ttl", "10s")
	v.SetDefault("cache.search_ttl", "60s")
	v.SetDefault("cache.max_entries", 1024)

	// Telemetry defaults
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "tokenlens")
	v.SetDefault("telemetry.prometheus_port", 9090)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Providers.Timeout <= 0 {
		return fmt.Errorf("providers.timeout must be positive")
	}
	if c.Cache.PriceTTL <= 0 || c.Cache.SearchTTL <= 0 {
		return fmt.Errorf("cache TTLs must be positive")
	}
	if c.Cache.MaxEntries <= 0 {
		return fmt.Errorf("cache.max_entries must be positive")
	}
	if c.Providers.CoinGecko.BaseURL == "" {
		return fmt.Errorf("providers.coingecko.base_url is required")
	}
	if c.Providers.GoPlus.BaseURL == "" {
		return fmt.Errorf("providers.goplus.base_url is required")
	}
	return nil
}
