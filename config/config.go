package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	Environment EnvironmentConfig

	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	Database  DatabaseConfig
	Session   SessionConfig
	Google    OAuthClientConfig
	Microsoft OAuthClientConfig

	Aggregator AggregatorConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type DatabaseConfig struct {
	Path string
}

type SessionConfig struct {
	TTL time.Duration
}

// OAuthClientConfig holds one provider's OAuth client credentials. TokenURL
// overrides the provider's default token endpoint (tests point it at a local
// server); Tenant applies to Microsoft only.
type OAuthClientConfig struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	Tenant       string
}

// AggregatorConfig tunes the fan-out behavior.
type AggregatorConfig struct {
	// FetchDelay is the fixed pause between sequential event-fetch units,
	// a deliberate politeness tradeoff against upstream rate limits.
	FetchDelay time.Duration
	// RateLimitBackoff is the base backoff for Microsoft 429 retries
	// (doubled per attempt: base*2, base*4, base*8 at the default of 1s).
	RateLimitBackoff time.Duration
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	cfg.Database.Path = viper.GetString("database.path")
	cfg.Session.TTL = viper.GetDuration("session.ttl")

	// Provider OAuth clients. Flat env vars win for secrets.
	cfg.Google.ClientID = viper.GetString("google.client_id")
	cfg.Google.ClientSecret = viper.GetString("google.client_secret")
	cfg.Google.TokenURL = viper.GetString("google.token_url")
	if id := viper.GetString("google_client_id"); id != "" {
		cfg.Google.ClientID = id
	}
	if secret := viper.GetString("google_client_secret"); secret != "" {
		cfg.Google.ClientSecret = secret
	}

	cfg.Microsoft.ClientID = viper.GetString("microsoft.client_id")
	cfg.Microsoft.ClientSecret = viper.GetString("microsoft.client_secret")
	cfg.Microsoft.TokenURL = viper.GetString("microsoft.token_url")
	cfg.Microsoft.Tenant = viper.GetString("microsoft.tenant")
	if id := viper.GetString("microsoft_client_id"); id != "" {
		cfg.Microsoft.ClientID = id
	}
	if secret := viper.GetString("microsoft_client_secret"); secret != "" {
		cfg.Microsoft.ClientSecret = secret
	}

	cfg.Aggregator.FetchDelay = viper.GetDuration("aggregator.fetch_delay")
	cfg.Aggregator.RateLimitBackoff = viper.GetDuration("aggregator.rate_limit_backoff")

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.mode", "development")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)
	viper.SetDefault("database.path", "yeargrid.db")
	viper.SetDefault("session.ttl", "24h")
	viper.SetDefault("microsoft.tenant", "common")
	viper.SetDefault("aggregator.fetch_delay", "1s")
	viper.SetDefault("aggregator.rate_limit_backoff", "1s")
}
