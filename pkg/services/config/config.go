package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/restoreco/claimscope/pkg/services/delivery"
	"github.com/restoreco/claimscope/pkg/services/extraction/openrouter"
)

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type SessionConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// Config is the full service configuration: the HTTP surface, the
// session store, and the two external collaborators.
type Config struct {
	Server     ServerConfig      `mapstructure:"server"`
	Session    SessionConfig     `mapstructure:"session"`
	OpenRouter openrouter.Config `mapstructure:"openrouter"`
	CRM        delivery.Config   `mapstructure:"crm"`
}

// Load reads the config file at path. Collaborator credentials may be
// supplied via CLAIMSCOPE_-prefixed environment variables instead of
// the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("CLAIMSCOPE")
	v.AutomaticEnv()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("session.ttl", 2*time.Hour)
	v.SetDefault("crm.retry_max", 3)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.OpenRouter.APIKey == "" {
		return nil, fmt.Errorf("openrouter.api_key must be set")
	}
	if cfg.CRM.Endpoint == "" {
		return nil, fmt.Errorf("crm.endpoint must be set")
	}
	return &cfg, nil
}
