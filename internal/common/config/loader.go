package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	// Enable ENV override like BREADPARTNERS_APP_ENVIRONMENT
	viper.SetEnvPrefix("breadpartners")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns a ready-to-use configuration without touching the
// filesystem; hosts embedding the SDK usually start from this and override
// fields directly.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func loadEnvFile() {
	possiblePaths := []string{".env", "../.env"}
	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "bread-partners-sdk"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "prod"
	}
	if cfg.Endpoints.Stage.BrandBaseURL == "" {
		cfg.Endpoints.Stage.BrandBaseURL = "https://brands.kmsmep.com"
	}
	if cfg.Endpoints.Stage.RTPSBaseURL == "" {
		cfg.Endpoints.Stage.RTPSBaseURL = "https://acquire1uat.comenity.net"
	}
	if cfg.Endpoints.Prod.BrandBaseURL == "" {
		cfg.Endpoints.Prod.BrandBaseURL = "https://brands.kmsmep.com"
	}
	if cfg.Endpoints.Prod.RTPSBaseURL == "" {
		cfg.Endpoints.Prod.RTPSBaseURL = "https://acquire1.comenity.net"
	}
	if cfg.HTTP.Timeout == 0 {
		cfg.HTTP.Timeout = 15 * time.Second
	}
	if cfg.Security.RecaptchaTimeout == 0 {
		cfg.Security.RecaptchaTimeout = 10 * time.Second
	}
	if cfg.Security.MaxChallengeRetries == 0 {
		cfg.Security.MaxChallengeRetries = 1
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 30 * time.Minute
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}
