package config

import (
	"fmt"
	"time"
)

// Config is the main SDK configuration struct.
type Config struct {
	App       AppConfig      `mapstructure:"app"`
	Endpoints EndpointConfig `mapstructure:"endpoints"`
	HTTP      HTTPConfig     `mapstructure:"http"`
	Security  SecurityConfig `mapstructure:"security"`
	Cache     CacheConfig    `mapstructure:"cache"`
	Logging   LoggingConfig  `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"` // "stage" or "prod"
}

// EndpointConfig holds the base URLs for the brand services and the
// acquisition (RTPS) services, per environment.
type EndpointConfig struct {
	Stage EnvironmentEndpoints `mapstructure:"stage"`
	Prod  EnvironmentEndpoints `mapstructure:"prod"`
}

type EnvironmentEndpoints struct {
	BrandBaseURL string `mapstructure:"brand_base_url"`
	RTPSBaseURL  string `mapstructure:"rtps_base_url"`
}

// ForEnvironment returns the endpoint set for the given environment name.
func (e EndpointConfig) ForEnvironment(env string) EnvironmentEndpoints {
	if env == "stage" {
		return e.Stage
	}
	return e.Prod
}

type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

type SecurityConfig struct {
	RecaptchaTimeout    time.Duration `mapstructure:"recaptcha_timeout"`
	MaxChallengeRetries int           `mapstructure:"max_challenge_retries"`
}

type CacheConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Address  string        `mapstructure:"address"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func validateConfig(cfg *Config) error {
	if cfg.App.Environment != "stage" && cfg.App.Environment != "prod" {
		return fmt.Errorf("app.environment must be one of stage, prod; got %q", cfg.App.Environment)
	}
	if cfg.HTTP.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be positive")
	}
	if cfg.Security.RecaptchaTimeout <= 0 {
		return fmt.Errorf("security.recaptcha_timeout must be positive")
	}
	if cfg.Security.MaxChallengeRetries < 0 {
		return fmt.Errorf("security.max_challenge_retries must not be negative")
	}
	if cfg.Cache.Enabled && cfg.Cache.Address == "" {
		return fmt.Errorf("cache.address is required when cache is enabled")
	}
	return nil
}
