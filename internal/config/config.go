package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/text/currency"
)

const (
	SlotBackendMemory = "memory"
	SlotBackendFile   = "file"
	SlotBackendRedis  = "redis"
)

type Config struct {
	App    AppConfig
	Cart   CartConfig
	Redis  RedisConfig
	Remote RemoteConfig
	Server ServerConfig
	JWT    JWTConfig
}

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) (*Config, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load(envFiles...)

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) Validate() error {
	if _, err := c.Cart.CurrencyUnit(); err != nil {
		return err
	}

	switch strings.ToLower(c.Cart.SlotBackend) {
	case SlotBackendMemory:
	case SlotBackendFile:
		if c.Cart.SlotDir == "" {
			return fmt.Errorf("STOREFRONT_SLOT_DIR is required for the file slot backend")
		}
	case SlotBackendRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("STOREFRONT_REDIS_URL is required for the redis slot backend")
		}
	default:
		return fmt.Errorf("unknown slot backend %q", c.Cart.SlotBackend)
	}

	return nil
}

type AppConfig struct {
	LogLevel  string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"STOREFRONT_LOG_FORMAT" default:"json"`
}

type CartConfig struct {
	Currency    string `envconfig:"STOREFRONT_CURRENCY" default:"USD"`
	SlotBackend string `envconfig:"STOREFRONT_SLOT_BACKEND" default:"memory"`
	SlotDir     string `envconfig:"STOREFRONT_SLOT_DIR"`
	SessionKey  string `envconfig:"STOREFRONT_SESSION_KEY" default:"session"`
}

func (c CartConfig) CurrencyUnit() (currency.Unit, error) {
	unit, err := currency.ParseISO(c.Currency)
	if err != nil {
		return currency.Unit{}, fmt.Errorf("currency[%s] is not valid: %w", c.Currency, err)
	}
	return unit, nil
}

type RedisConfig struct {
	URL     string        `envconfig:"STOREFRONT_REDIS_URL"`
	SlotTTL time.Duration `envconfig:"STOREFRONT_REDIS_SLOT_TTL" default:"0"`
}

type RemoteConfig struct {
	// empty disables remote sync
	BaseURL string        `envconfig:"STOREFRONT_REMOTE_BASE_URL"`
	Timeout time.Duration `envconfig:"STOREFRONT_REMOTE_TIMEOUT" default:"10s"`
}

type ServerConfig struct {
	Addr        string `envconfig:"STOREFRONT_SERVER_ADDR" default:":8080"`
	DSN         string `envconfig:"STOREFRONT_DB_DSN"`
	AutoMigrate bool   `envconfig:"STOREFRONT_AUTO_MIGRATE" default:"true"`
}

type JWTConfig struct {
	Secret string        `envconfig:"STOREFRONT_JWT_SECRET"`
	Issuer string        `envconfig:"STOREFRONT_JWT_ISSUER" default:"storefront"`
	TTL    time.Duration `envconfig:"STOREFRONT_JWT_TTL" default:"24h"`
}
