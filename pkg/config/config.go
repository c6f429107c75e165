package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	Redis     RedisConfig
	State     StateConfig
	Discounts DiscountsConfig
	CartAPI   CartAPIConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CONFIGURATOR_APP_ENV" required:"true"`
	Port         string `envconfig:"CONFIGURATOR_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CONFIGURATOR_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CONFIGURATOR_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type RedisConfig struct {
	URL          string        `envconfig:"CONFIGURATOR_REDIS_URL"`
	Address      string        `envconfig:"CONFIGURATOR_REDIS_ADDR"`
	Password     string        `envconfig:"CONFIGURATOR_REDIS_PASSWORD"`
	DB           int           `envconfig:"CONFIGURATOR_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CONFIGURATOR_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CONFIGURATOR_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CONFIGURATOR_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CONFIGURATOR_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CONFIGURATOR_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint was configured at all; the state
// store falls back to in-memory persistence when it was not.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type StateConfig struct {
	WriteTimeout time.Duration `envconfig:"CONFIGURATOR_STATE_WRITE_TIMEOUT" default:"3s"`
}

type DiscountsConfig struct {
	ResolveLatency time.Duration `envconfig:"CONFIGURATOR_DISCOUNT_RESOLVE_LATENCY" default:"800ms"`
}

type CartAPIConfig struct {
	SubmitLatency time.Duration `envconfig:"CONFIGURATOR_CART_SUBMIT_LATENCY" default:"1s"`
}
