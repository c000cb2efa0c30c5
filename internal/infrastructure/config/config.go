package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Backend BackendConfig
	Catalog CatalogConfig
	Cart    CartConfig
	Session SessionConfig
	Redis   RedisConfig
}

type BackendConfig struct {
	BaseURL string        `env:"BACKEND_BASE_URL, default=http://localhost:3000/api"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT,  default=10s"`
}

// CatalogConfig holds the placeholder rule for event fields the backend does
// not supply yet. The displayed price always comes from the ticket tier; this
// default only fills the listing card.
type CatalogConfig struct {
	DefaultPrice    float64 `env:"EVENT_DEFAULT_PRICE,    default=25000"`
	DefaultCategory string  `env:"EVENT_DEFAULT_CATEGORY, default=General"`
}

// CartConfig controls the expiration monitor. TTL is the fallback
// reservation window used only when the backend communicates no deadline of
// its own; it must match the backend's real reservation window.
type CartConfig struct {
	TTL             time.Duration `env:"CART_TTL,              default=15m"`
	RefreshInterval time.Duration `env:"CART_REFRESH_INTERVAL, default=30s"`
}

type SessionConfig struct {
	TTL time.Duration `env:"SESSION_TTL, default=24h"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
