package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`
	LogFile   string `env:"LOG_FILE"`

	// ClientIdleTTL is how long per-client state survives without requests.
	ClientIdleTTL   time.Duration `env:"CLIENT_IDLE_TTL,   default=24h"`
	CatalogSeedFile string        `env:"CATALOG_SEED_FILE"`

	Auth  AuthConfig
	Chat  ChatConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	JWTSecret  string        `env:"JWT_SECRET"`
	TokenTTL   time.Duration `env:"TOKEN_TTL,   default=24h"`
	LoginDelay time.Duration `env:"LOGIN_DELAY, default=1s"`
	ConfirmTTL time.Duration `env:"CONFIRM_TTL, default=2m"`

	AdminEmail string `env:"ADMIN_EMAIL, default=admin@lumina.com"`
	// AdminPasswordHash wins over AdminPassword when both are set.
	AdminPassword     string `env:"ADMIN_PASSWORD, default=123456"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`
}

type ChatConfig struct {
	APIKey          string        `env:"GEMINI_API_KEY"`
	Model           string        `env:"CHAT_MODEL,            default=gemini-2.5-flash"`
	StreamTimeout   time.Duration `env:"CHAT_STREAM_TIMEOUT,   default=60s"`
	BreakerFailures uint32        `env:"CHAT_BREAKER_FAILURES, default=5"`
	BreakerCooldown time.Duration `env:"CHAT_BREAKER_COOLDOWN, default=30s"`
}

type MongoConfig struct {
	Enabled  bool   `env:"MONGO_ENABLED, default=false"`
	URI      string `env:"MONGO_URI,     default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,      default=lumina_market"`
}

type RedisConfig struct {
	Enabled  bool   `env:"REDIS_ENABLED, default=false"`
	Addr     string `env:"REDIS_ADDR,    default=localhost:6379"`
	DB       int    `env:"REDIS_DB,      default=0"`
	Password string `env:"REDIS_PASSWORD"`
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.JWTSecret == "" {
		if c.IsProduction() {
			return errors.New("JWT_SECRET is required in production")
		}
		c.Auth.JWTSecret = "dev-secret"
	}
	if c.IsProduction() && c.Auth.AdminPasswordHash == "" {
		return errors.New("ADMIN_PASSWORD_HASH is required in production")
	}
	if c.ClientIdleTTL <= 0 {
		return errors.New("CLIENT_IDLE_TTL must be positive")
	}
	return nil
}
