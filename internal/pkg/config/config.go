package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port        string `env:"PORT,         default=8080"`
	GatewayPort string `env:"GATEWAY_PORT, default=8081"`
	Env         string `env:"ENV,          default=development"`
	JWTSecret   string `env:"JWT_SECRET,   default=dev-secret"`
	LogLevel    string `env:"LOG_LEVEL,    default=info"`
	Version     string `env:"APP_VERSION,  default=1.0.0"`
	WebDir      string `env:"WEB_DIR,      default=web"`

	Store    StoreConfig
	Cache    CacheConfig
	Gateway  GatewayConfig
	Notifier NotifierConfig
	Mongo    MongoConfig
	Redis    RedisConfig
}

// StoreConfig selects the persistence backend for users, sessions and
// todos. "file" keeps JSON documents under DataDir; "mongo" uses the
// document repositories.
type StoreConfig struct {
	Backend string `env:"STORE_BACKEND, default=file"`
	DataDir string `env:"DATA_DIR,      default=data"`
}

// CacheConfig selects where the gateway keeps cached responses.
type CacheConfig struct {
	Backend string `env:"CACHE_BACKEND, default=memory"`
}

type GatewayConfig struct {
	// Upstream is the app origin the gateway fronts. Defaults to the local
	// API server.
	Upstream string `env:"GATEWAY_UPSTREAM, default=http://localhost:8080"`
	// FetchTimeout bounds upstream fetches. Zero means no timeout.
	FetchTimeout time.Duration `env:"GATEWAY_FETCH_TIMEOUT, default=0"`
}

type NotifierConfig struct {
	Interval time.Duration `env:"NOTIFY_INTERVAL, default=1h"`
	Workers  int           `env:"NOTIFY_WORKERS,  default=4"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=todo_offline"`
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
