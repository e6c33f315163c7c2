package config

import (
	"log"
	"math"
	"runtime"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Running localy or not
	Debug  bool   `env:"DEBUG" envDefault:"false"`
	Domain string `env:"DOMAIN"`

	// YouTube Data API settings.
	// An empty key disables metadata enrichment.
	YouTubeAPIKey      string `env:"YOUTUBE_API_KEY"`
	YouTubeAPIEndpoint string `env:"YOUTUBE_API_ENDPOINT"`

	// Video reference settings
	MaxReferenceLength int `env:"MAX_REFERENCE_LENGTH" envDefault:"2048"`

	// Retries layered on top of a failed metadata lookup
	LookupMaxRetries int           `env:"LOOKUP_MAX_RETRIES" envDefault:"3"`
	LookupRetryDelay time.Duration `env:"LOOKUP_RETRY_DELAY" envDefault:"500ms"`
	LookupMaxJitter  time.Duration `env:"LOOKUP_MAX_JITTER" envDefault:"250ms"`

	// Lesson videos the worker refreshes per run
	WorkerBatchSize int `env:"WORKER_BATCH_SIZE" envDefault:"50"`

	// Redis
	RedisHost     string        `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     int           `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	CacheTimeout  time.Duration `env:"CACHE_TIMEOUT" envDefault:"86400s"`

	// Postgres
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     int    `env:"DB_PORT" envDefault:"5432"`
	DBDatabase string `env:"DB_DATABASE"`
	DBUsername string `env:"DB_USERNAME"`
	DBPassword string `env:"DB_PASSWORD"`
	DBMaxConns int32  `env:"DB_MAX_CONNS" envDefault:"4"`

	// Local app host and port
	Host string `env:"HOST" envDefault:"localhost"`
	Port int    `env:"PORT" envDefault:"5000"`
}

// New creates new config object
func New() *Config {
	cfg, err := Parse()
	if err != nil {
		log.Fatalf("failed to parse the config; %v", err)
	}
	return cfg
}

// Parse parses the config from the environment
func Parse() (*Config, error) {

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}

	numCPU := runtime.NumCPU()
	if numCPU > math.MaxInt32 {
		numCPU = math.MaxInt32
	}

	// At least one connection per core
	cfg.DBMaxConns = max(cfg.DBMaxConns, int32(numCPU)) // #nosec G115

	return &cfg, nil
}
