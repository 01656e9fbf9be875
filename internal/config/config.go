package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMongo    = "mongo"
	StoreDriverMemory   = "memory"
)

type Config struct {
	App      AppConfig
	Store    StoreConfig
	Database DatabaseConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	JWT      JWTConfig
}

type AppConfig struct {
	AppName     string `env:"APP_NAME" env-required:"true"`
	Environment string `env:"APP_ENV" env-default:"development"`
	HTTPPort    string `env:"HTTP_PORT" env-required:"true"`
}

type StoreConfig struct {
	Driver string `env:"STORE_DRIVER" env-default:"postgres"`
}

type DatabaseConfig struct {
	DBHost     string `env:"DB_HOST" env-default:"localhost"`
	DBPort     string `env:"DB_PORT" env-default:"5432"`
	DBName     string `env:"DB_NAME" env-default:"tha_drop"`
	DBUser     string `env:"DB_USER" env-default:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBSSLMode  string `env:"DB_SSL_MODE" env-default:"disable"`

	ConnectTimeout        time.Duration `env:"DB_CONNECT_TIMEOUT" env-default:"5s"`
	PoolMaxConns          int32         `env:"DB_POOL_MAX_CONNS" env-default:"10"`
	PoolMinConns          int32         `env:"DB_POOL_MIN_CONNS" env-default:"0"`
	PoolMaxConnLifetime   time.Duration `env:"DB_POOL_MAX_CONN_LIFETIME" env-default:"1h"`
	PoolMaxConnIdleTime   time.Duration `env:"DB_POOL_MAX_CONN_IDLE_TIME" env-default:"30m"`
	PoolHealthCheckPeriod time.Duration `env:"DB_POOL_HEALTH_CHECK_PERIOD" env-default:"1m"`
}

// DSN renders the keyword/value connection string understood by pgxpool.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		strings.TrimSpace(d.DBHost),
		strings.TrimSpace(d.DBPort),
		strings.TrimSpace(d.DBUser),
		d.DBPassword,
		strings.TrimSpace(d.DBName),
		strings.TrimSpace(d.DBSSLMode),
	)
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI" env-default:"mongodb://localhost:27017"`
	Database string `env:"MONGO_DATABASE" env-default:"tha_drop"`
}

type RedisConfig struct {
	Host     string        `env:"REDIS_HOST" env-default:"localhost"`
	Port     string        `env:"REDIS_PORT" env-default:"6379"`
	Password string        `env:"REDIS_PASSWORD"`
	TTL      time.Duration `env:"CACHE_TTL" env-default:"10m"`
}

func (r RedisConfig) Addr() string {
	return net.JoinHostPort(strings.TrimSpace(r.Host), strings.TrimSpace(r.Port))
}

type JWTConfig struct {
	AccessSecret     string        `env:"JWT_ACCESS_SECRET" env-required:"true"`
	RefreshSecret    string        `env:"JWT_REFRESH_SECRET" env-required:"true"`
	AccessExpiresIn  time.Duration `env:"JWT_ACCESS_EXPIRES_IN" env-default:"24h"`
	RefreshExpiresIn time.Duration `env:"JWT_REFRESH_EXPIRES_IN" env-default:"720h"`
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidStoreDriver = errors.New("invalid store driver")
)

func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", errMissingRequiredEnv, err)
	}

	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	switch cfg.Store.Driver {
	case StoreDriverPostgres, StoreDriverMongo, StoreDriverMemory:
	default:
		return Config{}, fmt.Errorf("%w: %q", errInvalidStoreDriver, cfg.Store.Driver)
	}

	return cfg, nil
}
