package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "harvestlane"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "HL_DB_DSN"
	EnvDBHost = "HL_DB_HOST"
	EnvDBUser = "HL_DB_USER"
	EnvDBName = "HL_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	Search       SearchConfig
	Sync         SyncConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"HL_APP_ENV" required:"true"`
	Port         string `envconfig:"HL_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"HL_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"HL_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"HL_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"HL_DB_DSN"`
	Driver string `envconfig:"HL_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"HL_DB_HOST"`
	LegacyPort     int    `envconfig:"HL_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"HL_DB_USER"`
	LegacyPassword string `envconfig:"HL_DB_PASSWORD"`
	LegacyName     string `envconfig:"HL_DB_NAME"`
	LegacySSLMode  string `envconfig:"HL_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"HL_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"HL_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"HL_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"HL_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"HL_REDIS_URL" required:"true"`
	Address      string        `envconfig:"HL_REDIS_ADDR"`
	Password     string        `envconfig:"HL_REDIS_PASSWORD"`
	DB           int           `envconfig:"HL_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"HL_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"HL_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"HL_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"HL_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"HL_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// SearchConfig tunes the discovery read path.
type SearchConfig struct {
	QueryTimeout  time.Duration `envconfig:"HL_SEARCH_QUERY_TIMEOUT" default:"5s"`
	RetryAttempts int           `envconfig:"HL_SEARCH_RETRY_ATTEMPTS" default:"3"`
	RetryBackoff  time.Duration `envconfig:"HL_SEARCH_RETRY_BACKOFF" default:"50ms"`
}

// SyncConfig tunes the location sync engine and its worker.
type SyncConfig struct {
	Parallelism     int           `envconfig:"HL_SYNC_PARALLELISM" default:"8"`
	CheckpointEvery int           `envconfig:"HL_SYNC_CHECKPOINT_EVERY" default:"100"`
	RetryAttempts   int           `envconfig:"HL_SYNC_RETRY_ATTEMPTS" default:"3"`
	RetryBackoff    time.Duration `envconfig:"HL_SYNC_RETRY_BACKOFF" default:"100ms"`
	PollInterval    time.Duration `envconfig:"HL_SYNC_POLL_INTERVAL" default:"2s"`
	DispatchBatch   int           `envconfig:"HL_SYNC_DISPATCH_BATCH" default:"25"`
	MaxAttempts     int           `envconfig:"HL_SYNC_MAX_ATTEMPTS" default:"5"`
	LockTTL         time.Duration `envconfig:"HL_SYNC_LOCK_TTL" default:"1h"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"HL_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"HL_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
