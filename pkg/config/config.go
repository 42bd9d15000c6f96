package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every environment variable the service reads.
	EnvPrefix = "conectlink"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App           AppConfig
	Service       ServiceConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Catalog       CatalogConfig
	Cron          CronConfig
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
	Env          string `envconfig:"CONECTLINK_APP_ENV" required:"true"`
	Port         string `envconfig:"CONECTLINK_APP_PORT" required:"true"`
	BaseURL      string `envconfig:"CONECTLINK_APP_BASE_URL" default:"https://conectlink.app"`
	LogLevel     string `envconfig:"CONECTLINK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CONECTLINK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"CONECTLINK_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"CONECTLINK_DB_DSN"`
	Driver string `envconfig:"CONECTLINK_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"CONECTLINK_DB_HOST"`
	Port     int    `envconfig:"CONECTLINK_DB_PORT" default:"5432"`
	User     string `envconfig:"CONECTLINK_DB_USER"`
	Password string `envconfig:"CONECTLINK_DB_PASSWORD"`
	Name     string `envconfig:"CONECTLINK_DB_NAME"`
	SSLMode  string `envconfig:"CONECTLINK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CONECTLINK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CONECTLINK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CONECTLINK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CONECTLINK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// ensureDSN fills DSN from the discrete host/user fields when it was not set directly.
func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("database DSN or host/user/name settings are required")
	}
	d.DSN = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(d.User),
		url.QueryEscape(d.Password),
		d.Host,
		d.Port,
		d.Name,
		d.SSLMode,
	)
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"CONECTLINK_REDIS_URL" required:"true"`
	Address      string        `envconfig:"CONECTLINK_REDIS_ADDR"`
	Password     string        `envconfig:"CONECTLINK_REDIS_PASSWORD"`
	DB           int           `envconfig:"CONECTLINK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CONECTLINK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CONECTLINK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CONECTLINK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CONECTLINK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CONECTLINK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"CONECTLINK_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"CONECTLINK_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"CONECTLINK_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"CONECTLINK_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"CONECTLINK_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"CONECTLINK_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"CONECTLINK_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"CONECTLINK_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"CONECTLINK_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"CONECTLINK_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"CONECTLINK_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"CONECTLINK_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"CONECTLINK_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"CONECTLINK_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"CONECTLINK_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"CONECTLINK_AUTO_MIGRATE" default:"false"`
	SeedPlans   bool `envconfig:"CONECTLINK_SEED_PLANS" default:"false"`
}

// CatalogConfig points at optional JSON files that override the built-in
// alert-type and social-platform metadata. Empty paths keep the defaults.
type CatalogConfig struct {
	AlertTypesFile      string `envconfig:"CONECTLINK_CATALOG_ALERT_TYPES_FILE"`
	SocialPlatformsFile string `envconfig:"CONECTLINK_CATALOG_SOCIAL_PLATFORMS_FILE"`
}

type CronConfig struct {
	Interval    time.Duration `envconfig:"CONECTLINK_CRON_INTERVAL" default:"1h"`
	ExpiryBatch int           `envconfig:"CONECTLINK_CRON_EXPIRY_BATCH" default:"500"`
}
