package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	OTP          OTPConfig
	Password     PasswordConfig
	RateLimit    RateLimitConfig
	FeatureFlags FeatureFlagsConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	Outbox       OutboxConfig
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
	Env          string `envconfig:"ZEKTO_APP_ENV" required:"true"`
	Port         string `envconfig:"ZEKTO_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"ZEKTO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ZEKTO_LOG_WARN_STACK" default:"false"`
	// MetricsPort exposes /metrics on worker binaries; empty disables it.
	MetricsPort string `envconfig:"ZEKTO_METRICS_PORT"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"ZEKTO_DB_DSN"`
	Driver string `envconfig:"ZEKTO_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"ZEKTO_DB_HOST"`
	LegacyPort     int    `envconfig:"ZEKTO_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"ZEKTO_DB_USER"`
	LegacyPassword string `envconfig:"ZEKTO_DB_PASSWORD"`
	LegacyName     string `envconfig:"ZEKTO_DB_NAME"`
	LegacySSLMode  string `envconfig:"ZEKTO_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ZEKTO_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"ZEKTO_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"ZEKTO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ZEKTO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ZEKTO_REDIS_URL" required:"true"`
	Address      string        `envconfig:"ZEKTO_REDIS_ADDR"`
	Password     string        `envconfig:"ZEKTO_REDIS_PASSWORD"`
	DB           int           `envconfig:"ZEKTO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ZEKTO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ZEKTO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ZEKTO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ZEKTO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ZEKTO_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"ZEKTO_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"ZEKTO_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"ZEKTO_JWT_EXPIRATION_MINUTES" default:"1440"`
	RefreshTokenDays  int    `envconfig:"ZEKTO_JWT_REFRESH_TOKEN_DAYS" default:"30"`
}

func (j JWTConfig) RefreshTokenTTL() time.Duration {
	return time.Duration(j.RefreshTokenDays) * 24 * time.Hour
}

// OTPConfig governs the phone verification flow. Code delivery itself is an
// external concern; this service only generates, stores, and checks codes.
type OTPConfig struct {
	CodeLength  int           `envconfig:"ZEKTO_OTP_CODE_LENGTH" default:"6"`
	TTL         time.Duration `envconfig:"ZEKTO_OTP_TTL" default:"5m"`
	MaxAttempts int           `envconfig:"ZEKTO_OTP_MAX_ATTEMPTS" default:"5"`
	// DevEcho returns the generated code in the send response. Never enable in prod.
	DevEcho bool `envconfig:"ZEKTO_OTP_DEV_ECHO" default:"false"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"ZEKTO_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"ZEKTO_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"ZEKTO_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"ZEKTO_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"ZEKTO_ARGON_KEY_LEN" default:"32"`
}

type RateLimitConfig struct {
	OTPWindow     time.Duration `envconfig:"ZEKTO_RATE_LIMIT_OTP_WINDOW" default:"1m"`
	OTPPhoneLimit int           `envconfig:"ZEKTO_RATE_LIMIT_OTP_PHONE_LIMIT" default:"3"`
	OTPIPLimit    int           `envconfig:"ZEKTO_RATE_LIMIT_OTP_IP_LIMIT" default:"10"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"ZEKTO_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"ZEKTO_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"ZEKTO_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"ZEKTO_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	OrdersTopic        string `envconfig:"ZEKTO_PUBSUB_ORDERS_TOPIC" default:"zekto-order-events"`
	OrdersSubscription string `envconfig:"ZEKTO_PUBSUB_ORDERS_SUBSCRIPTION"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"ZEKTO_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"ZEKTO_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"ZEKTO_OUTBOX_MAX_ATTEMPTS" default:"10"`
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
