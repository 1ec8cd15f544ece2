package config

// EnvPrefix is the envconfig prefix shared by every Zekto binary.
const EnvPrefix = "zekto"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
	AppEnvTest = "test"
)

// Environment variable names referenced directly in error messages and tests.
const (
	EnvAppEnv = "ZEKTO_APP_ENV"
	EnvPort   = "ZEKTO_APP_PORT"

	EnvDBDSN  = "ZEKTO_DB_DSN"
	EnvDBHost = "ZEKTO_DB_HOST"
	EnvDBUser = "ZEKTO_DB_USER"
	EnvDBName = "ZEKTO_DB_NAME"

	EnvRedisURL  = "ZEKTO_REDIS_URL"
	EnvJWTSecret = "ZEKTO_JWT_SECRET"
	EnvJWTIssuer = "ZEKTO_JWT_ISSUER"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
