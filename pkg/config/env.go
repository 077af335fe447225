package config

// EnvPrefix namespaces every environment variable consumed by the service.
const EnvPrefix = "PERFVAL"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	EnvAppEnv   = "PERFVAL_APP_ENV"
	EnvPort     = "PERFVAL_APP_PORT"
	EnvLogLevel = "PERFVAL_LOG_LEVEL"

	EnvDBDSN  = "PERFVAL_DB_DSN"
	EnvDBHost = "PERFVAL_DB_HOST"
	EnvDBUser = "PERFVAL_DB_USER"
	EnvDBName = "PERFVAL_DB_NAME"

	EnvRedisAddr = "PERFVAL_REDIS_ADDR"

	EnvJWTSecret  = "PERFVAL_JWT_SECRET"
	EnvJWTIssuer  = "PERFVAL_JWT_ISSUER"
	EnvJWTExpMins = "PERFVAL_JWT_EXPIRATION_MINUTES"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
