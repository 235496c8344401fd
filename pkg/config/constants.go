package config

const (
	EnvPrefix = "PLATTERLY"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv   = "PLATTERLY_APP_ENV"
	EnvPort     = "PLATTERLY_APP_PORT"
	EnvDBDSN    = "PLATTERLY_DB_DSN"
	EnvDBHost   = "PLATTERLY_DB_HOST"
	EnvDBUser   = "PLATTERLY_DB_USER"
	EnvDBName   = "PLATTERLY_DB_NAME"
	EnvRedisURL = "PLATTERLY_REDIS_URL"

	EnvJWTSecret  = "PLATTERLY_JWT_SECRET"
	EnvJWTIssuer  = "PLATTERLY_JWT_ISSUER"
	EnvJWTExpMins = "PLATTERLY_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
