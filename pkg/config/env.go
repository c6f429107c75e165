package config

const (
	EnvPrefix = "CONFIGURATOR"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv   = "CONFIGURATOR_APP_ENV"
	EnvPort     = "CONFIGURATOR_APP_PORT"
	EnvLogLevel = "CONFIGURATOR_LOG_LEVEL"
	EnvRedisURL = "CONFIGURATOR_REDIS_URL"
)
