package config

// EnvPrefix is passed to envconfig; individual fields carry fully prefixed tags.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv  = "HOPEWELL_APP_ENV"
	EnvAppPort = "HOPEWELL_APP_PORT"

	EnvDBDSN  = "HOPEWELL_DB_DSN"
	EnvDBHost = "HOPEWELL_DB_HOST"
	EnvDBUser = "HOPEWELL_DB_USER"
	EnvDBName = "HOPEWELL_DB_NAME"

	EnvPaystackSecretKey     = "HOPEWELL_PAYSTACK_SECRET_KEY"
	EnvPaystackWebhookSecret = "HOPEWELL_PAYSTACK_WEBHOOK_SECRET"

	EnvRootAdminEmail = "HOPEWELL_ROOT_ADMIN_EMAIL"
)

// requiredDBEnvVars are checked when HOPEWELL_DB_DSN is not provided directly.
var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
