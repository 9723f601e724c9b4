package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Paystack      PaystackConfig
	RootAdmin     RootAdminConfig
	GCP           GCPConfig
	GCS           GCSConfig
	PubSub        PubSubConfig
	BigQuery      BigQueryConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Paystack.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"HOPEWELL_APP_ENV" required:"true"`
	Port         string `envconfig:"HOPEWELL_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"HOPEWELL_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"HOPEWELL_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"HOPEWELL_DB_DSN"`
	Driver string `envconfig:"HOPEWELL_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"HOPEWELL_DB_HOST"`
	Port     int    `envconfig:"HOPEWELL_DB_PORT" default:"5432"`
	User     string `envconfig:"HOPEWELL_DB_USER"`
	Password string `envconfig:"HOPEWELL_DB_PASSWORD"`
	Name     string `envconfig:"HOPEWELL_DB_NAME"`
	SSLMode  string `envconfig:"HOPEWELL_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"HOPEWELL_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"HOPEWELL_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"HOPEWELL_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"HOPEWELL_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"HOPEWELL_REDIS_URL" required:"true"`
	Address      string        `envconfig:"HOPEWELL_REDIS_ADDR"`
	Password     string        `envconfig:"HOPEWELL_REDIS_PASSWORD"`
	DB           int           `envconfig:"HOPEWELL_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"HOPEWELL_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"HOPEWELL_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"HOPEWELL_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"HOPEWELL_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"HOPEWELL_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"HOPEWELL_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"HOPEWELL_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"HOPEWELL_JWT_EXPIRATION_MINUTES" required:"true"`
	SessionTTLMinutes int    `envconfig:"HOPEWELL_SESSION_TTL_MINUTES" default:"720"`
}

// SessionTTL returns the Redis session lifetime configured in minutes.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"HOPEWELL_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"HOPEWELL_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"HOPEWELL_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"HOPEWELL_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"HOPEWELL_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"HOPEWELL_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"HOPEWELL_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"HOPEWELL_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

// PaystackConfig carries the server-only gateway credentials. Neither value may
// ever reach a client bundle; they are read here and nowhere else.
type PaystackConfig struct {
	SecretKey     string        `envconfig:"HOPEWELL_PAYSTACK_SECRET_KEY"`
	WebhookSecret string        `envconfig:"HOPEWELL_PAYSTACK_WEBHOOK_SECRET"`
	BaseURL       string        `envconfig:"HOPEWELL_PAYSTACK_BASE_URL" default:"https://api.paystack.co"`
	VerifyTimeout time.Duration `envconfig:"HOPEWELL_PAYSTACK_VERIFY_TIMEOUT" default:"10s"`
}

func (p PaystackConfig) validate() error {
	if strings.TrimSpace(p.SecretKey) == "" {
		return fmt.Errorf("%s is required", EnvPaystackSecretKey)
	}
	if strings.TrimSpace(p.WebhookSecret) == "" {
		return fmt.Errorf("%s is required", EnvPaystackWebhookSecret)
	}
	return nil
}

// RootAdminConfig designates the one admin identity whose role and active flag
// can never be changed through the admin surface.
type RootAdminConfig struct {
	Email string `envconfig:"HOPEWELL_ROOT_ADMIN_EMAIL" required:"true"`
}

// IsRoot reports whether the given email belongs to the protected root admin.
func (r RootAdminConfig) IsRoot(email string) bool {
	return strings.EqualFold(strings.TrimSpace(email), strings.TrimSpace(r.Email))
}

type GCPConfig struct {
	ProjectID              string `envconfig:"HOPEWELL_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"HOPEWELL_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"HOPEWELL_GOOGLE_APPLICATION_CREDENTIALS"`
}

type GCSConfig struct {
	BucketName  string `envconfig:"HOPEWELL_GCS_BUCKET_NAME"`
	MaxUploadMB int    `envconfig:"HOPEWELL_GCS_MAX_UPLOAD_MB" default:"50"`
}

type PubSubConfig struct {
	DonationsTopic string `envconfig:"HOPEWELL_PUBSUB_DONATIONS_TOPIC" default:"hw-donation-events"`
}

type BigQueryConfig struct {
	Dataset             string `envconfig:"HOPEWELL_BIGQUERY_DATASET" default:"hopewell"`
	DonationEventsTable string `envconfig:"HOPEWELL_BIGQUERY_DONATION_EVENTS_TABLE" default:"donation_events"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"HOPEWELL_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"HOPEWELL_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
