package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix is applied by envconfig when expanding struct tags.
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	FeatureFlags FeatureFlagsConfig
	GCP          GCPConfig
	GCS          GCSConfig
	Uploads      UploadConfig
	PubSub       PubSubConfig
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
	Env          string `envconfig:"INSPECTAI_APP_ENV" required:"true"`
	Port         string `envconfig:"INSPECTAI_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"INSPECTAI_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"INSPECTAI_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"INSPECTAI_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"INSPECTAI_DB_DSN"`
	Driver string `envconfig:"INSPECTAI_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"INSPECTAI_DB_HOST"`
	Port     int    `envconfig:"INSPECTAI_DB_PORT" default:"5432"`
	User     string `envconfig:"INSPECTAI_DB_USER"`
	Password string `envconfig:"INSPECTAI_DB_PASSWORD"`
	Name     string `envconfig:"INSPECTAI_DB_NAME"`
	SSLMode  string `envconfig:"INSPECTAI_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"INSPECTAI_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"INSPECTAI_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"INSPECTAI_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"INSPECTAI_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"INSPECTAI_REDIS_URL" required:"true"`
	Address      string        `envconfig:"INSPECTAI_REDIS_ADDR"`
	Password     string        `envconfig:"INSPECTAI_REDIS_PASSWORD"`
	DB           int           `envconfig:"INSPECTAI_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"INSPECTAI_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"INSPECTAI_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"INSPECTAI_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"INSPECTAI_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"INSPECTAI_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"INSPECTAI_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"INSPECTAI_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"INSPECTAI_JWT_EXPIRATION_MINUTES" default:"60"`
}

// AccessTokenTTL returns the configured access token lifetime.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"INSPECTAI_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"INSPECTAI_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"INSPECTAI_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"INSPECTAI_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"INSPECTAI_ARGON_KEY_LEN" default:"32"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"INSPECTAI_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"INSPECTAI_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"INSPECTAI_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"INSPECTAI_GOOGLE_APPLICATION_CREDENTIALS"`
}

// GCSConfig names the four storage buckets and the signed URL lifetimes.
// Photos, voice notes, and reports are private and served through signed
// read URLs; thumbnails are public.
type GCSConfig struct {
	PhotosBucket      string        `envconfig:"INSPECTAI_GCS_PHOTOS_BUCKET" default:"inspection-photos"`
	VoiceNotesBucket  string        `envconfig:"INSPECTAI_GCS_VOICE_NOTES_BUCKET" default:"voice-notes"`
	ReportsBucket     string        `envconfig:"INSPECTAI_GCS_REPORTS_BUCKET" default:"reports"`
	ThumbnailsBucket  string        `envconfig:"INSPECTAI_GCS_THUMBNAILS_BUCKET" default:"thumbnails"`
	DownloadURLExpiry time.Duration `envconfig:"INSPECTAI_GCS_DOWNLOAD_URL_EXPIRY" default:"1h"`
	UploadURLExpiry   time.Duration `envconfig:"INSPECTAI_GCS_UPLOAD_URL_EXPIRY" default:"15m"`
}

type UploadConfig struct {
	MaxPhotoSizeMB           int `envconfig:"INSPECTAI_MAX_PHOTO_SIZE_MB" default:"10"`
	MaxVoiceNoteDurationSecs int `envconfig:"INSPECTAI_MAX_VOICE_NOTE_DURATION_SECONDS" default:"300"`
	MaxMultipartMemoryMB     int `envconfig:"INSPECTAI_MAX_MULTIPART_MEMORY_MB" default:"32"`
}

type PubSubConfig struct {
	AnalysisTopic        string `envconfig:"INSPECTAI_PUBSUB_ANALYSIS_TOPIC"`
	AnalysisSubscription string `envconfig:"INSPECTAI_PUBSUB_ANALYSIS_SUBSCRIPTION"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	for env, value := range map[string]string{
		"INSPECTAI_DB_HOST": db.Host,
		"INSPECTAI_DB_USER": db.User,
		"INSPECTAI_DB_NAME": db.Name,
	} {
		if value == "" {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either INSPECTAI_DB_DSN or %s are required", strings.Join(missing, ", "))
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
