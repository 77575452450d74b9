package app

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/yungbote/stepwise-backend/internal/data/db"
	types "github.com/yungbote/stepwise-backend/internal/domain"
	"github.com/yungbote/stepwise-backend/internal/observability"
	"github.com/yungbote/stepwise-backend/internal/platform/envutil"
	"github.com/yungbote/stepwise-backend/internal/platform/gcp"
	"github.com/yungbote/stepwise-backend/internal/platform/logger"
)

const defaultJWTSecret = "defaultsecret"

type Config struct {
	Port   string
	AppEnv string

	JWTSecretKey   string
	AccessTokenTTL time.Duration

	DB db.Config

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisChannel  string

	ObjectStorage         gcp.ObjectStorageConfig
	CertificateIssuerName string
	CertificateSealFont   string

	EnrollmentTTL        time.Duration
	DefaultPassingScore  int
	AuthRateLimitPerMin  int
	CORSAllowedOrigins   []string
	ExposeInternalErrors bool

	Otel observability.OtelConfig
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production") || strings.EqualFold(c.AppEnv, "prod")
}

// LoadConfig reads the process environment, after merging an optional .env
// file. Values already set in the environment win over the file.
func LoadConfig(log *logger.Logger) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn("could not read .env file", "error", err)
	}

	cfg := Config{
		Port:   envutil.String("PORT", "8080"),
		AppEnv: envutil.String("APP_ENV", "development"),

		JWTSecretKey:   envutil.String("JWT_SECRET_KEY", defaultJWTSecret),
		AccessTokenTTL: envutil.Seconds("ACCESS_TOKEN_TTL", 24*time.Hour),

		DB: db.Config{
			Driver:           strings.ToLower(envutil.String("DB_DRIVER", db.DriverPostgres)),
			PostgresHost:     envutil.String("POSTGRES_HOST", "localhost"),
			PostgresPort:     envutil.String("POSTGRES_PORT", "5432"),
			PostgresUser:     envutil.String("POSTGRES_USER", "postgres"),
			PostgresPassword: envutil.String("POSTGRES_PASSWORD", ""),
			PostgresName:     envutil.String("POSTGRES_NAME", "stepwise"),
			SQLitePath:       envutil.String("SQLITE_PATH", "stepwise.db"),
		},

		RedisAddr:     envutil.String("REDIS_ADDR", ""),
		RedisPassword: envutil.String("REDIS_PASSWORD", ""),
		RedisDB:       envutil.Int("REDIS_DB", 0),
		RedisChannel:  envutil.String("REDIS_CHANNEL", "stepwise:sse"),

		CertificateIssuerName: envutil.String("CERTIFICATE_ISSUER_NAME", "Stepwise Dance Academy"),
		CertificateSealFont:   envutil.String("CERTIFICATE_SEAL_FONT", ""),

		EnrollmentTTL:       time.Duration(envutil.Int("ENROLLMENT_TTL_DAYS", 365)) * 24 * time.Hour,
		DefaultPassingScore: envutil.Int("DEFAULT_PASSING_SCORE", types.DefaultPassingScore),
		AuthRateLimitPerMin: envutil.Int("AUTH_RATE_LIMIT_PER_MINUTE", 20),
		CORSAllowedOrigins:  envutil.List("CORS_ALLOWED_ORIGINS", nil),
	}
	cfg.ExposeInternalErrors = envutil.Bool("EXPOSE_INTERNAL_ERRORS", !cfg.IsProduction())

	storage, err := gcp.ResolveObjectStorageConfig(
		envutil.String("CERTIFICATE_STORAGE_MODE", ""),
		envutil.String("CERTIFICATE_GCS_BUCKET", ""),
		envutil.String("STORAGE_EMULATOR_HOST", ""),
		envutil.String("GCS_CREDENTIALS_FILE", ""),
	)
	if err != nil {
		return cfg, err
	}
	cfg.ObjectStorage = storage

	cfg.Otel = observability.OtelConfig{
		Enabled:     envutil.Bool("OTEL_ENABLED", false),
		ServiceName: envutil.String("OTEL_SERVICE_NAME", "stepwise-backend"),
		Environment: cfg.AppEnv,
		Version:     envutil.String("APP_VERSION", "dev"),
		Exporter:    envutil.String("OTEL_TRACES_EXPORTER", ""),
		Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		Headers:     observability.ParseHeaders(envutil.String("OTEL_EXPORTER_OTLP_HEADERS", "")),
		Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", false),
		SampleRatio: envutil.Float("OTEL_SAMPLER_RATIO", 1),
	}

	if cfg.JWTSecretKey == defaultJWTSecret {
		log.Warn("JWT_SECRET_KEY not set, using the default secret")
	}
	if cfg.EnrollmentTTL <= 0 {
		log.Warn("ENROLLMENT_TTL_DAYS must be positive, using 365", "value", cfg.EnrollmentTTL)
		cfg.EnrollmentTTL = 365 * 24 * time.Hour
	}
	return cfg, nil
}
