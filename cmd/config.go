package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	AppEnv   string
	LogLevel string

	FrontendBaseURL string
	BackendBaseURL  string
	MediaBaseURL    string
	BrandName       string
	StoreCurrency   string

	SessionCookieName   string
	SessionCookieSecure bool
	RedisAddr           string
	RedisPassword       string
	RedisDB             int

	StripeSecretKey     string
	StripeWebhookSecret string

	MetaDatasetID     string
	MetaAccessToken   string
	MetaTestEventCode string
	MetaAPIVersion    string
	MetaMaxAttempts   int
	MetaBatchSize     int

	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	BlobDriver       string
	BlobFSRoot       string
	BlobS3Bucket     string
	BlobS3Region     string
	BlobS3Endpoint   string
	BlobS3AccessKey  string
	BlobS3SecretKey  string
	BlobS3PathStyle  bool
	AdminJWTSecret   string
	CartAbandonAfter time.Duration
	JobAbandonSpec   string
	JobRelaySpec     string
	JobFeedSpec      string
	OTelEnabled      bool
	OTelEndpoint     string
	OTelSampleRatio  float64
	OTelInsecure     bool
	OTelServiceName  string
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// DSN is the libpq connection string for gorm's postgres driver.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// LoadConfig reads .env when present, then the process environment. Malformed
// numeric, boolean and duration values are reported together.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	r := envReader{}
	cfg := Config{
		HTTPPort:   r.str("HTTP_PORT", "8000"),
		DBHost:     r.str("DB_HOST", "localhost"),
		DBPort:     r.str("DB_PORT", "5432"),
		DBUser:     r.str("DB_USER", "postgres"),
		DBPassword: r.str("DB_PASSWORD", ""),
		DBName:     r.str("DB_NAME", "storefront"),
		DBSslMode:  r.str("DB_SSLMODE", "disable"),

		AppEnv:   r.str("APP_ENV", "development"),
		LogLevel: r.str("LOG_LEVEL", "info"),

		FrontendBaseURL: r.str("FRONTEND_BASE_URL", "http://localhost:3000"),
		BackendBaseURL:  r.str("BACKEND_BASE_URL", "http://localhost:8000"),
		MediaBaseURL:    r.str("MEDIA_BASE_URL", "http://localhost:8000/media"),
		BrandName:       r.str("BRAND_NAME", "Storefront"),
		StoreCurrency:   strings.ToUpper(r.str("STORE_CURRENCY", "EUR")),

		SessionCookieName:   r.str("SESSION_COOKIE_NAME", "sessionid"),
		SessionCookieSecure: r.boolean("SESSION_COOKIE_SECURE", false),
		RedisAddr:           r.str("REDIS_ADDR", ""),
		RedisPassword:       r.str("REDIS_PASSWORD", ""),
		RedisDB:             r.integer("REDIS_DB", 0),

		StripeSecretKey:     r.str("STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret: r.str("STRIPE_WEBHOOK_SECRET", ""),

		MetaDatasetID:     r.str("META_DATASET_ID", ""),
		MetaAccessToken:   r.str("META_ACCESS_TOKEN", ""),
		MetaTestEventCode: r.str("META_TEST_EVENT_CODE", ""),
		MetaAPIVersion:    r.str("META_API_VERSION", ""),
		MetaMaxAttempts:   r.integer("META_MAX_ATTEMPTS", 5),
		MetaBatchSize:     r.integer("META_BATCH_SIZE", 100),

		OpenAIAPIKey:  r.str("OPENAI_API_KEY", ""),
		OpenAIModel:   r.str("OPENAI_MODEL", ""),
		OpenAIBaseURL: r.str("OPENAI_BASE_URL", ""),

		BlobDriver:       r.str("BLOB_DRIVER", "fs"),
		BlobFSRoot:       r.str("BLOB_FS_ROOT", "media"),
		BlobS3Bucket:     r.str("BLOB_S3_BUCKET", ""),
		BlobS3Region:     r.str("BLOB_S3_REGION", ""),
		BlobS3Endpoint:   r.str("BLOB_S3_ENDPOINT", ""),
		BlobS3AccessKey:  r.str("BLOB_S3_ACCESS_KEY_ID", ""),
		BlobS3SecretKey:  r.str("BLOB_S3_SECRET_ACCESS_KEY", ""),
		BlobS3PathStyle:  r.boolean("BLOB_S3_PATH_STYLE", false),
		AdminJWTSecret:   r.str("ADMIN_JWT_SECRET", ""),
		CartAbandonAfter: r.duration("CART_ABANDON_AFTER", 14*24*time.Hour),
		JobAbandonSpec:   r.str("JOB_ABANDON_CARTS_SPEC", "0 */10 * * * *"),
		JobRelaySpec:     r.str("JOB_RELAY_CONVERSIONS_SPEC", "*/30 * * * * *"),
		JobFeedSpec:      r.str("JOB_GENERATE_FEED_SPEC", "0 0 * * * *"),
		OTelEnabled:      r.boolean("OTEL_ENABLED", false),
		OTelEndpoint:     r.str("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTelSampleRatio:  r.float("OTEL_SAMPLE_RATIO", 1),
		OTelInsecure:     r.boolean("OTEL_EXPORTER_OTLP_INSECURE", false),
		OTelServiceName:  r.str("OTEL_SERVICE_NAME", "storefront"),
	}
	return cfg, errors.Join(r.errs...)
}

type envReader struct {
	errs []error
}

func (r *envReader) str(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(v)
	}
	return fallback
}

func (r *envReader) integer(key string, fallback int) int {
	raw := r.str(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return v
}

func (r *envReader) float(key string, fallback float64) float64 {
	raw := r.str(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return v
}

func (r *envReader) boolean(key string, fallback bool) bool {
	raw := r.str(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return v
}

func (r *envReader) duration(key string, fallback time.Duration) time.Duration {
	raw := r.str(key, "")
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return v
}
