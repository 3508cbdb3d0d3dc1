package config

import (
	"os"
	"strconv"
	"time"
)

// Config captures everything the server needs from the environment so main
// stays lean. Unset values fall back to development defaults.
type Config struct {
	Addr          string
	JWTSigningKey string

	// PostgresDSN selects the Postgres-backed stores when non-empty;
	// otherwise the server runs on in-memory stores (development mode).
	PostgresDSN string

	RedisURL     string
	KafkaBrokers string
	KafkaTopic   string

	// ModerationURL is the outbound AI moderation collaborator. Empty
	// disables submission; documents then wait for a manual callback.
	ModerationURL string
	// ModerationCallbackURL is this server's callback endpoint as the
	// collaborator reaches it.
	ModerationCallbackURL string
	// WebhookSecret authenticates collaborator callbacks. Empty disables
	// the check (development only).
	WebhookSecret string

	// MinIO selects the S3-compatible blob backend when Endpoint is set;
	// otherwise blobs live in process memory (development mode).
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	// ResponseDeadline bounds how long a reviewer may sit on a PENDING
	// assignment; ReviewDeadline bounds an ACCEPTED assignment without a
	// submitted review.
	ResponseDeadline time.Duration
	ReviewDeadline   time.Duration

	// SweepInterval is how often overdue assignments are swept. Lazy
	// read-time expiry uses the same deadline comparison regardless.
	SweepInterval time.Duration

	// UploaderAwardPoints is credited to the uploader when a non-premium
	// document passes moderation.
	UploaderAwardPoints int
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	return Config{
		Addr:                  getEnv("DOCSHELF_ADDR", ":8080"),
		JWTSigningKey:         getEnv("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		PostgresDSN:           os.Getenv("POSTGRES_DSN"),
		RedisURL:              os.Getenv("REDIS_URL"),
		KafkaBrokers:          os.Getenv("KAFKA_BROKERS"),
		KafkaTopic:            getEnv("KAFKA_NOTIFICATION_TOPIC", "docshelf.notifications"),
		ModerationURL:         os.Getenv("MODERATION_SERVICE_URL"),
		ModerationCallbackURL: getEnv("MODERATION_CALLBACK_URL", "http://localhost:8080/webhooks/moderation"),
		WebhookSecret:         os.Getenv("WEBHOOK_SECRET"),
		MinioEndpoint:         os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey:        os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey:        os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:           getEnv("MINIO_BUCKET", "docshelf-documents"),
		MinioUseSSL:           os.Getenv("MINIO_USE_SSL") == "true",
		ResponseDeadline:      getDuration("REVIEW_RESPONSE_DEADLINE", 24*time.Hour),
		ReviewDeadline:        getDuration("REVIEW_SUBMIT_DEADLINE", 72*time.Hour),
		SweepInterval:         getDuration("REVIEW_SWEEP_INTERVAL", time.Hour),
		UploaderAwardPoints:   getInt("UPLOADER_AWARD_POINTS", 10),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
