package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// dotenvFile is loaded before reading the environment. Variables already
// set in the process environment win over the file.
var dotenvFile = ".env"

// parseEnv overlays values from environment variables. Malformed numeric,
// boolean or duration values are ignored so the previous layer stands.
func parseEnv(config *Config) {
	_ = godotenv.Load(dotenvFile)

	envString(&config.EndpointAddrHTTP, "HTTP_ADDR")
	envString(&config.DatabaseDSN, "DATABASE_DSN")
	envString(&config.SecretKey, "SECRET_KEY")
	envDuration(&config.SessionValidityDuration, "SESSION_TTL")
	envString(&config.UploadDir, "UPLOAD_DIR")
	if v, ok := os.LookupEnv("MAX_UPLOAD_MEMORY"); ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.MaxUploadMemory = n
		}
	}
	envString(&config.StorageDriver, "STORAGE_DRIVER")
	envString(&config.S3AccessKey, "S3_ACCESS_KEY")
	envString(&config.S3SecretKey, "S3_SECRET_KEY")
	envString(&config.S3Bucket, "S3_BUCKET")
	envString(&config.S3Region, "S3_REGION")
	envString(&config.S3BaseEndpoint, "S3_ENDPOINT")
	envBool(&config.S3UseSSL, "S3_USE_SSL")
	envString(&config.PublicBaseURL, "PUBLIC_BASE_URL")
	envString(&config.LogFormat, "LOG_FORMAT")
	envBool(&config.CookieSecure, "COOKIE_SECURE")
	envDuration(&config.ShutdownTimeout, "SHUTDOWN_TIMEOUT")
}

func envString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func envBool(dst *bool, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func envDuration(dst *time.Duration, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
