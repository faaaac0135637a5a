package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/picshare/internal/flagx"
	"github.com/dmitrijs2005/picshare/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Pointer fields let a
// file set only the values it cares about; absent keys keep earlier layers.
type JsonConfig struct {
	EndpointAddrHTTP        *string         `json:"endpoint_addr_http"`
	DatabaseDSN             *string         `json:"database_dsn"`
	SecretKey               *string         `json:"secret_key"`
	SessionValidityDuration *timex.Duration `json:"session_validity_duration"`
	UploadDir               *string         `json:"upload_dir"`
	MaxUploadMemory         *int64          `json:"max_upload_memory"`
	StorageDriver           *string         `json:"storage_driver"`
	S3AccessKey             *string         `json:"s3_access_key"`
	S3SecretKey             *string         `json:"s3_secret_key"`
	S3Bucket                *string         `json:"s3_bucket"`
	S3Region                *string         `json:"s3_region"`
	S3BaseEndpoint          *string         `json:"s3_base_endpoint"`
	S3UseSSL                *bool           `json:"s3_use_ssl"`
	PublicBaseURL           *string         `json:"public_base_url"`
	LogFormat               *string         `json:"log_format"`
	CookieSecure            *bool           `json:"cookie_secure"`
	ShutdownTimeout         *timex.Duration `json:"shutdown_timeout"`
}

// parseJson overlays values from the file named by -c/-config. Without the
// flag nothing is loaded. An unreadable or malformed file panics.
func parseJson(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(data, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.SessionValidityDuration != nil {
		config.SessionValidityDuration = c.SessionValidityDuration.Duration
	}
	setString(&config.UploadDir, c.UploadDir)
	if c.MaxUploadMemory != nil {
		config.MaxUploadMemory = *c.MaxUploadMemory
	}
	setString(&config.StorageDriver, c.StorageDriver)
	setString(&config.S3AccessKey, c.S3AccessKey)
	setString(&config.S3SecretKey, c.S3SecretKey)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	if c.S3UseSSL != nil {
		config.S3UseSSL = *c.S3UseSSL
	}
	setString(&config.PublicBaseURL, c.PublicBaseURL)
	setString(&config.LogFormat, c.LogFormat)
	if c.CookieSecure != nil {
		config.CookieSecure = *c.CookieSecure
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
