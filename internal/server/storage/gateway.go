// Package storage is the object storage gateway: put one file, list every
// key, and derive the public URL of a key. Two backends are provided, the
// AWS SDK client for S3 and minio-go for S3-compatible servers.
package storage

import (
	"context"
	"fmt"
	"mime"
	"net/url"
	"path"
	"strings"

	"github.com/dmitrijs2005/picshare/internal/server/config"
)

// Gateway is the narrow storage contract used by the upload and gallery
// services. Implementations never retry; backend failures wrap
// common.ErrStorageUnavailable.
type Gateway interface {
	// PutObject uploads the file at localPath under key, silently
	// overwriting an existing object.
	PutObject(ctx context.Context, key, localPath string) error

	// ListObjects returns every key in the bucket in backend order,
	// draining all pages.
	ListObjects(ctx context.Context) ([]string, error)

	// PublicURL deterministically builds the unsigned URL of key.
	PublicURL(key string) string
}

// Supported values of config.Config.StorageDriver.
const (
	DriverS3    = "s3"
	DriverMinio = "minio"
)

// New builds the gateway selected by cfg.StorageDriver.
func New(ctx context.Context, cfg *config.Config) (Gateway, error) {
	urls := NewURLBuilder(cfg.S3Bucket, cfg.S3BaseEndpoint, cfg.PublicBaseURL)

	switch cfg.StorageDriver {
	case DriverS3, "":
		return NewS3Gateway(ctx, cfg, urls)
	case DriverMinio:
		return NewMinioGateway(cfg, urls)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

// URLBuilder derives public object URLs from bucket identity and key.
type URLBuilder struct {
	bucket   string
	endpoint string
	public   string
}

func NewURLBuilder(bucket, endpoint, publicBase string) URLBuilder {
	return URLBuilder{
		bucket:   bucket,
		endpoint: strings.TrimRight(endpoint, "/"),
		public:   strings.TrimRight(publicBase, "/"),
	}
}

// URL returns, in order of preference:
//
//	{public}/{key}            when a public base URL is configured
//	{endpoint}/{bucket}/{key} when a custom endpoint is configured (path style)
//	https://{bucket}.s3.amazonaws.com/{key}
func (b URLBuilder) URL(key string) string {
	escaped := escapeKey(key)
	switch {
	case b.public != "":
		return b.public + "/" + escaped
	case b.endpoint != "":
		return b.endpoint + "/" + url.PathEscape(b.bucket) + "/" + escaped
	default:
		return "https://" + b.bucket + ".s3.amazonaws.com/" + escaped
	}
}

func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

// contentTypeFor guesses a MIME type from the key's extension so browsers
// render images inline instead of downloading them.
func contentTypeFor(key string) string {
	if ct := mime.TypeByExtension(strings.ToLower(path.Ext(key))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
