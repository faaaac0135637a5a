package storage

import (
	"context"
	"fmt"
	"net/url"

	"github.com/dmitrijs2005/picshare/internal/common"
	"github.com/dmitrijs2005/picshare/internal/server/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// minioAPI is the subset of *minio.Client the gateway calls.
type minioAPI interface {
	FPutObject(ctx context.Context, bucketName, objectName, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
}

var newMinioClient = func(endpoint string, opts *minio.Options) (minioAPI, error) {
	return minio.New(endpoint, opts)
}

// MinioGateway talks to S3-compatible servers through minio-go.
type MinioGateway struct {
	client minioAPI
	bucket string
	urls   URLBuilder
}

// NewMinioGateway needs an explicit endpoint and key pair. The endpoint may
// carry a scheme ("http://minio:9000"), which then decides TLS; a bare
// host:port uses cfg.S3UseSSL.
func NewMinioGateway(cfg *config.Config, urls URLBuilder) (*MinioGateway, error) {
	if cfg.S3BaseEndpoint == "" {
		return nil, fmt.Errorf("minio driver requires an endpoint")
	}

	host, secure, err := splitEndpoint(cfg.S3BaseEndpoint, cfg.S3UseSSL)
	if err != nil {
		return nil, err
	}

	client, err := newMinioClient(host, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		Secure: secure,
		Region: cfg.S3Region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	return &MinioGateway{client: client, bucket: cfg.S3Bucket, urls: urls}, nil
}

func splitEndpoint(endpoint string, defaultSecure bool) (string, bool, error) {
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		// no scheme: "host:port"
		return endpoint, defaultSecure, nil
	}
	switch u.Scheme {
	case "http":
		return u.Host, false, nil
	case "https":
		return u.Host, true, nil
	default:
		return "", false, fmt.Errorf("unsupported endpoint scheme %q", u.Scheme)
	}
}

func (g *MinioGateway) PutObject(ctx context.Context, key, localPath string) error {
	_, err := g.client.FPutObject(ctx, g.bucket, key, localPath, minio.PutObjectOptions{
		ContentType: contentTypeFor(key),
	})
	if err != nil {
		return fmt.Errorf("%w: put %s: %w", common.ErrStorageUnavailable, key, err)
	}
	return nil
}

func (g *MinioGateway) ListObjects(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	keys := make([]string, 0)
	for obj := range g.client.ListObjects(ctx, g.bucket, minio.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("%w: list: %w", common.ErrStorageUnavailable, obj.Err)
		}
		keys = append(keys, obj.Key)
	}
	return keys, nil
}

func (g *MinioGateway) PublicURL(key string) string {
	return g.urls.URL(key)
}
