// Package services provides business logic and service implementations.
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"tourvia/internal/domain"
)

const (
	// DefaultSignTTL is how long presigned GET URLs stay valid.
	DefaultSignTTL = time.Hour

	// DefaultRefreshMargin is how long before expiry a cached URL stops
	// being reused.
	DefaultRefreshMargin = 30 * time.Second
)

// StorageConfig configures the object storage gateway.
type StorageConfig struct {
	Endpoint      string
	Region        string
	AccessKey     string
	SecretKey     string
	PrivateBucket string
	PublicBucket  string
	// PublicBaseURL is the CDN or bucket website base the public bucket is
	// served from.
	PublicBaseURL string
	SignTTL       time.Duration
	RefreshMargin time.Duration
}

// ObjectPresigner generates presigned GET URLs. Implemented by
// *s3.PresignClient.
type ObjectPresigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// ObjectUploader writes objects. Implemented by *s3.Client.
type ObjectUploader interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// StorageService is the gateway between stored object references and
// render-ready URLs. Private bucket paths resolve to cached presigned URLs;
// public bucket paths compose a static URL with no backend call.
type StorageService struct {
	presigner ObjectPresigner
	uploader  ObjectUploader
	cfg       StorageConfig
	cache     *signedURLCache
	now       func() time.Time
}

// NewStorageService creates a storage gateway from explicit S3 clients.
func NewStorageService(presigner ObjectPresigner, uploader ObjectUploader, cfg StorageConfig) *StorageService {
	if cfg.SignTTL <= 0 {
		cfg.SignTTL = DefaultSignTTL
	}
	if cfg.RefreshMargin <= 0 {
		cfg.RefreshMargin = DefaultRefreshMargin
	}
	return &StorageService{
		presigner: presigner,
		uploader:  uploader,
		cfg:       cfg,
		cache:     newSignedURLCache(cfg.RefreshMargin),
		now:       time.Now,
	}
}

// NewStorageServiceFromConfig builds the S3 clients and wraps them in a
// gateway. Path-style addressing is used so S3-compatible stores (MinIO,
// object storage appliances) work without wildcard DNS.
func NewStorageServiceFromConfig(cfg StorageConfig) *StorageService {
	client := s3.New(s3.Options{
		BaseEndpoint: aws.String(cfg.Endpoint),
		Region:       cfg.Region,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		UsePathStyle: true,
	})
	return NewStorageService(s3.NewPresignClient(client), client, cfg)
}

// ResolveURL turns a stored reference into a browser-loadable URL. Full
// https?:// references pass through untouched; everything else is treated as
// a private bucket path and presigned, with the result cached until shortly
// before expiry.
func (s *StorageService) ResolveURL(ctx context.Context, ref string) (string, error) {
	if ref == "" {
		return "", nil
	}
	if isAbsoluteURL(ref) {
		return ref, nil
	}

	path := s.normalizePath(ref, s.cfg.PrivateBucket)
	now := s.now()
	if url, ok := s.cache.Get(path, now); ok {
		return url, nil
	}

	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.PrivateBucket),
		Key:    aws.String(path),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = s.cfg.SignTTL
	})
	if err != nil {
		return "", domain.NewExternalServiceError("SIGN_FAILED",
			fmt.Sprintf("failed to sign URL for %s", path), err)
	}

	s.cache.Set(path, req.URL, now.Add(s.cfg.SignTTL), now)
	return req.URL, nil
}

// PublicURL composes the static URL for a public bucket object. Absolute
// references pass through; empty input yields empty output. This is pure
// string work and never fails.
func (s *StorageService) PublicURL(ref string) string {
	if ref == "" {
		return ""
	}
	if isAbsoluteURL(ref) {
		return ref
	}
	path := s.normalizePath(ref, s.cfg.PublicBucket)
	return strings.TrimRight(s.cfg.PublicBaseURL, "/") + "/" + path
}

// Upload writes an object to the private bucket. When overwrite is false and
// the object already exists the upload is rejected.
func (s *StorageService) Upload(ctx context.Context, path string, body io.Reader, contentType, cacheControl string, overwrite bool) (string, error) {
	key := s.normalizePath(path, s.cfg.PrivateBucket)

	if !overwrite {
		_, err := s.uploader.HeadObject(ctx, &s3.HeadObjectInput{
			Bucket: aws.String(s.cfg.PrivateBucket),
			Key:    aws.String(key),
		})
		if err == nil {
			return "", domain.NewConflictError("OBJECT_EXISTS",
				fmt.Sprintf("object %s already exists", key))
		}
		// Only a confirmed missing object may proceed. A transient backend
		// failure here must not turn into a silent overwrite.
		var notFound *types.NotFound
		if !errors.As(err, &notFound) {
			return "", domain.NewExternalServiceError("UPLOAD_CHECK_FAILED",
				fmt.Sprintf("failed to check whether %s exists", key), err)
		}
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.cfg.PrivateBucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if cacheControl != "" {
		input.CacheControl = aws.String(cacheControl)
	}

	if _, err := s.uploader.PutObject(ctx, input); err != nil {
		return "", domain.NewExternalServiceError("UPLOAD_FAILED",
			fmt.Sprintf("failed to upload %s", key), err)
	}
	return key, nil
}

// normalizePath strips the leading slash and a redundant bucket prefix so
// references stored as "/bucket/images/x.jpg" and "images/x.jpg" resolve to
// the same object.
func (s *StorageService) normalizePath(ref, bucket string) string {
	path := strings.TrimPrefix(ref, "/")
	if bucket != "" {
		path = strings.TrimPrefix(path, bucket+"/")
	}
	return path
}

func isAbsoluteURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}
