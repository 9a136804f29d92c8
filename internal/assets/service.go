// Package assets stores shop media (section images, logos, videos) in
// S3-compatible object storage. Objects are namespaced per shop; the editor
// references them by key and serves them through short-lived presigned URLs.
package assets

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"storeforge/api/internal/util"
)

// Object describes one stored media asset.
type Object struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"contentType"`
	LastModified time.Time `json:"lastModified"`
}

// Service wraps the object-storage client for one bucket.
type Service struct {
	client *minio.Client
	bucket string
}

// Config holds the object-storage connection settings.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// New connects to the object store and creates the bucket when missing.
func New(ctx context.Context, cfg Config) (*Service, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create object storage client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}
	}

	return &Service{client: client, bucket: cfg.Bucket}, nil
}

// Upload stores the stream under a fresh key in the shop's namespace and
// returns the stored object.
func (s *Service) Upload(ctx context.Context, shopID, filename, contentType string, reader io.Reader, size int64) (Object, error) {
	key := ObjectKey(shopID, filename)
	info, err := s.client.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return Object{}, fmt.Errorf("upload %s: %w", key, err)
	}
	return Object{
		Key:          info.Key,
		Size:         info.Size,
		ContentType:  contentType,
		LastModified: time.Now().UTC(),
	}, nil
}

// List returns every asset in the shop's namespace.
func (s *Service) List(ctx context.Context, shopID string) ([]Object, error) {
	objects := make([]Object, 0)
	prefix := shopID + "/"
	for info := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if info.Err != nil {
			return nil, fmt.Errorf("list assets for %s: %w", shopID, info.Err)
		}
		objects = append(objects, Object{
			Key:          info.Key,
			Size:         info.Size,
			ContentType:  info.ContentType,
			LastModified: info.LastModified,
		})
	}
	return objects, nil
}

// PresignedURL returns a temporary GET link for the asset.
func (s *Service) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return u.String(), nil
}

// Delete removes the asset. Deleting a missing key is not an error.
func (s *Service) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// ObjectKey builds a collision-free storage key inside the shop's namespace:
// <shopID>/<random>-<sanitized filename>.
func ObjectKey(shopID, filename string) string {
	return shopID + "/" + util.NewID("ast") + "-" + SanitizeFilename(filename)
}

// SanitizeFilename lowercases the name and reduces it to letters, digits,
// dots and dashes so keys stay URL- and filesystem-safe. The extension is
// preserved.
func SanitizeFilename(name string) string {
	name = strings.ToLower(path.Base(strings.ReplaceAll(name, "\\", "/")))
	var b strings.Builder
	lastDash := false
	for _, r := range name {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '.':
			b.WriteRune(r)
			lastDash = false
		case !lastDash && b.Len() > 0:
			b.WriteByte('-')
			lastDash = true
		}
	}
	out := strings.Trim(b.String(), "-.")
	if out == "" {
		return "file"
	}
	return out
}
