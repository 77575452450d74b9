package gcp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/yungbote/stepwise-backend/internal/platform/logger"
)

var ErrStorageDisabled = errors.New("object storage disabled")

type BucketService interface {
	Enabled() bool
	UploadFile(ctx context.Context, key string, contentType string, data []byte) error
	DownloadFile(ctx context.Context, key string) ([]byte, error)
	DeleteFile(ctx context.Context, key string) error
	Close() error
}

type bucketService struct {
	log    *logger.Logger
	client *storage.Client
	bucket string
}

type disabledBucket struct{}

func (disabledBucket) Enabled() bool { return false }
func (disabledBucket) UploadFile(context.Context, string, string, []byte) error {
	return ErrStorageDisabled
}
func (disabledBucket) DownloadFile(context.Context, string) ([]byte, error) {
	return nil, ErrStorageDisabled
}
func (disabledBucket) DeleteFile(context.Context, string) error { return ErrStorageDisabled }
func (disabledBucket) Close() error                             { return nil }

func NewBucketService(ctx context.Context, cfg ObjectStorageConfig, log *logger.Logger) (BucketService, error) {
	if err := ValidateObjectStorageConfig(cfg); err != nil {
		return nil, err
	}
	serviceLog := log.With("service", "BucketService")
	if cfg.Mode == ObjectStorageModeDisabled {
		serviceLog.Info("Object storage disabled")
		return disabledBucket{}, nil
	}

	var opts []option.ClientOption
	switch cfg.Mode {
	case ObjectStorageModeGCSEmulator:
		_ = os.Setenv("STORAGE_EMULATOR_HOST", cfg.EmulatorHost)
		opts = append(opts, option.WithoutAuthentication(), option.WithEndpoint(cfg.EmulatorHost+"/storage/v1/"))
	default:
		if cfg.CredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
		}
		opts = append(opts, option.WithScopes(storage.ScopeReadWrite))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	serviceLog.Info("Object storage initialized", "mode", cfg.Mode, "bucket", cfg.Bucket)
	return &bucketService{log: serviceLog, client: client, bucket: cfg.Bucket}, nil
}

func (bs *bucketService) Enabled() bool { return true }

func (bs *bucketService) UploadFile(ctx context.Context, key string, contentType string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := bs.client.Bucket(bs.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write data to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close GCS writer: %w", err)
	}
	return nil
}

func (bs *bucketService) DownloadFile(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	r, err := bs.client.Bucket(bs.bucket).Object(key).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open GCS object %q: %w", key, err)
	}
	defer r.Close()
	return io.ReadAll(r)
}

func (bs *bucketService) DeleteFile(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := bs.client.Bucket(bs.bucket).Object(key).Delete(ctx); err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("failed to delete GCS object %q in bucket %q: %w", key, bs.bucket, err)
	}
	return nil
}

func (bs *bucketService) Close() error { return bs.client.Close() }
