package gcp

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/stepwise-backend/internal/platform/logger"
)

func TestResolveObjectStorageConfigDefaults(t *testing.T) {
	tests := []struct {
		name     string
		bucket   string
		emulator string
		want     ObjectStorageMode
	}{
		{"no bucket disables", "", "", ObjectStorageModeDisabled},
		{"bucket uses gcs", "certs", "", ObjectStorageModeGCS},
		{"emulator host", "certs", "http://fake-gcs:4443/", ObjectStorageModeGCSEmulator},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := ResolveObjectStorageConfig("", tc.bucket, tc.emulator, "")
			if err != nil {
				t.Fatalf("ResolveObjectStorageConfig: %v", err)
			}
			if cfg.Mode != tc.want {
				t.Fatalf("mode: want=%q got=%q", tc.want, cfg.Mode)
			}
		})
	}
}

func TestResolveObjectStorageConfigTrimsEmulatorHost(t *testing.T) {
	cfg, err := ResolveObjectStorageConfig("gcs_emulator", "certs", " http://fake-gcs:4443/ ", "")
	if err != nil {
		t.Fatalf("ResolveObjectStorageConfig: %v", err)
	}
	if cfg.EmulatorHost != "http://fake-gcs:4443" {
		t.Fatalf("emulator host: got=%q", cfg.EmulatorHost)
	}
}

func TestResolveObjectStorageConfigErrors(t *testing.T) {
	tests := []struct {
		name, mode, bucket, emulator, field string
	}{
		{"invalid mode", "local", "certs", "", "CERTIFICATE_STORAGE_MODE"},
		{"gcs without bucket", "gcs", "", "", "CERTIFICATE_GCS_BUCKET"},
		{"emulator without host", "gcs_emulator", "certs", "", "STORAGE_EMULATOR_HOST"},
		{"emulator relative host", "gcs_emulator", "certs", "fake-gcs:4443", "STORAGE_EMULATOR_HOST"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ResolveObjectStorageConfig(tc.mode, tc.bucket, tc.emulator, "")
			var cfgErr *ObjectStorageConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ObjectStorageConfigError, got %v", err)
			}
			if cfgErr.Field != tc.field {
				t.Fatalf("field: want=%q got=%q", tc.field, cfgErr.Field)
			}
		})
	}
}

func TestDisabledBucketService(t *testing.T) {
	bs, err := NewBucketService(context.Background(), ObjectStorageConfig{Mode: ObjectStorageModeDisabled}, logger.Nop())
	if err != nil {
		t.Fatalf("NewBucketService: %v", err)
	}
	if bs.Enabled() {
		t.Fatalf("expected disabled bucket")
	}
	if err := bs.UploadFile(context.Background(), "k", "application/pdf", []byte("x")); !errors.Is(err, ErrStorageDisabled) {
		t.Fatalf("UploadFile: expected ErrStorageDisabled, got %v", err)
	}
}
