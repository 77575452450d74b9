package gcp

import (
	"fmt"
	"net/url"
	"strings"
)

type ObjectStorageMode string

const (
	ObjectStorageModeDisabled    ObjectStorageMode = "disabled"
	ObjectStorageModeGCS         ObjectStorageMode = "gcs"
	ObjectStorageModeGCSEmulator ObjectStorageMode = "gcs_emulator"
)

type ObjectStorageConfig struct {
	Mode            ObjectStorageMode
	Bucket          string
	EmulatorHost    string
	CredentialsFile string
}

type ObjectStorageConfigError struct {
	Field string
	Value string
	Cause error
}

func (e *ObjectStorageConfigError) Error() string {
	if e == nil {
		return "invalid object storage config"
	}
	return fmt.Sprintf("invalid object storage config: %s=%q", e.Field, e.Value)
}

func (e *ObjectStorageConfigError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// ResolveObjectStorageConfig picks a mode when none is given: no bucket means
// disabled, an emulator host means the emulator, otherwise real GCS.
func ResolveObjectStorageConfig(rawMode, bucket, emulatorHost, credentialsFile string) (ObjectStorageConfig, error) {
	cfg := ObjectStorageConfig{
		Bucket:          strings.TrimSpace(bucket),
		EmulatorHost:    strings.TrimRight(strings.TrimSpace(emulatorHost), "/"),
		CredentialsFile: strings.TrimSpace(credentialsFile),
	}
	switch mode := ObjectStorageMode(strings.ToLower(strings.TrimSpace(rawMode))); mode {
	case "":
		switch {
		case cfg.Bucket == "":
			cfg.Mode = ObjectStorageModeDisabled
		case cfg.EmulatorHost != "":
			cfg.Mode = ObjectStorageModeGCSEmulator
		default:
			cfg.Mode = ObjectStorageModeGCS
		}
	case ObjectStorageModeDisabled, ObjectStorageModeGCS, ObjectStorageModeGCSEmulator:
		cfg.Mode = mode
	default:
		return cfg, &ObjectStorageConfigError{Field: "CERTIFICATE_STORAGE_MODE", Value: rawMode}
	}
	return cfg, ValidateObjectStorageConfig(cfg)
}

func ValidateObjectStorageConfig(cfg ObjectStorageConfig) error {
	switch cfg.Mode {
	case ObjectStorageModeDisabled:
		return nil
	case ObjectStorageModeGCS, ObjectStorageModeGCSEmulator:
	default:
		return &ObjectStorageConfigError{Field: "CERTIFICATE_STORAGE_MODE", Value: string(cfg.Mode)}
	}
	if cfg.Bucket == "" {
		return &ObjectStorageConfigError{Field: "CERTIFICATE_GCS_BUCKET", Value: ""}
	}
	if cfg.Mode != ObjectStorageModeGCSEmulator {
		return nil
	}
	u, err := url.Parse(cfg.EmulatorHost)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return &ObjectStorageConfigError{Field: "STORAGE_EMULATOR_HOST", Value: cfg.EmulatorHost, Cause: err}
	}
	return nil
}
