package attachments

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ManuelReschke/FacilityFox/internal/pkg/env"
)

// Config holds the object storage configuration for issue attachments
type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	BucketName      string
	EndpointURL     string // Optional for S3-compatible services
	Enabled         bool
}

// LoadConfig loads the attachment storage configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		AccessKeyID:     env.GetEnv("S3_ACCESS_KEY_ID", ""),
		SecretAccessKey: env.GetEnv("S3_SECRET_ACCESS_KEY", ""),
		Region:          env.GetEnv("S3_REGION", "eu-central-1"),
		BucketName:      env.GetEnv("S3_BUCKET_NAME", ""),
		EndpointURL:     env.GetEnv("S3_ENDPOINT_URL", ""),
		Enabled:         env.GetEnv("S3_ATTACHMENTS_ENABLED", "false") == "true",
	}

	if config.Enabled {
		if config.AccessKeyID == "" {
			return nil, errors.New("S3_ACCESS_KEY_ID is required when attachment storage is enabled")
		}
		if config.SecretAccessKey == "" {
			return nil, errors.New("S3_SECRET_ACCESS_KEY is required when attachment storage is enabled")
		}
		if config.BucketName == "" {
			return nil, errors.New("S3_BUCKET_NAME is required when attachment storage is enabled")
		}
	}

	return config, nil
}

// IsEnabled returns true if attachment storage is enabled
func (c *Config) IsEnabled() bool {
	return c.Enabled
}

// GetBucketName returns the configured bucket name
func (c *Config) GetBucketName() string {
	return c.BucketName
}

// GetObjectKey generates a standardized object key for an issue attachment
func (c *Config) GetObjectKey(issueID uint, attachmentUUID, fileExtension string) string {
	// Format: issues/<issueID>/<uuid>.ext
	if fileExtension != "" && !strings.HasPrefix(fileExtension, ".") {
		fileExtension = "." + fileExtension
	}
	return fmt.Sprintf("issues/%d/%s%s", issueID, attachmentUUID, fileExtension)
}

// GetAppEnv returns the current application environment
func GetAppEnv() string {
	return env.GetEnv("APP_ENV", "dev")
}
