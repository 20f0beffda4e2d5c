// internal/config/s3.go
package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config holds S3 configuration
type S3Config struct {
	Client        *s3.Client
	Bucket        string
	PublicBaseURL string
}

// NewS3Config creates a new S3 configuration from the loaded app config.
func NewS3Config(ctx context.Context, cfg *Config) (*S3Config, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.AWSRegion),
	}
	if cfg.AWSAccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretKey,
			"",
		)))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	baseURL := cfg.S3PublicBaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.AWSRegion)
	}

	return &S3Config{
		Client:        s3.NewFromConfig(awsCfg),
		Bucket:        cfg.S3Bucket,
		PublicBaseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}
