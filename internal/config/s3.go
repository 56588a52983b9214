// internal/config/s3.go
package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/caarlos0/env/v11"
)

// S3Config holds the bucket used for creative base images.
type S3Config struct {
	Client        *s3.Client
	Bucket        string
	Region        string
	PublicBaseURL string
}

type s3Env struct {
	Region        string `env:"AWS_REGION" envDefault:"us-east-1"`
	AccessKeyID   string `env:"AWS_ACCESS_KEY_ID"`
	SecretKey     string `env:"AWS_SECRET_ACCESS_KEY"`
	Bucket        string `env:"S3_BUCKET_NAME"`
	PublicBaseURL string `env:"S3_PUBLIC_BASE_URL"`
}

// NewS3Config creates a new S3 configuration
func NewS3Config(ctx context.Context) (*S3Config, error) {
	var e s3Env
	if err := env.Parse(&e); err != nil {
		return nil, fmt.Errorf("parse s3 env: %w", err)
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(e.Region)}
	if e.AccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(e.AccessKeyID, e.SecretKey, ""),
		))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &S3Config{
		Client:        s3.NewFromConfig(cfg),
		Bucket:        e.Bucket,
		Region:        e.Region,
		PublicBaseURL: strings.TrimRight(e.PublicBaseURL, "/"),
	}, nil
}

// Enabled reports whether uploads can be attempted.
func (c *S3Config) Enabled() bool {
	return c != nil && c.Client != nil && c.Bucket != ""
}

// ObjectURL is the public URL of an uploaded key.
func (c *S3Config) ObjectURL(key string) string {
	if c.PublicBaseURL != "" {
		return c.PublicBaseURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.Bucket, c.Region, key)
}
