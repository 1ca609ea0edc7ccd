package storage

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"

	"github.com/HSouheill/barrim_admin/config"
)

// NewFromConfig creates the file store selected by STORAGE_TYPE
func NewFromConfig(ctx context.Context, cfg *config.Config) (FileStore, error) {
	switch cfg.StorageType {
	case "local":
		logrus.WithField("dir", cfg.UploadDir).Info("Initializing local storage")
		return NewLocalStore(cfg.UploadDir, cfg.PublicURL+"/api/admin/files")
	case "s3":
		logrus.WithFields(logrus.Fields{
			"endpoint": cfg.S3Endpoint,
			"bucket":   cfg.S3Bucket,
		}).Info("Initializing S3 storage")

		opts := []func(*awsconfig.LoadOptions) error{
			awsconfig.WithRegion(cfg.S3Region),
		}
		if cfg.S3AccessKey != "" && cfg.S3SecretKey != "" {
			creds := credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")
			opts = append(opts, awsconfig.WithCredentialsProvider(creds))
		}

		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}

		client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if cfg.S3Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			}
			o.UsePathStyle = true
		})

		return NewS3Store(client, cfg.S3Bucket, cfg.S3PublicURL), nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.StorageType)
	}
}
