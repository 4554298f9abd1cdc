package s3

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type s3Session struct {
	client        *s3.Client
	presignClient *s3.PresignClient
	bucket        string
}

// NewS3Session creates one S3 connection that is shared by everything archiving exports.
// Static credentials are used when an access key is given, otherwise the default chain (.aws/config, env, IAM role).
func NewS3Session(ctx context.Context, accessKey string, secretKey string, region string, bucket string) (*S3Repository, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if accessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("could not load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg)

	return &S3Repository{
		s3_session: &s3Session{
			client:        client,
			presignClient: s3.NewPresignClient(client),
			bucket:        bucket,
		},
	}, nil
}
