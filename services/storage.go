package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// StorageService uploads project and gallery images to S3. The bucket and
// region come from S3_BUCKET and AWS_REGION; credentials resolve through the
// default AWS chain.
type StorageService struct {
	client *s3.Client
	bucket string
	region string
}

// NewStorageService builds an uploader from the environment. It fails when
// S3_BUCKET is unset or the AWS config cannot be resolved.
func NewStorageService(ctx context.Context) (*StorageService, error) {
	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is not set")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return &StorageService{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: cfg.Region,
	}, nil
}

// UploadProjectImage stores an image under projects/{projectID}/ with a
// random name and returns its public URL. The caller has already checked the
// content type and size.
func (s *StorageService) UploadProjectImage(ctx context.Context, projectID uint, filename, contentType string, body io.Reader) (string, error) {
	key := fmt.Sprintf("projects/%d/%s%s", projectID, uuid.NewString(), path.Ext(filename))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        body,
		ContentType: &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", key, err)
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
	log.Info().Str("key", key).Str("bucket", s.bucket).Msg("Uploaded project image")
	return url, nil
}
