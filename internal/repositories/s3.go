package repositories

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/lockdrop/lockdrop-server/internal/config"
)

// ObjectStore holds the binary half of the asset store: uploaded file bytes
// in an S3-compatible bucket. One instance is constructed at startup and
// handed to the services that need it.
type ObjectStore struct {
	client *s3.Client
	bucket string
}

// NewObjectStore initializes an S3 client using static credentials and a
// custom endpoint (Cloudflare R2, MinIO, or AWS proper).
func NewObjectStore(cfg config.S3Config) *ObjectStore {
	awsCfg := aws.Config{
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Region:      cfg.Region,
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	return &ObjectStore{client: client, bucket: cfg.BucketName}
}

// Upload writes one object under the given key.
func (s *ObjectStore) Upload(ctx context.Context, key, contentType string, body io.Reader) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put object %q: %w", key, err)
	}
	return nil
}

// Fetch reads one object's bytes in full. Archive assembly needs whole
// bodies in memory before zipping, so there is no streaming variant.
func (s *ObjectStore) Fetch(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *s3types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, fmt.Errorf("object %q not found", key)
		}
		return nil, fmt.Errorf("get object %q: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read object %q: %w", key, err)
	}
	return data, nil
}
