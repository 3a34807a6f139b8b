package blob

import (
	"bytes"
	"context"
	"fmt"
	"mime"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Storage persists opaque blobs (deposit proof screenshots, avatars) and
// returns a public reference. The wallet core only ever stores the
// returned ref.
type Storage interface {
	Store(ctx context.Context, data []byte, contentType string) (string, error)
}

type Options struct {
	Endpoint   string
	Region     string
	Bucket     string
	AccessKey  string
	SecretKey  string
	PublicBase string
}

type S3Storage struct {
	client     *s3.Client
	bucket     string
	publicBase string
}

func NewS3(ctx context.Context, opts Options) (*S3Storage, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKey, opts.SecretKey, "",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load blob storage config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	publicBase := opts.PublicBase
	if publicBase == "" {
		publicBase = fmt.Sprintf("%s/%s", opts.Endpoint, opts.Bucket)
	}

	return &S3Storage{
		client:     client,
		bucket:     opts.Bucket,
		publicBase: publicBase,
	}, nil
}

func (s *S3Storage) Store(ctx context.Context, data []byte, contentType string) (string, error) {
	key := uuid.NewString() + extensionFor(contentType)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload blob: %w", err)
	}

	return fmt.Sprintf("%s/%s", s.publicBase, key), nil
}

func extensionFor(contentType string) string {
	exts, err := mime.ExtensionsByType(contentType)
	if err != nil || len(exts) == 0 {
		return ""
	}
	return exts[0]
}
