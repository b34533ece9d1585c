package export

import (
	"context"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/retain/internal/errors"
)

// PutObjectAPI is the part of *s3.Client the uploader needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Config describes the bucket endpoint.
type S3Config struct {
	Region   string
	Endpoint string // optional, for S3-compatible stores

	// UsePathStyle addresses buckets as endpoint/bucket. Most S3-compatible
	// stores need it.
	UsePathStyle bool
}

// NewS3Client builds a client that reads credentials from the standard
// AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN
// environment variables on every request.
func NewS3Client(cfg S3Config) *s3.Client {
	opts := s3.Options{
		Region:       cfg.Region,
		UsePathStyle: cfg.UsePathStyle,
		Credentials:  aws.CredentialsProviderFunc(envCredentials),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	return s3.New(opts)
}

func envCredentials(context.Context) (aws.Credentials, error) {
	creds := aws.Credentials{
		AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
		Source:          "Environment",
	}
	if creds.AccessKeyID == "" || creds.SecretAccessKey == "" {
		return aws.Credentials{}, errors.New("E150").
			WithDetail("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set to upload.")
	}
	return creds, nil
}

// S3Uploader puts rendered pages into a bucket under a key prefix.
type S3Uploader struct {
	client PutObjectAPI
	bucket string
	prefix string
}

// NewS3Uploader returns an uploader for bucket. prefix is joined to every
// key.
func NewS3Uploader(client PutObjectAPI, bucket, prefix string) *S3Uploader {
	return &S3Uploader{client: client, bucket: bucket, prefix: prefix}
}

// Key returns the object key name is stored under.
func (u *S3Uploader) Key(name string) string {
	return strings.TrimPrefix(path.Join(u.prefix, name), "/")
}

// Upload stores page as text/html under Key(name).
func (u *S3Uploader) Upload(ctx context.Context, name, page string) error {
	key := u.Key(name)
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(u.bucket),
		Key:          aws.String(key),
		Body:         strings.NewReader(page),
		ContentType:  aws.String("text/html; charset=utf-8"),
		CacheControl: aws.String("no-cache"),
	})
	if err != nil {
		return errors.New("E150").Wrap(err).With("bucket", u.bucket).With("key", key)
	}
	return nil
}
