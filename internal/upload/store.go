// Package upload stores images in an object store and records their
// metadata.
package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// ObjectStore is the binary-object backend. The production implementation
// is S3; tests substitute an in-memory fake.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) error
}

type S3Config struct {
	AccessKeyID string
	SecretKey   string
	Bucket      string
	Region      string
}

func (c *S3Config) Validate() error {
	if c == nil {
		return errors.New("s3 config is required")
	}
	if c.AccessKeyID == "" {
		return errors.New("s3 access key id is required")
	}
	if c.SecretKey == "" {
		return errors.New("s3 secret access key is required")
	}
	if c.Bucket == "" {
		return errors.New("s3 bucket is required")
	}
	if c.Region == "" {
		return errors.New("s3 region is required")
	}
	return nil
}

type S3Store struct {
	config *S3Config
	client *s3.S3
}

func NewS3Store(config *S3Config) (*S3Store, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	awsConfig := aws.NewConfig().
		WithCredentials(credentials.NewStaticCredentials(config.AccessKeyID, config.SecretKey, "")).
		WithRegion(config.Region)
	s3Session := session.Must(session.NewSession())

	return &S3Store{client: s3.New(s3Session, awsConfig), config: config}, nil
}

func (s *S3Store) Put(ctx context.Context, key, contentType string, body []byte) error {
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("s3 put %s: %w", key, err)
	}
	return nil
}
