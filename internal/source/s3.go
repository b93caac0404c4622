package source

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectGetter is the subset of the S3 client used by S3Source.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source fetches documents stored as S3 objects.
type S3Source struct {
	client   ObjectGetter
	maxBytes int64
}

// NewS3Source creates an S3Source backed by client.
func NewS3Source(client ObjectGetter, maxBytes int64) *S3Source {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &S3Source{client: client, maxBytes: maxBytes}
}

// NewS3SourceFromConfig builds the S3 client from an AWS config.
func NewS3SourceFromConfig(cfg aws.Config, maxBytes int64) *S3Source {
	return NewS3Source(s3.NewFromConfig(cfg), maxBytes)
}

// Fetch reads the object named by an s3://bucket/key location.
func (s *S3Source) Fetch(ctx context.Context, location string) (io.ReadCloser, error) {
	bucket, key, err := ParseS3Location(location)
	if err != nil {
		return nil, err
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get object s3://%s/%s: %w", bucket, key, err)
	}
	return limitBody(out.Body, s.maxBytes), nil
}

// ParseS3Location splits s3://bucket/key into its parts.
func ParseS3Location(location string) (bucket, key string, err error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", "", fmt.Errorf("parse s3 location: %w", err)
	}
	if u.Scheme != "s3" {
		return "", "", fmt.Errorf("not an s3 location: %q", location)
	}
	bucket = u.Host
	key = strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3 location needs bucket and key: %q", location)
	}
	return bucket, key, nil
}
