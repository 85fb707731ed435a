package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"souqeats/internal/service"
)

// S3ObjectStore uploads images and payment proofs to one shared bucket
// and hands back public links.
type S3ObjectStore struct {
	Client  *s3.Client
	Bucket  string
	BaseURL string
}

var _ service.ObjectStore = (*S3ObjectStore)(nil)

func NewS3ObjectStore(client *s3.Client, bucket, baseURL string) *S3ObjectStore {
	return &S3ObjectStore{Client: client, Bucket: bucket, BaseURL: strings.TrimRight(baseURL, "/")}
}

func (s *S3ObjectStore) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.Client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("put %s: %w", key, err)
	}

	return s.BaseURL + "/" + strings.TrimLeft(key, "/"), nil
}
