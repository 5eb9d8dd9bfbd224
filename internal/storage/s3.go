package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"alcyxob/fitness-ai/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsCfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type objectPresigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// s3Archive implements RawResponseArchive on an S3-compatible backend.
type s3Archive struct {
	client        objectPutter
	presignClient objectPresigner
	bucketName    string
	now           func() time.Time
	newID         func() string
}

// NewS3Archive creates a RawResponseArchive backed by cfg.BucketName.
func NewS3Archive(ctx context.Context, cfg config.S3Config) (RawResponseArchive, error) {
	opts := []func(*awsCfg.LoadOptions) error{awsCfg.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsCfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsSDKConfig, err := awsCfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS SDK config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsSDKConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(endpointURL(cfg.Endpoint, cfg.UseSSL))
			// path-style addressing for MinIO and other S3-compatible stores
			o.UsePathStyle = true
		}
	})

	logrus.WithFields(logrus.Fields{
		"endpoint": cfg.Endpoint,
		"bucket":   cfg.BucketName,
	}).Info("S3 raw response archive initialized")

	return newS3Archive(s3Client, s3.NewPresignClient(s3Client), cfg.BucketName), nil
}

func newS3Archive(client objectPutter, presign objectPresigner, bucket string) *s3Archive {
	return &s3Archive{
		client:        client,
		presignClient: presign,
		bucketName:    bucket,
		now:           time.Now,
		newID:         uuid.NewString,
	}
}

func endpointURL(endpoint string, useSSL bool) string {
	if strings.Contains(endpoint, "://") {
		return endpoint
	}
	if useSSL {
		return "https://" + endpoint
	}
	return "http://" + endpoint
}

func (s *s3Archive) Put(ctx context.Context, kind, body string) (string, error) {
	key := ObjectKey(kind, s.now(), s.newID())
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		Body:        strings.NewReader(body),
		ContentType: aws.String("text/plain; charset=utf-8"),
	})
	if err != nil {
		return "", fmt.Errorf("put raw response %q: %w", key, err)
	}
	return key, nil
}

func (s *s3Archive) PresignGet(ctx context.Context, key string, expires time.Duration) (string, error) {
	if expires <= 0 {
		expires = DefaultPresignedURLExpiry
	}

	req, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", fmt.Errorf("presign GET %q: %w", key, err)
	}
	return req.URL, nil
}
