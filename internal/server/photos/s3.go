// Package photos presigns upload and download URLs for post photos kept in
// an S3-compatible bucket (MinIO in development).
package photos

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	sc "github.com/dmitrijs2005/postboard/internal/server/config"
	"github.com/dmitrijs2005/postboard/internal/server/models"
	"github.com/google/uuid"
)

// URLValidity is how long a presigned URL stays usable.
const URLValidity = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}

	timeNow = time.Now
)

// S3Store presigns object URLs in one bucket.
type S3Store struct {
	bucket  string
	presign *s3.PresignClient
}

// NewS3Store builds a store from the S3 settings in cfg. It returns nil and
// no error when no bucket is configured, meaning photos are disabled.
func NewS3Store(ctx context.Context, cfg *sc.Config) (*S3Store, error) {
	if cfg.S3Bucket == "" {
		return nil, nil
	}

	awsCfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(cfg.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3RootUser,
			cfg.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
		}
		o.UsePathStyle = true
	})

	return &S3Store{bucket: cfg.S3Bucket, presign: s3.NewPresignClient(client)}, nil
}

// NewKey returns a fresh object key, grouped by upload date.
func NewKey() string {
	d := timeNow().UTC()
	return fmt.Sprintf("posts/%d/%02d/%02d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

// ValidKey reports whether key has the exact shape NewKey produces:
// posts/YYYY/MM/DD/<canonical uuid>.
func ValidKey(key string) bool {
	parts := strings.Split(key, "/")
	if len(parts) != 5 || parts[0] != "posts" {
		return false
	}
	if _, err := time.Parse("2006/01/02", strings.Join(parts[1:4], "/")); err != nil {
		return false
	}
	id, err := uuid.Parse(parts[4])
	return err == nil && id.String() == parts[4]
}

// ValidKey reports whether key may be presigned for download.
func (s *S3Store) ValidKey(key string) bool {
	return ValidKey(key)
}

func (s *S3Store) PresignPut(ctx context.Context) (*models.PhotoUpload, error) {
	key := NewKey()

	req, err := presignPutObject(s.presign, ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(URLValidity))
	if err != nil {
		return nil, fmt.Errorf("presign put: %w", err)
	}

	return &models.PhotoUpload{Key: key, URL: req.URL}, nil
}

func (s *S3Store) PresignGet(ctx context.Context, key string) (string, error) {
	req, err := presignGetObject(s.presign, ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(URLValidity))
	if err != nil {
		return "", fmt.Errorf("presign get: %w", err)
	}

	return req.URL, nil
}
