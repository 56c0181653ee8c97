package storage

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"

	"gdhotel.dev/backend/internal/app/appconfig"
)

const s3KeyPrefix = "uploads/"

// S3 stores artifacts as objects under a fixed key prefix in a single bucket.
type S3 struct {
	client *s3.Client
	bucket string
}

var _ Store = (*S3)(nil)

func NewS3(ctx context.Context, conf *appconfig.Config) (*S3, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(conf.ArtifactS3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(conf.AWSAccessKey, conf.AWSSecretKey, "")),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load aws config")
	}

	return &S3{
		client: s3.NewFromConfig(cfg),
		bucket: conf.ArtifactS3Bucket,
	}, nil
}

func (s *S3) Save(ctx context.Context, originalFilename string, r io.Reader) (string, error) {
	name := GenerateName(originalFilename)

	if _, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s3KeyPrefix + name),
		Body:   r,
	}); err != nil {
		return "", errors.Wrapf(err, "failed to put artifact %s", name)
	}

	return name, nil
}

func (s *S3) Delete(ctx context.Context, filename string) error {
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s3KeyPrefix + filename),
	}); err != nil {
		return errors.Wrapf(err, "failed to delete artifact %s", filename)
	}
	return nil
}
