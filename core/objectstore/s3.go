package objectstore

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/malkiemm04/cloud-dunkin-pos-pro/core/logger"
)

var errEmptyBucket = errors.New("AWSBucketName must not be empty")

// S3 is the implementation of the objectstore Driver for AWS S3
type S3 struct {
	config aws.Config
	bucket string
}

// NewS3 returns a new S3
func NewS3(s3Config S3Configuration) (*S3, error) {
	if s3Config.AWSBucketName == "" {
		return nil, errEmptyBucket
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(s3Config.AWSRegion),
	}
	if s3Config.AccessID != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s3Config.AccessID, s3Config.AccessKey, "")))
	}

	config, err := config.LoadDefaultConfig(context.TODO(), opts...)
	if err != nil {
		return nil, err
	}
	logger.Default().Debugln("S3 objectstore enabled")
	s := S3{config, s3Config.AWSBucketName}
	return &s, nil
}

// PresignPut returns a pre-signed URL that can be used to PUT an object of
// the given content type under key until expireIn has passed
func (s S3) PresignPut(ctx context.Context, key, contentType string, expireIn time.Duration) (string, error) {
	logger.FromContext(ctx).Infoln("PresignPut ", key)

	client := s3.NewPresignClient(s3.NewFromConfig(s.config))

	resp, err := client.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(expireIn))
	if err != nil {
		return "", err
	}
	return resp.URL, nil
}
