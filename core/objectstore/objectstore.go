// Package objectstore provides time-limited signed upload URLs for menu
// images. There are two drivers: AWS S3 and an HMAC-signing local driver for
// development and tests.
package objectstore

import (
	"context"
	"time"
)

// Driver defines the interface for the object storage service
type Driver interface {
	// PresignPut returns a signed URL that allows one PUT of the given
	// content type under key until expireIn has passed.
	PresignPut(ctx context.Context, key, contentType string, expireIn time.Duration) (URL string, err error)
}

// DriverType represents the different types of objectstore drivers
type DriverType string

// DriverTypeLocal is the local HMAC-signing implementation
const DriverTypeLocal DriverType = "Local"

// DriverTypeAWSS3 is the AWS S3 implementation
const DriverTypeAWSS3 DriverType = "AWSS3"

// S3Configuration contains the configuration for the S3 driver. When
// AccessID is empty the default AWS credential chain is used.
type S3Configuration struct {
	AWSBucketName string
	AWSRegion     string
	AccessID      string
	AccessKey     string
}
