// Package storage uploads user-supplied files to the portal's S3 bucket.
// The portal only ever writes; review tooling reads the bucket directly.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// Upload categories, used as key prefixes in the bucket.
const (
	CategoryCreativeBriefs = "creative_briefs"
	CategoryUploads        = "uploads"
)

type S3Client struct {
	client *s3.Client
	bucket string
	log    *zap.Logger
	now    func() time.Time
}

func NewS3Client(ctx context.Context, region, bucket string, log *zap.Logger) (*S3Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3Client{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		log:    log,
		now:    time.Now,
	}, nil
}

// Upload writes body to the bucket under a timestamp-qualified key and
// returns the disambiguated filename. The timestamp keeps same-named
// historical uploads from colliding.
func (c *S3Client) Upload(ctx context.Context, category, filename string, body io.Reader) (string, error) {
	key, modifiedFilename := BuildKey(category, filename, c.now())

	_, err := c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
		Body:   body,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %q to s3: %w", filename, err)
	}

	c.log.Info("uploaded file",
		zap.String("bucket", c.bucket),
		zap.String("key", key),
	)
	return modifiedFilename, nil
}

// BuildKey derives the object key {category}/{stem}_{unixts}{ext} and the
// matching disambiguated filename for an upload.
func BuildKey(category, filename string, now time.Time) (key, modifiedFilename string) {
	ext := path.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)
	modifiedFilename = stem + "_" + strconv.FormatInt(now.Unix(), 10) + ext
	return path.Join(category, modifiedFilename), modifiedFilename
}
