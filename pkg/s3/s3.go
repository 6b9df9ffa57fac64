package s3

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"creatitube/pkg/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

type Client struct {
	s3Client *s3.S3
	bucket   string
}

func NewClient(cfg *config.Config) (*Client, error) {
	awsConfig := &aws.Config{
		Region: aws.String(cfg.AWSRegion),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		),
	}

	// MinIO for local development
	if cfg.AWSEndpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.AWSEndpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
		if cfg.S3UseSSL == "false" {
			awsConfig.DisableSSL = aws.Bool(true)
		}
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	client := &Client{
		s3Client: s3.New(sess),
		bucket:   cfg.S3BucketName,
	}

	_, err = client.s3Client.HeadBucket(&s3.HeadBucketInput{
		Bucket: aws.String(cfg.S3BucketName),
	})
	if err != nil {
		// Bucket may already exist under another owner; uploads will surface that.
		_, _ = client.s3Client.CreateBucket(&s3.CreateBucketInput{
			Bucket: aws.String(cfg.S3BucketName),
		})
	}

	return client, nil
}

// UploadFile stores body under key and returns its public URL.
func (c *Client) UploadFile(ctx context.Context, key string, body io.ReadSeeker, contentType string) (string, error) {
	_, err := c.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return ObjectURL(
		aws.StringValue(c.s3Client.Config.Endpoint),
		aws.BoolValue(c.s3Client.Config.DisableSSL),
		aws.StringValue(c.s3Client.Config.Region),
		c.bucket,
		key,
	), nil
}

// ObjectURL builds the public URL of key for either MinIO or AWS S3.
func ObjectURL(endpoint string, disableSSL bool, region, bucket, key string) string {
	if endpoint != "" && !strings.Contains(endpoint, "amazonaws.com") {
		protocol := "https"
		if disableSSL {
			protocol = "http"
		}
		endpoint = strings.TrimPrefix(endpoint, "http://")
		endpoint = strings.TrimPrefix(endpoint, "https://")
		return fmt.Sprintf("%s://%s/%s/%s", protocol, strings.TrimSuffix(endpoint, "/"), bucket, key)
	}

	if region == "" {
		region = "us-east-1"
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, key)
}

// MediaKey returns a unique object key for a creator upload.
func MediaKey(owner, kind, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	owner = strings.NewReplacer("@", "_at_", "/", "_").Replace(owner)
	return fmt.Sprintf("media/%s/%s/%s%s", kind, owner, uuid.New().String(), ext)
}
