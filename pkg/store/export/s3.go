package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/de-tools/revenue-atlas/pkg/models/api"
	"github.com/rs/zerolog"
)

const DefaultRegion = "us-east-1"

// ObjectPutter is the slice of the S3 API the archive needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ReportArchive stores rendered revenue reports as JSON objects in a bucket.
type ReportArchive struct {
	client ObjectPutter
	bucket string
}

func NewReportArchive(client ObjectPutter, bucket string) (*ReportArchive, error) {
	if client == nil {
		return nil, fmt.Errorf("s3 client is nil")
	}
	if bucket == "" {
		return nil, fmt.Errorf("bucket is required")
	}
	return &ReportArchive{client: client, bucket: bucket}, nil
}

func NewS3Client(cfg aws.Config) *s3.Client {
	return s3.NewFromConfig(cfg)
}

func LoadAWSConfig(ctx context.Context, profile string) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithDefaultRegion(DefaultRegion),
	}
	if profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(profile))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}
	return cfg, nil
}

// DefaultKey lays reports out per tenant and property, one object per month.
func DefaultKey(report api.RevenueReport) string {
	month := "no-activity"
	if report.ReportMonth != nil {
		month = (*report.ReportMonth)[:7]
	}
	return fmt.Sprintf("revenue/%s/%s/%s.json", report.TenantID, report.PropertyID, month)
}

func (a *ReportArchive) Put(ctx context.Context, key string, report api.RevenueReport) error {
	logger := zerolog.Ctx(ctx)

	body, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("upload report to s3://%s/%s: %w", a.bucket, key, err)
	}

	logger.Info().Str("bucket", a.bucket).Str("key", key).Msg("revenue report exported")
	return nil
}
