package storage

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/sentra-hq/sentra-cms/internal/config"
)

// Upload is the two-step upload contract handed to the front end: PUT
// the raw bytes to UploadURL, then reference PublicURL.
type Upload struct {
	UploadURL string
	FileName  string
	PublicURL string
}

// ACLReport summarizes a best-effort bucket-wide ACL repair.
type ACLReport struct {
	Fixed  int
	Failed int
	Total  int
}

// ObjectStore is the object-storage surface the files server exposes.
type ObjectStore interface {
	GenerateUploadURL(ctx context.Context, fileName, fileType string) (*Upload, error)
	FixObjectACL(ctx context.Context, fileName string) (string, error)
	FixAllObjectACLs(ctx context.Context) (*ACLReport, error)
}

type s3API interface {
	PutObjectAcl(ctx context.Context, params *s3.PutObjectAclInput, optFns ...func(*s3.Options)) (*s3.PutObjectAclOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

type presignAPI interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

type Service struct {
	api           s3API
	presigner     presignAPI
	bucket        string
	publicBaseURL string
	urlTTL        time.Duration

	// now is swapped in tests to pin generated object names.
	now func() time.Time
}

// New builds the S3 service against the configured bucket. A non-empty
// endpoint switches the client to an S3-compatible provider
// (DigitalOcean Spaces, Supabase storage).
func New(cfg *config.Config) (*Service, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.S3.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3.AccessKeyID,
			cfg.S3.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3.Endpoint)
			o.UsePathStyle = true
		}
	})

	publicBase := cfg.S3.PublicBaseURL
	if publicBase == "" {
		publicBase = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3.Bucket, cfg.S3.Region)
	}

	return &Service{
		api:           client,
		presigner:     s3.NewPresignClient(client),
		bucket:        cfg.S3.Bucket,
		publicBaseURL: strings.TrimRight(publicBase, "/"),
		urlTTL:        15 * time.Minute,
		now:           time.Now,
	}, nil
}

// objectKey uniquifies an upload name: two uploads of "logo.png" must
// never collide, so the key is prefixed with a millisecond timestamp.
func (s *Service) objectKey(fileName string) string {
	base := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		}

		return '-'
	}, base)

	return fmt.Sprintf("%d-%s", s.now().UnixMilli(), base)
}

func (s *Service) publicURL(key string) string {
	return s.publicBaseURL + "/" + key
}

// GenerateUploadURL issues a time-limited pre-signed PUT URL for a new,
// uniquely named object.
func (s *Service) GenerateUploadURL(ctx context.Context, fileName, fileType string) (*Upload, error) {
	key := s.objectKey(fileName)

	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(fileType),
		ACL:         types.ObjectCannedACLPublicRead,
	}, s3.WithPresignExpires(s.urlTTL))
	if err != nil {
		return nil, fmt.Errorf("presigning upload for %s: %w", key, err)
	}

	return &Upload{
		UploadURL: req.URL,
		FileName:  key,
		PublicURL: s.publicURL(key),
	}, nil
}

// FixObjectACL forces a single object back to public-read and returns
// its public URL.
func (s *Service) FixObjectACL(ctx context.Context, fileName string) (string, error) {
	_, err := s.api.PutObjectAcl(ctx, &s3.PutObjectAclInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(fileName),
		ACL:    types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("fixing ACL for %s: %w", fileName, err)
	}

	return s.publicURL(fileName), nil
}

// FixAllObjectACLs walks the whole bucket in pages of 1000 keys and
// repairs each object's ACL. One object failing does not abort the
// batch; failures are counted and reported.
func (s *Service) FixAllObjectACLs(ctx context.Context) (*ACLReport, error) {
	report := &ACLReport{}

	var continuation *string

	for {
		page, err := s.api.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(s.bucket),
			MaxKeys:           aws.Int32(1000),
			ContinuationToken: continuation,
		})
		if err != nil {
			return nil, fmt.Errorf("listing bucket objects: %w", err)
		}

		for _, obj := range page.Contents {
			report.Total++

			_, err := s.api.PutObjectAcl(ctx, &s3.PutObjectAclInput{
				Bucket: aws.String(s.bucket),
				Key:    obj.Key,
				ACL:    types.ObjectCannedACLPublicRead,
			})
			if err != nil {
				report.Failed++

				slog.Warn("failed to fix object ACL", "key", aws.ToString(obj.Key), "error", err)

				continue
			}

			report.Fixed++
		}

		if page.NextContinuationToken == nil {
			break
		}

		continuation = page.NextContinuationToken
	}

	return report, nil
}
