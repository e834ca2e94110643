package storage

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	pages      []*s3.ListObjectsV2Output
	pageIdx    int
	aclErrKeys map[string]bool
	aclCalls   []string
}

func (f *fakeS3) PutObjectAcl(_ context.Context, params *s3.PutObjectAclInput, _ ...func(*s3.Options)) (*s3.PutObjectAclOutput, error) {
	key := aws.ToString(params.Key)
	f.aclCalls = append(f.aclCalls, key)

	if f.aclErrKeys[key] {
		return nil, errors.New("access denied")
	}
	return &s3.PutObjectAclOutput{}, nil
}

func (f *fakeS3) ListObjectsV2(context.Context, *s3.ListObjectsV2Input, ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	page := f.pages[f.pageIdx]
	if f.pageIdx < len(f.pages)-1 {
		f.pageIdx++
	}
	return page, nil
}

type fakePresigner struct {
	lastInput *s3.PutObjectInput
}

func (f *fakePresigner) PresignPutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	f.lastInput = params
	return &v4.PresignedHTTPRequest{
		URL:    "https://bucket.example.com/" + aws.ToString(params.Key) + "?signature=abc",
		Method: "PUT",
	}, nil
}

func newTestService(api s3API, presigner presignAPI) *Service {
	return &Service{
		api:           api,
		presigner:     presigner,
		bucket:        "sentra-files",
		publicBaseURL: "https://files.sentra.dev",
		urlTTL:        15 * time.Minute,
		now:           func() time.Time { return time.UnixMilli(1700000000000) },
	}
}

func TestService_GenerateUploadURL(t *testing.T) {
	presigner := &fakePresigner{}
	svc := newTestService(&fakeS3{}, presigner)

	upload, err := svc.GenerateUploadURL(context.Background(), "a.png", "image/png")
	require.NoError(t, err)

	// The stored name must never be the literal input name.
	assert.NotEqual(t, "a.png", upload.FileName)
	assert.Equal(t, "1700000000000-a.png", upload.FileName)
	assert.Contains(t, upload.PublicURL, upload.FileName)
	assert.Contains(t, upload.UploadURL, upload.FileName)

	require.NotNil(t, presigner.lastInput)
	assert.Equal(t, "image/png", aws.ToString(presigner.lastInput.ContentType))
	assert.Equal(t, types.ObjectCannedACLPublicRead, presigner.lastInput.ACL)
}

func TestService_GenerateUploadURL_SanitizesName(t *testing.T) {
	svc := newTestService(&fakeS3{}, &fakePresigner{})

	upload, err := svc.GenerateUploadURL(context.Background(), "../.\\evil dir/na me?.png", "image/png")
	require.NoError(t, err)

	assert.False(t, strings.ContainsAny(upload.FileName, "/\\? "))
}

func TestService_FixObjectACL(t *testing.T) {
	api := &fakeS3{}
	svc := newTestService(api, &fakePresigner{})

	url, err := svc.FixObjectACL(context.Background(), "1700000000000-a.png")
	require.NoError(t, err)

	assert.Equal(t, "https://files.sentra.dev/1700000000000-a.png", url)
	assert.Equal(t, []string{"1700000000000-a.png"}, api.aclCalls)
}

func TestService_FixAllObjectACLs_CountsFailures(t *testing.T) {
	api := &fakeS3{
		pages: []*s3.ListObjectsV2Output{
			{
				Contents: []types.Object{
					{Key: aws.String("one.png")},
					{Key: aws.String("two.png")},
					{Key: aws.String("three.png")},
				},
			},
		},
		aclErrKeys: map[string]bool{"two.png": true},
	}
	svc := newTestService(api, &fakePresigner{})

	report, err := svc.FixAllObjectACLs(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 2, report.Fixed)
	assert.Equal(t, 1, report.Failed)
}

func TestService_FixAllObjectACLs_Paginates(t *testing.T) {
	api := &fakeS3{
		pages: []*s3.ListObjectsV2Output{
			{
				Contents:              []types.Object{{Key: aws.String("page1.png")}},
				NextContinuationToken: aws.String("next"),
			},
			{
				Contents: []types.Object{{Key: aws.String("page2.png")}},
			},
		},
	}
	svc := newTestService(api, &fakePresigner{})

	report, err := svc.FixAllObjectACLs(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 2, report.Fixed)
	assert.Equal(t, []string{"page1.png", "page2.png"}, api.aclCalls)
}
