package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	sc "github.com/dmitrijs2005/notekeeper/internal/server/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func newMediaConfig() *sc.Config {
	return &sc.Config{
		S3RootUser:     "minio",
		S3RootPassword: "minio123",
		S3Bucket:       "media",
		S3Region:       "us-east-1",
		S3BaseEndpoint: "http://localhost:9000",
	}
}

// stubPresignClients swaps the S3 construction hooks for stubs and restores
// them when the test finishes.
func stubPresignClients(t *testing.T) {
	t.Helper()

	origLoad := loadDefaultAWSConfig
	origNewClient := newS3ClientFromConfig
	origNewPresign := newS3PresignClient
	origPut := presignPutObject
	origGet := presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewClient
		newS3PresignClient = origNewPresign
		presignPutObject = origPut
		presignGetObject = origGet
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*config.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return &s3.Client{}
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return &s3.PresignClient{}
	}
}

func TestMediaService_RandomStorageKey(t *testing.T) {
	k1 := RandomStorageKey()
	k2 := RandomStorageKey()

	if !strings.HasPrefix(k1, "media/") {
		t.Errorf("key missing prefix: %q", k1)
	}
	if k1 == k2 {
		t.Error("keys must be unique")
	}
}

func TestMediaService_GetPresignedPutURL(t *testing.T) {
	stubPresignClients(t)

	var gotBucket, gotKey string
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		gotBucket = aws.ToString(in.Bucket)
		gotKey = aws.ToString(in.Key)
		return &v4.PresignedHTTPRequest{URL: "https://s3.example.com/put"}, nil
	}

	svc := NewMediaService(newMediaConfig())
	key, url, err := svc.GetPresignedPutURL(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://s3.example.com/put" {
		t.Errorf("unexpected url: %q", url)
	}
	if gotBucket != "media" {
		t.Errorf("unexpected bucket: %q", gotBucket)
	}
	if key == "" || key != gotKey {
		t.Errorf("returned key %q does not match presigned key %q", key, gotKey)
	}
}

func TestMediaService_GetPresignedGetURLAttached(t *testing.T) {
	stubPresignClients(t)

	var gotKey string
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		gotKey = aws.ToString(in.Key)
		return &v4.PresignedHTTPRequest{URL: "https://s3.example.com/get"}, nil
	}

	svc := NewMediaService(newMediaConfig())
	url, err := svc.GetPresignedGetURL(context.Background(), []string{"media/2026/1/1/abc"}, "media/2026/1/1/abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://s3.example.com/get" {
		t.Errorf("unexpected url: %q", url)
	}
	if gotKey != "media/2026/1/1/abc" {
		t.Errorf("unexpected key: %q", gotKey)
	}
}

func TestMediaService_GetPresignedGetURLUnattached(t *testing.T) {
	stubPresignClients(t)

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		t.Fatal("presign must not be reached for an unattached key")
		return nil, nil
	}

	svc := NewMediaService(newMediaConfig())
	_, err := svc.GetPresignedGetURL(context.Background(), []string{"media/other"}, "media/stolen")
	if !errors.Is(err, common.ErrorNotFoundOrForbidden) {
		t.Errorf("expected ErrorNotFoundOrForbidden, got %v", err)
	}
}
