package services

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	sc "github.com/dmitrijs2005/notekeeper/internal/server/config"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const presignValidity = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// MediaService hands out presigned S3 URLs so media bytes never flow
// through the API server. Upload keys are minted here; download URLs are
// only issued for keys attached to a note the caller owns, which the
// note service has already verified.
type MediaService struct {
	config *sc.Config
}

func NewMediaService(config *sc.Config) *MediaService {
	return &MediaService{config: config}
}

// RandomStorageKey partitions uploads by date so the bucket stays browsable.
func RandomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("media/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *MediaService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

// GetPresignedPutURL mints a fresh storage key and a URL the client can PUT
// the media bytes to.
func (s *MediaService) GetPresignedPutURL(ctx context.Context) (string, string, error) {

	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", "", err
	}

	bucket := s.config.S3Bucket
	key := RandomStorageKey()

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignValidity))

	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

// GetPresignedGetURL returns a download URL for key, but only if key is
// attached to the supplied (already owner-checked) note.
func (s *MediaService) GetPresignedGetURL(ctx context.Context, attached []string, key string) (string, error) {
	if !slices.Contains(attached, key) {
		return "", common.ErrorNotFoundOrForbidden
	}

	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignValidity))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
