package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"github.com/faucetdrop/questhub/questhub/apperrors"
)

// SpacesService stores quest images, submission proofs, and rendered share
// cards in a DigitalOcean Spaces bucket. Uploading here is what turns a
// client's transient blob: reference into a durable URL.
type SpacesService struct {
	client    *s3.Client
	bucket    string
	region    string
	AssetRoot string
}

func NewSpacesService(spacesKey, spacesSecret, region, bucket, assetRoot string) (*SpacesService, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.digitaloceanspaces.com", region),
		}, nil
	})

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithEndpointResolverWithOptions(resolver),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(spacesKey, spacesSecret, "")),
		config.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load Spaces config: %w", err)
	}

	return &SpacesService{
		client:    s3.NewFromConfig(cfg),
		bucket:    bucket,
		region:    region,
		AssetRoot: strings.TrimPrefix(assetRoot, "/"),
	}, nil
}

// UploadQuestImage stores a quest logo and returns its public URL.
func (s *SpacesService) UploadQuestImage(ctx context.Context, data []byte, contentType string) (string, error) {
	key := fmt.Sprintf("%s/quests/%s%s", s.AssetRoot, uuid.NewString(), extensionFor(contentType))
	return s.upload(ctx, key, data, contentType)
}

// UploadProof stores a manual-upload submission proof.
func (s *SpacesService) UploadProof(ctx context.Context, questAddress string, data []byte, contentType string) (string, error) {
	key := fmt.Sprintf("%s/proofs/%s/%s%s", s.AssetRoot, strings.ToLower(questAddress), uuid.NewString(), extensionFor(contentType))
	return s.upload(ctx, key, data, contentType)
}

// UploadShareCard stores a rendered leaderboard share image.
func (s *SpacesService) UploadShareCard(ctx context.Context, questAddress string, data []byte) (string, error) {
	key := fmt.Sprintf("%s/sharecards/%s/%s.png", s.AssetRoot, strings.ToLower(questAddress), uuid.NewString())
	return s.upload(ctx, key, data, "image/png")
}

func (s *SpacesService) upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPublicRead,
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", apperrors.RemoteService("failed to upload object", err)
	}

	return s.PublicURL(key), nil
}

// PublicURL builds the CDN URL for a stored object key.
func (s *SpacesService) PublicURL(key string) string {
	return fmt.Sprintf("https://%s.%s.cdn.digitaloceanspaces.com/%s", s.bucket, s.region, key)
}

func (s *SpacesService) GetBucket() string {
	return s.bucket
}

func (s *SpacesService) GetRegion() string {
	return s.region
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
