// Package media hands out presigned S3 upload URLs for project and
// profile images. Clients PUT the file directly and store the returned key
// as image_path.
package media

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/tunakleague/collabin-backend/config"
)

type Upload struct {
	URL       string    `json:"url"`
	Method    string    `json:"method"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Presigner struct {
	client *s3.PresignClient
	bucket string
	expiry time.Duration
}

func NewPresigner(cfg aws.Config, bucket string, expiry time.Duration) *Presigner {
	return &Presigner{
		client: s3.NewPresignClient(s3.NewFromConfig(cfg)),
		bucket: bucket,
		expiry: expiry,
	}
}

// FromConfig returns nil when no bucket is configured, which disables the
// upload endpoints.
func FromConfig(ctx context.Context, cfg *config.MediaConfig) (*Presigner, error) {
	if cfg.Bucket == "" {
		return nil, nil
	}
	awsConf, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewPresigner(awsConf, cfg.Bucket, cfg.URLExpiry), nil
}

// ImageUpload presigns a PUT for a new object under prefix/ownerID/.
func (p *Presigner) ImageUpload(ctx context.Context, prefix string, ownerID int64, contentType string) (Upload, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return Upload{}, ErrNotAnImage
	}

	key := fmt.Sprintf("%s/%d/%s", prefix, ownerID, uuid.NewString())
	req, err := p.client.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(p.expiry))
	if err != nil {
		return Upload{}, fmt.Errorf("presign %s: %w", key, err)
	}

	return Upload{
		URL:       req.URL,
		Method:    req.Method,
		Key:       key,
		ExpiresAt: time.Now().UTC().Add(p.expiry),
	}, nil
}

var ErrNotAnImage = errors.New("content_type must be an image type")
