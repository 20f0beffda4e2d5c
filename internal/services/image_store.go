package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"fyyur/internal/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ErrUnsupportedImage is returned for files whose extension is not an image.
var ErrUnsupportedImage = errors.New("unsupported image type")

var imageContentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// ImageStore saves an uploaded image and returns its public URL.
type ImageStore interface {
	Upload(ctx context.Context, prefix, filename string, body io.Reader) (string, error)
}

type objectUploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

type S3ImageStore struct {
	uploader      objectUploader
	bucket        string
	publicBaseURL string
}

func NewS3ImageStore(s3Config *config.S3Config) *S3ImageStore {
	return &S3ImageStore{
		uploader:      manager.NewUploader(s3Config.Client),
		bucket:        s3Config.Bucket,
		publicBaseURL: s3Config.PublicBaseURL,
	}
}

// Upload stores body under prefix/<uuid><ext>.
func (s *S3ImageStore) Upload(ctx context.Context, prefix, filename string, body io.Reader) (string, error) {
	ext := strings.ToLower(path.Ext(filename))
	contentType, ok := imageContentTypes[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedImage, ext)
	}

	key := imageKey(prefix, ext)
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	return strings.TrimRight(s.publicBaseURL, "/") + "/" + key, nil
}

func imageKey(prefix, ext string) string {
	return path.Join(prefix, uuid.New().String()+ext)
}
