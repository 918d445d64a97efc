package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"github.com/coursebay/coursebay-backend/internal/pkg/logger"
)

// ImageService stores course cover images and hands back public URLs.
type ImageService interface {
	Upload(ctx context.Context, filename string, file io.Reader) (string, error)
	Delete(ctx context.Context, imageURL string) error
}

type imageService struct {
	log           *logger.Logger
	storageClient *storage.Client
	bucketName    string
	cdnDomain     string
}

func NewImageService(log *logger.Logger) (ImageService, error) {
	serviceLog := log.With("service", "ImageService")
	bucket := os.Getenv("GCS_BUCKET_NAME")
	if bucket == "" {
		return nil, fmt.Errorf("missing env var GCS_BUCKET_NAME")
	}
	cdnDomain := os.Getenv("CDN_DOMAIN")
	saPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON")
	if saPath == "" {
		serviceLog.Warn("GOOGLE_APPLICATION_CREDENTIALS_JSON not set, storage client falls back to ADC")
	}
	ctx := context.Background()
	var stClient *storage.Client
	var err error
	if saPath != "" {
		stClient, err = storage.NewClient(ctx, option.WithCredentialsFile(saPath), option.WithScopes(storage.ScopeReadWrite))
	} else {
		stClient, err = storage.NewClient(ctx, option.WithScopes(storage.ScopeReadWrite))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &imageService{
		log:           serviceLog,
		storageClient: stClient,
		bucketName:    bucket,
		cdnDomain:     cdnDomain,
	}, nil
}

func (is *imageService) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()
	key := fmt.Sprintf("courses/%s%s", uuid.New().String(), path.Ext(filename))
	w := is.storageClient.Bucket(is.bucketName).Object(key).NewWriter(ctx)
	if _, err := io.Copy(w, file); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to write image to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close GCS writer: %w", err)
	}
	return is.publicURL(key), nil
}

func (is *imageService) Delete(ctx context.Context, imageURL string) error {
	key := is.keyFromURL(imageURL)
	if key == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := is.storageClient.Bucket(is.bucketName).Object(key).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete GCS object %q: %w", key, err)
	}
	return nil
}

func (is *imageService) publicURL(key string) string {
	if is.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", is.cdnDomain, key)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", is.bucketName, key)
}

func (is *imageService) keyFromURL(imageURL string) string {
	if is.cdnDomain != "" {
		if rest, ok := strings.CutPrefix(imageURL, fmt.Sprintf("https://%s/", is.cdnDomain)); ok {
			return rest
		}
	}
	prefix := fmt.Sprintf("https://storage.googleapis.com/%s/", is.bucketName)
	if rest, ok := strings.CutPrefix(imageURL, prefix); ok {
		return rest
	}
	return ""
}
