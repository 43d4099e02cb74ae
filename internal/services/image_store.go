package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MaxImageSize bounds a single gig image.
const MaxImageSize = 5 << 20

// imageExtensions maps accepted content types to the extension used when the filename has none.
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ImageUpload is one image file received from a seller.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// CheckImage rejects uploads the store would refuse and returns the upload with its media type normalized.
func CheckImage(upload ImageUpload) (ImageUpload, error) {
	if upload.Size <= 0 {
		return upload, invalid("file", "is empty")
	}
	if upload.Size > MaxImageSize {
		return upload, invalid("file", "cannot exceed %d bytes", MaxImageSize)
	}
	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(upload.ContentType, ";")[0]))
	if _, ok := imageExtensions[mediaType]; !ok {
		return upload, invalid("file", "unsupported content type %q", upload.ContentType)
	}
	upload.ContentType = mediaType
	return upload, nil
}

// imageKey lays gig images out as <gigId>/<random><ext> so one gig's objects share a prefix.
func imageKey(gigID uuid.UUID, upload ImageUpload) string {
	ext := strings.ToLower(filepath.Ext(upload.Filename))
	if ext == "" {
		ext = imageExtensions[upload.ContentType]
	}
	return fmt.Sprintf("%s/%s%s", gigID, uuid.NewString(), ext)
}

// ImageStore holds gig images in one object storage bucket.
type ImageStore interface {
	// Put stores a checked upload under the gig's prefix and returns its object key.
	Put(ctx context.Context, gigID uuid.UUID, upload ImageUpload) (string, error)
	URL(ctx context.Context, key string, expiry time.Duration) (string, error)
	Remove(ctx context.Context, key string) error
	// EnsureBucket creates the bucket when it is missing.
	EnsureBucket(ctx context.Context) error
	// Ping fails when storage is unreachable or the bucket is gone.
	Ping(ctx context.Context) error
}

type minioImageStore struct {
	client *minio.Client
	bucket string
}

func NewImageStore(endpoint, accessKey, secretKey string, useSSL bool, bucket string) (ImageStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return &minioImageStore{client: client, bucket: bucket}, nil
}

func (s *minioImageStore) Put(ctx context.Context, gigID uuid.UUID, upload ImageUpload) (string, error) {
	upload, err := CheckImage(upload)
	if err != nil {
		return "", err
	}
	key := imageKey(gigID, upload)
	_, err = s.client.PutObject(ctx, s.bucket, key, upload.Reader, upload.Size, minio.PutObjectOptions{
		ContentType:  upload.ContentType,
		UserMetadata: map[string]string{"gig-id": gigID.String()},
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

func (s *minioImageStore) URL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, expiry, nil)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

func (s *minioImageStore) Remove(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

func (s *minioImageStore) EnsureBucket(ctx context.Context) error {
	found, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if found {
		return nil
	}
	return s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
}

func (s *minioImageStore) Ping(ctx context.Context) error {
	found, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("bucket %s does not exist", s.bucket)
	}
	return nil
}
