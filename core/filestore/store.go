package filestore

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"catalog-manager/core/apperr"
	"catalog-manager/core/storage"

	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

var (
	ErrEmpty            = apperr.NewValidation("File.Size.Empty", "File is empty.")
	ErrTooLarge         = apperr.NewValidation("File.TooLarge", "File exceeds the maximum size of %d bytes.")
	ErrKindNotSupported = apperr.NewValidation("File.FileKindNotSupported", "Extension '%s' is not allowed for %s files.")
	ErrInvalidURL       = apperr.NewValidation("File.Url.Invalid", "URL '%s' does not point to a stored file.")
	ErrSaveFailed       = apperr.NewUnexpected("File.SaveFailed", "Failed to save the file.")
	ErrDeleteFailed     = apperr.NewFailure("File.DeleteFailed", "Failed to delete the file.")
	ErrNotFound         = apperr.NewNotFound("File.NotFound", "File not found.")
)

// Store saves and deletes uploaded files.
type Store interface {
	// Save stores content under folder and returns its public URL.
	Save(ctx context.Context, content []byte, filename, folder string, kind Kind, maxBytes int64) (string, error)
	// Delete removes the file behind a URL returned by Save.
	Delete(ctx context.Context, url string) error
}

// ObjectStore is a Store backed by an object storage bucket.
type ObjectStore struct {
	client storage.Client
	bucket string
	prefix string
	rules  Rules
}

// New creates an ObjectStore writing to bucket.
func New(client storage.Client, bucket string, cfg Config) *ObjectStore {
	prefix := "/" + strings.Trim(cfg.PublicPrefix, "/")
	return &ObjectStore{
		client: client,
		bucket: bucket,
		prefix: prefix,
		rules:  NewRules(cfg),
	}
}

// EnsureBucket creates the bucket when it does not exist yet.
func (s *ObjectStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	return nil
}

func (s *ObjectStore) Save(ctx context.Context, content []byte, filename, folder string, kind Kind, maxBytes int64) (string, error) {
	if len(content) == 0 {
		return "", ErrEmpty
	}
	if maxBytes > 0 && int64(len(content)) > maxBytes {
		return "", ErrTooLarge.Withf(maxBytes)
	}

	ext := strings.ToLower(path.Ext(filename))
	if !s.rules.Allows(kind, ext) {
		return "", ErrKindNotSupported.Withf(ext, kind)
	}

	objectName := path.Join(strings.Trim(folder, "/"), uuid.NewString()+ext)
	_, err := s.client.PutObject(ctx, s.bucket, objectName, bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType: utils.GetMIME(ext),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	return s.prefix + "/" + objectName, nil
}

func (s *ObjectStore) Delete(ctx context.Context, url string) error {
	objectName, ok := s.ObjectName(url)
	if !ok {
		return ErrInvalidURL.Withf(url)
	}
	if err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("%w: %v", ErrDeleteFailed, err)
	}
	return nil
}

// List returns the public URLs of every object stored under folder.
func (s *ObjectStore) List(ctx context.Context, folder string) ([]string, error) {
	opts := minio.ListObjectsOptions{
		Prefix:    strings.Trim(folder, "/") + "/",
		Recursive: true,
	}

	var urls []string
	for obj := range s.client.ListObjects(ctx, s.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", folder, obj.Err)
		}
		urls = append(urls, s.prefix+"/"+obj.Key)
	}
	return urls, nil
}

// ObjectName maps a public URL back to its object name.
func (s *ObjectStore) ObjectName(url string) (string, bool) {
	name, ok := strings.CutPrefix(url, s.prefix+"/")
	if !ok || !validObjectName(name) {
		return "", false
	}
	return name, true
}

// Prefix returns the public URL prefix, without a trailing slash.
func (s *ObjectStore) Prefix() string {
	return s.prefix
}

func validObjectName(name string) bool {
	if name == "" || strings.HasPrefix(name, "/") {
		return false
	}
	for _, part := range strings.Split(name, "/") {
		if part == "" || part == "." || part == ".." {
			return false
		}
	}
	return true
}
