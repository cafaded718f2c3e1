// Package imagestore keeps uploaded images in object storage under random UUID keys.
// Callers persist the returned reference and resolve it back through Get.
package imagestore

//go:generate go run go.uber.org/mock/mockgen -source=./imagestore.go -destination=./mocks/imagestore_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"path"
	"regexp"
	"resort/config"
	"resort/infras/otel"
	"resort/infras/s3"
	"resort/shared/constant"
	"resort/shared/failure"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	PublicPath = "/v1/images/"

	DirectoryCheckIn = "checkin"
	DirectoryRoom    = "rooms"
	DirectoryPackage = "packages"
)

var (
	extensions = map[string]string{
		"image/png":  ".png",
		"image/jpeg": ".jpg",
		"image/jpg":  ".jpg",
		"image/webp": ".webp",
		"image/gif":  ".gif",
	}

	refPattern = regexp.MustCompile(`^[a-z0-9_-]+/[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\.[a-z]+$`)
)

type Image struct {
	Data        []byte
	ContentType string
}

type Store interface {
	Put(ctx context.Context, directory, contentType string, data []byte) (ref string, err error)
	Get(ctx context.Context, ref string) (Image, error)
	Delete(ctx context.Context, ref string) error
}

type s3Store struct {
	s3     s3.S3
	bucket string
	otel   otel.Otel
}

func New(cfg *config.Config, s3Client s3.S3, otel otel.Otel) Store {
	return &s3Store{
		s3:     s3Client,
		bucket: cfg.External.S3.BucketName,
		otel:   otel,
	}
}

// Extension maps an accepted image content type to its file extension.
func Extension(contentType string) (string, bool) {
	ext, ok := extensions[contentType]

	return ext, ok
}

// URL is the API path serving ref. An empty ref maps to an empty URL.
func URL(ref string) string {
	if ref == constant.Empty {
		return constant.Empty
	}

	return PublicPath + ref
}

// ValidRef reports whether ref has the shape produced by Put.
func ValidRef(ref string) bool {
	return refPattern.MatchString(ref)
}

func (s *s3Store) Put(ctx context.Context, directory, contentType string, data []byte) (ref string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".imagestore.Put")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	ext, ok := Extension(contentType)
	if !ok {
		return constant.Empty, failure.BadRequestFromString(fmt.Sprintf("unsupported image type %q", contentType))
	}

	if len(data) == 0 {
		return constant.Empty, failure.BadRequestFromString("image is empty")
	}

	name := uuid.NewString() + ext

	if _, err = s.s3.UploadFileBytes(ctx, s.bucket, directory, name, contentType, data); err != nil {
		log.Error().Err(err).Str("directory", directory).Msg("failed to store image")

		return constant.Empty, fmt.Errorf("failed to store image: %w", err)
	}

	return path.Join(directory, name), nil
}

func (s *s3Store) Get(ctx context.Context, ref string) (img Image, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".imagestore.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !ValidRef(ref) {
		return img, failure.NotFound("image not found")
	}

	obj, err := s.s3.GetFile(ctx, s.bucket, ref)
	if err != nil {
		if errors.Is(err, s3.ErrObjectNotFound) {
			return img, failure.NotFound("image not found")
		}

		return img, fmt.Errorf("failed to load image: %w", err)
	}

	img.Data = obj.Data
	img.ContentType = obj.ContentType

	if img.ContentType == constant.Empty {
		for contentType, ext := range extensions {
			if path.Ext(ref) == ext {
				img.ContentType = contentType

				break
			}
		}
	}

	return img, nil
}

func (s *s3Store) Delete(ctx context.Context, ref string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".imagestore.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !ValidRef(ref) {
		return failure.BadRequestFromString("invalid image reference")
	}

	directory, name := path.Split(ref)

	if err = s.s3.DeleteFile(ctx, s.bucket, path.Clean(directory), name); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	return nil
}
