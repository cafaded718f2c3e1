package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"resort/config"
	"resort/infras/otel"
	"resort/shared/constant"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/rs/zerolog/log"
)

const (
	otelAttrFileName = "file_name"
	otelAttrBucket   = "bucket"

	errorCodeNoSuchKey = "NoSuchKey"
	errorCodeNotFound  = "NotFound"
)

var (
	ErrObjectNotFound = errors.New("object not found")
)

// Object is a downloaded blob together with its stored content type.
type Object struct {
	Data        []byte
	ContentType string
}

type S3 interface {
	UploadFileBytes(ctx context.Context, bucketName, directory, fileName, contentType string, fileData []byte) (url string, err error)
	GetFile(ctx context.Context, bucketName, objectKey string) (Object, error)
	DeleteFile(ctx context.Context, bucketName, directory, objectName string) error
}

type s3Impl struct {
	Client *s3.Client
	Config *config.Config
	otel   otel.Otel
}

func (svc *s3Impl) bucket(name string) string {
	if name == "" {
		return svc.Config.External.S3.BucketName
	}

	return name
}

func (svc *s3Impl) scope(ctx context.Context, op, bucket, key string) (context.Context, otel.Scope) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+"."+op)
	scope.SetAttributes(map[string]any{
		otelAttrFileName: key,
		otelAttrBucket:   bucket,
	})

	return ctx, scope
}

// ObjectURL is the public address of key under the configured domain.
func ObjectURL(publicDomain, key string) string {
	return strings.TrimSuffix(publicDomain, "/") + "/" + strings.TrimPrefix(key, "/")
}

// UploadFileBytes stores fileData at directory/fileName and returns its public URL.
// An empty bucketName means the configured bucket.
func (svc *s3Impl) UploadFileBytes(ctx context.Context, bucketName, directory, fileName, contentType string, fileData []byte) (url string, err error) {
	bucketName = svc.bucket(bucketName)
	objectKey := path.Join(directory, fileName)

	ctx, scope := svc.scope(ctx, "UploadFileBytes", bucketName, objectKey)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	_, err = svc.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucketName),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(fileData),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(fileData))),
	})
	if err != nil {
		log.Error().Err(err).Str("key", objectKey).Msg("failed to upload file to S3")

		return constant.Empty, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return ObjectURL(svc.Config.External.S3.PublicDomain, objectKey), nil
}

func (svc *s3Impl) GetFile(ctx context.Context, bucketName, objectKey string) (obj Object, err error) {
	bucketName = svc.bucket(bucketName)

	ctx, scope := svc.scope(ctx, "GetFile", bucketName, objectKey)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	out, err := svc.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		if isNotFound(err) {
			return obj, fmt.Errorf("%w: %s", ErrObjectNotFound, objectKey)
		}

		log.Error().Err(err).Str("key", objectKey).Msg("failed to get file from S3")

		return obj, fmt.Errorf("failed to get file from S3: %w", err)
	}
	defer out.Body.Close()

	if obj.Data, err = io.ReadAll(out.Body); err != nil {
		return obj, fmt.Errorf("failed to read file from S3: %w", err)
	}

	obj.ContentType = aws.ToString(out.ContentType)

	return obj, nil
}

func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()

		return code == errorCodeNoSuchKey || code == errorCodeNotFound
	}

	return false
}

func (svc *s3Impl) DeleteFile(ctx context.Context, bucketName, directory, objectName string) (err error) {
	bucketName = svc.bucket(bucketName)
	objectKey := path.Join(directory, objectName)

	ctx, scope := svc.scope(ctx, "DeleteFile", bucketName, objectKey)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	_, err = svc.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		log.Error().Err(err).Str("key", objectKey).Msg("failed to delete file from S3")

		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

// New builds a path-style client so R2 and MinIO endpoints work as well as AWS.
func New(config *config.Config, otel otel.Otel) S3 {
	settings := config.External.S3

	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(settings.AccessKeyID, settings.SecretAccessKey, "")),
		awsConfig.WithRegion(settings.Region),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to load AWS configuration")
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if settings.APIEndpoint != "" {
			o.BaseEndpoint = aws.String(settings.APIEndpoint)
		}

		o.UsePathStyle = true
	})

	return &s3Impl{
		Client: client,
		Config: config,
		otel:   otel,
	}
}
