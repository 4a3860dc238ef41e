package aws

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/diillson/retail-sales-analytics-go/internal/domain/repository"
	"github.com/diillson/retail-sales-analytics-go/internal/shared/types"
)

// s3API is the subset of the S3 client used here.
type s3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3RepositoryImpl implementa o StorageRepository com cache de clientes por perfil.
type S3RepositoryImpl struct {
	clientCache map[string]s3API
	newClient   func(ctx context.Context, profile string) (s3API, error)
	mu          sync.Mutex
}

// NewS3Repository cria uma nova implementação do StorageRepository sobre o S3.
func NewS3Repository() repository.StorageRepository {
	return &S3RepositoryImpl{
		clientCache: make(map[string]s3API),
		newClient:   newS3Client,
	}
}

func newS3Client(ctx context.Context, profile string) (s3API, error) {
	var opts []func(*config.LoadOptions) error
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config for profile %q: %w", profile, err)
	}
	return s3.NewFromConfig(cfg), nil
}

func (r *S3RepositoryImpl) getClient(ctx context.Context, profile string) (s3API, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if client, ok := r.clientCache[profile]; ok {
		return client, nil
	}

	client, err := r.newClient(ctx, profile)
	if err != nil {
		return nil, err
	}
	r.clientCache[profile] = client
	return client, nil
}

// ParseS3URI splits s3://bucket/key into bucket and key. The key may be empty
// only when allowEmptyKey is set (upload prefixes).
func ParseS3URI(uri string, allowEmptyKey bool) (string, string, error) {
	if !types.IsS3URI(uri) {
		return "", "", fmt.Errorf("%w: %s", types.ErrInvalidS3URI, uri)
	}
	rest := strings.TrimPrefix(uri, "s3://")
	bucket, key, _ := strings.Cut(rest, "/")
	if bucket == "" || (key == "" && !allowEmptyKey) {
		return "", "", fmt.Errorf("%w: %s", types.ErrInvalidS3URI, uri)
	}
	return bucket, key, nil
}

// Open returns the body of the object at uri. The caller closes it.
func (r *S3RepositoryImpl) Open(ctx context.Context, profile, uri string) (io.ReadCloser, error) {
	bucket, key, err := ParseS3URI(uri, false)
	if err != nil {
		return nil, err
	}

	client, err := r.getClient(ctx, profile)
	if err != nil {
		return nil, err
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("error getting object %s: %w", uri, err)
	}
	return out.Body, nil
}

// Upload envia o arquivo local para uri.
func (r *S3RepositoryImpl) Upload(ctx context.Context, profile, uri, localPath string) error {
	bucket, key, err := ParseS3URI(uri, false)
	if err != nil {
		return err
	}

	client, err := r.getClient(ctx, profile)
	if err != nil {
		return err
	}

	file, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("error opening %s for upload: %w", localPath, err)
	}
	defer file.Close()

	input := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   file,
	}
	if contentType := contentTypeFor(localPath); contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("error putting object %s: %w", uri, err)
	}
	return nil
}

func contentTypeFor(path string) string {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".md":
		return "text/markdown; charset=utf-8"
	case ".csv":
		return "text/csv; charset=utf-8"
	default:
		return mime.TypeByExtension(ext)
	}
}
