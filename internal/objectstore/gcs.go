package objectstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/2beens/flexly/internal/telemetry/tracing"

	"cloud.google.com/go/storage"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/option"
)

type GCSStore struct {
	client     *storage.Client
	bucketName string
}

// NewGCSStore creates the storage client. Empty credentialsFile falls back to the
// application default credentials.
func NewGCSStore(ctx context.Context, bucketName, credentialsFile string) (*GCSStore, error) {
	if bucketName == "" {
		return nil, errors.New("gcs bucket name cannot be empty")
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gcs storage client: %w", err)
	}

	return &GCSStore{
		client:     client,
		bucketName: bucketName,
	}, nil
}

func (s *GCSStore) Put(ctx context.Context, key, contentType string, data []byte) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "gcsStore.put")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("object.key", key), attribute.Int("object.size", len(data)))

	key, err = CleanKey(key)
	if err != nil {
		return "", err
	}

	writer := s.client.Bucket(s.bucketName).Object(key).NewWriter(ctx)
	writer.ContentType = contentType
	writer.CacheControl = "public, max-age=31536000"

	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return "", fmt.Errorf("write gcs object %s: %w", key, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close gcs writer for %s: %w", key, err)
	}

	log.Debugf("gcs store: uploaded gs://%s/%s", s.bucketName, key)
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucketName, key), nil
}

func (s *GCSStore) Delete(ctx context.Context, key string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "gcsStore.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	key, err = CleanKey(key)
	if err != nil {
		return err
	}

	if err := s.client.Bucket(s.bucketName).Object(key).Delete(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return ErrObjectNotFound
		}
		return err
	}
	return nil
}

func (s *GCSStore) KeyFromURL(url string) (string, bool) {
	prefix := fmt.Sprintf("https://storage.googleapis.com/%s/", s.bucketName)
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}
