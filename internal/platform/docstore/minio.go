package docstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/podvault-labs/podcatalog/internal/platform/env"
)

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	UseSSL    bool
	Bucket    string
}

func MinioConfigFromEnv() (MinioConfig, error) {
	useSSL, err := env.Bool("PODCATALOG_MINIO_USE_SSL", false)
	if err != nil {
		return MinioConfig{}, err
	}
	cfg := MinioConfig{
		Endpoint:  env.String("PODCATALOG_MINIO_ENDPOINT", "localhost:9000"),
		AccessKey: env.String("PODCATALOG_MINIO_ACCESS_KEY", "podcatalog"),
		SecretKey: env.String("PODCATALOG_MINIO_SECRET_KEY", "podcatalogminio"),
		Region:    env.String("PODCATALOG_MINIO_REGION", "us-east-1"),
		UseSSL:    useSSL,
		Bucket:    env.String("PODCATALOG_MINIO_BUCKET", "pods"),
	}
	if err := cfg.Validate(); err != nil {
		return MinioConfig{}, err
	}
	return cfg, nil
}

func (c MinioConfig) Validate() error {
	if strings.TrimSpace(c.Endpoint) == "" {
		return errors.New("endpoint is required")
	}
	if strings.TrimSpace(c.AccessKey) == "" {
		return errors.New("access key is required")
	}
	if strings.TrimSpace(c.SecretKey) == "" {
		return errors.New("secret key is required")
	}
	if strings.TrimSpace(c.Region) == "" {
		return errors.New("region is required")
	}
	if strings.TrimSpace(c.Bucket) == "" {
		return errors.New("bucket is required")
	}
	if strings.Contains(c.Endpoint, "://") {
		return fmt.Errorf("endpoint must not include scheme: %q", c.Endpoint)
	}
	return nil
}

// MinioStore keeps each document as one object; the object key is the
// document URI with the scheme stripped, so two processes resolving the
// same URI address the same object.
type MinioStore struct {
	client *minio.Client
	bucket string
	region string
}

func NewMinioStore(cfg MinioConfig) (*MinioStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL,
		Region:    cfg.Region,
		Transport: newTransport(),
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}
	return &MinioStore{client: client, bucket: cfg.Bucket, region: cfg.Region}, nil
}

func NewMinioStoreWithClient(client *minio.Client, bucket string) (*MinioStore, error) {
	if client == nil {
		return nil, errors.New("minio client is required")
	}
	if strings.TrimSpace(bucket) == "" {
		return nil, errors.New("bucket is required")
	}
	return &MinioStore{client: client, bucket: bucket}, nil
}

// EnsureBucket creates the backing bucket when missing.
func (s *MinioStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("bucket exists: %w", err)
	}
	if exists {
		return nil
	}
	return s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region})
}

func (s *MinioStore) Get(ctx context.Context, uri string) (Document, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, objectKey(uri), minio.GetObjectOptions{})
	if err != nil {
		return Document{}, mapMinioErr(err)
	}
	defer func() { _ = obj.Close() }()
	body, err := io.ReadAll(obj)
	if err != nil {
		return Document{}, mapMinioErr(err)
	}
	info, err := obj.Stat()
	if err != nil {
		return Document{}, mapMinioErr(err)
	}
	return Document{URI: uri, ContentType: info.ContentType, Body: body}, nil
}

func (s *MinioStore) Put(ctx context.Context, doc Document) error {
	_, err := s.client.PutObject(
		ctx,
		s.bucket,
		objectKey(doc.URI),
		bytes.NewReader(doc.Body),
		int64(len(doc.Body)),
		minio.PutObjectOptions{ContentType: doc.ContentType},
	)
	if err != nil {
		return fmt.Errorf("put %s: %w", doc.URI, err)
	}
	return nil
}

func (s *MinioStore) Delete(ctx context.Context, uri string) error {
	err := s.client.RemoveObject(ctx, s.bucket, objectKey(uri), minio.RemoveObjectOptions{})
	if err != nil {
		return mapMinioErr(err)
	}
	return nil
}

func (s *MinioStore) ListContainer(ctx context.Context, containerURI string) ([]string, error) {
	prefix := objectKey(containerURI)
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	scheme := uriScheme(containerURI)
	var uris []string
	for info := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix}) {
		if info.Err != nil {
			return nil, fmt.Errorf("list %s: %w", containerURI, info.Err)
		}
		if strings.HasSuffix(info.Key, "/") {
			continue
		}
		uris = append(uris, scheme+"://"+info.Key)
	}
	return uris, nil
}

func objectKey(uri string) string {
	if i := strings.Index(uri, "://"); i >= 0 {
		return uri[i+3:]
	}
	return uri
}

func uriScheme(uri string) string {
	if i := strings.Index(uri, "://"); i >= 0 {
		return uri[:i]
	}
	return "https"
}

func mapMinioErr(err error) error {
	var resp minio.ErrorResponse
	if errors.As(err, &resp) && (resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound) {
		return ErrNotFound
	}
	return err
}

func newTransport() *http.Transport {
	dialer := &net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}
