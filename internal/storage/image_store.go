package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"giftmarketBack/internal/config"
)

// ImageStore persists uploaded listing images. The URL returned by Save is
// what gets stored on the listing and handed back to Remove on delete.
type ImageStore interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
	Remove(ctx context.Context, imageURL string) error
}

// NewImageStore picks the backend from config: local disk by default, an
// S3-compatible object storage when configured.
func NewImageStore(cfg config.StorageConfig) (ImageStore, error) {
	switch cfg.Provider {
	case "", "local":
		return NewLocalImageStore(cfg.UploadDir)
	case "s3":
		return NewS3ImageStore(cfg.S3)
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", cfg.Provider)
	}
}

type LocalImageStore struct {
	UploadDir string
}

func NewLocalImageStore(dir string) (*LocalImageStore, error) {
	if dir == "" {
		dir = "./uploads"
	}
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalImageStore{UploadDir: dir}, nil
}

func (s *LocalImageStore) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	name = filepath.Base(name)
	path := filepath.Join(s.UploadDir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		os.Remove(path) // do not leave a half-written image behind
		return "", err
	}
	if err := dst.Sync(); err != nil {
		dst.Close()
		os.Remove(path)
		return "", err
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return "", err
	}

	return "/uploads/" + name, nil
}

// Remove deletes the referenced file. A file that is already gone is not an
// error.
func (s *LocalImageStore) Remove(ctx context.Context, imageURL string) error {
	name := strings.TrimPrefix(imageURL, "/uploads/")
	err := os.Remove(filepath.Join(s.UploadDir, filepath.Base(name)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// S3ImageStore uploads listing images to an S3-compatible object storage with
// public-read access.
type S3ImageStore struct {
	client *s3.S3
	bucket string
	host   string
}

func NewS3ImageStore(cfg config.S3Config) (*S3ImageStore, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 storage requires a bucket")
	}

	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String(cfg.Region),
		Endpoint: aws.String(cfg.Endpoint),
		Credentials: credentials.NewStaticCredentials(
			cfg.AccessKey, cfg.SecretKey, "",
		),
	})
	if err != nil {
		return nil, err
	}

	host := strings.TrimPrefix(cfg.Endpoint, "https://")
	host = strings.TrimPrefix(host, "http://")

	return &S3ImageStore{client: s3.New(sess), bucket: cfg.Bucket, host: host}, nil
}

func (s *S3ImageStore) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := "uploads/" + filepath.Base(name)
	_, err = s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("unable to upload file to S3: %v", err)
	}

	return fmt.Sprintf("https://%s.%s/%s", s.bucket, s.host, key), nil
}

func (s *S3ImageStore) Remove(ctx context.Context, imageURL string) error {
	prefix := fmt.Sprintf("https://%s.%s/", s.bucket, s.host)
	if !strings.HasPrefix(imageURL, prefix) {
		return nil
	}

	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(strings.TrimPrefix(imageURL, prefix)),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == s3.ErrCodeNoSuchKey {
			return nil
		}
		return err
	}
	return nil
}
