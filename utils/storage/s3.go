package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/Hapidzfadli/arsip-desa/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	aws_config "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Store menyimpan berkas lampiran di bucket S3. Implementasi BlobStore
// untuk services.
type S3Store struct {
	client  *s3.Client
	presign *s3.PresignClient
	cfg     config.StorageConfig
}

func NewS3Store(ctx context.Context) (*S3Store, error) {
	storageCfg := config.LoadStorageConfig()

	opts := []func(*aws_config.LoadOptions) error{
		aws_config.WithRegion(storageCfg.Region),
	}

	// LoadDefaultConfig memakai Default Credential Provider Chain
	// (ENV di lokal, IAM Role di produksi).
	cfg, err := aws_config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config for S3: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	log.Println("✅ AWS S3 client initialized. Bucket:", storageCfg.Bucket)

	return &S3Store{
		client:  client,
		presign: s3.NewPresignClient(client),
		cfg:     storageCfg,
	}, nil
}

func (st *S3Store) key(k string) string {
	if st.cfg.Prefix == "" {
		return k
	}
	return st.cfg.Prefix + "/" + k
}

// Store mengunggah satu berkas memakai uploader manager.
func (st *S3Store) Store(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	uploader := manager.NewUploader(st.client)

	input := &s3.PutObjectInput{
		Bucket:      aws.String(st.cfg.Bucket),
		Key:         aws.String(st.key(key)),
		Body:        body,
		ContentType: aws.String(contentType),
	}

	if _, err := uploader.Upload(ctx, input); err != nil {
		return fmt.Errorf("upload file to S3: %w", err)
	}
	return nil
}

// Open mengalirkan isi objek.
func (st *S3Store) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := st.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(st.cfg.Bucket),
		Key:    aws.String(st.key(key)),
	})
	if err != nil {
		return nil, fmt.Errorf("get S3 object %s: %w", key, err)
	}
	return out.Body, nil
}

// Delete menghapus objek dari S3.
func (st *S3Store) Delete(ctx context.Context, key string) error {
	_, err := st.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(st.cfg.Bucket),
		Key:    aws.String(st.key(key)),
	})
	if err != nil {
		return fmt.Errorf("delete S3 object %s: %w", key, err)
	}
	return nil
}

// Exists memeriksa keberadaan objek lewat HeadObject.
func (st *S3Store) Exists(ctx context.Context, key string) (bool, error) {
	_, err := st.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(st.cfg.Bucket),
		Key:    aws.String(st.key(key)),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("head S3 object %s: %w", key, err)
	}
	return true, nil
}

// PresignedURL membuat URL berbatas waktu untuk mengakses berkas.
func (st *S3Store) PresignedURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	req, err := st.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(st.cfg.Bucket),
		Key:    aws.String(st.key(key)),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", fmt.Errorf("presign URL: %w", err)
	}
	return req.URL, nil
}
