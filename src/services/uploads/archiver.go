package uploads

import (
	"Backend-Results/src/config"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Archiver เก็บไฟล์คะแนนต้นฉบับที่อัปโหลดไว้ตรวจสอบย้อนหลัง
type Archiver interface {
	Archive(ctx context.Context, filename string, data []byte) (string, error)
}

// StorageKey results/<yyyy>/<mm>/<dd>/<uuid>-<filename>
func StorageKey(now time.Time, filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" {
		base = "upload"
	}
	return fmt.Sprintf("results/%d/%02d/%02d/%s-%s", now.Year(), now.Month(), now.Day(), uuid.NewString(), base)
}

type LocalArchiver struct {
	dir string
	now func() time.Time
}

func NewLocalArchiver(dir string) *LocalArchiver {
	return &LocalArchiver{dir: dir, now: time.Now}
}

func (a *LocalArchiver) Archive(ctx context.Context, filename string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(a.dir, filepath.FromSlash(StorageKey(a.now(), filename)))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return path, nil
}

type S3Archiver struct {
	client *s3.Client
	bucket string
	now    func() time.Time
}

// NewS3Archiver ใช้ static credentials ถ้ากำหนดไว้ ไม่งั้นใช้ default chain ของ AWS
// S3Endpoint ใช้กับ MinIO หรือ S3-compatible storage
func NewS3Archiver(ctx context.Context, cfg config.UploadConfig) (*S3Archiver, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.S3Region)}
	if cfg.S3AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Archiver{client: client, bucket: cfg.S3Bucket, now: time.Now}, nil
}

func (a *S3Archiver) Archive(ctx context.Context, filename string, data []byte) (string, error) {
	key := StorageKey(a.now(), filename)
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return fmt.Sprintf("s3://%s/%s", a.bucket, key), nil
}

// NewArchiver เลือก S3 เมื่อกำหนด UPLOAD_S3_BUCKET ไม่งั้นเขียนลง UPLOAD_DIR
func NewArchiver(ctx context.Context, cfg config.UploadConfig) (Archiver, error) {
	if cfg.UseS3() {
		return NewS3Archiver(ctx, cfg)
	}
	return NewLocalArchiver(cfg.Dir), nil
}
