package storage

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"edu-platform/biz/infrastructure/config"
	"edu-platform/biz/infrastructure/consts"
	"edu-platform/biz/infrastructure/util/log"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

type UploadURL struct {
	URL       string    `json:"url"`
	Key       string    `json:"key"`
	ObjectURL string    `json:"objectUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type IStorage interface {
	PresignPut(ctx context.Context, prefix, filename, contentType string) (*UploadURL, error)
}

type S3Storage struct {
	client *s3.S3
	conf   config.StorageConf
}

// NoopStorage refuses every upload.
type NoopStorage struct{}

func (NoopStorage) PresignPut(context.Context, string, string, string) (*UploadURL, error) {
	return nil, consts.ErrPresign
}

// NewS3Storage falls back to NoopStorage when no bucket is configured.
func NewS3Storage(config *config.Config) (IStorage, error) {
	if !config.Storage.Enabled() {
		log.Info("storage bucket not set, upload urls disabled")
		return NoopStorage{}, nil
	}
	return NewS3StorageFromConf(config.Storage)
}

func NewS3StorageFromConf(conf config.StorageConf) (*S3Storage, error) {
	awsConf := aws.NewConfig().WithRegion(conf.Region)
	if conf.AccessKey != "" {
		awsConf = awsConf.WithCredentials(credentials.NewStaticCredentials(conf.AccessKey, conf.SecretKey, ""))
	}
	if conf.Endpoint != "" {
		awsConf = awsConf.WithEndpoint(conf.Endpoint).WithS3ForcePathStyle(true)
	}
	sess, err := session.NewSession(awsConf)
	if err != nil {
		return nil, fmt.Errorf("storage: create session: %w", err)
	}
	return &S3Storage{client: s3.New(sess), conf: conf}, nil
}

// PresignPut signs a PUT for a fresh object key under prefix.
func (s *S3Storage) PresignPut(ctx context.Context, prefix, filename, contentType string) (*UploadURL, error) {
	key := path.Join(prefix, uuid.NewString()+strings.ToLower(path.Ext(filename)))
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.conf.Bucket),
		Key:    aws.String(key),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	req, _ := s.client.PutObjectRequest(input)
	req.SetContext(ctx)

	expire := time.Duration(s.conf.PresignExpire) * time.Second
	url, err := req.Presign(expire)
	if err != nil {
		log.CtxError(ctx, "storage: presign %s failed: %v", key, err)
		return nil, consts.ErrPresign
	}
	return &UploadURL{
		URL:       url,
		Key:       key,
		ObjectURL: s.objectURL(key),
		ExpiresAt: time.Now().Add(expire),
	}, nil
}

func (s *S3Storage) objectURL(key string) string {
	if s.conf.Endpoint != "" {
		return strings.TrimRight(s.conf.Endpoint, "/") + "/" + s.conf.Bucket + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.conf.Bucket, s.conf.Region, key)
}
