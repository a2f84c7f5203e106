// internal/media/s3.go
package media

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/google/uuid"

	"github.com/Annany2002/collecta-backend/config"
	"github.com/Annany2002/collecta-backend/internal/domain"
)

// S3Storage stores uploads in an S3 (or S3-compatible) bucket.
type S3Storage struct {
	Client s3iface.S3API
	Bucket string
	Prefix string
}

// NewS3Storage builds an S3 client from cfg. Static credentials are used when set,
// otherwise the SDK's default chain applies.
func NewS3Storage(cfg config.S3Config) (*S3Storage, error) {
	awsCfg := &aws.Config{Region: aws.String(cfg.Region)}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}
	if cfg.AccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}
	return &S3Storage{Client: s3.New(sess), Bucket: cfg.Bucket, Prefix: strings.Trim(cfg.Prefix, "/")}, nil
}

func (s *S3Storage) key(name string) string {
	if s.Prefix == "" {
		return name
	}
	return path.Join(s.Prefix, name)
}

// Save uploads data under a random key and returns the key.
func (s *S3Storage) Save(ctx context.Context, data []byte, ext string) (string, error) {
	key := s.key(uuid.New().String() + "." + ext)
	contentType := mime.TypeByExtension("." + ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		customLog.Warnf("Media: Unable to upload %s to S3 bucket %s: %v", key, s.Bucket, err)
		return "", fmt.Errorf("%w: unable to upload file", domain.ErrStorage)
	}
	return key, nil
}

// Delete removes an object previously returned by Save.
func (s *S3Storage) Delete(ctx context.Context, key string) error {
	if s.Prefix != "" && !strings.HasPrefix(key, s.Prefix+"/") {
		return fmt.Errorf("%w: refusing to delete '%s'", domain.ErrStorage, key)
	}
	_, err := s.Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		customLog.Warnf("Media: Unable to delete %s from S3 bucket %s: %v", key, s.Bucket, err)
		return fmt.Errorf("%w: unable to delete file", domain.ErrStorage)
	}
	return nil
}
