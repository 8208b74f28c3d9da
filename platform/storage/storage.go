package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"doc_processing_backend/config"
	"doc_processing_backend/pkg/errs"
	"doc_processing_backend/pkg/logging"
	"doc_processing_backend/utils"
)

// Service wraps one object-storage client over the two staging buckets. The
// pending bucket receives fresh uploads; relocation moves objects to the
// processed bucket once extraction has finished.
type Service struct {
	Client   *minio.Client
	Endpoint string
	UseSSL   bool
}

func InitStorageService(cfg *config.Config) (*Service, error) {
	client, err := minio.New(cfg.BucketEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.BucketAccessID, cfg.BucketAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.BucketRegion,
	})
	if err != nil {
		logging.Logger.Error("fail InitStorageService", "error", err)
		return nil, err
	}

	ss := &Service{
		Client:   client,
		Endpoint: cfg.BucketEndpoint,
		UseSSL:   cfg.UseSSL,
	}
	for _, bucket := range []string{cfg.PendingBucket, cfg.ProcessedBucket} {
		if err := ss.ensureBucketExists(bucket, cfg.BucketRegion); err != nil {
			logging.Logger.Error("fail InitStorageService", "bucket", bucket, "error", err)
			return nil, err
		}
	}
	logging.Logger.Info("storage service initialized",
		"endpoint", cfg.BucketEndpoint,
		"pending", cfg.PendingBucket,
		"processed", cfg.ProcessedBucket,
	)
	return ss, nil
}

func (ss *Service) ensureBucketExists(bucket, region string) error {
	ctx := context.Background()
	exists, err := ss.Client.BucketExists(ctx, bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return ss.Client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region})
}

// Put writes the object and returns its canonical URL.
func (ss *Service) Put(ctx context.Context, bucket, key string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := ss.Client.PutObject(ctx, bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", &errs.StorageError{Op: "put", Area: bucket, Key: key, Err: err}
	}
	return ss.ObjectURL(bucket, key), nil
}

func (ss *Service) Exists(ctx context.Context, bucket, key string) (bool, error) {
	_, err := ss.Client.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		return false, &errs.StorageError{Op: "stat", Area: bucket, Key: key, Err: err}
	}
	return true, nil
}

// Copy performs a server-side copy of key from srcBucket into dstBucket and
// returns the destination URL.
func (ss *Service) Copy(ctx context.Context, srcBucket, dstBucket, key string) (string, error) {
	_, err := ss.Client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: dstBucket, Object: key},
		minio.CopySrcOptions{Bucket: srcBucket, Object: key},
	)
	if err != nil {
		return "", &errs.StorageError{Op: "copy", Area: dstBucket, Key: key, Err: err}
	}
	return ss.ObjectURL(dstBucket, key), nil
}

func (ss *Service) Delete(ctx context.Context, bucket, key string) error {
	if err := ss.Client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return &errs.StorageError{Op: "delete", Area: bucket, Key: key, Err: err}
	}
	return nil
}

// PresignedGet mints a fresh time-limited read URL for the object. Tokens
// are never cached; every read gets its own.
func (ss *Service) PresignedGet(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	if expiry <= 0 {
		return "", &errs.StorageError{Op: "sign", Area: bucket, Key: key, Err: fmt.Errorf("expiry must be positive, got %s", expiry)}
	}
	signedURL, err := ss.Client.PresignedGetObject(ctx, bucket, key, expiry, nil)
	if err != nil {
		logging.Logger.Error("fail PresignedGet", "bucket", bucket, "key", key, "error", err)
		return "", &errs.StorageError{Op: "sign", Area: bucket, Key: key, Err: err}
	}
	return signedURL.String(), nil
}

func (ss *Service) ObjectURL(bucket, key string) string {
	return utils.ObjectURL(ss.Endpoint, ss.UseSSL, bucket, key)
}
