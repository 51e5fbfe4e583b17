package objecthost

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/service"
	"github.com/jvqze/fe2.jaylen.nyc/pkg/apperror"
	"github.com/jvqze/fe2.jaylen.nyc/pkg/config"
)

// MinIOHost はセルフホスト型のオブジェクトストレージへ公開します
// 外部CDNを使わない構成向けの代替実装で、公開URLは
// PublicBaseURLとオブジェクトキーから導出します
type MinIOHost struct {
	client        *minio.Client
	bucketName    string
	publicBaseURL string
}

// NewMinIOHost は新しいMinIOHostを作成します
func NewMinIOHost(cfg config.MinIOConfig) (*MinIOHost, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &MinIOHost{
		client:        client,
		bucketName:    cfg.BucketName,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
	}, nil
}

// EnsureBucket はバケットを冪等に作成します（起動時に一度呼びます）
func (h *MinIOHost) EnsureBucket(ctx context.Context) error {
	exists, err := h.client.BucketExists(ctx, h.bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := h.client.MakeBucket(ctx, h.bucketName, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", h.bucketName, err)
	}
	return nil
}

// Upload はオブジェクトをアップロードし、公開URLを返します
func (h *MinIOHost) Upload(ctx context.Context, r io.Reader, name string) (*service.UploadResult, error) {
	// サイズ不明のストリームは-1でマルチパート転送に委ねる
	info, err := h.client.PutObject(ctx, h.bucketName, name, r, -1, minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		return nil, apperror.NewUpstreamError("failed to store object", err)
	}

	return &service.UploadResult{
		DirectURL: fmt.Sprintf("%s/%s/%s", h.publicBaseURL, h.bucketName, name),
		Size:      info.Size,
	}, nil
}

// インターフェースの実装を保証
var _ service.ObjectHost = (*MinIOHost)(nil)
