package blobstore

import (
	"context"
	"fmt"

	"github.com/ghuser/stockroom/pkg/config"
)

// FromConfig opens the backend selected by cfg.BlobBackend.
func FromConfig(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.BlobBackend {
	case config.BlobBackendFilesystem:
		fs, err := NewFilesystemStore(cfg.UploadDir)
		if err != nil {
			return nil, err
		}
		return fs, nil
	case config.BlobBackendMinio:
		ms, err := NewMinioStore(ctx, MinioConfig{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioRootUser,
			SecretKey: cfg.MinioRootPassword,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		})
		if err != nil {
			return nil, err
		}
		return ms, nil
	default:
		return nil, fmt.Errorf("unknown blob backend %q", cfg.BlobBackend)
	}
}
