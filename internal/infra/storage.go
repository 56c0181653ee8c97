package infra

import (
	"context"

	"github.com/pkg/errors"

	"gdhotel.dev/backend/internal/app/appconfig"
	"gdhotel.dev/backend/internal/storage"
)

func ArtifactStore(conf *appconfig.Config) (storage.Store, error) {
	switch conf.StorageBackend {
	case "local":
		return storage.NewLocal(conf.UploadDir)
	case "s3":
		return storage.NewS3(context.Background(), conf)
	default:
		return nil, errors.Errorf("unknown storage backend %q", conf.StorageBackend)
	}
}
