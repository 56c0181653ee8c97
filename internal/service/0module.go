package service

import (
	"go.uber.org/fx"

	"gdhotel.dev/backend/internal/app/appconfig"
	"gdhotel.dev/backend/internal/repo"
	"gdhotel.dev/backend/internal/storage"
)

func Module() fx.Option {
	return fx.Module("service", fx.Provide(
		func(activityRepo *repo.Activity, roomRepo *repo.Room, store storage.Store, conf *appconfig.Config) *Activity {
			return NewActivity(activityRepo, roomRepo, store, conf)
		},
	))
}
