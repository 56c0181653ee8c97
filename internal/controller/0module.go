package controller

import (
	"go.uber.org/fx"

	"gdhotel.dev/backend/internal/controller/meta"
	v1 "gdhotel.dev/backend/internal/controller/v1"
)

func Module() fx.Option {
	return fx.Module("controllers",
		v1.Module(),
		fx.Invoke(meta.RegisterMeta),
	)
}
