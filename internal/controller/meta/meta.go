package meta

import (
	"github.com/gofiber/fiber/v2"

	"gdhotel.dev/backend/internal/pkg/bininfo"
	"gdhotel.dev/backend/internal/server/svr"
)

func RegisterMeta(meta *svr.Meta) {
	meta.Get("/health", Health)
	meta.Get("/bininfo", BinInfo)
}

func Health(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"status": "ok",
	})
}

func BinInfo(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"version":    bininfo.Version,
		"build_time": bininfo.BuildTime,
	})
}
