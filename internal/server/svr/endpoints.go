package svr

import (
	"github.com/gofiber/fiber/v2"

	"gdhotel.dev/backend/internal/app/appconfig"
	"gdhotel.dev/backend/internal/pkg/middlewares"
)

// V1 holds the authenticated dashboard endpoints: every route registered on
// it runs behind owner resolution.
type V1 struct {
	fiber.Router
}

// Meta holds unauthenticated operational endpoints.
type Meta struct {
	fiber.Router
}

func CreateEndpointGroups(app *fiber.App, conf *appconfig.Config) (*V1, *Meta) {
	v1 := app.Group("/api/v1", middlewares.Auth(conf))
	meta := app.Group("/api/_")

	return &V1{Router: v1}, &Meta{Router: meta}
}
