package main

import (
	"gdhotel.dev/backend/cmd/app"
)

// @title          GD Hotel Dashboard API
// @version        1.0.0
// @description    Backend for the GD hotel dashboard. Serves owner-scoped activity
// @description    management with logo/image/video attachments.
// @BasePath       /api
func main() {
	app.Run()
}
