package main

import (
	"artwalk-api/core/logger"
	"artwalk-api/core/server"

	_ "artwalk-api/docs" // Swagger docs
)

// @title ArtWalk API
// @version 1.0
// @description Community events over public art locations: events, invites, join requests, chat and favorites.

// @contact.name API Support
// @contact.email support@artwalk.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:7070
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
