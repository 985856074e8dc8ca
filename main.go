package main

import (
	"api/internal/cache"
	"api/internal/configuration"
	"api/internal/core"
	"api/internal/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	zap.ReplaceGlobals(zap.Must(zap.NewProduction()))

	config := configuration.Read()
	core.NewLogger(config.App.LogLevel)

	db := database.InitDB(config.Database)
	database.Migrate(db)

	c := cache.New(config.Cache)

	appIdentity := uuid.New().String()

	if c != nil {
		go c.StartIdentityTicker(appIdentity)
		zap.L().Info("Cache identity ticker started")
	}

	core.StartHTTPServer(config, db, c)
}
