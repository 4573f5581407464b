//go:build wireinject
// +build wireinject

package main

import (
	"Inkpix/config"
	"Inkpix/dao"
	"Inkpix/document"
	"Inkpix/handler"
	"Inkpix/pkg/blob"
	"Inkpix/pkg/database"
	"Inkpix/pkg/server"
	"Inkpix/service"
	"Inkpix/uploader"

	"github.com/google/wire"
)

func InitServer(cfg *config.Config) *server.AppProvider {
	wire.Build(

		config.ProvideUploadConfig,
		database.NewDB,
		blob.NewStore,
		uploader.Provide,

		dao.ProviderSet,

		document.NewStore,
		wire.Bind(new(document.Commander), new(*document.Store)),

		service.ProviderSet,

		wire.Struct(new(handler.Node), "*"),
		wire.Struct(new(server.Handlers), "*"),
		server.NewGinEngine,
		wire.Struct(new(server.AppProvider), "*"),
	)
	return nil
}
