package service

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewUploadService,
	wire.Bind(new(IUploadService), new(*UploadService)),

	NewIngestService,
	wire.Bind(new(IIngestService), new(*IngestService)),

	NewInsertService,
	wire.Bind(new(IInsertService), new(*InsertService)),

	NewReconcileService,
	wire.Bind(new(IReconcileService), new(*ReconcileService)),
)
