//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"slbstore/internal"
	"slbstore/internal/persistence"
	"slbstore/internal/providers"
	"slbstore/internal/services"
	"slbstore/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,

		persistence.NewZstdCompressor,
		persistence.NewPersister,
		services.NewDataStore,
		persistence.NewScheduler,
		internal.NewApp,
	)

	return nil, nil
}
