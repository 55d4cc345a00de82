package internal

import (
	"slbstore/internal/persistence/interfaces"
	"slbstore/internal/providers"
	"slbstore/internal/services"
	"slbstore/internal/structures"
)

// App bundles the assembled store with its supporting pieces. The embedding
// bot process builds one via di.InitApp, uses Store for the whole run and
// calls Close on shutdown.
type App struct {
	Store services.DataStoreInterface

	scheduler interfaces.SchedulerInterface
	persister interfaces.PersisterInterface
	conf      *structures.Config
	logger    providers.Logger
}

func NewApp(store services.DataStoreInterface, scheduler interfaces.SchedulerInterface, persister interfaces.PersisterInterface, conf *structures.Config, logger providers.Logger) (*App, error) {
	logger.Infof(providers.TypeApp, "Starting %s", conf.AppName)
	logger.Infof(providers.TypeApp, "%d channel subscriptions restored", store.SubscriptionCount())

	scheduler.Init()

	return &App{
		Store:     store,
		scheduler: scheduler,
		persister: persister,
		conf:      conf,
		logger:    logger,
	}, nil
}

// Close stops the resync scheduler, writes a final image and releases the
// storage backend and log file.
func (a *App) Close() error {
	a.scheduler.Stop()

	err := a.Store.Persist()
	if cerr := a.persister.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		a.logger.Errorf(providers.TypeApp, "Shutdown error: %s", err)
	} else {
		a.logger.Infof(providers.TypeApp, "gracefully stopped")
	}
	a.logger.Close()
	return err
}
