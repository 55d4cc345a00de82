package persistence

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"slbstore/internal/persistence/interfaces"
	"slbstore/internal/providers"
	"slbstore/internal/services"
	"slbstore/internal/structures"
)

// Scheduler periodically re-persists the full store state. Every mutation
// already saves synchronously; the periodic pass heals a failed save on the
// next tick instead of waiting for the next mutation. Disabled when
// persistence.saveInterval is zero.
type Scheduler struct {
	conf   *structures.Config
	logger providers.Logger
	store  services.DataStoreInterface
	cron   *cron.Cron
}

func (s *Scheduler) Init() {
	interval := s.conf.Persistence.SaveInterval
	if interval <= 0 {
		s.logger.Infof(providers.TypePersist, "Periodic resync disabled")
		return
	}

	s.cron = cron.New()
	_, err := s.cron.AddFunc(fmt.Sprintf("@every %s", interval), func() {
		if err := s.store.Persist(); err != nil {
			s.logger.Errorf(providers.TypePersist, "Resync persist failed: %s", err)
			return
		}
		s.logger.Debugf(providers.TypePersist, "Resynced persisted image")
	})
	if err != nil {
		s.logger.Errorf(providers.TypePersist, "Could not schedule resync: %s", err)
		s.cron = nil
		return
	}
	s.cron.Start()
	s.logger.Infof(providers.TypePersist, "Resyncing persisted image every %s", interval)
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func NewScheduler(conf *structures.Config, logger providers.Logger, store services.DataStoreInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		conf:   conf,
		logger: logger,
		store:  store,
	}
}
