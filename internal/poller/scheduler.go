package poller

import (
	"context"
	"sync"
	"time"
	"zoodash/internal/poller/interfaces"
	"zoodash/internal/providers"
	"zoodash/internal/session"
	"zoodash/internal/snapshot"
	"zoodash/internal/structures"

	"github.com/roylee0704/gron"
)

// Scheduler drives the poll cadences: alerts on their own interval,
// behavior resources on theirs, and snapshot persistence on a third.
// Nothing is polled until the backend session is authenticated; historical
// resources are handled inside HistoryResource and not re-polled here.
type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	metrics     providers.MetricsProviderInterface
	resources   *Resources
	store       session.StoreInterface
	fileManager *snapshot.FileManager
	cron        *gron.Cron
	opsMu       sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()

	s.cron.AddFunc(gron.Every(s.config.Polling.AlertsInterval), func() {
		if s.store.State() != session.StateAuthenticated {
			return
		}
		s.resources.Alerts.Load(context.Background())
	})

	s.cron.AddFunc(gron.Every(s.config.Polling.BehaviorInterval), func() {
		if s.store.State() != session.StateAuthenticated {
			return
		}
		ctx := context.Background()
		s.resources.KPI.Load(ctx)
		if s.resources.SelectedAnimal() == "" {
			return
		}
		s.resources.Current.Load(ctx)
		s.resources.Timeline.Load(ctx)
		s.resources.History.Load(ctx)
	})

	s.cron.AddFunc(gron.Every(s.config.Persistence.SaveInterval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		start := time.Now()
		err := s.fileManager.SaveToFile(s.config.Persistence.FilePath)
		if err != nil {
			s.logger.Errorf(providers.TypeApp, "Error while persisting snapshot: %s", err)
			return
		}
		s.metrics.ObservePersistenceDuration(time.Since(start))
		s.logger.Debugf(providers.TypeApp, "Persisted snapshot to %s", s.config.Persistence.FilePath)
	})

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	return s.fileManager.LoadFromFile(s.config.Persistence.FilePath)
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Persisting snapshot to file...")
	start := time.Now()
	err := s.fileManager.SaveToFile(s.config.Persistence.FilePath)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting snapshot: %s", err)
		return err
	}
	s.metrics.ObservePersistenceDuration(time.Since(start))
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, resources *Resources, store session.StoreInterface, fileManager *snapshot.FileManager) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		metrics:     metrics,
		resources:   resources,
		store:       store,
		fileManager: fileManager,
	}
}
