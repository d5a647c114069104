package persistence

import (
	"context"
	"sidebard/internal/persistence/interfaces"
	"sidebard/internal/providers"
	"sidebard/internal/services"
	"sidebard/internal/structures"
	"sync"
	"time"

	"github.com/roylee0704/gron"
)

type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	statistics  services.StatisticServiceInterface
	fileManager *FileManager
	metrics     providers.MetricsProviderInterface
	cron        *gron.Cron
	opsMu       sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()
	interval := s.config.Persistence.SaveInterval
	refreshInterval := s.config.Statistics.RefreshInterval

	s.cron.AddFunc(gron.Every(interval), func() {
		if err := s.Persist(); err != nil {
			return
		}
		s.logger.Debugf(providers.TypeApp, "Persisted chats to file %s", s.config.Persistence.FilePath)
	})

	if refreshInterval > 0 {
		s.cron.AddFunc(gron.Every(refreshInterval), func() {
			s.opsMu.Lock()
			defer s.opsMu.Unlock()

			ctx, cancel := context.WithTimeout(context.Background(), refreshInterval)
			defer cancel()
			if err := s.statistics.Revalidate(ctx); err != nil {
				s.logger.Warnf(providers.TypeApp, "Statistics refresh failed: %s", err)
			}
		})
	}

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()
	return s.fileManager.LoadFromFile(s.config.Persistence.FilePath)
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	start := time.Now()
	err := s.fileManager.SaveToFile(s.config.Persistence.FilePath)
	s.metrics.ObservePersistenceDuration(time.Since(start))
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
		return err
	}
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, statistics services.StatisticServiceInterface, fileManager *FileManager, metrics providers.MetricsProviderInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		statistics:  statistics,
		fileManager: fileManager,
		metrics:     metrics,
	}
}
