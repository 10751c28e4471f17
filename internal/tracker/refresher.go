package tracker

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// Refresher re-primes the catalog cache on a fixed interval so the first
// user interaction after a TTL expiry does not pay the upstream latency.
type Refresher struct {
	scheduler gocron.Scheduler
	service   *Service
	log       *zap.Logger
}

// NewRefresher creates a refresher running every interval.
func NewRefresher(service *Service, interval time.Duration, log *zap.Logger) (*Refresher, error) {
	if log == nil {
		log = zap.NewNop()
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	r := &Refresher{
		scheduler: scheduler,
		service:   service,
		log:       log,
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(r.refresh),
		gocron.WithName("catalog-refresh"),
	)
	if err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Refresher) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := r.service.RefreshCatalog(ctx); err != nil {
		r.log.Warn("scheduled catalog refresh failed", zap.Error(err))
		return
	}
	r.log.Debug("catalog refreshed")
}

// Start begins the refresh schedule.
func (r *Refresher) Start() {
	r.scheduler.Start()
}

// Stop shuts the scheduler down.
func (r *Refresher) Stop() error {
	return r.scheduler.Shutdown()
}
