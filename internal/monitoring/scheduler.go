package monitoring

import (
	"time"

	"github.com/isdelr/panel-console/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// DefaultSpec is when the activity log is pruned.
const DefaultSpec = "@daily"

// Scheduler runs the console's housekeeping jobs.
type Scheduler struct {
	eventSvc  services.EventServiceProvider
	retention time.Duration
	cron      *cron.Cron
	now       func() time.Time
}

// NewScheduler creates a scheduler that drops activity-log entries older
// than retentionDays. A non-positive retention disables pruning.
func NewScheduler(eventSvc services.EventServiceProvider, retentionDays int) *Scheduler {
	return &Scheduler{
		eventSvc:  eventSvc,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		cron:      cron.New(),
		now:       time.Now,
	}
}

// Run prunes once, then registers the job and starts the cron loop.
func (s *Scheduler) Run() error {
	return s.RunSpec(DefaultSpec)
}

// RunSpec is Run with a custom cron spec for pruning.
func (s *Scheduler) RunSpec(spec string) error {
	if s.retention <= 0 {
		log.Info().Msg("Event retention disabled; not scheduling pruning")
	} else {
		if _, err := s.cron.AddFunc(spec, s.prune); err != nil {
			return err
		}
		s.prune()
	}
	log.Info().Str("spec", spec).Dur("retention", s.retention).Msg("Starting background scheduler...")
	s.cron.Start()
	return nil
}

// Every adds a housekeeping job run on spec. Jobs may be added before or
// after Run.
func (s *Scheduler) Every(spec, name string, job func()) error {
	_, err := s.cron.AddFunc(spec, func() {
		log.Debug().Str("job", name).Msg("Scheduler: running job")
		job()
	})
	return err
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info().Msg("Stopping background scheduler.")
}

// PruneOnce deletes entries older than the retention window.
func (s *Scheduler) PruneOnce() (int64, error) {
	return s.eventSvc.PruneEvents(s.now().Add(-s.retention))
}

func (s *Scheduler) prune() {
	n, err := s.PruneOnce()
	if err != nil {
		log.Error().Err(err).Msg("Scheduler: failed to prune events")
		return
	}
	if n > 0 {
		log.Info().Int64("removed", n).Msg("Scheduler: pruned old events")
	}
}
