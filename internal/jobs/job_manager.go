package jobs

import (
	"fmt"
	"log/slog"
)

// Schedules holds the cron specs (with seconds) of every job. An empty spec
// disables the job.
type Schedules struct {
	AbandonCarts     string
	RelayConversions string
	GenerateFeed     string
}

// DefaultSchedules abandons carts every ten minutes, relays conversions every
// thirty seconds and regenerates the feed hourly.
var DefaultSchedules = Schedules{
	AbandonCarts:     "0 */10 * * * *",
	RelayConversions: "*/30 * * * * *",
	GenerateFeed:     "0 0 * * * *",
}

type job interface {
	Name() string
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	jobs    []job
	started []job
	logger  *slog.Logger
}

// NewJobManager creates a job manager with the jobs whose schedule is set.
func NewJobManager(
	schedules Schedules,
	abandonHandler CartAbandoner,
	abandonAfter AbandonAfter,
	relayHandler ConversionRelayer,
	relayLimits RelayLimits,
	feedHandler FeedGenerator,
	logger *slog.Logger,
) *JobManager {
	jm := &JobManager{logger: logger.With("component", "JobManager")}
	if schedules.AbandonCarts != "" {
		jm.jobs = append(jm.jobs, NewCartAbandonmentJob(schedules.AbandonCarts, abandonHandler, abandonAfter, logger))
	}
	if schedules.RelayConversions != "" {
		jm.jobs = append(jm.jobs, NewConversionRelayJob(schedules.RelayConversions, relayHandler, relayLimits, logger))
	}
	if schedules.GenerateFeed != "" {
		jm.jobs = append(jm.jobs, NewFeedGenerationJob(schedules.GenerateFeed, feedHandler, logger))
	}
	return jm
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	for _, j := range jm.jobs {
		if err := j.Start(); err != nil {
			// Stop already started jobs if this one fails
			jm.StopAll()
			return fmt.Errorf("failed to start %s job: %w", j.Name(), err)
		}
		jm.started = append(jm.started, j)
	}
	jm.logger.Info("Jobs started", "count", len(jm.started))
	return nil
}

// StopAll stops all started jobs and waits for running executions to finish.
func (jm *JobManager) StopAll() {
	for _, j := range jm.started {
		j.Stop()
	}
	jm.started = nil
}
