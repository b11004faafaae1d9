package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// ScheduledJob runs one function on a cron spec. Executions never overlap.
type ScheduledJob struct {
	name   string
	spec   string
	run    func(ctx context.Context)
	cron   *cron.Cron
	logger *slog.Logger
}

func newScheduledJob(name, spec string, run func(ctx context.Context), logger *slog.Logger) *ScheduledJob {
	return &ScheduledJob{
		name: name,
		spec: spec,
		run:  run,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger)),
		),
		logger: logger,
	}
}

func (j *ScheduledJob) Name() string {
	return j.name
}

func (j *ScheduledJob) Start() error {
	if _, err := j.cron.AddFunc(j.spec, func() { j.run(context.Background()) }); err != nil {
		return err
	}
	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Job started", "schedule", j.spec)
	return nil
}

// Stop waits for a running execution to return.
func (j *ScheduledJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Job stopped")
}
