package jobs

import (
	"context"
	"log/slog"

	"hyperlocal/internal/core/application/usecases/commands"
	"hyperlocal/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

// AutoAssignJob periodically sweeps the accepted backlog and dispatches
// available couriers to unassigned orders. The sweep runs under a system
// admin identity since no human caller triggers it.
type AutoAssignJob struct {
	handler  commands.AutoAssignCommandHandler
	schedule string
	system   kernel.Actor
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewAutoAssignJob creates the dispatch sweep job. The schedule is a
// six-field cron expression with seconds resolution.
func NewAutoAssignJob(
	handler commands.AutoAssignCommandHandler,
	schedule string,
	logger *slog.Logger,
) (*AutoAssignJob, error) {
	system, err := kernel.NewActor(kernel.RoleAdmin, kernel.NewUUID(), "dispatch-sweep")
	if err != nil {
		return nil, err
	}

	return &AutoAssignJob{
		handler:  handler,
		schedule: schedule,
		system:   system,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "auto_assign_job"),
	}, nil
}

// Start schedules the sweep. An empty backlog or an empty courier pool is
// a normal outcome and is not logged as an error.
func (j *AutoAssignJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewAutoAssignCommand(j.system)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Auto-assign sweep could not be constructed", "error", cmdErr)
			return
		}

		result, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Auto-assign sweep failed", "error", handleErr)
			return
		}

		if result.Assigned > 0 || len(result.Unplaced) > 0 {
			j.logger.InfoContext(ctx, "Auto-assign sweep completed",
				"assigned", result.Assigned,
				"unplaced", len(result.Unplaced),
			)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Auto-assign job started", "schedule", j.schedule)
	return nil
}

// Stop stops the sweep job.
func (j *AutoAssignJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Auto-assign job stopped")
}
