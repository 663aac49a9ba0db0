package jobs

import (
	"context"
	"errors"
	"log/slog"

	"github.com/robfig/cron/v3"

	"fooddelivery/internal/core/application/usecases/commands"
)

type dispatchOrdersHandler interface {
	Handle(ctx context.Context, cmd commands.DispatchOrdersCommand) error
}

// DispatchJob periodically matches ready unassigned orders with available
// couriers. An idle tick (nothing to dispatch) is not logged; a courier who
// self-accepts mid-run simply wins the compare-and-set and the order is
// retried on the next tick.
type DispatchJob struct {
	handler dispatchOrdersHandler
	spec    string
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDispatchJob creates the dispatch job with the given cron spec
// (seconds-resolution, e.g. "*/5 * * * * *").
func NewDispatchJob(handler dispatchOrdersHandler, spec string, logger *slog.Logger) *DispatchJob {
	return &DispatchJob{
		handler: handler,
		spec:    spec,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "dispatch_job"),
	}
}

// Start schedules the job and begins running it.
func (j *DispatchJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx := context.Background()
		cmd := commands.NewDispatchOrdersCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			if !errors.Is(err, commands.ErrNothingToDispatch) {
				j.logger.ErrorContext(ctx, "dispatch run failed", "error", err)
			}
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "dispatch job started", "spec", j.spec)
	return nil
}

// Stop stops the job.
func (j *DispatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "dispatch job stopped")
}
