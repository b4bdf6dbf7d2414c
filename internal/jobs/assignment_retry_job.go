package jobs

import (
	"context"
	"errors"
	"log/slog"

	"campusdelivery/internal/core/application/usecases/commands"
	"campusdelivery/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// AssignmentRetryJob re-attempts delivery assignment for queued orders.
//
// Orders land in the queue when payment confirms while every agent is busy or
// off duty. Nothing else would pick them up again, so this job sweeps the
// backlog periodically and replays the assignment attempt for each order,
// oldest first. An agent who frees up between sweeps gets the longest-waiting
// order.
type AssignmentRetryJob struct {
	backlogHandler queries.GetPendingDeliveryOrdersQueryHandler
	assignHandler  commands.AssignAgentCommandHandler
	cron           *cron.Cron
	logger         *slog.Logger
}

// NewAssignmentRetryJob creates a new job for retrying delivery assignments.
func NewAssignmentRetryJob(
	backlogHandler queries.GetPendingDeliveryOrdersQueryHandler,
	assignHandler commands.AssignAgentCommandHandler,
	logger *slog.Logger,
) *AssignmentRetryJob {
	return &AssignmentRetryJob{
		backlogHandler: backlogHandler,
		assignHandler:  assignHandler,
		cron:           cron.New(cron.WithSeconds()),
		logger:         logger.With("component", "assignment_retry_job"),
	}
}

// Start begins the retry job, sweeping the backlog every five seconds.
func (j *AssignmentRetryJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * * *", j.sweep)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Assignment retry job started (running every 5 seconds)")
	return nil
}

// Stop stops the retry job.
func (j *AssignmentRetryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Assignment retry job stopped")
}

func (j *AssignmentRetryJob) sweep() {
	ctx := context.Background()

	backlog, err := j.backlogHandler.Handle(ctx, queries.NewGetPendingDeliveryOrdersQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Assignment retry job failed to load backlog", "error", err)
		return
	}

	for _, queued := range backlog {
		cmd, cmdErr := commands.NewAssignAgentCommand(queued.ID)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Assignment retry job skipped order",
				"order", queued.Number, "error", cmdErr)
			continue
		}

		if assignErr := j.assignHandler.Handle(ctx, cmd); assignErr != nil {
			// A fully busy pool is the expected steady state, not an error.
			if errors.Is(assignErr, commands.ErrNoEligibleAgents) {
				return
			}
			j.logger.ErrorContext(ctx, "Assignment retry failed",
				"order", queued.Number, "error", assignErr)
		}
	}
}
