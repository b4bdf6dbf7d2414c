package jobs

import (
	"fmt"
	"log/slog"

	"campusdelivery/internal/core/application/usecases/commands"
	"campusdelivery/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	assignmentRetryJob *AssignmentRetryJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes handlers as dependencies to wire up the job execution.
func NewJobManager(
	backlogHandler queries.GetPendingDeliveryOrdersQueryHandler,
	assignHandler commands.AssignAgentCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		assignmentRetryJob: NewAssignmentRetryJob(backlogHandler, assignHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.assignmentRetryJob.Start(); err != nil {
		return fmt.Errorf("failed to start assignment retry job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.assignmentRetryJob.Stop()
}
