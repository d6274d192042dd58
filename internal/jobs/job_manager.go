package jobs

import (
	"fmt"
	"log/slog"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	communicationRelayJob *CommunicationRelayJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes the handlers and publisher as dependencies to wire up job execution.
func NewJobManager(
	pendingHandler queries.GetOrdersPendingNotificationQueryHandler,
	recordHandler commands.RecordCommunicationEventCommandHandler,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		communicationRelayJob: NewCommunicationRelayJob(pendingHandler, recordHandler, publisher, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.communicationRelayJob.Start(); err != nil {
		return fmt.Errorf("failed to start communication relay job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.communicationRelayJob.Stop()
}
