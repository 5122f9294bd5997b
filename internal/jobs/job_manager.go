package jobs

import "fmt"

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	staleCourierJob *StaleCourierJob
	rebroadcastJob  *RebroadcastJob
}

// NewJobManager creates a job manager over the given jobs.
func NewJobManager(staleCourierJob *StaleCourierJob, rebroadcastJob *RebroadcastJob) *JobManager {
	return &JobManager{
		staleCourierJob: staleCourierJob,
		rebroadcastJob:  rebroadcastJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.staleCourierJob.Start(); err != nil {
		return fmt.Errorf("failed to start stale courier job: %w", err)
	}

	if err := jm.rebroadcastJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.staleCourierJob.Stop()
		return fmt.Errorf("failed to start rebroadcast job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.rebroadcastJob.Stop()
	jm.staleCourierJob.Stop()
}
