package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/reimbursement-backend-go/internal/domain/auth"
)

// SessionJobs keeps the sessions table from growing with dead rows.
type SessionJobs struct {
	sessionRepo auth.SessionRepository
	interval    time.Duration
	now         func() time.Time
}

func NewSessionJobs(sessionRepo auth.SessionRepository, interval time.Duration) *SessionJobs {
	return &SessionJobs{
		sessionRepo: sessionRepo,
		interval:    interval,
		now:         time.Now,
	}
}

func (j *SessionJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("prune_inactive_sessions", j.interval, j.PruneInactiveSessions)
}

// PruneInactiveSessions deletes expired and revoked sessions.
func (j *SessionJobs) PruneInactiveSessions(ctx context.Context) error {
	deleted, err := j.sessionRepo.DeleteInactive(ctx, j.now())
	if err != nil {
		return err
	}
	if deleted > 0 {
		slog.Info("Cron: Pruned inactive sessions", "count", deleted)
	}
	return nil
}
