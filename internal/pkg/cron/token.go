package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/staff-portal-go/internal/domain/auth"
)

// TokenJobs keeps the refresh token table from growing without bound.
type TokenJobs struct {
	tokenRepo auth.TokenRepository
	retention time.Duration
	now       func() time.Time
}

// NewTokenJobs purges refresh tokens that expired or were revoked more than
// retention ago.
func NewTokenJobs(tokenRepo auth.TokenRepository, retention time.Duration) *TokenJobs {
	return &TokenJobs{tokenRepo: tokenRepo, retention: retention, now: time.Now}
}

func (j *TokenJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("purge_refresh_tokens", interval, j.PurgeRefreshTokens)
}

func (j *TokenJobs) PurgeRefreshTokens(ctx context.Context) error {
	cutoff := j.now().Add(-j.retention)
	deleted, err := j.tokenRepo.DeleteRefreshTokensBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	if deleted > 0 {
		slog.Info("Cron: purged refresh tokens", "deleted", deleted, "cutoff", cutoff)
	}
	return nil
}
