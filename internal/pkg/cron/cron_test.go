package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/staff-portal-go/internal/domain/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTokenRepo struct {
	auth.TokenRepository
	cutoff  time.Time
	deleted int64
	err     error
}

func (f *fakeTokenRepo) DeleteRefreshTokensBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return f.deleted, f.err
}

func TestScheduler_RunsJobsUntilStopped(t *testing.T) {
	var calls atomic.Int32
	s := NewScheduler()
	s.AddJob("count", 10*time.Millisecond, func(ctx context.Context) error {
		calls.Add(1)
		return nil
	})

	s.Start(context.Background())
	s.Start(context.Background())
	require.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	s.Stop()

	stopped := calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, calls.Load())

	s.Stop()
}

func TestScheduler_RunOnceContinuesAfterFailure(t *testing.T) {
	var ran []string
	s := NewScheduler()
	s.AddJob("fails", time.Hour, func(ctx context.Context) error {
		ran = append(ran, "fails")
		return errors.New("boom")
	})
	s.AddJob("works", time.Hour, func(ctx context.Context) error {
		ran = append(ran, "works")
		return nil
	})

	s.RunOnce(context.Background())
	assert.Equal(t, []string{"fails", "works"}, ran)
}

func TestPurgeRefreshTokens(t *testing.T) {
	now := time.Date(2024, 3, 11, 3, 0, 0, 0, time.UTC)
	repo := &fakeTokenRepo{deleted: 4}
	jobs := NewTokenJobs(repo, 24*time.Hour)
	jobs.now = func() time.Time { return now }

	require.NoError(t, jobs.PurgeRefreshTokens(context.Background()))
	assert.Equal(t, now.Add(-24*time.Hour), repo.cutoff)

	repo.err = errors.New("db down")
	assert.Error(t, jobs.PurgeRefreshTokens(context.Background()))
}
