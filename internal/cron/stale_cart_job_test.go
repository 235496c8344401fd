package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avinashrao/platterly-backend/pkg/logger"
	"github.com/avinashrao/platterly-backend/pkg/metrics"
)

type fakeCartDeleter struct {
	purged   int64
	err      error
	gotBefore time.Time
}

func (f *fakeCartDeleter) DeleteStaleNew(_ context.Context, before time.Time) (int64, error) {
	f.gotBefore = before
	if f.err != nil {
		return 0, f.err
	}
	return f.purged, nil
}

func TestStaleCartJobPurgesBeforeCutoff(t *testing.T) {
	now := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	deleter := &fakeCartDeleter{purged: 7}
	cronMetrics := metrics.NewCronJobMetrics(prometheus.NewRegistry())

	job, err := NewStaleCartJob(StaleCartJobParams{
		Logger:     logger.New(logger.Options{ServiceName: "test"}),
		Carts:      deleter,
		Metrics:    cronMetrics,
		StaleAfter: 72 * time.Hour,
		Now:        func() time.Time { return now },
	})
	require.NoError(t, err)

	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, now.Add(-72*time.Hour), deleter.gotBefore)
}

func TestStaleCartJobPropagatesError(t *testing.T) {
	deleter := &fakeCartDeleter{err: errors.New("db down")}
	job, err := NewStaleCartJob(StaleCartJobParams{
		Logger:     logger.New(logger.Options{ServiceName: "test"}),
		Carts:      deleter,
		StaleAfter: time.Hour,
	})
	require.NoError(t, err)

	err = job.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}

func TestNewStaleCartJobValidation(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test"})

	_, err := NewStaleCartJob(StaleCartJobParams{Carts: &fakeCartDeleter{}, StaleAfter: time.Hour})
	require.Error(t, err)

	_, err = NewStaleCartJob(StaleCartJobParams{Logger: logg, StaleAfter: time.Hour})
	require.Error(t, err)

	_, err = NewStaleCartJob(StaleCartJobParams{Logger: logg, Carts: &fakeCartDeleter{}})
	require.Error(t, err)
}
