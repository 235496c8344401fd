package cron

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avinashrao/platterly-backend/pkg/logger"
)

type stubLock struct {
	acquired bool
	releases int
}

func (l *stubLock) Acquire(context.Context) (bool, error) {
	return l.acquired, nil
}

func (l *stubLock) Release(context.Context) error {
	l.releases++
	return nil
}

type stubJob struct {
	name string
	runs int
	err  error
}

func (j *stubJob) Name() string { return j.name }

func (j *stubJob) Run(context.Context) error {
	j.runs++
	return j.err
}

func newCronService(t *testing.T, lock Lock, jobs ...Job) *Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Logger:   logger.New(logger.Options{ServiceName: "test"}),
		Registry: NewRegistry(jobs...),
		Lock:     lock,
	})
	require.NoError(t, err)
	return svc
}

func TestRunOnceExecutesJobsInOrder(t *testing.T) {
	lock := &stubLock{acquired: true}
	first := &stubJob{name: "first"}
	second := &stubJob{name: "second"}
	svc := newCronService(t, lock, first, second)

	require.NoError(t, svc.RunOnce(context.Background()))
	assert.Equal(t, 1, first.runs)
	assert.Equal(t, 1, second.runs)
	assert.Equal(t, 1, lock.releases)
}

func TestRunOnceSkipsWhenLockHeldElsewhere(t *testing.T) {
	lock := &stubLock{acquired: false}
	job := &stubJob{name: "noop"}
	svc := newCronService(t, lock, job)

	require.NoError(t, svc.RunOnce(context.Background()))
	assert.Zero(t, job.runs)
	assert.Zero(t, lock.releases)
}

func TestRunOnceAggregatesJobFailures(t *testing.T) {
	lock := &stubLock{acquired: true}
	failing := &stubJob{name: "broken", err: errors.New("boom")}
	healthy := &stubJob{name: "healthy"}
	svc := newCronService(t, lock, failing, healthy)

	err := svc.RunOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
	// A failing job must not stop the jobs after it.
	assert.Equal(t, 1, healthy.runs)
	assert.Equal(t, 1, lock.releases)
}

func TestRegistrySkipsNilJobs(t *testing.T) {
	registry := NewRegistry(nil, &stubJob{name: "only"})
	registry.Register(nil)
	require.Len(t, registry.Jobs(), 1)
	assert.Equal(t, "only", registry.Jobs()[0].Name())
}
