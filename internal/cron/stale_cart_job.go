package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/avinashrao/platterly-backend/pkg/logger"
	"github.com/avinashrao/platterly-backend/pkg/metrics"
)

const staleCartJobName = "stale_cart_purge"

type staleCartDeleter interface {
	DeleteStaleNew(ctx context.Context, before time.Time) (int64, error)
}

// StaleCartJobParams configure the abandoned cart purge.
type StaleCartJobParams struct {
	Logger     *logger.Logger
	Carts      staleCartDeleter
	Metrics    *metrics.CronJobMetrics
	StaleAfter time.Duration
	Now        func() time.Time
}

type staleCartJob struct {
	logg       *logger.Logger
	carts      staleCartDeleter
	metrics    *metrics.CronJobMetrics
	staleAfter time.Duration
	now        func() time.Time
}

// NewStaleCartJob builds the job that removes carts abandoned in status
// "New". Checkout already replaces a user's own pending carts, so this job
// only has to catch users who never came back.
func NewStaleCartJob(params StaleCartJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Carts == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if params.StaleAfter <= 0 {
		return nil, fmt.Errorf("stale-after duration must be positive")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &staleCartJob{
		logg:       params.Logger,
		carts:      params.Carts,
		metrics:    params.Metrics,
		staleAfter: params.StaleAfter,
		now:        now,
	}, nil
}

func (j *staleCartJob) Name() string {
	return staleCartJobName
}

func (j *staleCartJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-j.staleAfter)
	purged, err := j.carts.DeleteStaleNew(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("delete stale carts: %w", err)
	}
	if j.metrics != nil {
		j.metrics.AddPurgedCarts(staleCartJobName, purged)
	}
	fields := map[string]any{"purged": purged, "cutoff": cutoff}
	j.logg.Info(j.logg.WithFields(ctx, fields), "stale cart purge complete")
	return nil
}
