package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/conectlink/conectlink-backend/pkg/logger"
	"github.com/conectlink/conectlink-backend/pkg/metrics"
)

const defaultExpiryBatchSize = 500

// SubscriptionExpiryJobParams configure the subscription expiry sweep.
type SubscriptionExpiryJobParams struct {
	Logger        *logger.Logger
	Subscriptions subscriptionExpirer
	Metrics       *metrics.BillingMetrics
	BatchSize     int
}

type subscriptionExpirer interface {
	ExpireDue(ctx context.Context, now time.Time, limit int) (int64, error)
}

// NewSubscriptionExpiryJob builds the cron job that flips overdue
// subscriptions to expired in bounded batches.
func NewSubscriptionExpiryJob(params SubscriptionExpiryJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Subscriptions == nil {
		return nil, fmt.Errorf("subscriptions repository required")
	}
	batchSize := params.BatchSize
	if batchSize <= 0 {
		batchSize = defaultExpiryBatchSize
	}
	return &subscriptionExpiryJob{
		logg:      params.Logger,
		subs:      params.Subscriptions,
		metrics:   params.Metrics,
		batchSize: batchSize,
		now:       time.Now,
	}, nil
}

type subscriptionExpiryJob struct {
	logg      *logger.Logger
	subs      subscriptionExpirer
	metrics   *metrics.BillingMetrics
	batchSize int
	now       func() time.Time
}

func (j *subscriptionExpiryJob) Name() string { return "subscription-expiry" }

func (j *subscriptionExpiryJob) Run(ctx context.Context) error {
	now := j.now().UTC()
	var total int64
	for {
		affected, err := j.subs.ExpireDue(ctx, now, j.batchSize)
		if err != nil {
			return fmt.Errorf("expire due subscriptions: %w", err)
		}
		total += affected
		if affected < int64(j.batchSize) {
			break
		}
	}
	if total > 0 {
		j.metrics.AddExpirations(int(total))
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{"count": total})
	j.logg.Info(logCtx, "subscription expiry sweep complete")
	return nil
}
