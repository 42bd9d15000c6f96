package cron

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/conectlink/conectlink-backend/pkg/logger"
)

type stubExpirer struct {
	batches []int64
	calls   int
	limits  []int
	times   []time.Time
	err     error
}

func (s *stubExpirer) ExpireDue(_ context.Context, now time.Time, limit int) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.limits = append(s.limits, limit)
	s.times = append(s.times, now)
	var affected int64
	if s.calls < len(s.batches) {
		affected = s.batches[s.calls]
	}
	s.calls++
	return affected, nil
}

func newExpiryJob(t *testing.T, subs *stubExpirer, batchSize int) *subscriptionExpiryJob {
	t.Helper()
	job, err := NewSubscriptionExpiryJob(SubscriptionExpiryJobParams{
		Logger:        logger.New(logger.Options{ServiceName: "cron-test", Output: io.Discard}),
		Subscriptions: subs,
		BatchSize:     batchSize,
	})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}
	return job.(*subscriptionExpiryJob)
}

func TestSubscriptionExpiryJobDrainsBatches(t *testing.T) {
	subs := &stubExpirer{batches: []int64{3, 3, 1}}
	job := newExpiryJob(t, subs, 3)
	fixed := time.Date(2026, time.April, 1, 8, 0, 0, 0, time.UTC)
	job.now = func() time.Time { return fixed }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if subs.calls != 3 {
		t.Fatalf("expected 3 batches, got %d", subs.calls)
	}
	for _, limit := range subs.limits {
		if limit != 3 {
			t.Fatalf("expected batch limit 3, got %d", limit)
		}
	}
	for _, ts := range subs.times {
		if !ts.Equal(fixed) {
			t.Fatalf("expected same cutoff across batches, got %v", ts)
		}
	}
}

func TestSubscriptionExpiryJobStopsOnEmptySweep(t *testing.T) {
	subs := &stubExpirer{batches: []int64{0}}
	job := newExpiryJob(t, subs, 100)

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if subs.calls != 1 {
		t.Fatalf("expected a single sweep, got %d", subs.calls)
	}
}

func TestSubscriptionExpiryJobPropagatesRepositoryError(t *testing.T) {
	subs := &stubExpirer{err: errors.New("db down")}
	job := newExpiryJob(t, subs, 100)

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error from failing repository")
	}
}

func TestSubscriptionExpiryJobDefaultsBatchSize(t *testing.T) {
	subs := &stubExpirer{batches: []int64{0}}
	job := newExpiryJob(t, subs, 0)

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if subs.limits[0] != defaultExpiryBatchSize {
		t.Fatalf("expected default batch size %d, got %d", defaultExpiryBatchSize, subs.limits[0])
	}
}

func TestNewSubscriptionExpiryJobValidatesDependencies(t *testing.T) {
	if _, err := NewSubscriptionExpiryJob(SubscriptionExpiryJobParams{Subscriptions: &stubExpirer{}}); err == nil {
		t.Fatal("expected error without logger")
	}
	if _, err := NewSubscriptionExpiryJob(SubscriptionExpiryJobParams{
		Logger: logger.New(logger.Options{ServiceName: "cron-test", Output: io.Discard}),
	}); err == nil {
		t.Fatal("expected error without subscriptions repository")
	}
}
