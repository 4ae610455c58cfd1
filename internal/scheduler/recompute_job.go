package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/edudz/platform-service/internal/services"
)

// RecomputeJob triggers the periodic rating sweep.
type RecomputeJob struct {
	subscriptions services.SubscriptionService
	interval      time.Duration
}

func NewRecomputeJob(subscriptions services.SubscriptionService, interval time.Duration) *RecomputeJob {
	return &RecomputeJob{subscriptions: subscriptions, interval: interval}
}

func (j *RecomputeJob) Name() string            { return "rating-recompute" }
func (j *RecomputeJob) Interval() time.Duration { return j.interval }

func (j *RecomputeJob) Run(ctx context.Context) error {
	_, err := j.subscriptions.RecomputeRatings(ctx)
	if errors.Is(err, services.ErrRecomputeInProgress) {
		// A manually triggered sweep is still running; skip this tick.
		return nil
	}
	return err
}
