package scheduler

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/edudz/platform-service/internal/utils"
)

type countingJob struct {
	name     string
	interval time.Duration
	runs     atomic.Int64
	err      error
}

func (j *countingJob) Name() string            { return j.name }
func (j *countingJob) Interval() time.Duration { return j.interval }

func (j *countingJob) Run(ctx context.Context) error {
	j.runs.Add(1)
	return j.err
}

func testLogger() utils.Logger {
	return utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestScheduler_RunsJobOnInterval(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping timing test in short mode")
	}

	s := New(testLogger())
	job := &countingJob{name: "tick", interval: 10 * time.Millisecond}
	s.Register(job)

	s.Start(context.Background())
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	if runs := job.runs.Load(); runs < 3 {
		t.Errorf("job ran %d times in 100ms at a 10ms interval, want at least 3", runs)
	}
}

func TestScheduler_StopHaltsJobs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping timing test in short mode")
	}

	s := New(testLogger())
	job := &countingJob{name: "tick", interval: 5 * time.Millisecond}
	s.Register(job)

	s.Start(context.Background())
	time.Sleep(30 * time.Millisecond)
	s.Stop()

	after := job.runs.Load()
	time.Sleep(30 * time.Millisecond)
	if runs := job.runs.Load(); runs != after {
		t.Errorf("job ran %d more times after Stop", runs-after)
	}
}

func TestScheduler_DoubleStartIsNoop(t *testing.T) {
	s := New(testLogger())
	job := &countingJob{name: "tick", interval: time.Hour}
	s.Register(job)

	s.Start(context.Background())
	s.Start(context.Background())
	s.Stop()
}
