package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"

	"communityhub/internal/logging"
)

// Job is one unit of periodic background work
type Job interface {
	Run(ctx context.Context) error
}

// Scheduler drives the trending recomputation loop: an immediate warm-up
// pass at startup, then one pass per interval. A failed cycle is logged
// and the scheduler simply waits for the next tick; there is no retry.
type Scheduler struct {
	scheduler gocron.Scheduler
	interval  time.Duration
	job       Job
	name      string
}

// NewScheduler creates a scheduler running job every interval
func NewScheduler(name string, interval time.Duration, job Job) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("invalid scheduler interval %v", interval)
	}

	scheduler, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		scheduler: scheduler,
		interval:  interval,
		job:       job,
		name:      name,
	}, nil
}

// Start registers the job and begins the loop. The first run fires
// immediately (warm-up) so a fresh deployment has scores before the
// first interval elapses.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(func() { s.runCycle(ctx) }),
		gocron.WithName(s.name),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to register job %s: %w", s.name, err)
	}

	s.scheduler.Start()
	log.Printf("⏰ [SCHEDULER] %s running every %v (warm-up pass queued)", s.name, s.interval)
	return nil
}

// runCycle executes one pass, never panicking the loop
func (s *Scheduler) runCycle(ctx context.Context) {
	runID := uuid.New().String()[:8]
	cycleLog := logging.WithCycle(runID, s.interval.String())
	cycleLog.Info("cycle starting", "job", s.name)
	start := time.Now()

	if err := s.job.Run(ctx); err != nil {
		cycleLog.Error("cycle failed, waiting for next tick", "job", s.name, "error", err)
		return
	}

	cycleLog.Info("cycle completed", "job", s.name, "duration", time.Since(start).String())
}

// Stop shuts the scheduler down, waiting for a running cycle to finish
func (s *Scheduler) Stop() error {
	log.Printf("⏹️ [SCHEDULER] Stopping %s...", s.name)
	return s.scheduler.Shutdown()
}
