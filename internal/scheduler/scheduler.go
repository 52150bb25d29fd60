// Package scheduler runs the periodic due-review digest: it counts each
// learner's due words and hands the result to a Notifier.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/phrazzld/lingo-review/internal/config"
	"github.com/phrazzld/lingo-review/internal/platform/logger"
	"github.com/phrazzld/lingo-review/internal/store"
)

// DefaultDigestInterval is used when the configuration leaves the interval unset.
const DefaultDigestInterval = time.Hour

// digestTimeout bounds a single digest run.
const digestTimeout = time.Minute

// ErrAlreadyStarted is returned by Start on a running scheduler.
var ErrAlreadyStarted = errors.New("scheduler already started")

// DigestSource produces per-learner due counts. review.Service satisfies it.
type DigestSource interface {
	DueDigest(ctx context.Context) ([]store.LearnerDueCount, error)
}

// Notifier delivers a due digest, e.g. as push notifications or e-mail.
type Notifier interface {
	NotifyDue(ctx context.Context, digest []store.LearnerDueCount) error
}

// Scheduler manages the digest job.
type Scheduler struct {
	scheduler *gocron.Scheduler
	source    DigestSource
	notifier  Notifier
	interval  time.Duration
	logger    *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a scheduler. A nil notifier logs digests through logger.
func New(source DigestSource, notifier Notifier, cfg config.SchedulerConfig, log *slog.Logger) *Scheduler {
	if source == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("digest source cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("component", "scheduler"))
	if notifier == nil {
		notifier = NewLogNotifier(log)
	}

	interval := cfg.DigestInterval
	if interval <= 0 {
		interval = DefaultDigestInterval
	}

	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	s.WaitForScheduleAll()

	return &Scheduler{
		scheduler: s,
		source:    source,
		notifier:  notifier,
		interval:  interval,
		logger:    log,
	}
}

// Start schedules the digest every interval and returns immediately. The
// first run happens one interval after Start. Runs stop when ctx is cancelled
// or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.scheduler.IsRunning() {
		return ErrAlreadyStarted
	}

	s.ctx, s.cancel = context.WithCancel(ctx)

	if _, err := s.scheduler.Every(s.interval).Do(s.runJob); err != nil {
		s.cancel()
		return fmt.Errorf("failed to schedule due digest: %w", err)
	}
	s.scheduler.StartAsync()

	s.logger.Info("scheduler started", slog.Duration("digest_interval", s.interval))
	return nil
}

// Stop cancels any running digest and stops the scheduler.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.scheduler.Stop()
	s.scheduler.Clear()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) runJob() {
	ctx, cancel := context.WithTimeout(s.ctx, digestTimeout)
	defer cancel()

	if _, err := s.RunDigest(ctx); err != nil {
		s.logger.Error("due digest failed", slog.String("error", err.Error()))
	}
}

// RunDigest computes the digest once and notifies. It returns the number of
// learners with due words.
func (s *Scheduler) RunDigest(ctx context.Context) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	digest, err := s.source.DueDigest(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to compute due digest: %w", err)
	}
	if len(digest) == 0 {
		log.Debug("no learners with due words")
		return 0, nil
	}

	if err := s.notifier.NotifyDue(ctx, digest); err != nil {
		return 0, fmt.Errorf("failed to deliver due digest: %w", err)
	}
	return len(digest), nil
}
