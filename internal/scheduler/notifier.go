package scheduler

import (
	"context"
	"log/slog"

	"github.com/phrazzld/lingo-review/internal/store"
)

// LogNotifier writes each learner's due count as a structured log line.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

// NotifyDue implements Notifier.
func (n *LogNotifier) NotifyDue(ctx context.Context, digest []store.LearnerDueCount) error {
	total := 0
	for _, entry := range digest {
		total += entry.Due
		n.logger.InfoContext(ctx, "words due for review",
			slog.String("learner_id", entry.LearnerID.String()),
			slog.Int("due", entry.Due))
	}
	n.logger.InfoContext(ctx, "due digest sent",
		slog.Int("learners", len(digest)),
		slog.Int("total_due", total))
	return nil
}
