package workers

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/habitquest/internal/core/domain"
)

const QueueSize = 100

type InsightRefresher interface {
	RefreshDailyInsight(ctx context.Context, userID string) (*domain.Insight[domain.DailyInsight], error)
}

type InsightJob struct {
	UserID string
}

// InsightWorker warms the daily insight cache in the background after a user's
// habit list changes. Jobs are dropped when the queue is full.
type InsightWorker struct {
	insights InsightRefresher
	jobs     chan InsightJob
	timeout  time.Duration
	logger   *zap.Logger
	done     chan struct{}
}

func NewInsightWorker(insights InsightRefresher, timeout time.Duration, logger *zap.Logger) *InsightWorker {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &InsightWorker{
		insights: insights,
		jobs:     make(chan InsightJob, QueueSize),
		timeout:  timeout,
		logger:   logger.With(zap.String("component", "insight_worker")),
		done:     make(chan struct{}),
	}
}

func (w *InsightWorker) Start(ctx context.Context) {
	go func() {
		defer close(w.done)
		w.logger.Info("insight worker started")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				w.logger.Info("insight worker shutting down")
				return
			}
		}
	}()
}

// Done is closed once the worker goroutine has exited.
func (w *InsightWorker) Done() <-chan struct{} {
	return w.done
}

func (w *InsightWorker) Enqueue(userID string) {
	select {
	case w.jobs <- InsightJob{UserID: userID}:
	default:
		w.logger.Warn("insight worker queue full, dropping job", zap.String("user_id", userID))
	}
}

func (w *InsightWorker) processJob(ctx context.Context, job InsightJob) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	res, err := w.insights.RefreshDailyInsight(ctx, job.UserID)
	if err != nil {
		w.logger.Warn("insight warm-up failed", zap.String("user_id", job.UserID), zap.Error(err))
		return
	}

	w.logger.Debug("daily insight warmed",
		zap.String("user_id", job.UserID),
		zap.Bool("fallback", res.Fallback),
	)
}
