package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"bikefleet/internal/infra/jobqueue"
)

const pollInterval = 5 * time.Second

// JobRunner executes one kind of queued job.
type JobRunner interface {
	Run(ctx context.Context, job *jobqueue.Job) error
}

// WorkerPool runs a fixed set of goroutines that claim jobs from the queue
// and dispatch them to registered runners. Claiming uses SKIP LOCKED, so
// pools on multiple instances share one queue safely.
type WorkerPool struct {
	queue   *jobqueue.Queue
	runners map[string]JobRunner
	count   int
	logger  *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

func NewWorkerPool(queue *jobqueue.Queue, count int, logger *slog.Logger) *WorkerPool {
	if count < 1 {
		count = 1
	}
	return &WorkerPool{
		queue:   queue,
		runners: make(map[string]JobRunner),
		count:   count,
		logger:  logger,
	}
}

// Register binds a runner to a job name. Not safe after Start.
func (p *WorkerPool) Register(name string, runner JobRunner) {
	p.runners[name] = runner
}

func (p *WorkerPool) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	for i := 0; i < p.count; i++ {
		p.wg.Add(1)
		go p.work(ctx, i)
	}
}

// Stop cancels the workers and waits for in-flight jobs to finish.
func (p *WorkerPool) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
}

func (p *WorkerPool) work(ctx context.Context, id int) {
	defer p.wg.Done()
	logger := p.logger.With("worker", id)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		job, err := p.queue.Claim(ctx)
		if err != nil {
			logger.Error("failed to claim job", "error", err)
			p.sleep(ctx, pollInterval)
			continue
		}
		if job == nil {
			p.sleep(ctx, pollInterval)
			continue
		}

		p.execute(ctx, logger, job)
	}
}

func (p *WorkerPool) execute(ctx context.Context, logger *slog.Logger, job *jobqueue.Job) {
	runner, ok := p.runners[job.Name]
	if !ok {
		logger.Error("no runner registered for job", "job", job.Name, "job_id", job.ID)
		if err := p.queue.MarkFailed(ctx, job.ID, "no runner registered"); err != nil {
			logger.Error("failed to mark job failed", "job_id", job.ID, "error", err)
		}
		return
	}

	logger.Info("job started", "job", job.Name, "job_id", job.ID, "dedupe_key", job.DedupeKey)
	if err := runner.Run(ctx, job); err != nil {
		logger.Error("job failed", "job", job.Name, "job_id", job.ID, "error", err)
		if markErr := p.queue.MarkFailed(ctx, job.ID, err.Error()); markErr != nil {
			logger.Error("failed to mark job failed", "job_id", job.ID, "error", markErr)
		}
		return
	}

	if err := p.queue.MarkDone(ctx, job.ID); err != nil {
		logger.Error("failed to mark job done", "job_id", job.ID, "error", err)
		return
	}
	logger.Info("job done", "job", job.Name, "job_id", job.ID)
}

func (p *WorkerPool) sleep(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
