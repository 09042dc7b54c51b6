package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sjperalta/fintera-ledger/pkg/logger"
)

var (
	ErrWorkerStopped = errors.New("worker is shutting down")
	ErrQueueFull     = errors.New("job queue is full")
)

// Job represents a background task
type Job func(ctx context.Context) error

// Worker runs queued jobs on a fixed pool and drives the periodic engine schedules
type Worker struct {
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
	queue         chan Job
	asyncSem      chan struct{}
	maxConcurrent int
	stats         WorkerStats
	schedules     map[string]*ScheduleStatus
	statsMu       sync.RWMutex

	// closeMu guards closed; senders hold it shared so Shutdown never closes the queue under them
	closeMu sync.RWMutex
	closed  bool
}

// WorkerStats holds statistics about the worker. CompletedJobs counts every
// finished job; FailedJobs is the subset that returned an error or panicked.
type WorkerStats struct {
	ActiveJobs    int                       `json:"active_jobs"`
	CompletedJobs int64                     `json:"completed_jobs"`
	FailedJobs    int64                     `json:"failed_jobs"`
	QueueLength   int                       `json:"queue_length"`
	MaxConcurrent int                       `json:"max_concurrent"`
	Schedules     map[string]ScheduleStatus `json:"schedules"`
}

// ScheduleStatus describes one named periodic job
type ScheduleStatus struct {
	Interval     time.Duration `json:"interval"`
	Runs         int64         `json:"runs"`
	LastRunAt    *time.Time    `json:"last_run_at"`
	LastDuration time.Duration `json:"last_duration"`
	LastError    string        `json:"last_error,omitempty"`
}

// NewWorker creates a worker with N concurrent processors
func NewWorker(numWorkers int) *Worker {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	// Allow 2x workers for async jobs
	asyncLimit := numWorkers * 2
	if asyncLimit < 10 {
		asyncLimit = 10
	}

	w := &Worker{
		ctx:           ctx,
		cancel:        cancel,
		queue:         make(chan Job, 100),
		asyncSem:      make(chan struct{}, asyncLimit),
		maxConcurrent: asyncLimit,
		schedules:     make(map[string]*ScheduleStatus),
	}

	for i := 0; i < numWorkers; i++ {
		w.wg.Add(1)
		go w.process(i)
	}

	return w
}

// Enqueue adds a job to the pool queue. It never blocks: a full queue or a
// stopped worker is reported to the caller.
func (w *Worker) Enqueue(job Job) error {
	w.closeMu.RLock()
	defer w.closeMu.RUnlock()
	if w.closed {
		return ErrWorkerStopped
	}

	select {
	case w.queue <- job:
		return nil
	default:
		logger.Warn("[Worker] Queue full, job rejected", "queue_length", len(w.queue))
		return ErrQueueFull
	}
}

// EnqueueAsync runs a job in a new goroutine (fire-and-forget), bounded by semaphore.
// Jobs submitted after Shutdown are dropped.
func (w *Worker) EnqueueAsync(job Job) {
	w.closeMu.RLock()
	defer w.closeMu.RUnlock()
	if w.closed {
		logger.Warn("[Worker] Async job dropped, worker stopped")
		return
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		w.asyncSem <- struct{}{}
		defer func() { <-w.asyncSem }()

		w.run("async", job)
	}()
}

func (w *Worker) process(workerID int) {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case job, ok := <-w.queue:
			if !ok {
				return
			}
			w.run(fmt.Sprintf("pool-%d", workerID), job)
		}
	}
}

// run executes a job with panic recovery and bookkeeping; it returns the job's error
func (w *Worker) run(source string, job Job) (err error) {
	w.trackJobStart()
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job panic: %v", r)
		}
		if err != nil {
			logger.Error("job failed", "source", source, "error", err)
			w.trackJobFailure()
		} else {
			logger.Debug("job completed", "source", source, "duration", time.Since(start))
		}
		w.trackJobEnd()
	}()
	return job(w.ctx)
}

// ScheduleEvery runs a named job at fixed intervals. The first run happens after the interval.
func (w *Worker) ScheduleEvery(name string, interval time.Duration, job Job) {
	w.schedule(name, interval, false, job)
}

// ScheduleEveryImmediate runs a named job once at startup, then at fixed intervals.
// Deploys restart the process, so the engine should not wait a full interval.
func (w *Worker) ScheduleEveryImmediate(name string, interval time.Duration, job Job) {
	w.schedule(name, interval, true, job)
}

func (w *Worker) schedule(name string, interval time.Duration, immediate bool, job Job) {
	w.statsMu.Lock()
	w.schedules[name] = &ScheduleStatus{Interval: interval}
	w.statsMu.Unlock()

	w.closeMu.RLock()
	defer w.closeMu.RUnlock()
	if w.closed {
		return
	}

	logger.Info("job scheduled", "job", name, "interval", interval, "immediate", immediate)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		if immediate {
			w.runScheduled(name, job)
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.ctx.Done():
				return
			case <-ticker.C:
				w.runScheduled(name, job)
			}
		}
	}()
}

func (w *Worker) runScheduled(name string, job Job) {
	if w.ctx.Err() != nil {
		return
	}
	start := time.Now()
	err := w.run(name, job)

	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	s := w.schedules[name]
	s.Runs++
	startedAt := start.UTC()
	s.LastRunAt = &startedAt
	s.LastDuration = time.Since(start)
	s.LastError = ""
	if err != nil {
		s.LastError = err.Error()
	}
}

// Shutdown cancels running jobs and waits for every goroutine to return. Calling it again is a no-op.
func (w *Worker) Shutdown() {
	w.cancel()

	w.closeMu.Lock()
	if w.closed {
		w.closeMu.Unlock()
		return
	}
	w.closed = true
	close(w.queue)
	w.closeMu.Unlock()

	w.wg.Wait()
}

// Context returns the worker's context for checking cancellation
func (w *Worker) Context() context.Context {
	return w.ctx
}

// GetStats returns the current worker statistics
func (w *Worker) GetStats() WorkerStats {
	w.statsMu.RLock()
	defer w.statsMu.RUnlock()
	stats := w.stats
	stats.QueueLength = len(w.queue)
	stats.MaxConcurrent = w.maxConcurrent
	stats.Schedules = make(map[string]ScheduleStatus, len(w.schedules))
	for name, s := range w.schedules {
		stats.Schedules[name] = *s
	}
	return stats
}

func (w *Worker) trackJobStart() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.ActiveJobs++
}

func (w *Worker) trackJobEnd() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.ActiveJobs--
	w.stats.CompletedJobs++
}

func (w *Worker) trackJobFailure() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.FailedJobs++
}
