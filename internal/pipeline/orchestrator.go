package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/pressdigest/internal/config"
	"github.com/dgallion1/pressdigest/internal/digest"
)

// Orchestrator manages the digest pipeline.
type Orchestrator struct {
	jobs  *JobStore
	queue chan *Job
	sum   Summarizer
	open  DocumentOpener
	log   *slog.Logger
	cfg   config.Config

	detectCfg digest.Config
	worker    *Worker

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline. Call Start to launch workers.
func NewOrchestrator(cfg config.Config, sum Summarizer, open DocumentOpener, detectCfg digest.Config, log *slog.Logger) *Orchestrator {
	o := &Orchestrator{
		jobs:      NewJobStore(cfg.JobTTL),
		queue:     make(chan *Job, cfg.MaxQueueSize),
		sum:       sum,
		open:      open,
		log:       log,
		cfg:       cfg,
		detectCfg: detectCfg,
	}
	o.worker = o.newWorker()
	return o
}

func (o *Orchestrator) newWorker() *Worker {
	return NewWorker(o.sum, o.open, o.detectCfg, o.log, o.cfg.MaxRetries)
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for range o.cfg.WorkerCount {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := o.newWorker()
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					queueDepth.Set(float64(len(o.queue)))
					w.Process(workerCtx, job)
				}
			}
		}()
	}

	// Start job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// Submit queues a new job for processing.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		queueDepth.Set(float64(len(o.queue)))
		return nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("job queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// Detect runs detection synchronously, outside the queue.
func (o *Orchestrator) Detect(data []byte, hasCover bool) (*digest.Result, error) {
	indexPage := 0
	if hasCover {
		indexPage = 1
	}
	return o.worker.Detect(data, indexPage)
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// Config returns the settings the pipeline was built with.
func (o *Orchestrator) Config() config.Config {
	return o.cfg
}
