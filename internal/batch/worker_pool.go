package batch

import (
	"context"
	"log/slog"
	"sync"

	"github.com/phrazzld/scry-cardgen/internal/domain"
	"github.com/phrazzld/scry-cardgen/internal/platform/logger"
)

// Generator is the part of the generation pipeline a pool drives.
type Generator interface {
	Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error)
}

// Job is one named generation request.
type Job struct {
	Name    string
	Request domain.GenerationRequest
}

// Result pairs a job name with its cards or its failure.
type Result struct {
	Name  string
	Cards []domain.GeneratedCard
	Err   error
}

// WorkerPoolConfig holds configuration options for the worker pool
type WorkerPoolConfig struct {
	// WorkerCount determines how many requests run concurrently.
	// If zero or negative, defaults to 1
	WorkerCount int
}

// DefaultWorkerPoolConfig returns a WorkerPoolConfig with reasonable defaults
func DefaultWorkerPoolConfig() WorkerPoolConfig {
	return WorkerPoolConfig{
		WorkerCount: 2,
	}
}

// WorkerPool fans jobs out to a bounded number of goroutines.
type WorkerPool struct {
	generator   Generator
	workerCount int
	logger      *slog.Logger
}

// NewWorkerPool creates a new worker pool with the specified configuration
func NewWorkerPool(generator Generator, config WorkerPoolConfig, logger *slog.Logger) *WorkerPool {
	workerCount := config.WorkerCount
	if workerCount <= 0 {
		workerCount = 1
		logger.Warn("invalid worker count specified, using default",
			"specified_count", config.WorkerCount,
			"default_count", 1)
	}

	return &WorkerPool{
		generator:   generator,
		workerCount: workerCount,
		logger:      logger,
	}
}

// WorkerCount reports the number of workers Run starts.
func (p *WorkerPool) WorkerCount() int {
	return p.workerCount
}

// Run processes every job and returns one Result per job, in job order.
// Jobs that have not started when ctx is cancelled fail with ctx.Err().
func (p *WorkerPool) Run(ctx context.Context, jobs []Job) []Result {
	results := make([]Result, len(jobs))
	if len(jobs) == 0 {
		return results
	}

	workers := p.workerCount
	if workers > len(jobs) {
		workers = len(jobs)
	}

	log := logger.FromContextOrDefault(ctx, p.logger)
	log.Debug("starting batch", "jobs", len(jobs), "workers", workers)

	indexes := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			p.worker(ctx, log.With("worker_id", workerID), jobs, indexes, results)
		}(w)
	}

	for i := range jobs {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	log.Debug("batch finished", "jobs", len(jobs))
	return results
}

// worker writes only to results[i] for the indexes it receives.
func (p *WorkerPool) worker(
	ctx context.Context,
	log *slog.Logger,
	jobs []Job,
	indexes <-chan int,
	results []Result,
) {
	for i := range indexes {
		job := jobs[i]
		results[i] = Result{Name: job.Name}

		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}

		log.Debug("processing job", "job", job.Name)
		res, err := p.generator.Generate(ctx, job.Request)
		if err != nil {
			log.Warn("job failed", "job", job.Name, "error", err)
			results[i].Err = err
			continue
		}
		results[i].Cards = res.Cards
		log.Debug("job completed", "job", job.Name, "cards", len(res.Cards))
	}
}
