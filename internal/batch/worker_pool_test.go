package batch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/phrazzld/scry-cardgen/internal/domain"
	"github.com/phrazzld/scry-cardgen/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type funcGenerator func(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error)

func (f funcGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error) {
	return f(ctx, req)
}

func echoGenerator() funcGenerator {
	return func(_ context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error) {
		if req.Text == "bad" {
			return nil, errors.New("boom")
		}
		return &domain.GenerationResult{Cards: []domain.GeneratedCard{{Front: req.Text, Back: "A"}}}, nil
	}
}

func TestNewWorkerPool(t *testing.T) {
	log, _ := logger.NewTestLogger()

	pool := NewWorkerPool(echoGenerator(), WorkerPoolConfig{WorkerCount: 5}, log)
	assert.Equal(t, 5, pool.WorkerCount())

	pool = NewWorkerPool(echoGenerator(), WorkerPoolConfig{WorkerCount: 0}, log)
	assert.Equal(t, 1, pool.WorkerCount())

	pool = NewWorkerPool(echoGenerator(), WorkerPoolConfig{WorkerCount: -5}, log)
	assert.Equal(t, 1, pool.WorkerCount())

	assert.Equal(t, 2, DefaultWorkerPoolConfig().WorkerCount)
}

func TestRunKeepsJobOrder(t *testing.T) {
	log, _ := logger.NewTestLogger()
	pool := NewWorkerPool(echoGenerator(), WorkerPoolConfig{WorkerCount: 3}, log)

	jobs := []Job{
		{Name: "a", Request: domain.GenerationRequest{Text: "one"}},
		{Name: "b", Request: domain.GenerationRequest{Text: "bad"}},
		{Name: "c", Request: domain.GenerationRequest{Text: "three"}},
		{Name: "d", Request: domain.GenerationRequest{Text: "four"}},
	}
	results := pool.Run(context.Background(), jobs)

	require.Len(t, results, 4)
	for i, r := range results {
		assert.Equal(t, jobs[i].Name, r.Name)
	}
	assert.Equal(t, "one", results[0].Cards[0].Front)
	assert.EqualError(t, results[1].Err, "boom")
	assert.Nil(t, results[1].Cards)
	assert.Equal(t, "four", results[3].Cards[0].Front)
}

func TestRunBoundsConcurrency(t *testing.T) {
	log, _ := logger.NewTestLogger()

	var active, peak int32
	var mu sync.Mutex
	gen := funcGenerator(func(context.Context, domain.GenerationRequest) (*domain.GenerationResult, error) {
		n := atomic.AddInt32(&active, 1)
		mu.Lock()
		if n > peak {
			peak = n
		}
		mu.Unlock()
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&active, -1)
		return &domain.GenerationResult{}, nil
	})

	pool := NewWorkerPool(gen, WorkerPoolConfig{WorkerCount: 2}, log)
	jobs := make([]Job, 6)
	results := pool.Run(context.Background(), jobs)

	require.Len(t, results, 6)
	assert.LessOrEqual(t, peak, int32(2))
}

func TestRunCancelledContext(t *testing.T) {
	log, _ := logger.NewTestLogger()
	var calls int32
	gen := funcGenerator(func(context.Context, domain.GenerationRequest) (*domain.GenerationResult, error) {
		atomic.AddInt32(&calls, 1)
		return &domain.GenerationResult{}, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool := NewWorkerPool(gen, DefaultWorkerPoolConfig(), log)
	results := pool.Run(ctx, []Job{{Name: "a"}, {Name: "b"}})

	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestRunNoJobs(t *testing.T) {
	log, _ := logger.NewTestLogger()
	pool := NewWorkerPool(echoGenerator(), DefaultWorkerPoolConfig(), log)
	assert.Empty(t, pool.Run(context.Background(), nil))
}
