// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"context"
	"fmt"
	"sync"
	"time"

	"sanctions-normalizer/internal/observability"
)

// ProcessFunc turns one input file into a value of type T.
type ProcessFunc[T any] func(ctx context.Context, filePath string) (T, error)

// WorkerPool runs a ProcessFunc over queued files on a fixed set of goroutines
type WorkerPool[T any] struct {
	workers  int
	jobs     chan *Job
	results  chan *Result[T]
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	process  ProcessFunc[T]
	observer *observability.StandardObserver
	timeout  time.Duration
}

// Job represents a file processing task
type Job struct {
	FilePath string
	JobID    string
	Index    int
}

// Result represents processing results
type Result[T any] struct {
	JobID    string
	FilePath string
	Index    int
	Value    T
	Error    error
	Duration time.Duration
}

// NewWorkerPool creates a worker pool bound to ctx. A zero timeout disables
// the per-file deadline.
func NewWorkerPool[T any](ctx context.Context, workers int, timeout time.Duration, process ProcessFunc[T], observer *observability.StandardObserver) *WorkerPool[T] {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(ctx)

	return &WorkerPool[T]{
		workers:  workers,
		jobs:     make(chan *Job, workers*2),
		results:  make(chan *Result[T], workers*2),
		ctx:      ctx,
		cancel:   cancel,
		process:  process,
		observer: observer,
		timeout:  timeout,
	}
}

// Start initializes worker goroutines
func (wp *WorkerPool[T]) Start() {
	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
}

// Stop waits for the workers to drain and closes the results channel.
// The jobs channel must already be closed.
func (wp *WorkerPool[T]) Stop() {
	wp.wg.Wait()
	close(wp.results)
	wp.cancel()
}

// Submit adds a job to the queue. It returns false once the pool's context
// is cancelled.
func (wp *WorkerPool[T]) Submit(job *Job) bool {
	select {
	case wp.jobs <- job:
		return true
	case <-wp.ctx.Done():
		return false
	}
}

// Close signals that no more jobs will be submitted
func (wp *WorkerPool[T]) Close() {
	close(wp.jobs)
}

// Results returns the results channel
func (wp *WorkerPool[T]) Results() <-chan *Result[T] {
	return wp.results
}

// worker processes jobs from the queue
func (wp *WorkerPool[T]) worker(id int) {
	defer wp.wg.Done()

	for job := range wp.jobs {
		result := wp.processJob(job, id)
		// Results are always delivered; the collector reads one per job.
		wp.results <- result
	}
}

// processJob executes a single job, converting a panic into an error so one
// bad file cannot take down the run
func (wp *WorkerPool[T]) processJob(job *Job, workerID int) (result *Result[T]) {
	start := time.Now()
	result = &Result[T]{JobID: job.JobID, FilePath: job.FilePath, Index: job.Index}

	var finishTiming func(bool, map[string]interface{})
	if wp.observer != nil {
		finishTiming = wp.observer.StartTiming("worker_pool", "process_job", job.FilePath)
	}

	defer func() {
		if r := recover(); r != nil {
			result.Error = fmt.Errorf("panic while processing %s: %v", job.FilePath, r)
		}
		result.Duration = time.Since(start)
		if finishTiming != nil {
			finishTiming(result.Error == nil, map[string]interface{}{
				"worker_id":   workerID,
				"duration_ms": result.Duration.Milliseconds(),
				"had_error":   result.Error != nil,
			})
		}
	}()

	if err := wp.ctx.Err(); err != nil {
		result.Error = err
		return result
	}

	jobCtx := wp.ctx
	if wp.timeout > 0 {
		var cancel context.CancelFunc
		jobCtx, cancel = context.WithTimeout(wp.ctx, wp.timeout)
		defer cancel()
	}

	result.Value, result.Error = wp.process(jobCtx, job.FilePath)
	return result
}
