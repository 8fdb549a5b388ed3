// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"sanctions-normalizer/internal/observability"
)

// DefaultFileTimeout bounds the time spent on one input file.
const DefaultFileTimeout = 5 * time.Minute

// ParallelProcessor manages parallel file processing
type ParallelProcessor[T any] struct {
	workers  int
	timeout  time.Duration
	observer *observability.StandardObserver
}

// ProcessingStats tracks parallel processing statistics
type ProcessingStats struct {
	TotalFiles     int           `json:"total_files"`
	ProcessedFiles int           `json:"processed_files"`
	FailedFiles    int           `json:"failed_files"`
	TotalDuration  time.Duration `json:"total_duration_ms"`
	WorkerCount    int           `json:"worker_count"`
	AvgFileTime    time.Duration `json:"avg_file_time_ms"`
}

// DefaultWorkers returns the CPU count capped at 8.
func DefaultWorkers() int {
	workers := runtime.NumCPU()
	if workers > 8 {
		workers = 8 // Cap at 8 workers to avoid resource exhaustion
	}
	return workers
}

// NewParallelProcessor creates a new parallel processor. workers <= 0 uses
// DefaultWorkers.
func NewParallelProcessor[T any](workers int, observer *observability.StandardObserver) *ParallelProcessor[T] {
	if workers <= 0 {
		workers = DefaultWorkers()
	}
	return &ParallelProcessor[T]{
		workers:  workers,
		timeout:  DefaultFileTimeout,
		observer: observer,
	}
}

// WithTimeout sets the per-file deadline; zero disables it.
func (pp *ParallelProcessor[T]) WithTimeout(timeout time.Duration) *ParallelProcessor[T] {
	pp.timeout = timeout
	return pp
}

// ProgressCallback is called when a file is completed
type ProgressCallback func(completed, total int, currentFile string)

// ProcessFiles processes multiple files in parallel
func (pp *ParallelProcessor[T]) ProcessFiles(ctx context.Context, filePaths []string, process ProcessFunc[T]) ([]*Result[T], *ProcessingStats, error) {
	return pp.ProcessFilesWithProgress(ctx, filePaths, process, nil)
}

// ProcessFilesWithProgress processes multiple files in parallel with progress
// callback. Results are returned in the order of filePaths; a failed file
// carries its error in its Result and does not stop the others. The
// returned error is non-nil only when ctx was cancelled.
func (pp *ParallelProcessor[T]) ProcessFilesWithProgress(ctx context.Context, filePaths []string, process ProcessFunc[T], progressCallback ProgressCallback) ([]*Result[T], *ProcessingStats, error) {
	start := time.Now()

	var finishTiming func(bool, map[string]interface{})
	if pp.observer != nil {
		finishTiming = pp.observer.StartTiming("parallel_processor", "process_files", "batch")
	}

	workers := min(pp.workers, max(len(filePaths), 1))
	pool := NewWorkerPool(ctx, workers, pp.timeout, process, pp.observer)
	pool.Start()

	// Submit jobs in a separate goroutine to prevent deadlock
	jobCount := len(filePaths)
	submitted := make(chan int, 1)
	go func() {
		defer pool.Close()
		n := 0
		for i, filePath := range filePaths {
			if !pool.Submit(&Job{FilePath: filePath, JobID: fmt.Sprintf("job_%d", i), Index: i}) {
				break
			}
			n++
		}
		submitted <- n
	}()

	ordered := make([]*Result[T], jobCount)
	processedCount, failedCount := 0, 0
	totalDuration := time.Duration(0)
	completed := 0

	go pool.Stop()
	for result := range pool.Results() {
		ordered[result.Index] = result
		completed++

		if result.Error != nil {
			failedCount++
			if pp.observer != nil {
				pp.observer.LogOperation(observability.StandardObservabilityData{
					Component: "parallel_processor",
					Operation: "file_processing",
					FilePath:  result.FilePath,
					Success:   false,
					Error:     result.Error.Error(),
				})
			}
		} else {
			processedCount++
		}
		totalDuration += result.Duration

		if progressCallback != nil {
			progressCallback(completed, jobCount, result.FilePath)
		}
	}

	// Files never submitted because ctx ended get a cancellation result.
	n := <-submitted
	for i := n; i < jobCount; i++ {
		ordered[i] = &Result[T]{JobID: fmt.Sprintf("job_%d", i), FilePath: filePaths[i], Index: i, Error: ctx.Err()}
		failedCount++
	}

	overallDuration := time.Since(start)

	stats := &ProcessingStats{
		TotalFiles:     jobCount,
		ProcessedFiles: processedCount,
		FailedFiles:    failedCount,
		TotalDuration:  overallDuration,
		WorkerCount:    workers,
		AvgFileTime:    totalDuration / time.Duration(max(processedCount, 1)),
	}

	if finishTiming != nil {
		finishTiming(ctx.Err() == nil, map[string]interface{}{
			"total_files":     jobCount,
			"processed_files": processedCount,
			"failed_files":    failedCount,
			"worker_count":    workers,
			"duration_ms":     overallDuration.Milliseconds(),
		})
	}

	if err := ctx.Err(); err != nil {
		return ordered, stats, fmt.Errorf("processing cancelled: %w", err)
	}
	return ordered, stats, nil
}
