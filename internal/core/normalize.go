// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"context"
	"fmt"

	"sanctions-normalizer/internal/observability"
	"sanctions-normalizer/internal/parallel"
	"sanctions-normalizer/internal/router"
)

// NormalizeConfig holds configuration for a normalization run.
type NormalizeConfig struct {
	Files   []string
	Workers int
	Options Options
	// Observer receives timing records; nil disables them.
	Observer *observability.StandardObserver
	// Reporter receives per-section extraction reports; nil discards them.
	Reporter observability.Reporter
	// Progress, when set, is called as each file completes.
	Progress parallel.ProgressCallback
	// Router overrides the default file router.
	Router *router.FileRouter
}

// FileError records a file that produced no document.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e FileError) Unwrap() error {
	return e.Err
}

// NormalizeResult holds the outcome of a normalization run.
type NormalizeResult struct {
	// Documents holds one document per successfully loaded file, in the
	// order the files were given.
	Documents   []*Document
	Failures    []FileError
	RecordCount int
	Stats       *parallel.ProcessingStats
}

// NormalizeFiles loads every file, discovers its records and assembles
// them. Files are processed by a worker pool and the records of each file
// are assembled concurrently; output order always follows input order. A
// file that fails is reported in Failures and does not stop the run.
func NormalizeFiles(ctx context.Context, cfg NormalizeConfig) (*NormalizeResult, error) {
	fileRouter := cfg.Router
	if fileRouter == nil {
		fileRouter = router.NewFileRouter(cfg.Observer)
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = parallel.DefaultWorkers()
	}
	assembler := NewAssembler(cfg.Options, cfg.Reporter)

	process := func(ctx context.Context, filePath string) (*Document, error) {
		source, err := fileRouter.LoadFile(ctx, filePath)
		if err != nil {
			return nil, err
		}
		return assembler.AssembleSource(ctx, source, workers)
	}

	processor := parallel.NewParallelProcessor[*Document](workers, cfg.Observer)
	results, stats, err := processor.ProcessFilesWithProgress(ctx, cfg.Files, process, cfg.Progress)
	if err != nil {
		return nil, fmt.Errorf("parallel processing failed: %w", err)
	}

	out := &NormalizeResult{Stats: stats}
	for _, r := range results {
		if r.Error != nil {
			out.Failures = append(out.Failures, FileError{Path: r.FilePath, Err: r.Error})
			continue
		}
		out.Documents = append(out.Documents, r.Value)
		out.RecordCount += r.Value.RecordCount
	}
	return out, nil
}
