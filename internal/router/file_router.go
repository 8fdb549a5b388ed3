// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package router

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sanctions-normalizer/internal/discovery"
	"sanctions-normalizer/internal/fieldmap"
	"sanctions-normalizer/internal/observability"
)

var (
	// ErrUnsupportedFile is returned for extensions no loader handles.
	ErrUnsupportedFile = errors.New("unsupported file type")
	// ErrNoRecords is returned when a file parsed but holds no records.
	ErrNoRecords = errors.New("no records found")
	// ErrSpreadsheetNotSupported is returned for Excel workbooks.
	ErrSpreadsheetNotSupported = errors.New("spreadsheet input is not supported, export the sheet to CSV")
	// ErrFileTooLarge is returned for files over the size limit.
	ErrFileTooLarge = errors.New("file too large")
)

// MaxFileSize is the default maximum file size the router will load (200 MB).
const MaxFileSize = int64(200 * 1024 * 1024)

var spreadsheetExtensions = map[string]bool{".xlsx": true, ".xls": true, ".xlsm": true}

// Source is the outcome of loading one file: its records in source order
// together with how they were found.
type Source struct {
	FilePath string
	// Tier names the strategy that located the records, e.g. a discovery
	// tier for XML or "rows" for CSV.
	Tier           string
	RecordElements []string
	// Elements holds the element name of each record, parallel to Records.
	Elements  []string
	Records   []*fieldmap.FieldMap
	Discarded []discovery.Group
}

// FileRouter dispatches input files to loaders by extension
type FileRouter struct {
	registry *LoaderRegistry
	observer *observability.StandardObserver
	maxSize  int64
}

// NewFileRouter creates a file router with the XML and CSV loaders
// registered. observer may be nil.
func NewFileRouter(observer *observability.StandardObserver) *FileRouter {
	fr := &FileRouter{
		registry: NewLoaderRegistry(),
		observer: observer,
		maxSize:  MaxFileSize,
	}
	fr.RegisterLoader(NewXMLLoader())
	fr.RegisterLoader(NewCSVLoader())
	return fr
}

// RegisterLoader adds a loader to the router
func (fr *FileRouter) RegisterLoader(loader Loader) {
	fr.registry.Register(loader)
}

// SetMaxFileSize overrides the size limit
func (fr *FileRouter) SetMaxFileSize(n int64) {
	fr.maxSize = n
}

// SupportedExtensions returns the extensions a loader is registered for
func (fr *FileRouter) SupportedExtensions() []string {
	return fr.registry.GetRegisteredExtensions()
}

// IsSupported reports whether a loader exists for the file's extension
func (fr *FileRouter) IsSupported(filePath string) bool {
	return fr.registry.Lookup(filepath.Ext(filePath)) != nil
}

// CanProcessFile determines if a file can be processed and why not
func (fr *FileRouter) CanProcessFile(filePath string) (bool, string) {
	if err := fr.check(filePath); err != nil {
		return false, err.Error()
	}
	return true, fr.registry.Lookup(filepath.Ext(filePath)).GetName()
}

func (fr *FileRouter) check(filePath string) error {
	ext := strings.ToLower(filepath.Ext(filePath))
	if spreadsheetExtensions[ext] {
		return fmt.Errorf("%s: %w", filePath, ErrSpreadsheetNotSupported)
	}
	if fr.registry.Lookup(ext) == nil {
		return fmt.Errorf("%s: %w", filePath, ErrUnsupportedFile)
	}

	info, err := os.Stat(filepath.Clean(filePath))
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", filePath, err)
	}
	if info.Size() > fr.maxSize {
		return fmt.Errorf("%s (max: %dMB): %w", filePath, fr.maxSize/(1024*1024), ErrFileTooLarge)
	}
	return nil
}

// LoadFile reads filePath with the loader registered for its extension. A
// file that yields no records returns ErrNoRecords.
func (fr *FileRouter) LoadFile(ctx context.Context, filePath string) (source *Source, err error) {
	if fr.observer != nil {
		finishTiming := fr.observer.StartTiming("router", "load_file", filePath)
		defer func() {
			meta := map[string]interface{}{"file_ext": strings.ToLower(filepath.Ext(filePath))}
			if source != nil {
				meta["tier"] = source.Tier
				meta["record_count"] = len(source.Records)
			}
			finishTiming(err == nil, meta)
		}()
	}

	if err := fr.check(filePath); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Clean(filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filePath, err)
	}
	defer f.Close()

	loader := fr.registry.Lookup(filepath.Ext(filePath))
	source, err = loader.Load(ctx, filePath, f)
	if err != nil {
		return nil, fmt.Errorf("%s loader failed on %s: %w", loader.GetName(), filePath, err)
	}
	if len(source.Records) == 0 {
		return nil, fmt.Errorf("%s: %w", filePath, ErrNoRecords)
	}
	source.FilePath = filePath
	return source, nil
}
