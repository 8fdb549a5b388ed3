// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"encoding/json"
	"io"
	"sync"
	"time"
)

// StandardObserver implements observability for all components. It is safe
// for concurrent use because records are assembled in parallel.
type StandardObserver struct {
	level  ObservabilityLevel
	mu     sync.Mutex
	writer io.Writer
}

type ObservabilityLevel int

const (
	ObservabilityOff     ObservabilityLevel = 0
	ObservabilityMetrics ObservabilityLevel = 1
	ObservabilityDebug   ObservabilityLevel = 2
)

// NewStandardObserver creates observability component
func NewStandardObserver(level ObservabilityLevel, writer io.Writer) *StandardObserver {
	return &StandardObserver{
		level:  level,
		writer: writer,
	}
}

// Level returns the configured level
func (o *StandardObserver) Level() ObservabilityLevel {
	return o.level
}

// StartTiming returns a function to complete timing
func (o *StandardObserver) StartTiming(component, operation, filePath string) func(success bool, metadata map[string]interface{}) {
	start := time.Now()

	return func(success bool, metadata map[string]interface{}) {
		duration := time.Since(start)

		data := StandardObservabilityData{
			Component:  component,
			Operation:  operation,
			FilePath:   filePath,
			DurationMs: duration.Milliseconds(),
			Success:    success,
			Metadata:   metadata,
		}

		o.LogOperation(data)
	}
}

// LogOperation logs operation data
func (o *StandardObserver) LogOperation(data StandardObservabilityData) {
	if o.level == ObservabilityOff {
		return
	}

	data.RequestID = "req-" + time.Now().Format("20060102-150405")

	// Only log JSON in debug mode
	if o.level == ObservabilityDebug {
		o.mu.Lock()
		defer o.mu.Unlock()
		json.NewEncoder(o.writer).Encode(data)
	}
}

// RecordFound implements Reporter
func (o *StandardObserver) RecordFound(component, sourceField string) {
	o.LogOperation(StandardObservabilityData{
		Component:   component,
		Operation:   "extract",
		Success:     true,
		SourceField: sourceField,
	})
}

// RecordNotFound implements Reporter
func (o *StandardObserver) RecordNotFound(component string) {
	o.LogOperation(StandardObservabilityData{
		Component: component,
		Operation: "extract",
		Success:   false,
	})
}

// Warning implements Reporter
func (o *StandardObserver) Warning(component, message string) {
	o.LogOperation(StandardObservabilityData{
		Component: component,
		Operation: "warning",
		Success:   false,
		Error:     message,
	})
}

// StandardObservabilityData for all components
type StandardObservabilityData struct {
	Component   string                 `json:"component"`
	Operation   string                 `json:"operation"`
	RequestID   string                 `json:"request_id"`
	FilePath    string                 `json:"file_path,omitempty"`
	DurationMs  int64                  `json:"duration_ms,omitempty"`
	Success     bool                   `json:"success"`
	Error       string                 `json:"error,omitempty"`
	SourceField string                 `json:"source_field,omitempty"`
	RecordCount int                    `json:"record_count,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}
