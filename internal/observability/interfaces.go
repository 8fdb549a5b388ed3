// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

// Reporter is the narrow interface extraction code reports through. The
// normalizers never log; the record assembler calls a Reporter instead.
type Reporter interface {
	// RecordFound notes that component extracted a value from sourceField
	RecordFound(component, sourceField string)
	// RecordNotFound notes that component fell back to its sentinel
	RecordNotFound(component string)
	// Warning notes a recovered fault or a degraded result
	Warning(component, message string)
}

// NopReporter discards everything
type NopReporter struct{}

func (NopReporter) RecordFound(string, string) {}
func (NopReporter) RecordNotFound(string) {}
func (NopReporter) Warning(string, string) {}
