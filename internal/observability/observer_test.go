// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ Reporter = NopReporter{}
	_ Reporter = (*StandardObserver)(nil)
	_ Reporter = (*DebugObserver)(nil)
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []StandardObservabilityData {
	t.Helper()
	var out []StandardObservabilityData
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" || !strings.HasPrefix(line, "{") {
			continue
		}
		var d StandardObservabilityData
		require.NoError(t, json.Unmarshal([]byte(line), &d))
		out = append(out, d)
	}
	return out
}

func TestStandardObserver_ReporterAtDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	o := NewStandardObserver(ObservabilityDebug, &buf)

	o.RecordFound("name", "firstName")
	o.RecordNotFound("aliases")
	o.Warning("core", "record 3 recovered")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 3)
	assert.Equal(t, "firstName", lines[0].SourceField)
	assert.True(t, lines[0].Success)
	assert.Equal(t, "aliases", lines[1].Component)
	assert.False(t, lines[1].Success)
	assert.Equal(t, "record 3 recovered", lines[2].Error)
	assert.True(t, strings.HasPrefix(lines[2].RequestID, "req-"))
}

func TestStandardObserver_QuietBelowDebug(t *testing.T) {
	for _, level := range []ObservabilityLevel{ObservabilityOff, ObservabilityMetrics} {
		var buf bytes.Buffer
		o := NewStandardObserver(level, &buf)
		o.RecordFound("name", "firstName")
		o.Warning("core", "x")
		o.StartTiming("router", "load", "a.xml")(true, nil)
		assert.Empty(t, buf.String())
	}
}

func TestStandardObserver_StartTiming(t *testing.T) {
	var buf bytes.Buffer
	o := NewStandardObserver(ObservabilityDebug, &buf)

	done := o.StartTiming("discovery", "discover", "sdn.xml")
	done(true, map[string]interface{}{"tier": "direct_children"})

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "discover", lines[0].Operation)
	assert.Equal(t, "sdn.xml", lines[0].FilePath)
	assert.Equal(t, "direct_children", lines[0].Metadata["tier"])
}

func TestStandardObserver_ConcurrentWritesStayWholeLines(t *testing.T) {
	var buf bytes.Buffer
	o := NewStandardObserver(ObservabilityDebug, &buf)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			o.RecordFound("name", "firstName")
		}()
	}
	wg.Wait()

	assert.Len(t, decodeLines(t, &buf), 20)
}

func TestDebugObserver_Steps(t *testing.T) {
	var buf bytes.Buffer
	d := NewDebugObserver(&buf)

	done := d.StartStep("router", "load", "sdn.xml")
	d.LogDetail("discovery", "tier direct_children")
	d.LogMetric("discovery", "records", 2)
	done(true, "2 records")

	out := buf.String()
	assert.Contains(t, out, "🔄 router: load (sdn.xml)")
	assert.Contains(t, out, "  → discovery: tier direct_children")
	assert.Contains(t, out, "📊 discovery: records = 2")
	assert.Contains(t, out, "✅ router: load completed")
	assert.Equal(t, 0, d.indent)
}

func TestDebugObserver_WarningPrintsAndLogs(t *testing.T) {
	var buf bytes.Buffer
	d := NewDebugObserver(&buf)

	d.Warning("core", "record id generated")

	assert.Contains(t, buf.String(), "core: record id generated")
	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "warning", lines[0].Operation)
}
