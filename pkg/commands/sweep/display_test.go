// Copyright (c) 2025, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package sweep

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	v1 "k8s.io/api/core/v1"
	"sigs.k8s.io/yaml"
)

func testResult() *Result {
	return &Result{
		Namespace: "default",
		Entries: []Entry{
			{
				Pod:     PodRecord{Name: "web-1", Namespace: "default", Phase: v1.PodRunning},
				Outcome: noActionNeeded(),
			},
			{
				Pod:     PodRecord{Name: "web-2", Namespace: "default", Phase: v1.PodFailed},
				Outcome: logsCaptured("/tmp/out/web-2-logs.txt", 12, "abc123"),
			},
			{
				Pod:     PodRecord{Name: "job-7", Namespace: "default", Phase: v1.PodSucceeded},
				Outcome: logsCaptureFailed("the log file has been rotated away"),
			},
		},
	}
}

// TestDisplayTable tests the table rows and the summary line
func TestDisplayTable(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, DisplayTable(buf, testResult()))

	out := buf.String()
	assert.Contains(t, out, "NAMESPACE")
	assert.Contains(t, out, "OUTCOME")
	assert.Regexp(t, `web-1\s+Running\s+NoActionNeeded`, out)
	assert.Regexp(t, `web-2\s+Failed\s+LogsCaptured\s+/tmp/out/web-2-logs.txt`, out)
	assert.Regexp(t, `job-7\s+Succeeded\s+LogsCaptureFailed\s+the log file has been rotated away`, out)
	assert.Contains(t, out, "3 pods, 1 logs captured, 1 captures failed")
}

// TestDisplayTableEmpty tests the message for a namespace without pods
func TestDisplayTableEmpty(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, DisplayTable(buf, &Result{Namespace: "sales"}))
	assert.Equal(t, "No pods found in namespace sales\n", buf.String())
}

// TestDisplayYAML tests that the yaml summary decodes back into the result
func TestDisplayYAML(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, Display(buf, testResult(), OutputYAML))

	got := &Result{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), got))
	assert.Equal(t, testResult(), got)
	assert.Contains(t, buf.String(), "kind: LogsCaptured")
}

// TestDisplayJSON tests that the json summary omits fields that do not apply
func TestDisplayJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, Display(buf, testResult(), OutputJSON))

	raw := map[string]any{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	entries := raw["entries"].([]any)
	require.Len(t, entries, 3)

	first := entries[0].(map[string]any)["outcome"].(map[string]any)
	assert.Equal(t, map[string]any{"kind": "NoActionNeeded"}, first)

	second := entries[1].(map[string]any)["outcome"].(map[string]any)
	assert.Equal(t, "abc123", second["digest"])
	assert.NotContains(t, second, "reason")
}

// TestDisplayUnknownFormat tests that an unknown format is an error
func TestDisplayUnknownFormat(t *testing.T) {
	err := Display(&bytes.Buffer{}, testResult(), "xml")
	assert.ErrorContains(t, err, "xml")
}
