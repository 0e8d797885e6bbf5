// Copyright (c) 2025, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package info

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPrintInfo tests that the honoured environment variables are listed with their values
func TestPrintInfo(t *testing.T) {
	t.Setenv("KUBECONFIG", "/tmp/kubeconfig")
	t.Setenv("PODTRIAGE_DEFAULTS", "")

	buf := &bytes.Buffer{}
	require.NoError(t, printInfo(buf))

	out := buf.String()
	assert.Contains(t, out, "The PODTRIAGE_DEFAULTS environment variable")
	assert.Regexp(t, `KUBECONFIG\s+/tmp/kubeconfig`, out)
	assert.Regexp(t, `PODTRIAGE_DEFAULTS\s*\n`, out)
}
