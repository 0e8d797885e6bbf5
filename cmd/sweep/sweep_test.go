// Copyright (c) 2025, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package sweep

import (
	"testing"
	"time"

	"github.com/oracle-cne/podtriage/pkg/config"
	"github.com/oracle-cne/podtriage/pkg/config/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDefaults() *types.Config {
	return &types.Config{
		Namespace:       config.GenerateStringPointer("sales"),
		OutputDirectory: config.GenerateStringPointer("/tmp/triage"),
		LogTimeout:      config.GenerateDurationPointer(time.Minute),
		Workers:         config.GenerateIntegerPointer(4),
		TailLines:       func() *int64 { v := int64(50); return &v }(),
		Compression:     config.GenerateStringPointer("zstd"),
		Redact:          config.GenerateBooleanPointer(true),
	}
}

// TestApplyDefaults tests that the defaults file fills in flags the user did not set
func TestApplyDefaults(t *testing.T) {
	cmd := NewCmd()
	require.NoError(t, cmd.ParseFlags([]string{"-n", "billing", "--workers", "2"}))

	applyDefaults(cmd, testDefaults())
	require.NoError(t, setLogOptions())

	assert.Equal(t, "billing", options.Namespace)
	assert.Equal(t, 2, options.Workers)
	assert.Equal(t, "/tmp/triage", options.OutDir)
	assert.Equal(t, time.Minute, options.LogTimeout)
	assert.Equal(t, "zstd", options.Compression)
	assert.True(t, options.Redact)
	require.NotNil(t, options.TailLines)
	assert.Equal(t, int64(50), *options.TailLines)
	assert.Nil(t, options.SinceSeconds)
	assert.Nil(t, options.LimitBytes)
}

// TestApplyDefaultsArchive tests that the default output directory is
// ignored when an archive is requested
func TestApplyDefaultsArchive(t *testing.T) {
	cmd := NewCmd()
	require.NoError(t, cmd.ParseFlags([]string{"-z", "/tmp/out.tgz"}))

	applyDefaults(cmd, testDefaults())
	assert.Equal(t, "/tmp/out.tgz", options.ArchiveFile)
	assert.NotEqual(t, "/tmp/triage", options.OutDir)
}

// TestLogOptionFlags tests the conversion of the log flags
func TestLogOptionFlags(t *testing.T) {
	cmd := NewCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--since", "90m", "--limit-bytes", "1024", "--tail", "10"}))
	require.NoError(t, setLogOptions())

	assert.Equal(t, int64(5400), *options.SinceSeconds)
	assert.Equal(t, int64(1024), *options.LimitBytes)
	assert.Equal(t, int64(10), *options.TailLines)

	cmd = NewCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--since=-1s"}))
	assert.Error(t, setLogOptions())

	cmd = NewCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--workers=0"}))
	assert.Error(t, setLogOptions())
}
