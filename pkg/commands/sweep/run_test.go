// Copyright (c) 2025, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package sweep

import (
	"archive/tar"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/oracle-cne/podtriage/pkg/k8s/client"
	"github.com/oracle-cne/podtriage/pkg/sanitize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useFakeClient(t *testing.T, namespace string, podYAML string) {
	client.SetFakeClient(newFakeClient(namespace, podsFromYAML(t, podYAML)))
	t.Cleanup(client.ClearFakeClient)
}

// TestRun tests a sweep into an output directory with a table summary
func TestRun(t *testing.T) {
	useFakeClient(t, "default", webPods)
	dir := filepath.Join(t.TempDir(), "out")
	buf := &bytes.Buffer{}

	r, err := Run(context.Background(), Options{
		Namespace: "default",
		OutDir:    dir,
		Output:    OutputTable,
		Writer:    buf,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, r.Count(LogsCaptured))

	data, err := os.ReadFile(filepath.Join(dir, "web-2-logs.txt"))
	require.NoError(t, err)
	assert.Equal(t, "fake logs", string(data))
	assert.Contains(t, buf.String(), "2 pods, 1 logs captured, 0 captures failed")
}

// TestRunArchive tests that an archive holds the artifacts and the temporary
// directory is removed
func TestRunArchive(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	useFakeClient(t, "default", webPods)
	archive := filepath.Join(t.TempDir(), "triage.tgz")

	r, err := Run(context.Background(), Options{
		Namespace:   "default",
		Output:      OutputYAML,
		Writer:      io.Discard,
		Redact:      true,
		ArchiveFile: archive,
	})
	require.NoError(t, err)
	assert.Equal(t, "web-2-logs.txt", r.Entries[1].Outcome.Path)

	f, err := os.Open(archive)
	require.NoError(t, err)
	defer f.Close()
	gz, err := gzip.NewReader(f)
	require.NoError(t, err)
	tr := tar.NewReader(gz)

	var names []string
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		names = append(names, hdr.Name)
	}
	// "fake logs" has nothing to redact, so there is no map
	assert.Equal(t, []string{"web-2-logs.txt"}, names)
	assert.NotContains(t, names, sanitize.RedactionMap)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	tmp, err := os.ReadDir(filepath.Join(home, ".podtriage", "tmp"))
	require.NoError(t, err)
	assert.Empty(t, tmp)
}

// TestRunValidation tests that bad options are rejected before connecting
func TestRunValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{name: "namespace", opts: Options{Namespace: "Bad_NS", Output: OutputTable}},
		{name: "archive", opts: Options{Namespace: "default", Output: OutputTable, ArchiveFile: "out.zip"}},
		{name: "output", opts: Options{Namespace: "default", Output: "xml"}},
		{name: "compression", opts: Options{Namespace: "default", Output: OutputTable, Compression: "lz4", OutDir: t.TempDir()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useFakeClient(t, "default", webPods)
			r, err := Run(context.Background(), tt.opts)
			assert.Nil(t, r)
			assert.Error(t, err)
		})
	}
}

// TestRunMissingNamespace tests that the hard failure reaches the caller and nothing is written
func TestRunMissingNamespace(t *testing.T) {
	useFakeClient(t, "default", webPods)
	dir := filepath.Join(t.TempDir(), "out")

	r, err := Run(context.Background(), Options{
		Namespace: "missing-ns",
		OutDir:    dir,
		Output:    OutputTable,
		Writer:    io.Discard,
	})
	assert.Nil(t, r)
	assert.ErrorIs(t, err, ErrNamespaceNotFound)
	assert.NoDirExists(t, dir)
}
