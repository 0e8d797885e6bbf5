// Copyright (c) 2025, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package sink

import (
	"archive/tar"
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirSinkPutCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	s := NewDirSink(dir)

	path, err := s.Put(context.Background(), "web-2-logs.txt", []byte("line 1\nline 2\n"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "web-2-logs.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "line 1\nline 2\n", string(data))
}

// A second put for the same name replaces the blob, and no temp files are left behind
func TestDirSinkPutOverwrites(t *testing.T) {
	dir := t.TempDir()
	s := NewDirSink(dir)

	_, err := s.Put(context.Background(), "job-7-logs.txt", []byte("a much longer first snapshot"))
	require.NoError(t, err)
	path, err := s.Put(context.Background(), "job-7-logs.txt", []byte("second"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

// A name that fits the file system limit is written even when it is close to it
func TestDirSinkPutLongName(t *testing.T) {
	dir := t.TempDir()
	name := strings.Repeat("a", 245) + "-logs.txt"

	path, err := NewDirSink(dir).Put(context.Background(), name, []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, name), path)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestDirSinkRejectsBadNames(t *testing.T) {
	s := NewDirSink(t.TempDir())
	for _, name := range []string{"", ".", "..", "../escape", "a/b", `a\b`} {
		_, err := s.Put(context.Background(), name, []byte("x"))
		assert.Error(t, err, "name %q should be rejected", name)
	}
}

func TestDirSinkCancelledContext(t *testing.T) {
	dir := t.TempDir()
	s := NewDirSink(dir)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Put(ctx, "p-logs.txt", []byte("x"))
	assert.ErrorIs(t, err, context.Canceled)
	_, statErr := os.Stat(filepath.Join(dir, "p-logs.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestZstdSinkRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, err := Wrap(NewDirSink(dir), CompressionZstd)
	require.NoError(t, err)

	payload := []byte("error: connection refused\nerror: connection refused\nerror: connection refused\n")
	path, err := s.Put(context.Background(), "web-2-logs.txt", payload)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "web-2-logs.txt"+ZstdSuffix), path)

	compressed, err := os.ReadFile(path)
	require.NoError(t, err)
	plain, err := Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, payload, plain)
}

func TestWrap(t *testing.T) {
	base := NewDirSink(t.TempDir())

	s, err := Wrap(base, "")
	assert.NoError(t, err)
	assert.Same(t, base, s)

	s, err = Wrap(base, CompressionNone)
	assert.NoError(t, err)
	assert.Same(t, base, s)

	_, err = Wrap(base, "lzma")
	assert.Error(t, err)
}

func TestDigest(t *testing.T) {
	assert.Equal(t, "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262", Digest(nil))
	assert.Len(t, Digest([]byte("fake logs")), 64)
	assert.Equal(t, Digest([]byte("fake logs")), Digest([]byte("fake logs")))
	assert.NotEqual(t, Digest([]byte("fake logs")), Digest([]byte("fake log")))
}

func TestCreateArchive(t *testing.T) {
	src := t.TempDir()
	s := NewDirSink(src)
	_, err := s.Put(context.Background(), "web-2-logs.txt", []byte("web-2"))
	require.NoError(t, err)
	_, err = s.Put(context.Background(), "job-7-logs.txt", []byte("job-7"))
	require.NoError(t, err)

	archivePath := filepath.Join(t.TempDir(), "out", "triage.tgz")
	require.NoError(t, ValidArchiveName(archivePath))
	require.NoError(t, CreateArchive(src, archivePath))

	f, err := os.Open(archivePath)
	require.NoError(t, err)
	defer f.Close()
	gz, err := gzip.NewReader(f)
	require.NoError(t, err)
	tr := tar.NewReader(gz)

	contents := map[string]string{}
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		b, err := io.ReadAll(tr)
		require.NoError(t, err)
		contents[hdr.Name] = string(b)
	}

	var names []string
	for n := range contents {
		names = append(names, n)
	}
	sort.Strings(names)
	assert.Equal(t, []string{"job-7-logs.txt", "web-2-logs.txt"}, names)
	assert.Equal(t, "web-2", contents["web-2-logs.txt"])
}

func TestValidArchiveName(t *testing.T) {
	assert.NoError(t, ValidArchiveName("/tmp/a.tgz"))
	assert.NoError(t, ValidArchiveName("/tmp/a.tar.gz"))
	assert.Error(t, ValidArchiveName("/tmp/a.zip"))
}
