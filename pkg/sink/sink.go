// Copyright (c) 2025, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sink stores named blobs.  Put creates the blob or replaces an existing
// blob with the same name and returns the location it was written to.
// Implementations must accept concurrent calls for distinct names.
type Sink interface {
	Put(ctx context.Context, name string, data []byte) (string, error)
}

// DirSink writes each blob as a file in a directory
type DirSink struct {
	Dir string
}

// NewDirSink returns a sink that writes into dir.  The directory is
// created on the first write.
func NewDirSink(dir string) *DirSink {
	return &DirSink{Dir: dir}
}

// Put writes the data to a temporary file next to the destination and
// renames it into place, so a reader never sees a partially written file
// and a failed write leaves any previous file untouched.
func (d *DirSink) Put(ctx context.Context, name string, data []byte) (string, error) {
	if err := validName(name); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(d.Dir, 0755); err != nil {
		return "", fmt.Errorf("Error creating the directory %s: %w", d.Dir, err)
	}

	path := filepath.Join(d.Dir, name)
	tmp, err := os.CreateTemp(d.Dir, ".artifact-*.tmp")
	if err != nil {
		return "", fmt.Errorf("Error creating file for %s: %w", path, err)
	}
	tmpPath := tmp.Name()

	fail := func(err error) (string, error) {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("Error writing file %s: %w", path, err)
	}

	if _, err := tmp.Write(data); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Chmod(0644); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("Error writing file %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("Error writing file %s: %w", path, err)
	}
	return path, nil
}

// validName rejects names that would escape the sink directory
func validName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("Invalid artifact name %q", name)
	}
	return nil
}
