// Copyright (c) 2024, 2025, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package sink

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// ValidArchiveName returns an error unless the path ends in .tgz or .tar.gz
func ValidArchiveName(archiveFilePath string) error {
	if !strings.HasSuffix(archiveFilePath, ".tgz") && !strings.HasSuffix(archiveFilePath, ".tar.gz") {
		return fmt.Errorf("An archive file path must end in .tgz or .tar.gz")
	}
	return nil
}

// CreateArchive creates the .tar.gz file specified by archiveFilePath from the
// regular files in srcDir.  Entry names are relative to srcDir.
func CreateArchive(srcDir string, archiveFilePath string) (err error) {
	if err := os.MkdirAll(filepath.Dir(archiveFilePath), 0755); err != nil {
		return err
	}
	archiveFile, err := os.Create(archiveFilePath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := archiveFile.Close(); err == nil {
			err = cerr
		}
	}()

	gzipWriter := gzip.NewWriter(archiveFile)
	tarWriter := tar.NewWriter(gzipWriter)

	walkFn := func(path string, fileInfo os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fileInfo.Mode().IsRegular() {
			return nil
		}
		relPath, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}

		fih, err := tar.FileInfoHeader(fileInfo, relPath)
		if err != nil {
			return err
		}
		fih.Name = filepath.ToSlash(relPath)
		if err := tarWriter.WriteHeader(fih); err != nil {
			return err
		}

		fileReader, err := os.Open(path)
		if err != nil {
			return err
		}
		defer fileReader.Close()
		_, err = io.Copy(tarWriter, fileReader)
		return err
	}

	if err := filepath.Walk(srcDir, walkFn); err != nil {
		return err
	}
	if err := tarWriter.Close(); err != nil {
		return err
	}
	return gzipWriter.Close()
}
