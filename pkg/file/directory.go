// Copyright (c) 2024, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package file

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/oracle-cne/podtriage/pkg/constants"
)

// CreateTempDir creates a temp dir to hold artifacts before they are archived
func CreateTempDir(nameOfTempDir string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	// Use homedir for temp files since root might own temp dir on OSX and we get
	// errors trying to create temp files
	hidden := filepath.Join(home, constants.UserConfigDir, "tmp")
	err = os.MkdirAll(hidden, 0700)
	if err != nil && !os.IsExist(err) {
		return "", err
	}

	return os.MkdirTemp(hidden, nameOfTempDir)
}

// AbsDir returns the absolute director of the string, expanding ~/ prefix if needed.
func AbsDir(dir string) (string, error) {
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, strings.TrimPrefix(dir, "~")), nil
	}

	return filepath.Abs(dir)
}
