// Copyright (c) 2024, 2025, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oracle-cne/podtriage/pkg/config/types"
	"github.com/oracle-cne/podtriage/pkg/constants"
	"gopkg.in/yaml.v3"
)

// ParseConfig takes a yaml-encoded string and parses it
// into a Config structure.
func ParseConfig(in string) (*types.Config, error) {
	ret := &types.Config{}
	err := yaml.Unmarshal([]byte(in), ret)
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// ParseConfigFile takes the path to a file, reads the contents,
// and parses it into a Config structure.
func ParseConfigFile(configPath string) (*types.Config, error) {
	configBytes, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	conf, err := ParseConfig(string(configBytes))
	if err != nil {
		return nil, fmt.Errorf("could not parse config file %s: %s", configPath, err.Error())
	}
	return conf, nil
}

// GetDefaultConfig returns the global default config.  It starts
// with a hard-coded set of defaults.  It then attempts to read a
// global overrides file.  If such a file is found, the entries in
// that file are merged into the hard-coded defaults.
func GetDefaultConfig() (*types.Config, error) {
	defaultConfig := types.Config{
		KubeConfig:      GenerateStringPointer(""),
		Namespace:       GenerateStringPointer(constants.Namespace),
		OutputDirectory: GenerateStringPointer(constants.OutputDir),
		Output:          GenerateStringPointer(constants.Output),
		ListTimeout:     GenerateDurationPointer(30 * time.Second),
		LogTimeout:      GenerateDurationPointer(30 * time.Second),
		Workers:         GenerateIntegerPointer(constants.Workers),
		AllContainers:   GenerateBooleanPointer(false),
		Compression:     GenerateStringPointer(constants.Compression),
		Redact:          GenerateBooleanPointer(false),
	}

	defaultPath, err := defaultsPath()
	if err != nil {
		return nil, err
	}

	configFileDefaults, err := ParseConfigFile(defaultPath)
	if os.IsNotExist(err) {
		return &defaultConfig, nil
	} else if err != nil {
		return nil, err
	}
	ret := types.MergeConfig(&defaultConfig, configFileDefaults)
	return &ret, nil
}

// defaultsPath prefers the path set by PODTRIAGE_DEFAULTS.  If that is
// not set, the file in the user's home directory is used.
func defaultsPath() (string, error) {
	if p := os.Getenv(constants.UserConfigDefaultsEnvironmentVariable); p != "" {
		return p, nil
	}
	homedir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homedir, constants.UserConfigDefaults), nil
}

// GenerateStringPointer is a helper function used to generate a string pointer
// This is useful when working with constants
func GenerateStringPointer(s string) *string {
	return &s
}

// GenerateIntegerPointer is a helper function used to generate an integer pointer
// This is useful when working with constants
func GenerateIntegerPointer(i int) *int {
	return &i
}

// GenerateBooleanPointer is a helper function used to generate an boolean pointer
// This is useful when working with constants
func GenerateBooleanPointer(b bool) *bool {
	return &b
}

// GenerateDurationPointer is a helper function used to generate a duration pointer
func GenerateDurationPointer(d time.Duration) *time.Duration {
	return &d
}
