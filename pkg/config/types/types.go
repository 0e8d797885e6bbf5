// Copyright (c) 2024, 2025, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package types

import "time"

// Config holds the defaults for the sweep command.  Every field is a
// pointer so that an unset field can be told apart from a zero value.
type Config struct {
	KubeConfig      *string        `yaml:"kubeconfig"`
	Namespace       *string        `yaml:"namespace"`
	OutputDirectory *string        `yaml:"outputDirectory"`
	Output          *string        `yaml:"output"`
	ListTimeout     *time.Duration `yaml:"listTimeout"`
	LogTimeout      *time.Duration `yaml:"logTimeout"`
	Workers         *int           `yaml:"workers"`
	TailLines       *int64         `yaml:"tailLines"`
	LimitBytes      *int64         `yaml:"limitBytes"`
	AllContainers   *bool          `yaml:"allContainers"`
	Compression     *string        `yaml:"compression"`
	Redact          *bool          `yaml:"redact"`
}

// iesp is short for "If Else String Pointer".  If the second argument
// is not nil, it is returned.  Otherwise, the first argument is returned.
func iesp(i *string, e *string) *string {
	if e != nil {
		return e
	}
	return i
}

// iedp is short for "If Else Duration Pointer"
func iedp(i *time.Duration, e *time.Duration) *time.Duration {
	if e != nil {
		return e
	}
	return i
}

// ieip is short for "If Else Int Pointer"
func ieip(i *int, e *int) *int {
	if e != nil {
		return e
	}
	return i
}

// ie64p is short for "If Else Int64 Pointer"
func ie64p(i *int64, e *int64) *int64 {
	if e != nil {
		return e
	}
	return i
}

// iebpp is short for "If Else Bool Pointer Pointer"
func iebpp(i *bool, e *bool) *bool {
	if e != nil {
		return e
	}
	return i
}

// MergeConfig takes two Configs and merges them into a third.
// The default values for the result come from the first argument.  If a value
// is set in the second argument, that value takes precedence.
func MergeConfig(def *Config, ovr *Config) Config {
	if ovr == nil {
		return *def
	}

	return Config{
		KubeConfig:      iesp(def.KubeConfig, ovr.KubeConfig),
		Namespace:       iesp(def.Namespace, ovr.Namespace),
		OutputDirectory: iesp(def.OutputDirectory, ovr.OutputDirectory),
		Output:          iesp(def.Output, ovr.Output),
		ListTimeout:     iedp(def.ListTimeout, ovr.ListTimeout),
		LogTimeout:      iedp(def.LogTimeout, ovr.LogTimeout),
		Workers:         ieip(def.Workers, ovr.Workers),
		TailLines:       ie64p(def.TailLines, ovr.TailLines),
		LimitBytes:      ie64p(def.LimitBytes, ovr.LimitBytes),
		AllContainers:   iebpp(def.AllContainers, ovr.AllContainers),
		Compression:     iesp(def.Compression, ovr.Compression),
		Redact:          iebpp(def.Redact, ovr.Redact),
	}
}
