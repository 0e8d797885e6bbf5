// Copyright (c) 2025, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package sweep

import (
	"errors"
	"fmt"

	v1 "k8s.io/api/core/v1"
)

// artifactSuffix is appended to the pod name to form the artifact name
const artifactSuffix = "-logs.txt"

var (
	ErrInvalidNamespace  = errors.New("invalid namespace")
	ErrNamespaceNotFound = errors.New("namespace not found")
)

// EnumerationError is returned when the pods of a namespace could not be
// listed.  No part of the sweep result is usable when this happens.
type EnumerationError struct {
	Namespace string
	Err       error
}

func (e *EnumerationError) Error() string {
	return fmt.Sprintf("Unable to list pods in namespace %q: %v", e.Namespace, e.Err)
}

func (e *EnumerationError) Unwrap() error {
	return e.Err
}

// PodRecord is the state of one pod as observed during a sweep
type PodRecord struct {
	Name      string      `json:"name"`
	Namespace string      `json:"namespace"`
	Phase     v1.PodPhase `json:"phase"`

	// Reason is the brief status reason reported for the pod, such as "Evicted"
	Reason string `json:"reason,omitempty"`
}

// OutcomeKind says what the sweep did for a pod
type OutcomeKind string

const (
	NoActionNeeded    OutcomeKind = "NoActionNeeded"
	LogsCaptured      OutcomeKind = "LogsCaptured"
	LogsCaptureFailed OutcomeKind = "LogsCaptureFailed"
)

// Outcome is the result of processing a single pod.  Path, Size and Digest
// are only set for LogsCaptured, Reason only for LogsCaptureFailed.  Size
// and Digest describe the captured log after redaction and before any
// compression applied by the sink, so they stay the same whether or not
// Path names a compressed file.
type Outcome struct {
	Kind   OutcomeKind `json:"kind"`
	Path   string      `json:"path,omitempty"`
	Size   int         `json:"size,omitempty"`
	Digest string      `json:"digest,omitempty"`
	Reason string      `json:"reason,omitempty"`
}

func noActionNeeded() Outcome {
	return Outcome{Kind: NoActionNeeded}
}

func logsCaptured(path string, size int, digest string) Outcome {
	return Outcome{Kind: LogsCaptured, Path: path, Size: size, Digest: digest}
}

func logsCaptureFailed(reason string) Outcome {
	return Outcome{Kind: LogsCaptureFailed, Reason: reason}
}

// Entry pairs a pod with what was done for it
type Entry struct {
	Pod     PodRecord `json:"pod"`
	Outcome Outcome   `json:"outcome"`
}

// Result is the outcome of a sweep.  Entries are in the order the API
// server returned the pods.
type Result struct {
	Namespace string  `json:"namespace"`
	Entries   []Entry `json:"entries"`
}

// Count returns the number of entries with the given outcome kind
func (r *Result) Count(kind OutcomeKind) int {
	n := 0
	for _, e := range r.Entries {
		if e.Outcome.Kind == kind {
			n++
		}
	}
	return n
}

// HasFailures is true if any log capture failed
func (r *Result) HasFailures() bool {
	return r.Count(LogsCaptureFailed) > 0
}

// ArtifactName returns the sink name for the logs of a pod
func ArtifactName(podName string) string {
	return podName + artifactSuffix
}
