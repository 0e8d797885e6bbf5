// Copyright (c) 2024, 2025, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package sweep

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oracle-cne/podtriage/pkg/k8s"
	"github.com/oracle-cne/podtriage/pkg/sink"
	log "github.com/sirupsen/logrus"
	v1 "k8s.io/api/core/v1"
)

const (
	containerStartLog = "==== START logs for container %s of pod %s/%s ====\n"
	containerEndLog   = "==== END logs for container %s of pod %s/%s ====\n"

	emptyLogReason = "log stream is empty"
)

// capturePod makes one attempt to read the logs of a pod and store them.
// Any failure is turned into a LogsCaptureFailed outcome.
func capturePod(ctx context.Context, p SweepParams, pod *v1.Pod, rec PodRecord) Outcome {
	data, err := readLogs(ctx, p, pod, rec.Namespace)
	if err != nil {
		return captureFailed(rec, describeError(err, p.LogTimeout))
	}
	if len(data) == 0 {
		return captureFailed(rec, emptyLogReason)
	}

	if p.Redactor != nil {
		data = p.Redactor.Redact(data)
	}

	path, err := p.Sink.Put(ctx, ArtifactName(rec.Name), data)
	if err != nil {
		return captureFailed(rec, err.Error())
	}

	log.Infof("Captured logs for pod %s/%s to %s", rec.Namespace, rec.Name, path)
	return logsCaptured(path, len(data), sink.Digest(data))
}

func captureFailed(rec PodRecord, reason string) Outcome {
	log.Errorf("Failed to capture logs for pod %s/%s in phase %s: %s", rec.Namespace, rec.Name, rec.Phase, reason)
	return logsCaptureFailed(reason)
}

// readLogs returns the whole log of the pod, bounded by the log timeout
func readLogs(ctx context.Context, p SweepParams, pod *v1.Pod, namespace string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, p.LogTimeout)
	defer cancel()

	if p.AllContainers {
		return readAllContainerLogs(ctx, p, pod, namespace)
	}

	opts := podLogOptions(p)
	// leave the container unset for single container pods so the API
	// server picks it, which also works for pods whose spec is incomplete
	if len(pod.Spec.Containers) > 1 {
		name, err := k8s.DefaultContainerName(pod)
		if err != nil {
			return nil, err
		}
		opts.Container = name
	}
	return p.ReadLogs(ctx, namespace, pod.Name, opts)
}

// readAllContainerLogs concatenates the logs from all the containers,
// with lines differentiating the logs from each of the containers.  If
// any container fails the whole capture fails.
func readAllContainerLogs(ctx context.Context, p SweepParams, pod *v1.Pod, namespace string) ([]byte, error) {
	names := k8s.ContainerNames(pod)
	if len(names) == 0 {
		return nil, fmt.Errorf("pod %s/%s does not have any containers", namespace, pod.Name)
	}

	buf := &bytes.Buffer{}
	for _, c := range names {
		opts := podLogOptions(p)
		opts.Container = c
		data, err := p.ReadLogs(ctx, namespace, pod.Name, opts)
		if err != nil {
			return nil, fmt.Errorf("container %s: %w", c, err)
		}
		fmt.Fprintf(buf, containerStartLog, c, namespace, pod.Name)
		buf.Write(data)
		if len(data) > 0 && data[len(data)-1] != '\n' {
			buf.WriteByte('\n')
		}
		fmt.Fprintf(buf, containerEndLog, c, namespace, pod.Name)
	}
	return buf.Bytes(), nil
}

func podLogOptions(p SweepParams) *v1.PodLogOptions {
	return &v1.PodLogOptions{
		TailLines:    p.TailLines,
		SinceSeconds: p.SinceSeconds,
		LimitBytes:   p.LimitBytes,
	}
}

// describeError turns a log retrieval error into a reason for the report
func describeError(err error, timeout time.Duration) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Sprintf("timed out after %s reading the log stream", timeout)
	}
	return err.Error()
}
