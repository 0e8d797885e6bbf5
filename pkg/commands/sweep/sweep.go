// Copyright (c) 2025, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package sweep

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oracle-cne/podtriage/pkg/k8s"
	"github.com/oracle-cne/podtriage/pkg/sanitize"
	"github.com/oracle-cne/podtriage/pkg/sink"
	log "github.com/sirupsen/logrus"
	v1 "k8s.io/api/core/v1"
	kerrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/util/validation"
	"k8s.io/client-go/kubernetes"
)

const (
	DefaultListTimeout = 30 * time.Second
	DefaultLogTimeout  = 30 * time.Second
)

// LogReader reads the complete log of a pod container
type LogReader func(ctx context.Context, namespace string, podName string, opts *v1.PodLogOptions) ([]byte, error)

// SweepParams are the collaborators and tunables of a single sweep
type SweepParams struct {
	// KubeClient is an authenticated client for the cluster.  Required.
	KubeClient kubernetes.Interface

	// Sink receives the log artifacts.  Required.
	Sink sink.Sink

	// ReadLogs overrides how logs are read.  Defaults to streaming them
	// through KubeClient.
	ReadLogs LogReader

	// Redactor, if set, is applied to every artifact before it is stored
	Redactor *sanitize.Redactor

	// ListTimeout bounds the namespace lookup and pod list
	ListTimeout time.Duration

	// LogTimeout bounds the log retrieval of each pod
	LogTimeout time.Duration

	// Workers is the number of pods whose logs are fetched at the same
	// time.  Zero or one means one pod at a time.
	Workers int

	// TailLines, SinceSeconds and LimitBytes are passed on to the log query
	TailLines    *int64
	SinceSeconds *int64
	LimitBytes   *int64

	// AllContainers captures every init and app container of a pod
	// into one artifact instead of just the default container
	AllContainers bool
}

// ValidateNamespace returns an error unless name is a valid namespace name
func ValidateNamespace(name string) error {
	if name == "" {
		return fmt.Errorf("%w: a namespace must be specified", ErrInvalidNamespace)
	}
	if errs := validation.IsDNS1123Label(name); len(errs) > 0 {
		return fmt.Errorf("%w %q: %s", ErrInvalidNamespace, name, strings.Join(errs, "; "))
	}
	return nil
}

// Sweep lists the pods in a namespace and captures the logs of every pod
// that is not running.  An error is returned only if the pods could not be
// listed, in which case there is no result.  Failures to capture the logs
// of a pod are recorded in that pod's entry.
func Sweep(ctx context.Context, namespace string, p SweepParams) (*Result, error) {
	if err := ValidateNamespace(namespace); err != nil {
		return nil, err
	}
	if p.KubeClient == nil || p.Sink == nil {
		return nil, fmt.Errorf("A Kubernetes client and a sink are required to sweep namespace %s", namespace)
	}
	setDefaults(&p)

	pods, err := enumerate(ctx, namespace, p)
	if err != nil {
		return nil, err
	}
	log.Debugf("Found %d pods in namespace %s", len(pods), namespace)

	// every node name must be known before the first log is redacted
	if p.Redactor != nil {
		for i := range pods {
			p.Redactor.AddKnownName(pods[i].Spec.NodeName)
		}
	}

	result := &Result{
		Namespace: namespace,
		Entries:   make([]Entry, len(pods)),
	}

	sem := make(chan struct{}, p.Workers)
	wg := sync.WaitGroup{}
	for i := range pods {
		pod := &pods[i]
		rec := newPodRecord(pod, namespace)
		result.Entries[i].Pod = rec

		if rec.Phase == v1.PodRunning {
			log.Infof("Pod %s/%s is %s", rec.Namespace, rec.Name, rec.Phase)
			result.Entries[i].Outcome = noActionNeeded()
			continue
		}
		log.Infof("Pod %s/%s is %s, capturing logs", rec.Namespace, rec.Name, rec.Phase)

		if p.Workers == 1 {
			result.Entries[i].Outcome = capturePod(ctx, p, pod, rec)
			continue
		}

		// block until a slot is free.  Each goroutine only writes its own entry.
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			result.Entries[i].Outcome = capturePod(ctx, p, pod, rec)
			<-sem
		}(i)
	}
	wg.Wait()

	return result, nil
}

func setDefaults(p *SweepParams) {
	if p.ListTimeout <= 0 {
		p.ListTimeout = DefaultListTimeout
	}
	if p.LogTimeout <= 0 {
		p.LogTimeout = DefaultLogTimeout
	}
	if p.Workers < 1 {
		p.Workers = 1
	}
	if p.ReadLogs == nil {
		cli := p.KubeClient
		p.ReadLogs = func(ctx context.Context, namespace string, podName string, opts *v1.PodLogOptions) ([]byte, error) {
			return k8s.ReadPodLogs(ctx, cli, namespace, podName, opts)
		}
	}
}

// enumerate returns the pods of the namespace in the order the API server
// listed them.  Listing pods in a namespace that does not exist succeeds
// with an empty list, so the namespace is looked up first.
func enumerate(ctx context.Context, namespace string, p SweepParams) ([]v1.Pod, error) {
	ctx, cancel := context.WithTimeout(ctx, p.ListTimeout)
	defer cancel()

	if _, err := k8s.GetNamespace(ctx, p.KubeClient, namespace); err != nil {
		switch {
		case kerrors.IsNotFound(err):
			return nil, &EnumerationError{Namespace: namespace, Err: ErrNamespaceNotFound}
		case kerrors.IsForbidden(err):
			// a role scoped to the namespace may list pods without being able to read the namespace
			log.Debugf("Not allowed to get namespace %s, listing its pods anyway: %v", namespace, err)
		default:
			return nil, &EnumerationError{Namespace: namespace, Err: err}
		}
	}

	podList, err := k8s.ListPods(ctx, p.KubeClient, namespace)
	if err != nil {
		return nil, &EnumerationError{Namespace: namespace, Err: err}
	}
	return podList.Items, nil
}

// newPodRecord snapshots the fields of a pod the sweep cares about
func newPodRecord(pod *v1.Pod, namespace string) PodRecord {
	ns := pod.Namespace
	if ns == "" {
		ns = namespace
	}
	return PodRecord{
		Name:      pod.Name,
		Namespace: ns,
		Phase:     classifyPhase(pod.Status.Phase),
		Reason:    pod.Status.Reason,
	}
}

// classifyPhase maps an empty or unrecognized phase to Unknown
func classifyPhase(phase v1.PodPhase) v1.PodPhase {
	switch phase {
	case v1.PodPending, v1.PodRunning, v1.PodSucceeded, v1.PodFailed, v1.PodUnknown:
		return phase
	default:
		return v1.PodUnknown
	}
}
