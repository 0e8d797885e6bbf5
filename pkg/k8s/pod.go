// Copyright (c) 2024, 2025, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package k8s

import (
	"bytes"
	"context"
	"io"

	v1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/kubectl/pkg/cmd/util/podcmd"
)

// ListPods returns all the pods in a namespace, in the order the API server returned them
func ListPods(ctx context.Context, client kubernetes.Interface, namespace string) (*v1.PodList, error) {
	return client.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{})
}

// ReadPodLogs reads the complete log stream of a pod container into memory.
// Nothing is returned unless the whole stream was read.
func ReadPodLogs(ctx context.Context, client kubernetes.Interface, namespace string, name string, opts *v1.PodLogOptions) ([]byte, error) {
	stream, err := client.CoreV1().Pods(namespace).GetLogs(name, opts).Stream(ctx)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	buf := &bytes.Buffer{}
	if _, err := io.Copy(buf, stream); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DefaultContainerName returns the container that kubectl would pick for
// "kubectl logs" when no container is given.  The default-container
// annotation wins, then the first container in the spec.
func DefaultContainerName(pod *v1.Pod) (string, error) {
	c, err := podcmd.FindOrDefaultContainerByName(pod, "", true, io.Discard)
	if err != nil {
		return "", err
	}
	return c.Name, nil
}

// ContainerNames returns the init containers followed by the app containers
func ContainerNames(pod *v1.Pod) []string {
	var names []string
	for _, c := range pod.Spec.InitContainers {
		names = append(names, c.Name)
	}
	for _, c := range pod.Spec.Containers {
		names = append(names, c.Name)
	}
	return names
}
