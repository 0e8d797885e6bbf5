// Copyright (c) 2025, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package client

import (
	"bytes"
	"sync"

	log "github.com/sirupsen/logrus"
	"k8s.io/klog/v2"
)

var klogOnce sync.Once

// structured klog calls are dropped, only the text buffer is forwarded
var klogLogger klog.Logger

// routeKlogToLogrus sends client-go's klog output through logrus at the
// debug level.
func routeKlogToLogrus() {
	klogOnce.Do(func() {
		klog.SetLoggerWithOptions(klogLogger, klog.ContextualLogger(true), klog.WriteKlogBuffer(func(msg []byte) {
			log.Debugf("%s", bytes.TrimRight(msg, "\n"))
		}))
	})
}
