// Copyright (c) 2024, 2025, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package sweep

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/oracle-cne/podtriage/pkg/file"
	"github.com/oracle-cne/podtriage/pkg/k8s/client"
	"github.com/oracle-cne/podtriage/pkg/sanitize"
	"github.com/oracle-cne/podtriage/pkg/sink"
	log "github.com/sirupsen/logrus"
)

// Options are the options for the sweep command
type Options struct {
	// KubeConfigPath is the path to the optional kubeconfig file
	KubeConfigPath string

	// Namespace is the namespace to sweep
	Namespace string

	// OutDir is the directory the log artifacts are written to
	OutDir string

	// ArchiveFile is the file path of an archive to generate instead
	// of leaving the artifacts in OutDir
	ArchiveFile string

	// Compression is applied to every artifact, "none" or "zstd"
	Compression string

	// Redact replaces sensitive values in the captured logs
	Redact bool

	// Output is the format of the summary, "table", "yaml" or "json"
	Output string

	// Writer receives the summary.  Defaults to stdout.
	Writer io.Writer

	ListTimeout   time.Duration
	LogTimeout    time.Duration
	Workers       int
	TailLines     *int64
	SinceSeconds  *int64
	LimitBytes    *int64
	AllContainers bool
}

// Run connects to the cluster, sweeps the namespace, and displays the result
func Run(ctx context.Context, o Options) (*Result, error) {
	if err := ValidateNamespace(o.Namespace); err != nil {
		return nil, err
	}
	if o.ArchiveFile != "" {
		if err := sink.ValidArchiveName(o.ArchiveFile); err != nil {
			return nil, err
		}
	}
	if o.Output == "" {
		o.Output = OutputTable
	}
	if !slices.Contains(ValidOutputs, o.Output) {
		return nil, fmt.Errorf("Unknown output format %q, must be one of %v", o.Output, ValidOutputs)
	}
	if o.Writer == nil {
		o.Writer = os.Stdout
	}

	var err error
	if o.ArchiveFile != "" {
		o.OutDir, err = file.CreateTempDir("sweep")
		if err != nil {
			return nil, err
		}
		defer os.RemoveAll(o.OutDir)
	} else {
		o.OutDir, err = file.AbsDir(o.OutDir)
		if err != nil {
			return nil, err
		}
	}

	_, kubeClient, err := client.GetKubeClient(o.KubeConfigPath)
	if err != nil {
		return nil, err
	}

	dirSink := sink.NewDirSink(o.OutDir)
	artifactSink, err := sink.Wrap(dirSink, o.Compression)
	if err != nil {
		return nil, err
	}

	var redactor *sanitize.Redactor
	if o.Redact {
		redactor = sanitize.NewRedactor()
	}

	result, err := Sweep(ctx, o.Namespace, SweepParams{
		KubeClient:    kubeClient,
		Sink:          artifactSink,
		Redactor:      redactor,
		ListTimeout:   o.ListTimeout,
		LogTimeout:    o.LogTimeout,
		Workers:       o.Workers,
		TailLines:     o.TailLines,
		SinceSeconds:  o.SinceSeconds,
		LimitBytes:    o.LimitBytes,
		AllContainers: o.AllContainers,
	})
	if err != nil {
		return nil, err
	}

	if redactor != nil && redactor.Count() > 0 {
		if err := writeRedactionMap(ctx, dirSink, redactor); err != nil {
			log.Errorf("Error writing the redaction map: %v", err)
		}
	}

	if o.ArchiveFile != "" {
		if err := sink.CreateArchive(o.OutDir, o.ArchiveFile); err != nil {
			return nil, fmt.Errorf("Error creating archive %s: %w", o.ArchiveFile, err)
		}
		relativizePaths(result, o.OutDir)
		log.Infof("Sweep of namespace %s completed, archive file written to %s", o.Namespace, o.ArchiveFile)
	} else {
		log.Infof("Sweep of namespace %s completed, files written to %s", o.Namespace, o.OutDir)
	}

	if err := Display(o.Writer, result, o.Output); err != nil {
		return result, err
	}
	return result, nil
}

// writeRedactionMap stores the redacted values next to the artifacts.  It is
// never compressed so that it can be read without any tooling.
func writeRedactionMap(ctx context.Context, s sink.Sink, redactor *sanitize.Redactor) error {
	data, err := redactor.RedactionMapCSV()
	if err != nil {
		return err
	}
	path, err := s.Put(ctx, sanitize.RedactionMap, data)
	if err != nil {
		return err
	}
	log.Infof("Redacted %d values, the redaction map was written to %s", redactor.Count(), path)
	return nil
}

// relativizePaths rewrites artifact paths to their names inside the archive
func relativizePaths(r *Result, dir string) {
	for i := range r.Entries {
		o := &r.Entries[i].Outcome
		if o.Kind != LogsCaptured {
			continue
		}
		if rel, err := filepath.Rel(dir, o.Path); err == nil {
			o.Path = rel
		}
	}
}
