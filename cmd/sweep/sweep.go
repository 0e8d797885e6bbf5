// Copyright (c) 2024, 2025, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package sweep

import (
	"context"
	"fmt"
	"time"

	"github.com/oracle-cne/podtriage/cmd/constants"
	"github.com/oracle-cne/podtriage/pkg/cmdutil"
	"github.com/oracle-cne/podtriage/pkg/commands/sweep"
	"github.com/oracle-cne/podtriage/pkg/config"
	"github.com/oracle-cne/podtriage/pkg/config/types"
	pkgconst "github.com/oracle-cne/podtriage/pkg/constants"
	"github.com/spf13/cobra"
	"k8s.io/utils/ptr"
)

const (
	CommandName = "sweep"
	helpShort   = "Capture the logs of pods that are not running"
	helpLong    = `Enumerate the pods in a namespace and capture the logs of every pod that is not in the Running phase.
Each captured log is written to a file named <pod>-logs.txt.  Pods that are Running are left alone.`
	helpExample = `
  # capture logs for non-running pods in the default namespace
  podtriage sweep

  # capture logs for non-running pods in the sales namespace into /tmp/triage
  podtriage sweep -n sales -d /tmp/triage

  # capture the logs of every container, compressed, into an archive
  podtriage sweep -n sales --all-containers --compression zstd -z /tmp/triage.tgz

  # capture the last 500 lines from the past hour and print the summary as yaml
  podtriage sweep -n sales --tail 500 --since 1h -o yaml
`
)

var options sweep.Options
var since time.Duration
var tailLines int64
var limitBytes int64
var failOnError bool

const (
	flagNamespace      = "namespace"
	flagNamespaceShort = "n"
	flagNamespaceHelp  = "The namespace to sweep"

	flagOut      = "output-directory"
	flagOutShort = "d"
	flagOutHelp  = "The output directory where the log files will be written"

	flagGenerateArchive      = "generate-archive"
	flagGenerateArchiveShort = "z"
	flagGenerateArchiveHelp  = "Generate an archive instead of writing files to an output directory.  The filename must end with .tgz or .tar.gz"

	flagCompression     = "compression"
	flagCompressionHelp = "Compress each log file.  Valid values are \"none\" and \"zstd\""

	flagRedact     = "redact"
	flagRedactHelp = "Redact sensitive data in the captured logs"

	flagOutput      = "output"
	flagOutputShort = "o"
	flagOutputHelp  = "The format of the summary.  Valid values are \"table\", \"yaml\", and \"json\""

	flagListTimeout     = "list-timeout"
	flagListTimeoutHelp = "The maximum time to wait when listing pods"

	flagLogTimeout     = "log-timeout"
	flagLogTimeoutHelp = "The maximum time to wait when reading the log of a single pod"

	flagWorkers     = "workers"
	flagWorkersHelp = "The number of pod logs to read at the same time"

	flagTail     = "tail"
	flagTailHelp = "The number of lines from the end of each log to capture.  The default captures the whole log"

	flagSince     = "since"
	flagSinceHelp = "Only capture log lines newer than a relative duration like 5s, 2m, or 3h"

	flagLimitBytes     = "limit-bytes"
	flagLimitBytesHelp = "The maximum number of bytes to capture from each log"

	flagAllContainers     = "all-containers"
	flagAllContainersHelp = "Capture the logs of every container in the pod instead of the default container"

	flagFailOnError     = "fail-on-error"
	flagFailOnErrorHelp = "Exit with an error if the logs of any pod could not be captured"
)

func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   CommandName,
		Short: helpShort,
		Long:  helpLong,
		Args:  cobra.MatchAll(cobra.ExactArgs(0), cobra.OnlyValidArgs),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return RunCmd(cmd)
	}
	cmd.Example = helpExample
	cmdutil.SilenceUsage(cmd)

	cmd.Flags().StringVarP(&options.KubeConfigPath, constants.FlagKubeconfig, constants.FlagKubeconfigShort, "", constants.FlagKubeconfigHelp)
	cmd.Flags().StringVarP(&options.Namespace, flagNamespace, flagNamespaceShort, pkgconst.Namespace, flagNamespaceHelp)
	cmd.Flags().StringVarP(&options.OutDir, flagOut, flagOutShort, pkgconst.OutputDir, flagOutHelp)
	cmd.Flags().StringVarP(&options.ArchiveFile, flagGenerateArchive, flagGenerateArchiveShort, "", flagGenerateArchiveHelp)
	cmd.Flags().StringVar(&options.Compression, flagCompression, pkgconst.Compression, flagCompressionHelp)
	cmd.Flags().BoolVar(&options.Redact, flagRedact, false, flagRedactHelp)
	cmd.Flags().StringVarP(&options.Output, flagOutput, flagOutputShort, pkgconst.Output, flagOutputHelp)
	cmd.Flags().DurationVar(&options.ListTimeout, flagListTimeout, sweep.DefaultListTimeout, flagListTimeoutHelp)
	cmd.Flags().DurationVar(&options.LogTimeout, flagLogTimeout, sweep.DefaultLogTimeout, flagLogTimeoutHelp)
	cmd.Flags().IntVar(&options.Workers, flagWorkers, pkgconst.Workers, flagWorkersHelp)
	cmd.Flags().Int64Var(&tailLines, flagTail, -1, flagTailHelp)
	cmd.Flags().DurationVar(&since, flagSince, 0, flagSinceHelp)
	cmd.Flags().Int64Var(&limitBytes, flagLimitBytes, 0, flagLimitBytesHelp)
	cmd.Flags().BoolVar(&options.AllContainers, flagAllContainers, false, flagAllContainersHelp)
	cmd.Flags().BoolVar(&failOnError, flagFailOnError, false, flagFailOnErrorHelp)

	cmd.MarkFlagsMutuallyExclusive(flagOut, flagGenerateArchive)

	return cmd
}

// RunCmd runs the "podtriage sweep" command
func RunCmd(cmd *cobra.Command) error {
	defaults, err := config.GetDefaultConfig()
	if err != nil {
		return err
	}
	applyDefaults(cmd, defaults)

	if err := setLogOptions(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := sweep.Run(ctx, options)
	if err != nil {
		return err
	}

	if failOnError && result.HasFailures() {
		return fmt.Errorf("Unable to capture logs for %d pods in namespace %s", result.Count(sweep.LogsCaptureFailed), result.Namespace)
	}
	return nil
}

// applyDefaults fills in values from the defaults file for every flag
// that was not given on the command line.
func applyDefaults(cmd *cobra.Command, d *types.Config) {
	flags := cmd.Flags()
	setString := func(flag string, dst *string, src *string) {
		if !flags.Changed(flag) && src != nil && *src != "" {
			*dst = *src
		}
	}
	setBool := func(flag string, dst *bool, src *bool) {
		if !flags.Changed(flag) && src != nil {
			*dst = *src
		}
	}

	setString(constants.FlagKubeconfig, &options.KubeConfigPath, d.KubeConfig)
	setString(flagNamespace, &options.Namespace, d.Namespace)
	setString(flagCompression, &options.Compression, d.Compression)
	setString(flagOutput, &options.Output, d.Output)
	setBool(flagRedact, &options.Redact, d.Redact)
	setBool(flagAllContainers, &options.AllContainers, d.AllContainers)

	// An archive replaces the output directory entirely
	if !flags.Changed(flagGenerateArchive) {
		setString(flagOut, &options.OutDir, d.OutputDirectory)
	}

	if !flags.Changed(flagListTimeout) && d.ListTimeout != nil {
		options.ListTimeout = *d.ListTimeout
	}
	if !flags.Changed(flagLogTimeout) && d.LogTimeout != nil {
		options.LogTimeout = *d.LogTimeout
	}
	if !flags.Changed(flagWorkers) && d.Workers != nil {
		options.Workers = *d.Workers
	}
	if !flags.Changed(flagTail) && d.TailLines != nil {
		tailLines = *d.TailLines
	}
	if !flags.Changed(flagLimitBytes) && d.LimitBytes != nil {
		limitBytes = *d.LimitBytes
	}
}

// setLogOptions converts the log flags into the optional values
// sent with each log request.
func setLogOptions() error {
	options.TailLines = nil
	options.SinceSeconds = nil
	options.LimitBytes = nil

	if tailLines >= 0 {
		options.TailLines = ptr.To(tailLines)
	}
	if since < 0 {
		return fmt.Errorf("The --%s value must not be negative", flagSince)
	}
	if since > 0 {
		secs := int64(since.Round(time.Second) / time.Second)
		if secs == 0 {
			secs = 1
		}
		options.SinceSeconds = ptr.To(secs)
	}
	if limitBytes < 0 {
		return fmt.Errorf("The --%s value must not be negative", flagLimitBytes)
	}
	if limitBytes > 0 {
		options.LimitBytes = ptr.To(limitBytes)
	}
	if options.Workers < 1 {
		return fmt.Errorf("The --%s value must be at least 1", flagWorkers)
	}
	return nil
}
