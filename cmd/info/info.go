// Copyright (c) 2024, 2025, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package info

import (
	"fmt"
	"io"
	"os"

	"github.com/gosuri/uitable"
	"github.com/oracle-cne/podtriage/pkg/cmdutil"
	"github.com/oracle-cne/podtriage/pkg/constants"
	"github.com/oracle-cne/podtriage/pkg/k8s/client"
	"github.com/spf13/cobra"
)

const (
	CommandName = "info"
	helpShort   = "Display information about podtriage"
	helpLong    = `Display the environment variables that podtriage honours and their current values.`
	helpExample = `
podtriage info
`
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
	cmdutil.SilenceUsage(cmd)
	cmd.Example = helpExample

	return cmd
}

// RunCmd runs the "podtriage info" command
func RunCmd(cmd *cobra.Command) error {
	return printInfo(cmd.OutOrStdout())
}

func printInfo(w io.Writer) error {
	fmt.Fprintf(w, "The %s environment variable sets the location of the default configuration file.\n", constants.UserConfigDefaultsEnvironmentVariable)
	fmt.Fprintf(w, "The %s environment variable sets the location of the kubeconfig file. This behaves the same way as the --kubeconfig option.\n", client.EnvVarKubeConfig)
	fmt.Fprintln(w)

	table := uitable.New()
	table.AddRow("VARIABLE", "VALUE")
	for _, v := range []string{constants.UserConfigDefaultsEnvironmentVariable, client.EnvVarKubeConfig} {
		val, ok := os.LookupEnv(v)
		if !ok {
			val = "<unset>"
		}
		table.AddRow(v, val)
	}
	_, err := fmt.Fprintln(w, table)
	return err
}
