// Copyright (c) 2025, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package sweep

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gosuri/uitable"
	"sigs.k8s.io/yaml"
)

const (
	OutputTable = "table"
	OutputYAML  = "yaml"
	OutputJSON  = "json"
)

// ValidOutputs are the accepted values for the output format
var ValidOutputs = []string{OutputTable, OutputYAML, OutputJSON}

// Display writes the result in the given format
func Display(w io.Writer, r *Result, format string) error {
	switch format {
	case "", OutputTable:
		return DisplayTable(w, r)
	case OutputYAML:
		return DisplayYAML(w, r)
	case OutputJSON:
		return DisplayJSON(w, r)
	default:
		return fmt.Errorf("Unknown output format %q, must be one of %v", format, ValidOutputs)
	}
}

// DisplayTable writes a summary table with one row per pod
func DisplayTable(w io.Writer, r *Result) error {
	if len(r.Entries) == 0 {
		_, err := fmt.Fprintf(w, "No pods found in namespace %s\n", r.Namespace)
		return err
	}

	table := uitable.New()
	table.MaxColWidth = 80
	table.Wrap = true
	table.AddRow("NAMESPACE", "POD", "PHASE", "OUTCOME", "DETAIL")
	for _, e := range r.Entries {
		table.AddRow(e.Pod.Namespace, e.Pod.Name, e.Pod.Phase, e.Outcome.Kind, detail(e.Outcome))
	}
	if _, err := fmt.Fprintln(w, table); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%d pods, %d logs captured, %d captures failed\n",
		len(r.Entries), r.Count(LogsCaptured), r.Count(LogsCaptureFailed))
	return err
}

func detail(o Outcome) string {
	switch o.Kind {
	case LogsCaptured:
		return o.Path
	case LogsCaptureFailed:
		return o.Reason
	default:
		return ""
	}
}

// DisplayYAML writes the result as YAML
func DisplayYAML(w io.Writer, r *Result) error {
	out, err := yaml.Marshal(r)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// DisplayJSON writes the result as indented JSON
func DisplayJSON(w io.Writer, r *Result) error {
	out, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
