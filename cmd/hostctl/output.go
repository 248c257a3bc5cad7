package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/bft-labs/hostctl/internal/cliconfig"
	"github.com/bft-labs/hostctl/pkg/hostctl"
)

// printLines writes lines in the given output format. In text format,
// entries are aligned in two columns; with all, passthrough lines are
// printed as they appear in the file.
func printLines(w io.Writer, format string, lines []hostctl.Line, all bool) error {
	if lines == nil {
		lines = []hostctl.Line{}
	}

	switch format {
	case cliconfig.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(lines)

	case cliconfig.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(lines); err != nil {
			return err
		}
		return enc.Close()

	case cliconfig.OutputText:
		if all {
			for _, l := range lines {
				if _, err := fmt.Fprintln(w, l.String()); err != nil {
					return err
				}
			}
			return nil
		}
		tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
		for _, l := range lines {
			fmt.Fprintf(tw, "%s\t%s\n", l.Address, l.Hostnames)
		}
		return tw.Flush()

	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
