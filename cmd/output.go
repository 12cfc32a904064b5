package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jparise/timecalc/internal/result"
)

// outputFormat selects how results are printed.
type outputFormat string

const (
	outputText outputFormat = "text"
	outputJSON outputFormat = "json"
	outputYAML outputFormat = "yaml"
)

func (o *outputFormat) String() string {
	return string(*o)
}

func (o *outputFormat) Set(v string) error {
	switch v {
	case "text", "json", "yaml":
		*o = outputFormat(v)
		return nil
	default:
		return fmt.Errorf("must be one of \"text\", \"json\", or \"yaml\"")
	}
}

func (o *outputFormat) Type() string {
	return "format"
}

func addOutputFlag(cmd *cobra.Command, o *outputFormat) {
	*o = outputText
	cmd.Flags().VarP(o, "output", "o", "output format: text, json, yaml")
}

// printSummary writes s in the requested format. Text output is the result
// text alone, highlighted when colorize is set.
func printSummary(w io.Writer, format outputFormat, s result.Summary, colorize bool) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	default:
		text := s.Text
		if colorize {
			text = ansi.Color(text, "green+b")
		}
		_, err := fmt.Fprintln(w, text)
		return err
	}
}
