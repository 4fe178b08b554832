package main

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/eringen/paperblog/site"
)

var checkFormat string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate configuration and print the effective site record",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := load(); err != nil {
			return err
		}
		return printRecord(cmd.OutOrStdout(), site.Get(), checkFormat)
	},
}

func init() {
	checkCmd.Flags().StringVarP(&checkFormat, "format", "f", "yaml", "output format: yaml or toml")
}

// printRecord writes cfg using its yaml keys. TOML output goes through the
// YAML form so both formats share key names and duration strings.
func printRecord(w io.Writer, cfg site.Config, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	case "toml":
		raw, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		var m map[string]any
		if err := yaml.Unmarshal(raw, &m); err != nil {
			return err
		}
		return toml.NewEncoder(w).Encode(m)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
