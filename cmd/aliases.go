package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/tubestats-cli/internal/dataset"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var aliasesYAML bool

var aliasesCmd = &cobra.Command{
	Use:   "aliases",
	Short: "Show the header aliases recognized for each field",
	RunE: func(cmd *cobra.Command, args []string) error {
		aliases := dataset.DefaultAliases()
		if cfg != nil && len(cfg.Aliases) > 0 {
			merged, err := aliases.Merge(cfg.Aliases)
			if err != nil {
				return fmt.Errorf("config aliases: %w", err)
			}
			aliases = merged
		}
		out := cmd.OutOrStdout()
		if aliasesYAML {
			m := make(map[string][]string, len(aliases))
			for f, a := range aliases {
				m[string(f)] = a
			}
			b, err := yaml.Marshal(map[string]any{"aliases": m})
			if err != nil {
				return fmt.Errorf("marshal yaml: %w", err)
			}
			fmt.Fprint(out, string(b))
			return nil
		}
		t := table.NewWriter()
		t.SetOutputMirror(out)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Field", "Default", "Accepted headers"})
		for _, f := range dataset.Fields {
			def := "0"
			switch f {
			case dataset.FieldTitle:
				def = dataset.DefaultTitle
			case dataset.FieldCategory:
				def = dataset.DefaultCategory
			case dataset.FieldDuration, dataset.FieldSubscribers:
				def = "unknown"
			}
			t.AppendRow(table.Row{string(f), def, strings.Join(aliases[f], ", ")})
		}
		t.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(aliasesCmd)
	aliasesCmd.Flags().BoolVar(&aliasesYAML, "yaml", false, "print as a YAML aliases block ready for the config file")
}
