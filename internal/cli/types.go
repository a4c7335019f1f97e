package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type typeSummary struct {
	Type     string   `json:"type"`
	Label    string   `json:"label"`
	Icon     string   `json:"icon,omitempty"`
	Settings []string `json:"settings"`
}

// NewTypesCommand creates the types command.
func NewTypesCommand(rootOpts *RootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "types",
		Short: "List registered field types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := rootOpts.registry()
			if err != nil {
				return err
			}

			var summaries []typeSummary
			for _, def := range registry.List() {
				keys := make([]string, 0, len(def.Settings))
				for _, setting := range def.Settings {
					keys = append(keys, setting.Key)
				}
				summaries = append(summaries, typeSummary{
					Type:     def.Type,
					Label:    def.Label,
					Icon:     def.Icon,
					Settings: keys,
				})
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(summaries)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TYPE\tLABEL\tSETTINGS")
			for _, s := range summaries {
				fmt.Fprintf(w, "%s\t%s\t%d\n", s.Type, s.Label, len(s.Settings))
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}
