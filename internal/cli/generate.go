package cli

import (
	"github.com/spf13/cobra"
)

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "generate <document>",
		Short: "Generate component source from a document file",
		Long: `Generate Angular component source from a YAML or JSON form document.
Use "-" to read the document from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(cmd, args[0])
			if err != nil {
				return err
			}
			registry, err := rootOpts.registry()
			if err != nil {
				return err
			}
			code := rootOpts.generator().Generate(doc, registry)
			rootOpts.Logger.Debug("generated", "rows", doc.Len(), "fields", doc.FieldCount(), "bytes", len(code))
			return writeOutput(cmd, output, []byte(code))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}
