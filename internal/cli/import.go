package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/pkg/importer"
)

type importOptions struct {
	operation string
	columns   int
	list      bool
	output    string
	save      string
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &importOptions{}

	cmd := &cobra.Command{
		Use:   "import <openapi-file>",
		Short: "Create a document from an OpenAPI request body",
		Long: `Create a form document from the request body schema of an OpenAPI 3
operation. Each top-level property becomes a field. Use --list to print
the available operation ids.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, rootOpts, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.operation, "operation", "", "operation id to import")
	cmd.Flags().IntVar(&opts.columns, "columns", 0, "fields per row (defaults to the config value)")
	cmd.Flags().BoolVar(&opts.list, "list", false, "list operation ids and exit")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the document YAML here (stdout if empty)")
	cmd.Flags().StringVar(&opts.save, "save", "", "store the document under this name")
	return cmd
}

func runImport(cmd *cobra.Command, rootOpts *RootOptions, opts *importOptions, path string) error {
	ctx := cmd.Context()
	data, err := os.ReadFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "read openapi document", err)
	}

	if opts.list {
		ids, err := importer.Operations(ctx, data)
		if err != nil {
			return WrapExitError(ExitCommandError, "list operations", err)
		}
		for _, id := range ids {
			fmt.Fprintln(cmd.OutOrStdout(), id)
		}
		return nil
	}
	if opts.operation == "" {
		return WrapExitError(ExitCommandError, "--operation is required", nil)
	}

	registry, err := rootOpts.registry()
	if err != nil {
		return err
	}
	columns := opts.columns
	if columns < 1 {
		columns = rootOpts.Config.Columns
	}
	doc, err := importer.Import(ctx, data, opts.operation,
		importer.WithColumns(columns),
		importer.WithRegistry(registry),
		importer.WithLogger(rootOpts.Logger),
	)
	if err != nil {
		return WrapExitError(ExitCommandError, "import", err)
	}
	rootOpts.Logger.Info("imported", "operation", opts.operation, "fields", doc.FieldCount(), "rows", doc.Len())

	if opts.save != "" {
		s, err := rootOpts.openStore()
		if err != nil {
			return err
		}
		defer s.Close()
		if _, err := s.Save(ctx, opts.save, doc); err != nil {
			return err
		}
		if opts.output == "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", opts.save)
			return nil
		}
	}

	payload, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return writeOutput(cmd, opts.output, payload)
}
