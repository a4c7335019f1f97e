package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewStoreCommand creates the store command and its subcommands.
func NewStoreCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage stored form documents",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := rootOpts.init(cmd); err != nil {
				return err
			}
			if dbPath != "" {
				rootOpts.Config.Store = dbPath
			}
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (defaults to the config value)")

	cmd.AddCommand(newStoreSaveCommand(rootOpts))
	cmd.AddCommand(newStoreShowCommand(rootOpts))
	cmd.AddCommand(newStoreListCommand(rootOpts))
	cmd.AddCommand(newStoreDeleteCommand(rootOpts))
	return cmd
}

func newStoreSaveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "save <name> <document>",
		Short: "Store a document file under a name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(cmd, args[1])
			if err != nil {
				return err
			}
			s, err := rootOpts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			revision, err := s.Save(cmd.Context(), args[0], doc)
			if err != nil {
				return WrapExitError(ExitCommandError, "save", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (revision %d)\n", args[0], revision)
			return nil
		},
	}
}

func newStoreShowCommand(rootOpts *RootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Print a stored document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rootOpts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			record, err := s.Load(cmd.Context(), args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "show", err)
			}
			var payload []byte
			if asJSON {
				payload, err = json.MarshalIndent(record.Document, "", "  ")
				payload = append(payload, '\n')
			} else {
				payload, err = yaml.Marshal(record.Document)
			}
			if err != nil {
				return fmt.Errorf("encode document: %w", err)
			}
			return writeOutput(cmd, "", payload)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of YAML")
	return cmd
}

func newStoreListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rootOpts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			summaries, err := s.List(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tREVISION")
			for _, summary := range summaries {
				fmt.Fprintf(w, "%s\t%d\n", summary.Name, summary.Revision)
			}
			return w.Flush()
		},
	}
}

func newStoreDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a stored document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rootOpts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Delete(cmd.Context(), args[0]); err != nil {
				return WrapExitError(ExitCommandError, "delete", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}
