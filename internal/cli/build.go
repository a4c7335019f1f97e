package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/pkg/form"
	"github.com/goliatone/go-formbuilder/pkg/tui"
)

type buildOptions struct {
	from   string
	load   string
	save   string
	output string
}

// NewBuildCommand creates the interactive build command.
func NewBuildCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &buildOptions{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a form interactively",
		Long: `Edit a form document with terminal prompts. Start from an empty row, a
document file (--from) or a stored form (--load). When done the document
can be stored (--save) and its component source written (--output).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, rootOpts, opts)
		},
	}

	cmd.Flags().StringVar(&opts.from, "from", "", "document file to start from")
	cmd.Flags().StringVar(&opts.load, "load", "", "stored form to start from")
	cmd.Flags().StringVar(&opts.save, "save", "", "store the result under this name")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write generated source to this file")
	cmd.MarkFlagsMutuallyExclusive("from", "load")
	return cmd
}

func runBuild(cmd *cobra.Command, rootOpts *RootOptions, opts *buildOptions) error {
	ctx := cmd.Context()
	registry, err := rootOpts.registry()
	if err != nil {
		return err
	}

	m := form.New(form.WithLogger(rootOpts.Logger))
	switch {
	case opts.from != "":
		doc, err := readDocument(cmd, opts.from)
		if err != nil {
			return err
		}
		if err := m.Load(doc); err != nil {
			return WrapExitError(ExitCommandError, "load document", err)
		}
	case opts.load != "":
		s, err := rootOpts.openStore()
		if err != nil {
			return err
		}
		record, err := s.Load(ctx, opts.load)
		s.Close()
		if err != nil {
			return WrapExitError(ExitCommandError, "load form", err)
		}
		if err := m.Load(record.Document); err != nil {
			return WrapExitError(ExitCommandError, "load form", err)
		}
	}

	generator := rootOpts.generator()
	session := tui.NewSession(
		tui.WithPromptDriver(newPromptDriver()),
		tui.WithModel(m),
		tui.WithRegistry(registry),
		tui.WithGenerator(generator),
		tui.WithLogger(rootOpts.Logger),
		tui.WithTheme(tui.Theme{InfoPrefix: "> ", ErrorPrefix: "! "}),
	)
	if err := session.Run(ctx); err != nil {
		if errors.Is(err, tui.ErrAborted) {
			return WrapExitError(ExitFailure, "build aborted", err)
		}
		return err
	}

	doc := m.Document()
	if opts.save != "" {
		s, err := rootOpts.openStore()
		if err != nil {
			return err
		}
		defer s.Close()
		revision, err := s.Save(ctx, opts.save, doc)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (revision %d)\n", opts.save, revision)
	}
	if opts.output != "" {
		if err := writeOutput(cmd, opts.output, []byte(generator.Generate(doc, registry))); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Form written to %s\n", opts.output)
	}
	return nil
}
