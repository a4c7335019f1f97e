package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/internal/logging"
	"github.com/goliatone/go-formbuilder/pkg/codegen"
	"github.com/goliatone/go-formbuilder/pkg/fieldtypes"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/store"
	"github.com/goliatone/go-formbuilder/pkg/templating"
	"github.com/goliatone/go-formbuilder/pkg/tui"
)

// newPromptDriver builds the driver used by the build command.
var newPromptDriver = tui.NewSurveyDriver

// RootOptions holds global flags and the state derived from them.
type RootOptions struct {
	ConfigPath string
	LogLevel   string
	LogFormat  string

	Config Config
	Logger *slog.Logger
}

// NewRootCommand creates the root command for the formbuilder CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{Logger: logging.Discard()}

	cmd := &cobra.Command{
		Use:   "formbuilder",
		Short: "Build forms from rows of fields and generate component code",
		Long: `formbuilder edits form documents (ordered rows of typed fields) and
generates Angular Material component source from them. Documents can be
built interactively, imported from OpenAPI request bodies and stored in
SQLite.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init(cmd)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file (YAML)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", "", "log format (text|json)")

	cmd.AddCommand(NewGenerateCommand(opts))
	cmd.AddCommand(NewTypesCommand(opts))
	cmd.AddCommand(NewBuildCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewStoreCommand(opts))

	return cmd
}

func (o *RootOptions) init(cmd *cobra.Command) error {
	cfg, err := LoadConfig(o.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "load config", err)
	}
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}
	if o.LogFormat != "" {
		cfg.Log.Format = o.LogFormat
	}
	o.Config = cfg
	o.Logger = logging.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	return nil
}

// registry returns the built-in types with the configured catalog layered on
// top.
func (o *RootOptions) registry() (*fieldtypes.Registry, error) {
	registry := fieldtypes.Default()
	dir := strings.TrimSpace(o.Config.Catalog)
	if dir == "" {
		return registry, nil
	}

	files := os.DirFS(dir)
	engine, err := templating.New(
		templating.WithFS(files),
		templating.WithGlobalData(o.Config.Globals),
	)
	if err != nil {
		return nil, fmt.Errorf("template engine: %w", err)
	}
	if err := registry.LoadFS(files, fieldtypes.WithEngine(engine), fieldtypes.WithLogger(o.Logger)); err != nil {
		return nil, WrapExitError(ExitCommandError, "load catalog "+dir, err)
	}
	o.Logger.Debug("catalog loaded", "dir", dir, "types", registry.Len())
	return registry, nil
}

func (o *RootOptions) generator() *codegen.Generator {
	options := []codegen.Option{codegen.WithLogger(o.Logger)}
	if name := strings.TrimSpace(o.Config.Component); name != "" {
		scaffold := codegen.DefaultScaffold()
		scaffold.ComponentName = name
		options = append(options, codegen.WithScaffold(scaffold))
	}
	if t := o.Config.Theme; t.Name != "" || len(t.Tokens) > 0 {
		options = append(options, codegen.WithTheme(&theme.RendererConfig{
			Theme:   t.Name,
			Variant: t.Variant,
			Tokens:  t.Tokens,
		}))
	}
	return codegen.New(options...)
}

func (o *RootOptions) openStore() (*store.Store, error) {
	s, err := store.Open(o.Config.Store)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "open store", err)
	}
	return s, nil
}

// readDocument loads a YAML or JSON document file; "-" reads stdin.
func readDocument(cmd *cobra.Command, path string) (model.Document, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return model.Document{}, WrapExitError(ExitCommandError, "read document", err)
	}
	doc, err := model.DecodeDocument(data)
	if err != nil {
		return model.Document{}, WrapExitError(ExitCommandError, "decode document "+path, err)
	}
	return doc, nil
}

// writeOutput writes data to path, or to the command output when path is
// empty.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
