package formbuilder

import (
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formbuilder/pkg/codegen"
	"github.com/goliatone/go-formbuilder/pkg/fieldtypes"
	"github.com/goliatone/go-formbuilder/pkg/form"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Document aliases model.Document for callers that only import the root
// package.
type Document = model.Document

// Field aliases model.Field.
type Field = model.Field

// Model aliases form.Model, the observable editing state.
type Model = form.Model

// Registry aliases fieldtypes.Registry.
type Registry = fieldtypes.Registry

// End appends when passed as an insertion index.
const End = form.End

// NewModel exposes the form model constructor from the top-level module.
func NewModel(options ...form.Option) *form.Model {
	return form.New(options...)
}

// DefaultRegistry returns a registry holding the built-in field types.
func DefaultRegistry() *fieldtypes.Registry {
	return fieldtypes.Default()
}

// Generate renders doc with the default scaffold and the built-in field
// types. It is the simplest entry point for callers that just want component
// source.
func Generate(doc model.Document) string {
	return codegen.Generate(doc, fieldtypes.Default())
}

// GenerateWith renders doc using registry to resolve field types. A nil
// registry falls back to the built-in types.
func GenerateWith(doc model.Document, registry *fieldtypes.Registry, options ...codegen.Option) string {
	if registry == nil {
		registry = fieldtypes.Default()
	}
	return codegen.New(options...).Generate(doc, registry)
}

// WithThemeSelector resolves name/variant through a go-theme selector and
// returns a generator option carrying the selected tokens.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) (codegen.Option, error) {
	if selector == nil {
		return codegen.WithTheme(nil), nil
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("formbuilder: select theme %q: %w", name, err)
	}
	return codegen.WithTheme(rendererConfig(selection)), nil
}

func rendererConfig(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil {
		return nil
	}
	cfg := &theme.RendererConfig{
		Theme:   selection.Theme,
		Variant: selection.Variant,
	}
	if selection.Manifest != nil {
		cfg.Tokens = selection.Manifest.Tokens
	}
	return cfg
}
