package codegen

import (
	"io"
	"log/slog"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formbuilder/pkg/fieldtypes"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Theme tokens overriding the container classes.
const (
	TokenFormClass  = "form.class"
	TokenRowClass   = "row.class"
	TokenFieldClass = "field.class"
)

// Default container classes (Tailwind utility classes).
const (
	DefaultFormClass  = "flex flex-col gap-4"
	DefaultRowClass   = "flex gap-4 flex-wrap"
	DefaultFieldClass = "flex gap-4 flex-wrap"
)

// Container indentation. Field fragments are expected to carry
// fieldtypes.FragmentIndent so they nest one level below the field wrapper.
const (
	indentDecl  = "   "
	indentList  = "       "
	indentForm  = "     "
	indentRow   = "       "
	indentField = "         "
)

// Resolver looks up field type definitions by tag. *fieldtypes.Registry
// satisfies it.
type Resolver interface {
	Lookup(fieldType string) (fieldtypes.Definition, bool)
}

// Option configures a Generator.
type Option func(*Generator)

// WithScaffold replaces the import catalog and component name.
func WithScaffold(scaffold Scaffold) Option {
	return func(g *Generator) {
		g.scaffold = scaffold
	}
}

// WithTheme applies container class overrides from the theme tokens.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(g *Generator) {
		if cfg == nil {
			return
		}
		g.formClass = tokenOr(cfg.Tokens, TokenFormClass, g.formClass)
		g.rowClass = tokenOr(cfg.Tokens, TokenRowClass, g.rowClass)
		g.fieldClass = tokenOr(cfg.Tokens, TokenFieldClass, g.fieldClass)
	}
}

// WithLogger receives debug entries for fields whose type does not resolve.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// Generator turns document snapshots into component source. It holds only
// configuration; Generate never mutates it, so one generator may be shared.
type Generator struct {
	scaffold   Scaffold
	formClass  string
	rowClass   string
	fieldClass string
	logger     *slog.Logger
}

// New constructs a generator with the default scaffold and classes.
func New(options ...Option) *Generator {
	g := &Generator{
		scaffold:   DefaultScaffold(),
		formClass:  DefaultFormClass,
		rowClass:   DefaultRowClass,
		fieldClass: DefaultFieldClass,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Generate renders doc with the default generator.
func Generate(doc model.Document, resolver Resolver) string {
	return New().Generate(doc, resolver)
}

// Generate renders doc. Rows without fields are skipped. Fields whose type
// does not resolve keep their wrapper and contribute an empty fragment.
// Fragments are spliced verbatim; nothing is escaped.
func (g *Generator) Generate(doc model.Document, resolver Resolver) string {
	var out strings.Builder

	for _, line := range g.scaffold.importLines() {
		out.WriteString(line)
		out.WriteByte('\n')
	}
	out.WriteByte('\n')

	g.writeDecorator(&out)

	out.WriteString(indentForm + `<form class="` + g.formClass + `">` + "\n")
	for _, row := range doc.Rows() {
		if row.Len() == 0 {
			continue
		}
		out.WriteString(indentRow + `<div class="` + g.rowClass + `">` + "\n")
		for _, field := range row.Fields() {
			out.WriteString(indentField + `<div class="` + g.fieldClass + `">` + "\n")
			out.WriteString(g.fragment(field, resolver))
			out.WriteString(indentField + "</div>\n")
		}
		out.WriteString(indentRow + "</div>\n")
	}
	out.WriteString(indentForm + "</form>\n")

	out.WriteString(indentDecl + "`,\n")
	out.WriteString(indentDecl + "styles: [],\n")
	out.WriteString("})\n")
	out.WriteString("export class " + g.scaffold.componentName() + " {}\n")
	return out.String()
}

func (g *Generator) writeDecorator(out *strings.Builder) {
	symbols := g.scaffold.moduleSymbols()

	out.WriteString("@Component({\n")
	out.WriteString(indentDecl + "standalone: true,\n")
	out.WriteString(indentDecl + "imports: [\n")
	for idx, symbol := range symbols {
		out.WriteString(indentList + symbol)
		if idx < len(symbols)-1 {
			out.WriteByte(',')
		}
		out.WriteByte('\n')
	}
	out.WriteString(indentDecl + "],\n")
	out.WriteString(indentDecl + "template: `\n")
}

func (g *Generator) fragment(field model.Field, resolver Resolver) string {
	if resolver == nil {
		return ""
	}
	def, ok := resolver.Lookup(field.Type())
	if !ok {
		g.logger.Debug("codegen: unresolved field type", "field", field.ID(), "type", field.Type())
		return ""
	}
	return def.Render(field)
}

func tokenOr(tokens map[string]string, key, fallback string) string {
	if value := strings.TrimSpace(tokens[key]); value != "" {
		return value
	}
	return fallback
}
