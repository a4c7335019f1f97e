package templating

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	templates fs.FS
	globals   map[string]any
}

// WithFS lets templates `{% include %}` partials from files.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithGlobalData exposes values to every template next to `field`.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) == 0 {
			return
		}
		if cfg.globals == nil {
			cfg.globals = make(map[string]any, len(data))
		}
		for key, value := range data {
			if key = strings.TrimSpace(key); key != "" {
				cfg.globals[key] = value
			}
		}
	}
}

// Engine compiles field code templates written in pongo2 (Django) syntax.
// Output is never HTML-escaped: templates emit source code, and escaping
// interpolated values is the template author's job.
//
// Besides the pongo2 built-ins, templates can use two filters:
//
//	literal  booleans as true/false, nil as ""
//	ident    strips characters not allowed in a template reference variable
type Engine struct {
	set *pongo2.TemplateSet
}

// Template is a compiled code template.
type Template struct {
	tpl *pongo2.Template
}

var (
	registerFilters sync.Once
	filtersErr      error
)

// New constructs an Engine using the provided configuration options.
func New(options ...Option) (*Engine, error) {
	cfg := &config{}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	files := cfg.templates
	if files == nil {
		files = emptyFS{}
	}

	registerFilters.Do(func() {
		filtersErr = registerDomainFilters()
	})
	if filtersErr != nil {
		return nil, fmt.Errorf("templating: register filters: %w", filtersErr)
	}

	set := pongo2.NewSet("formbuilder", pongo2.NewFSLoader(files))
	if set.Globals == nil {
		set.Globals = make(pongo2.Context)
	}
	for key, value := range cfg.globals {
		set.Globals[key] = contextValue(value)
	}
	return &Engine{set: set}, nil
}

// Compile parses src once so it can be executed for many fields.
func (e *Engine) Compile(src string) (*Template, error) {
	if e == nil || e.set == nil {
		return nil, errors.New("templating: engine is nil")
	}
	tpl, err := e.set.FromString("{% autoescape off %}" + src + "{% endautoescape %}")
	if err != nil {
		return nil, fmt.Errorf("templating: parse template: %w", err)
	}
	return &Template{tpl: tpl}, nil
}

// RenderString compiles and executes src in one step.
func (e *Engine) RenderString(src string, data map[string]any) (string, error) {
	tpl, err := e.Compile(src)
	if err != nil {
		return "", err
	}
	return tpl.Execute(data)
}

// Execute renders the template. Values are the shapes model.Field.Data
// produces: scalars, nested maps and slices, and option lists.
func (t *Template) Execute(data map[string]any) (string, error) {
	if t == nil || t.tpl == nil {
		return "", errors.New("templating: template is nil")
	}
	ctx := make(pongo2.Context, len(data))
	for key, value := range data {
		ctx[key] = contextValue(value)
	}

	var buf bytes.Buffer
	if err := t.tpl.ExecuteWriter(ctx, &buf); err != nil {
		return "", fmt.Errorf("templating: execute template: %w", err)
	}
	return buf.String(), nil
}

// contextValue rewrites option lists into label/value maps so templates can
// address them as `o.label` and `o.value`.
func contextValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = contextValue(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = contextValue(item)
		}
		return out
	case []map[string]any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = contextValue(item)
		}
		return out
	case []model.Option:
		out := make([]any, len(v))
		for i, option := range v {
			out[i] = map[string]any{"label": option.Label, "value": option.Value}
		}
		return out
	default:
		return value
	}
}

type emptyFS struct{}

func (emptyFS) Open(name string) (fs.File, error) {
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

func registerDomainFilters() error {
	filters := map[string]pongo2.FilterFunction{
		"literal": filterLiteral,
		"ident":   filterIdent,
	}
	for name, fn := range filters {
		if pongo2.FilterExists(name) {
			continue
		}
		if err := pongo2.RegisterFilter(name, fn); err != nil {
			return err
		}
	}
	return nil
}

// filterLiteral prints booleans as `true`/`false` (pongo2 prints `True`) and
// nil as an empty string, so values can be spliced into TS bindings.
func filterLiteral(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsNil() {
		return pongo2.AsValue(""), nil
	}
	if in.IsBool() {
		if in.Bool() {
			return pongo2.AsValue("true"), nil
		}
		return pongo2.AsValue("false"), nil
	}
	return pongo2.AsValue(in.String()), nil
}

// filterIdent keeps ASCII letters, digits and underscores, turning a UUID
// field id into something usable after `#` in a template.
func filterIdent(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	var out strings.Builder
	for _, r := range in.String() {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			out.WriteRune(r)
		}
	}
	return pongo2.AsValue(out.String()), nil
}
