package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbuilder/pkg/fieldtypes"
	"github.com/goliatone/go-formbuilder/pkg/form"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Option configures an import.
type Option func(*config)

type config struct {
	columns  int
	rowIDs   form.IDGenerator
	registry *fieldtypes.Registry
	labeler  func(string) string
	logger   *slog.Logger
}

// WithColumns packs n fields per row. Values below one are ignored.
func WithColumns(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.columns = n
		}
	}
}

// WithRowIDs overrides the generator used for row ids.
func WithRowIDs(ids form.IDGenerator) Option {
	return func(c *config) {
		if ids != nil {
			c.rowIDs = ids
		}
	}
}

// WithRegistry seeds imported fields from the registry's defaults.
func WithRegistry(registry *fieldtypes.Registry) Option {
	return func(c *config) {
		if registry != nil {
			c.registry = registry
		}
	}
}

// WithLabeler overrides how property names become labels.
func WithLabeler(labeler func(string) string) Option {
	return func(c *config) {
		if labeler != nil {
			c.labeler = labeler
		}
	}
}

// WithLogger receives debug logs for skipped properties.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Operations lists the operation ids found in an OpenAPI document, sorted.
// Operations without an operationId are keyed as "<method>:<path>".
func Operations(ctx context.Context, data []byte) ([]string, error) {
	spec, err := load(ctx, data)
	if err != nil {
		return nil, err
	}
	ops := collectOperations(spec)
	ids := make([]string, 0, len(ops))
	for id := range ops {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Import builds a document from the request body of operationID. Each
// top-level property of the body schema becomes one field, in property name
// order. Nested objects and arrays are skipped.
func Import(ctx context.Context, data []byte, operationID string, options ...Option) (model.Document, error) {
	cfg := config{
		columns:  1,
		rowIDs:   form.NewSequenceGenerator("row"),
		registry: fieldtypes.Default(),
		labeler:  Humanize,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	spec, err := load(ctx, data)
	if err != nil {
		return model.Document{}, err
	}
	operation, ok := collectOperations(spec)[operationID]
	if !ok {
		return model.Document{}, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}
	schema := requestSchema(operation)
	if schema == nil {
		return model.Document{}, fmt.Errorf("%w: %q", ErrNoRequestBody, operationID)
	}

	fields := cfg.fields(schema)
	if len(fields) == 0 {
		return model.NewDocument(model.NewRow(cfg.rowIDs.NewID())), nil
	}

	var rows []model.Row
	for start := 0; start < len(fields); start += cfg.columns {
		end := start + cfg.columns
		if end > len(fields) {
			end = len(fields)
		}
		rows = append(rows, model.NewRow(cfg.rowIDs.NewID(), fields[start:end]...))
	}
	return model.NewDocument(rows...), nil
}

func load(ctx context.Context, data []byte) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptyDocument
	}
	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("importer: load document: %w", err)
	}
	return spec, nil
}

func collectOperations(spec *openapi3.T) map[string]*openapi3.Operation {
	out := make(map[string]*openapi3.Operation)
	if spec.Paths == nil {
		return out
	}
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, operation := range item.Operations() {
			if operation == nil {
				continue
			}
			id := operation.OperationID
			if id == "" {
				id = strings.ToLower(method) + ":" + path
			}
			out[id] = operation
		}
	}
	return out
}

func requestSchema(operation *openapi3.Operation) *openapi3.Schema {
	body := operation.RequestBody
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func (c config) fields(schema *openapi3.Schema) []model.Field {
	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]model.Field, 0, len(names))
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			c.logger.Debug("importer: unresolved property skipped", "property", name)
			continue
		}
		typ, attrs, ok := mapProperty(ref.Value)
		if !ok {
			c.logger.Debug("importer: property skipped", "property", name, "type", schemaType(ref.Value))
			continue
		}
		label := strings.TrimSpace(ref.Value.Title)
		if label == "" {
			label = c.labeler(name)
		}
		attrs[model.AttrLabel] = label
		attrs[model.AttrRequired] = required[name]

		field, ok := c.registry.NewField(typ, name)
		if !ok {
			field = model.NewField(name, typ, nil)
		}
		fields = append(fields, field.Merge(attrs))
	}
	return fields
}

// mapProperty decides the field type and type-specific attributes for one
// property schema.
func mapProperty(schema *openapi3.Schema) (string, map[string]any, bool) {
	attrs := map[string]any{}
	typ := schemaType(schema)

	if len(schema.Enum) > 0 && typ != openapi3.TypeObject && typ != openapi3.TypeArray {
		options := make([]model.Option, 0, len(schema.Enum))
		for _, value := range schema.Enum {
			text := fmt.Sprint(value)
			options = append(options, model.Option{Label: text, Value: text})
		}
		attrs[model.AttrOptions] = options
		return fieldtypes.TypeSelect, attrs, true
	}

	switch typ {
	case openapi3.TypeBoolean:
		return fieldtypes.TypeCheckbox, attrs, true
	case openapi3.TypeInteger, openapi3.TypeNumber:
		attrs[model.AttrInputType] = "number"
		return fieldtypes.TypeText, attrs, true
	case openapi3.TypeString:
		switch schema.Format {
		case "date", "date-time":
			return fieldtypes.TypeDate, attrs, true
		case "email":
			attrs[model.AttrInputType] = "email"
		default:
			attrs[model.AttrInputType] = "text"
		}
		if schema.Description != "" {
			attrs[model.AttrPlaceholder] = schema.Description
		}
		return fieldtypes.TypeText, attrs, true
	default:
		return "", nil, false
	}
}

func schemaType(schema *openapi3.Schema) string {
	if schema.Type == nil {
		return ""
	}
	for _, typ := range schema.Type.Slice() {
		if typ != openapi3.TypeNull {
			return typ
		}
	}
	return ""
}
