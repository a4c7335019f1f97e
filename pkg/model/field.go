package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Reserved attribute keys. They are carried by Field itself and never stored
// in the attribute map.
const (
	KeyID   = "id"
	KeyType = "type"
)

// Common attribute keys understood by the built-in field types.
const (
	AttrLabel       = "label"
	AttrRequired    = "required"
	AttrPlaceholder = "placeholder"
	AttrInputType   = "inputType"
	AttrOptions     = "options"
)

// Option is one entry of a choice list (select options, radio values).
type Option struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Field is one configured occurrence of a field type within a document.
type Field struct {
	id    string
	typ   string
	attrs map[string]any
}

// NewField builds a field. The attribute map is deep copied; `id` and `type`
// entries inside attrs are ignored.
func NewField(id, fieldType string, attrs map[string]any) Field {
	field := Field{
		id:    id,
		typ:   fieldType,
		attrs: make(map[string]any, len(attrs)),
	}
	for key, value := range attrs {
		if key == KeyID || key == KeyType {
			continue
		}
		field.attrs[key] = normaliseAttr(key, value)
	}
	return field
}

// ID returns the field identifier.
func (f Field) ID() string { return f.id }

// Type returns the field type tag used to resolve registry entries.
func (f Field) Type() string { return f.typ }

// IsZero reports whether the field is the zero value.
func (f Field) IsZero() bool { return f.id == "" && f.typ == "" && len(f.attrs) == 0 }

// Attr returns the raw attribute value.
func (f Field) Attr(key string) (any, bool) {
	value, ok := f.attrs[key]
	if !ok {
		return nil, false
	}
	return cloneValue(value), true
}

// Attrs returns a deep copy of the attribute map.
func (f Field) Attrs() map[string]any {
	out := make(map[string]any, len(f.attrs))
	for key, value := range f.attrs {
		out[key] = cloneValue(value)
	}
	return out
}

// Keys lists attribute keys in sorted order.
func (f Field) Keys() []string {
	keys := make([]string, 0, len(f.attrs))
	for key := range f.attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// String renders the attribute as text. Missing and nil attributes yield "".
func (f Field) String(key string) string {
	value, ok := f.attrs[key]
	if !ok || value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// StringOr behaves like String but returns fallback for missing or blank
// attributes.
func (f Field) StringOr(key, fallback string) string {
	if value := f.String(key); strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

// Bool interprets the attribute as a boolean. Strings are parsed with
// strconv.ParseBool; anything else is false.
func (f Field) Bool(key string) bool {
	switch v := f.attrs[key].(type) {
	case bool:
		return v
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		return err == nil && parsed
	default:
		return false
	}
}

// Options returns the choice list stored under the `options` attribute.
func (f Field) Options() []Option {
	options, _ := f.attrs[AttrOptions].([]Option)
	if options == nil {
		return nil
	}
	return append([]Option(nil), options...)
}

// HasOptions reports whether an `options` attribute is present, even if empty.
func (f Field) HasOptions() bool {
	_, ok := f.attrs[AttrOptions].([]Option)
	return ok
}

// Merge returns a copy of the field with partial merged into its attributes.
// The `id` key is ignored; a non-empty string `type` retypes the field. A nil
// value is stored as nil rather than deleting the key.
func (f Field) Merge(partial map[string]any) Field {
	next := Field{
		id:    f.id,
		typ:   f.typ,
		attrs: f.Attrs(),
	}
	for key, value := range partial {
		switch key {
		case KeyID:
			continue
		case KeyType:
			if typ, ok := value.(string); ok && strings.TrimSpace(typ) != "" {
				next.typ = typ
			}
			continue
		}
		next.attrs[key] = normaliseAttr(key, value)
	}
	return next
}

// Data flattens the field into a single map holding `id`, `type` and every
// attribute. Template engines use it as their rendering context.
func (f Field) Data() map[string]any {
	out := f.Attrs()
	out[KeyID] = f.id
	out[KeyType] = f.typ
	return out
}

func normaliseAttr(key string, value any) any {
	if key != AttrOptions {
		return cloneValue(value)
	}
	if options, ok := decodeOptions(value); ok {
		return options
	}
	return cloneValue(value)
}

func decodeOptions(value any) ([]Option, bool) {
	switch v := value.(type) {
	case []Option:
		return append([]Option{}, v...), true
	case []map[string]any:
		out := make([]Option, 0, len(v))
		for _, item := range v {
			out = append(out, optionFromMap(item))
		}
		return out, true
	case []any:
		out := make([]Option, 0, len(v))
		for _, item := range v {
			switch entry := item.(type) {
			case map[string]any:
				out = append(out, optionFromMap(entry))
			case Option:
				out = append(out, entry)
			case string:
				out = append(out, Option{Label: entry, Value: entry})
			default:
				return nil, false
			}
		}
		return out, true
	default:
		return nil, false
	}
}

func optionFromMap(item map[string]any) Option {
	return Option{
		Label: scalarString(item["label"]),
		Value: scalarString(item["value"]),
	}
}

func scalarString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func cloneValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	case []map[string]any:
		out := make([]map[string]any, len(v))
		for i, item := range v {
			out[i], _ = cloneValue(item).(map[string]any)
		}
		return out
	case []Option:
		return append([]Option{}, v...)
	case []string:
		return append([]string{}, v...)
	default:
		return v
	}
}
