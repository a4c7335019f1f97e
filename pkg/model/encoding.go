package model

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Fields encode as a single flat mapping: `id`, `type`, then attributes.

// MarshalJSON implements json.Marshaler.
func (f Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Data())
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Field) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("model: decode field: %w", err)
	}
	*f = fieldFromMap(raw)
	return nil
}

// MarshalYAML implements yaml.Marshaler, keeping `id` and `type` first and the
// remaining attributes sorted by key.
func (f Field) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	if err := appendYAMLPair(node, KeyID, f.id); err != nil {
		return nil, err
	}
	if err := appendYAMLPair(node, KeyType, f.typ); err != nil {
		return nil, err
	}
	for _, key := range f.Keys() {
		if err := appendYAMLPair(node, key, f.attrs[key]); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (f *Field) UnmarshalYAML(value *yaml.Node) error {
	var raw map[string]any
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("model: decode field: %w", err)
	}
	*f = fieldFromMap(raw)
	return nil
}

func fieldFromMap(raw map[string]any) Field {
	id, _ := raw[KeyID].(string)
	typ, _ := raw[KeyType].(string)
	return NewField(id, typ, raw)
}

func appendYAMLPair(node *yaml.Node, key string, value any) error {
	var valueNode yaml.Node
	if err := valueNode.Encode(value); err != nil {
		return fmt.Errorf("model: encode %s: %w", key, err)
	}
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		&valueNode,
	)
	return nil
}

type rowDTO struct {
	ID     string  `json:"id" yaml:"id"`
	Fields []Field `json:"fields" yaml:"fields"`
}

type documentDTO struct {
	Rows []rowDTO `json:"rows" yaml:"rows"`
}

func (r Row) dto() rowDTO {
	fields := r.fields
	if fields == nil {
		fields = []Field{}
	}
	return rowDTO{ID: r.id, Fields: fields}
}

func (d Document) dto() documentDTO {
	rows := make([]rowDTO, 0, len(d.rows))
	for _, row := range d.rows {
		rows = append(rows, row.dto())
	}
	return documentDTO{Rows: rows}
}

func (dto documentDTO) document() Document {
	rows := make([]Row, 0, len(dto.Rows))
	for _, row := range dto.Rows {
		rows = append(rows, NewRow(row.ID, row.Fields...))
	}
	return Document{rows: rows}
}

// MarshalJSON implements json.Marshaler.
func (r Row) MarshalJSON() ([]byte, error) { return json.Marshal(r.dto()) }

// UnmarshalJSON implements json.Unmarshaler.
func (r *Row) UnmarshalJSON(data []byte) error {
	var dto rowDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return err
	}
	*r = NewRow(dto.ID, dto.Fields...)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (r Row) MarshalYAML() (any, error) { return r.dto(), nil }

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *Row) UnmarshalYAML(value *yaml.Node) error {
	var dto rowDTO
	if err := value.Decode(&dto); err != nil {
		return err
	}
	*r = NewRow(dto.ID, dto.Fields...)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Document) MarshalJSON() ([]byte, error) { return json.Marshal(d.dto()) }

// UnmarshalJSON implements json.Unmarshaler.
func (d *Document) UnmarshalJSON(data []byte) error {
	var dto documentDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return fmt.Errorf("model: decode document: %w", err)
	}
	*d = dto.document()
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Document) MarshalYAML() (any, error) { return d.dto(), nil }

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Document) UnmarshalYAML(value *yaml.Node) error {
	var dto documentDTO
	if err := value.Decode(&dto); err != nil {
		return fmt.Errorf("model: decode document: %w", err)
	}
	*d = dto.document()
	return nil
}

// DecodeDocument parses a YAML or JSON document payload (JSON is valid YAML)
// and validates its identifier invariants.
func DecodeDocument(data []byte) (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, err
	}
	if err := doc.Validate(); err != nil {
		return Document{}, err
	}
	return doc, nil
}
