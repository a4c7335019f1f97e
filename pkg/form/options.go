package form

import (
	"fmt"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// AddOption appends "option N" / "option-N" to the field's choice list.
func (m *Model) AddOption(fieldID string) bool {
	return m.mutateField("add option", fieldID, func(field model.Field) (model.Field, bool) {
		options := field.Options()
		n := len(options) + 1
		options = append(options, model.Option{
			Label: fmt.Sprintf("option %d", n),
			Value: fmt.Sprintf("option-%d", n),
		})
		return field.Merge(map[string]any{model.AttrOptions: options}), true
	})
}

// RemoveOption drops the choice at index.
func (m *Model) RemoveOption(fieldID string, index int) bool {
	return m.mutateField("remove option", fieldID, func(field model.Field) (model.Field, bool) {
		options := field.Options()
		if index < 0 || index >= len(options) {
			return field, false
		}
		options = append(options[:index], options[index+1:]...)
		return field.Merge(map[string]any{model.AttrOptions: options}), true
	})
}

// UpdateOptionLabel relabels the choice at index, keeping its value.
func (m *Model) UpdateOptionLabel(fieldID string, index int, label string) bool {
	return m.mutateField("update option", fieldID, func(field model.Field) (model.Field, bool) {
		options := field.Options()
		if index < 0 || index >= len(options) {
			return field, false
		}
		options[index].Label = label
		return field.Merge(map[string]any{model.AttrOptions: options}), true
	})
}
