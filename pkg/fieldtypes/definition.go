package fieldtypes

import "github.com/goliatone/go-formbuilder/pkg/model"

// SettingType identifies the editor used for a settings descriptor.
type SettingType string

// Setting types understood by settings panels and the interactive builder.
const (
	SettingText           SettingType = "text"
	SettingCheckbox       SettingType = "checkbox"
	SettingSelect         SettingType = "select"
	SettingDynamicOptions SettingType = "dynamic-options"
)

// Setting describes one editable attribute of a field type. The registry
// treats settings as data; nothing here enforces them on field instances.
type Setting struct {
	Type    SettingType    `json:"type" yaml:"type"`
	Key     string         `json:"key" yaml:"key"`
	Label   string         `json:"label" yaml:"label"`
	Options []model.Option `json:"options,omitempty" yaml:"options,omitempty"`
}

// CodeTemplate maps one field instance to its generated fragment. It must be
// deterministic and must not panic for a field of its own type.
type CodeTemplate func(field model.Field) string

// Definition describes a kind of field: display metadata, defaults merged into
// new instances, the settings schema and the code template.
type Definition struct {
	Type          string
	Label         string
	Icon          string
	DefaultConfig map[string]any
	Settings      []Setting
	Template      CodeTemplate
}

// NewField creates an instance of the type seeded with a deep copy of
// DefaultConfig.
func (d Definition) NewField(id string) model.Field {
	return model.NewField(id, d.Type, d.DefaultConfig)
}

// Render runs the code template, returning "" when the definition has none.
func (d Definition) Render(field model.Field) string {
	if d.Template == nil {
		return ""
	}
	return d.Template(field)
}

// Setting returns the settings descriptor for key.
func (d Definition) Setting(key string) (Setting, bool) {
	for _, setting := range d.Settings {
		if setting.Key == key {
			return setting, true
		}
	}
	return Setting{}, false
}
