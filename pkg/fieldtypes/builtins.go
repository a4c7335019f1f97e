package fieldtypes

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Built-in field type tags.
const (
	TypeText     = "text"
	TypeCheckbox = "checkbox"
	TypeSelect   = "select"
	TypeDate     = "date"
)

// FragmentIndent prefixes every line emitted by the built-in templates so the
// fragments line up inside the generated field containers.
const FragmentIndent = "           "

var (
	labelSetting    = Setting{Type: SettingText, Key: model.AttrLabel, Label: "Label"}
	requiredSetting = Setting{Type: SettingCheckbox, Key: model.AttrRequired, Label: "Required"}

	defaultSelectOptions = []model.Option{
		{Label: "Option 1", Value: "option1"},
		{Label: "Option 2", Value: "option2"},
		{Label: "Option 3", Value: "option3"},
	}
)

// Builtins returns fresh copies of the built-in definitions in catalog order.
func Builtins() []Definition {
	return []Definition{
		textDefinition(),
		checkboxDefinition(),
		selectDefinition(),
		dateDefinition(),
	}
}

func textDefinition() Definition {
	return Definition{
		Type:  TypeText,
		Label: "Text Field",
		Icon:  "text_fields",
		DefaultConfig: map[string]any{
			model.AttrLabel:    "Text Field",
			model.AttrRequired: false,
		},
		Settings: []Setting{
			labelSetting,
			{Type: SettingText, Key: model.AttrPlaceholder, Label: "Placeholder"},
			requiredSetting,
			{
				Type:  SettingSelect,
				Key:   model.AttrInputType,
				Label: "Input Type",
				Options: []model.Option{
					{Value: "text", Label: "Text"},
					{Value: "number", Label: "Number"},
					{Value: "email", Label: "Email"},
					{Value: "tel", Label: "Phone"},
				},
			},
		},
		Template: textTemplate,
	}
}

func checkboxDefinition() Definition {
	return Definition{
		Type:  TypeCheckbox,
		Label: "Checkbox",
		Icon:  "check_box",
		DefaultConfig: map[string]any{
			model.AttrLabel:    "Checkbox",
			model.AttrRequired: false,
		},
		Settings: []Setting{labelSetting, requiredSetting},
		Template: checkboxTemplate,
	}
}

func selectDefinition() Definition {
	return Definition{
		Type:  TypeSelect,
		Label: "Dropdown",
		Icon:  "arrow_drop_down_circle",
		DefaultConfig: map[string]any{
			model.AttrLabel:    "Select",
			model.AttrRequired: false,
			model.AttrOptions:  append([]model.Option(nil), defaultSelectOptions...),
		},
		Settings: []Setting{
			labelSetting,
			requiredSetting,
			{Type: SettingDynamicOptions, Key: model.AttrOptions, Label: "Dropdown Options"},
		},
		Template: selectTemplate,
	}
}

func dateDefinition() Definition {
	return Definition{
		Type:  TypeDate,
		Label: "Date Picker",
		Icon:  "calendar_today",
		DefaultConfig: map[string]any{
			model.AttrLabel:    "Date",
			model.AttrRequired: false,
		},
		Settings: []Setting{labelSetting, requiredSetting},
		Template: dateTemplate,
	}
}

type fragment struct {
	strings.Builder
}

func (f *fragment) line(depth int, format string, args ...any) {
	f.WriteString(FragmentIndent)
	f.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(&f.Builder, format, args...)
	f.WriteByte('\n')
}

func required(field model.Field) string {
	return strconv.FormatBool(field.Bool(model.AttrRequired))
}

func textTemplate(field model.Field) string {
	var out fragment
	input := fmt.Sprintf(`<input matInput type="%s" [required]="%s"`,
		field.StringOr(model.AttrInputType, "text"), required(field))
	if placeholder := field.String(model.AttrPlaceholder); placeholder != "" {
		input += fmt.Sprintf(` placeholder="%s"`, placeholder)
	}

	out.line(0, `<mat-form-field appearance="outline" class="w-full">`)
	out.line(1, `<mat-label>%s</mat-label>`, field.String(model.AttrLabel))
	out.line(1, `%s />`, input)
	out.line(0, `</mat-form-field>`)
	return out.String()
}

func checkboxTemplate(field model.Field) string {
	var out fragment
	out.line(0, `<mat-checkbox [required]="%s">%s</mat-checkbox>`, required(field), field.String(model.AttrLabel))
	return out.String()
}

func selectTemplate(field model.Field) string {
	options := defaultSelectOptions
	if field.HasOptions() {
		options = field.Options()
	}

	var out fragment
	out.line(0, `<mat-form-field appearance="outline" class="w-full">`)
	out.line(1, `<mat-label>%s</mat-label>`, field.String(model.AttrLabel))
	out.line(1, `<mat-select [required]="%s">`, required(field))
	for _, option := range options {
		out.line(2, `<mat-option value="%s">%s</mat-option>`, option.Value, option.Label)
	}
	out.line(1, `</mat-select>`)
	out.line(0, `</mat-form-field>`)
	return out.String()
}

func dateTemplate(field model.Field) string {
	picker := "picker" + identifier(field.ID())

	var out fragment
	out.line(0, `<mat-form-field appearance="outline" class="w-full">`)
	out.line(1, `<mat-label>%s</mat-label>`, field.String(model.AttrLabel))
	out.line(1, `<input matInput [matDatepicker]="%s" [required]="%s" />`, picker, required(field))
	out.line(1, `<mat-datepicker-toggle matIconSuffix [for]="%s"></mat-datepicker-toggle>`, picker)
	out.line(1, `<mat-datepicker #%s></mat-datepicker>`, picker)
	out.line(0, `</mat-form-field>`)
	return out.String()
}

// identifier strips characters that cannot appear in a template reference
// variable (UUID dashes, mostly).
func identifier(id string) string {
	var out strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			out.WriteRune(r)
		}
	}
	return out.String()
}
