package fieldtypes

import (
	"strings"
	"testing"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

func render(t *testing.T, field model.Field) string {
	t.Helper()
	def, ok := Default().Lookup(field.Type())
	if !ok {
		t.Fatalf("type %q not registered", field.Type())
	}
	return def.Render(field)
}

func TestTextTemplate(t *testing.T) {
	field := model.NewField("f1", TypeText, map[string]any{"label": "Text Field", "required": false})

	want := FragmentIndent + `<mat-form-field appearance="outline" class="w-full">` + "\n" +
		FragmentIndent + `  <mat-label>Text Field</mat-label>` + "\n" +
		FragmentIndent + `  <input matInput type="text" [required]="false" />` + "\n" +
		FragmentIndent + `</mat-form-field>` + "\n"
	if got := render(t, field); got != want {
		t.Fatalf("unexpected fragment:\n%s", got)
	}
}

func TestTextTemplate_InputTypeAndPlaceholder(t *testing.T) {
	field := model.NewField("f1", TypeText, map[string]any{
		"label":       "Email",
		"required":    true,
		"inputType":   "email",
		"placeholder": "you@example.com",
	})

	got := render(t, field)
	if !strings.Contains(got, `<input matInput type="email" [required]="true" placeholder="you@example.com" />`) {
		t.Fatalf("unexpected fragment:\n%s", got)
	}
}

func TestCheckboxTemplate(t *testing.T) {
	field := model.NewField("f1", TypeCheckbox, map[string]any{"label": "Agree", "required": true})

	want := FragmentIndent + `<mat-checkbox [required]="true">Agree</mat-checkbox>` + "\n"
	if got := render(t, field); got != want {
		t.Fatalf("unexpected fragment: %q", got)
	}
}

func TestSelectTemplate_Options(t *testing.T) {
	cases := []struct {
		name    string
		attrs   map[string]any
		options []string
	}{
		{
			name:    "explicit options",
			attrs:   map[string]any{"options": []model.Option{{Label: "Red", Value: "red"}}},
			options: []string{`<mat-option value="red">Red</mat-option>`},
		},
		{
			name:  "missing options fall back to placeholders",
			attrs: map[string]any{},
			options: []string{
				`<mat-option value="option1">Option 1</mat-option>`,
				`<mat-option value="option2">Option 2</mat-option>`,
				`<mat-option value="option3">Option 3</mat-option>`,
			},
		},
		{
			name:    "empty options stay empty",
			attrs:   map[string]any{"options": []model.Option{}},
			options: nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := render(t, model.NewField("s1", TypeSelect, tc.attrs))
			if count := strings.Count(got, "<mat-option "); count != len(tc.options) {
				t.Fatalf("expected %d options, got %d:\n%s", len(tc.options), count, got)
			}
			for _, option := range tc.options {
				if !strings.Contains(got, option) {
					t.Fatalf("missing %s in:\n%s", option, got)
				}
			}
		})
	}
}

func TestDateTemplate_UsesSanitisedPickerReference(t *testing.T) {
	field := model.NewField("0190-ab_C", TypeDate, map[string]any{"label": "Birthday"})

	got := render(t, field)
	for _, want := range []string{
		`[matDatepicker]="picker0190ab_C"`,
		`[for]="picker0190ab_C"`,
		`<mat-datepicker #picker0190ab_C></mat-datepicker>`,
		`<mat-label>Birthday</mat-label>`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %s in:\n%s", want, got)
		}
	}
}

func TestTemplates_DoNotEscape(t *testing.T) {
	field := model.NewField("f1", TypeCheckbox, map[string]any{"label": `Say "yes"`})
	if got := render(t, field); !strings.Contains(got, `>Say "yes"<`) {
		t.Fatalf("expected verbatim label, got %q", got)
	}
}
