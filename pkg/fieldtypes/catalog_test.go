package fieldtypes

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

const textareaCatalog = `
types:
  - type: textarea
    label: Text Area
    icon: notes
    defaults:
      label: Comments
      required: false
      rows: 4
    settings:
      - {type: text, key: label, label: Label}
      - {type: checkbox, key: required, label: Required}
      - {key: rows, label: Rows}
    template: |
      <mat-form-field appearance="outline" class="w-full">
        <mat-label>{{ field.label }}</mat-label>
        <textarea matInput rows="{{ field.rows }}" [required]="{{ field.required|literal }}"></textarea>
      </mat-form-field>
`

const radioCatalog = `{
  "types": [
    {
      "type": "radio",
      "label": "Radio Group",
      "icon": "<svg viewBox=\"0 0 24 24\"><script>alert(1)</script><circle cx=\"12\" cy=\"12\" r=\"6\"/></svg>",
      "defaults": {"label": "Pick one", "options": [{"label": "Yes", "value": "y"}]},
      "template": "<mat-radio-group>{% for o in field.options %}<mat-radio-button value=\"{{ o.value }}\">{{ o.label }}</mat-radio-button>{% endfor %}</mat-radio-group>"
    }
  ]
}`

func TestLoadFS_ParsesYAMLAndJSONCatalogs(t *testing.T) {
	files := fstest.MapFS{
		"catalog/a_textarea.yaml": &fstest.MapFile{Data: []byte(textareaCatalog)},
		"catalog/b_radio.json":    &fstest.MapFile{Data: []byte(radioCatalog)},
		"catalog/README.md":       &fstest.MapFile{Data: []byte("ignored")},
	}

	defs, err := LoadFS(files)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(defs) != 2 || defs[0].Type != "textarea" || defs[1].Type != "radio" {
		t.Fatalf("unexpected definitions: %+v", defs)
	}

	textarea := defs[0]
	if textarea.Icon != "notes" {
		t.Fatalf("ligature icon must pass through, got %q", textarea.Icon)
	}
	wantSettings := []Setting{
		{Type: SettingText, Key: "label", Label: "Label"},
		{Type: SettingCheckbox, Key: "required", Label: "Required"},
		{Type: SettingText, Key: "rows", Label: "Rows"},
	}
	if diff := cmp.Diff(wantSettings, textarea.Settings); diff != "" {
		t.Fatalf("settings mismatch (-want +got):\n%s", diff)
	}

	field := textarea.NewField("t1")
	got := textarea.Render(field)
	if !strings.Contains(got, `<mat-label>Comments</mat-label>`) ||
		!strings.Contains(got, `rows="4" [required]="false"`) {
		t.Fatalf("unexpected textarea fragment:\n%s", got)
	}

	radio := defs[1]
	if strings.Contains(radio.Icon, "script") || !strings.Contains(radio.Icon, "<circle") {
		t.Fatalf("icon not sanitised: %q", radio.Icon)
	}
	out := radio.Render(radio.NewField("r1"))
	if out != `<mat-radio-group><mat-radio-button value="y">Yes</mat-radio-button></mat-radio-group>` {
		t.Fatalf("unexpected radio fragment: %q", out)
	}
}

func TestRegistryLoadFS_OverridesBuiltins(t *testing.T) {
	files := fstest.MapFS{
		"override.yml": &fstest.MapFile{Data: []byte(`
types:
  - type: checkbox
    label: Toggle
    template: "<mat-slide-toggle>{{ field.label }}</mat-slide-toggle>"
`)},
	}

	reg := Default()
	if err := reg.LoadFS(files); err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{TypeText, TypeCheckbox, TypeSelect, TypeDate}, reg.Types()); diff != "" {
		t.Fatalf("override must keep order (-want +got):\n%s", diff)
	}
	def, _ := reg.Lookup(TypeCheckbox)
	field := model.NewField("c1", TypeCheckbox, map[string]any{"label": "Dark mode"})
	if got := def.Render(field); got != "<mat-slide-toggle>Dark mode</mat-slide-toggle>" {
		t.Fatalf("unexpected fragment %q", got)
	}
}

func TestLoadFS_Errors(t *testing.T) {
	cases := map[string]fstest.MapFS{
		"empty file":     {"a.yaml": &fstest.MapFile{Data: []byte("  ")}},
		"missing type":   {"a.yaml": &fstest.MapFile{Data: []byte("types:\n  - label: X\n")}},
		"bad template":   {"a.yaml": &fstest.MapFile{Data: []byte("types:\n  - type: x\n    template: \"{% if %}\"\n")}},
		"setting no key": {"a.yaml": &fstest.MapFile{Data: []byte("types:\n  - type: x\n    settings:\n      - {label: L}\n")}},
		"duplicate type": {
			"a.yaml": &fstest.MapFile{Data: []byte("types:\n  - type: x\n")},
			"b.yaml": &fstest.MapFile{Data: []byte("types:\n  - type: x\n")},
		},
	}

	for name, files := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadFS(files); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestFromTemplate_ExecutionFailureYieldsEmptyFragment(t *testing.T) {
	files := fstest.MapFS{
		"a.yaml": &fstest.MapFile{Data: []byte("types:\n  - type: broken\n    defaults: {label: missing.tpl}\n    template: \"{% include field.label %}\"\n")},
	}
	defs, err := LoadFS(files)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := defs[0].Render(defs[0].NewField("b1")); got != "" {
		t.Fatalf("expected empty fragment, got %q", got)
	}
}

func TestLoadFS_TemplatesUseIdentFilter(t *testing.T) {
	files := fstest.MapFS{
		"time.yaml": &fstest.MapFile{Data: []byte(`
types:
  - type: time
    label: Time Picker
    defaults: {label: Time}
    template: "<input [ngxTimepicker]=\"picker{{ field.id|ident }}\" /><ngx-timepicker #picker{{ field.id|ident }}></ngx-timepicker>"
`)},
	}
	defs, err := LoadFS(files)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got := defs[0].Render(defs[0].NewField("time-1"))
	want := `<input [ngxTimepicker]="pickertime1" /><ngx-timepicker #pickertime1></ngx-timepicker>`
	if got != want {
		t.Fatalf("unexpected fragment:\nwant %s\ngot  %s", want, got)
	}
}
