package fieldtypes

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

func TestDefault_ListsBuiltinsInCatalogOrder(t *testing.T) {
	reg := Default()

	if diff := cmp.Diff([]string{TypeText, TypeCheckbox, TypeSelect, TypeDate}, reg.Types()); diff != "" {
		t.Fatalf("types mismatch (-want +got):\n%s", diff)
	}
	labels := make([]string, 0, reg.Len())
	for _, def := range reg.List() {
		labels = append(labels, def.Label)
	}
	if diff := cmp.Diff([]string{"Text Field", "Checkbox", "Dropdown", "Date Picker"}, labels); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_LookupUnknownIsNotAnError(t *testing.T) {
	reg := Default()
	if _, ok := reg.Lookup("rating"); ok {
		t.Fatalf("expected unknown type to be absent")
	}
	if _, ok := reg.NewField("rating", "f1"); ok {
		t.Fatalf("expected NewField to report unknown type")
	}

	var nilRegistry *Registry
	if _, ok := nilRegistry.Lookup(TypeText); ok {
		t.Fatalf("nil registry must resolve nothing")
	}
}

func TestRegistry_OverwriteKeepsPosition(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(Definition{Type: "a", Label: "A"})
	reg.MustRegister(Definition{Type: "b", Label: "B"})
	reg.MustRegister(Definition{Type: "a", Label: "A2"})

	if diff := cmp.Diff([]string{"a", "b"}, reg.Types()); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	def, ok := reg.Lookup("a")
	if !ok || def.Label != "A2" {
		t.Fatalf("expected overwritten definition, got %+v", def)
	}
}

func TestRegistry_RejectsBlankType(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(Definition{Type: "  "}); err != ErrTypeRequired {
		t.Fatalf("expected ErrTypeRequired, got %v", err)
	}
	if reg.Len() != 0 {
		t.Fatalf("blank type must not be registered")
	}
}

func TestRegistry_NewFieldSeedsIndependentDefaults(t *testing.T) {
	reg := Default()

	first, ok := reg.NewField(TypeSelect, "f1")
	if !ok {
		t.Fatalf("select type missing")
	}
	second, _ := reg.NewField(TypeSelect, "f2")

	edited := first.Merge(map[string]any{"options": []model.Option{{Label: "Only", Value: "only"}}})
	if len(second.Options()) != 3 {
		t.Fatalf("defaults leaked between instances: %+v", second.Options())
	}
	if len(edited.Options()) != 1 {
		t.Fatalf("expected edited options to apply")
	}

	def, _ := reg.Lookup(TypeSelect)
	if opts := def.DefaultConfig["options"].([]model.Option); len(opts) != 3 {
		t.Fatalf("registry defaults mutated: %+v", opts)
	}
	if first.String("label") != "Select" || first.Bool("required") {
		t.Fatalf("unexpected seeded attrs: %+v", first.Attrs())
	}
}

func TestDefinition_SettingLookup(t *testing.T) {
	def, _ := Default().Lookup(TypeText)
	setting, ok := def.Setting("inputType")
	if !ok || setting.Type != SettingSelect || len(setting.Options) != 4 {
		t.Fatalf("unexpected inputType setting: %+v", setting)
	}
	if _, ok := def.Setting("options"); ok {
		t.Fatalf("text type has no options setting")
	}
}
