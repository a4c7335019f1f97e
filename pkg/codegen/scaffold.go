package codegen

// Import is one symbol pulled into the generated component.
type Import struct {
	Symbol string
	Path   string
}

// Scaffold is the fixed frame wrapped around the generated template: the
// import catalog and the exported component name. Imports are not computed
// from the field types in use; the whole catalog is always emitted.
type Scaffold struct {
	Imports       []Import
	ComponentName string
}

// DefaultComponentName names the generated component class.
const DefaultComponentName = "GeneratedFormComponent"

// DefaultScaffold returns the Angular Material scaffold covering every
// built-in field type.
func DefaultScaffold() Scaffold {
	return Scaffold{
		ComponentName: DefaultComponentName,
		Imports: []Import{
			{Symbol: "Component", Path: "@angular/core"},
			{Symbol: "CommonModule", Path: "@angular/common"},
			{Symbol: "FormsModule", Path: "@angular/forms"},
			{Symbol: "MatFormFieldModule", Path: "@angular/material/form-field"},
			{Symbol: "MatInputModule", Path: "@angular/material/input"},
			{Symbol: "MatSelectModule", Path: "@angular/material/select"},
			{Symbol: "MatCheckboxModule", Path: "@angular/material/checkbox"},
			{Symbol: "MatRadioModule", Path: "@angular/material/radio"},
			{Symbol: "MatDatepickerModule", Path: "@angular/material/datepicker"},
			{Symbol: "MatNativeDateModule", Path: "@angular/material/core"},
			{Symbol: "MatButtonModule", Path: "@angular/material/button"},
		},
	}
}

// moduleSymbols lists the symbols that belong in the component's imports
// array: every scaffold import except the decorator itself, deduplicated.
func (s Scaffold) moduleSymbols() []string {
	seen := make(map[string]struct{}, len(s.Imports))
	out := make([]string, 0, len(s.Imports))
	for _, imp := range s.Imports {
		if imp.Symbol == "" || imp.Symbol == "Component" {
			continue
		}
		if _, dup := seen[imp.Symbol]; dup {
			continue
		}
		seen[imp.Symbol] = struct{}{}
		out = append(out, imp.Symbol)
	}
	return out
}

// importLines renders the deduplicated import statements in catalog order.
func (s Scaffold) importLines() []string {
	seen := make(map[string]struct{}, len(s.Imports))
	out := make([]string, 0, len(s.Imports))
	for _, imp := range s.Imports {
		if imp.Symbol == "" || imp.Path == "" {
			continue
		}
		line := "import { " + imp.Symbol + " } from '" + imp.Path + "';"
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		out = append(out, line)
	}
	return out
}

func (s Scaffold) componentName() string {
	if s.ComponentName == "" {
		return DefaultComponentName
	}
	return s.ComponentName
}
