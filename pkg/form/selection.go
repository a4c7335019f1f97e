package form

import "github.com/goliatone/go-formbuilder/pkg/model"

// SelectedField resolves the selected id against doc. It is recomputed on
// every read so the result can never refer to a field that has gone away.
func SelectedField(doc model.Document, selectedID string) (model.Field, bool) {
	if selectedID == "" {
		return model.Field{}, false
	}
	field, _, ok := doc.FindField(selectedID)
	return field, ok
}

// SetSelectedField points the selection at fieldID.
func (m *Model) SetSelectedField(fieldID string) {
	m.selected.Set(fieldID)
}

// ClearSelection removes the selection.
func (m *Model) ClearSelection() {
	m.selected.Set("")
}

// SelectedFieldID returns the raw selected id, which may no longer resolve.
func (m *Model) SelectedFieldID() string {
	return m.selected.Get()
}

// SelectedField returns the selected field from the current snapshot.
func (m *Model) SelectedField() (model.Field, bool) {
	return SelectedField(m.doc.Get(), m.selected.Get())
}

// SubscribeSelection calls fn with the derived selection whenever the
// document or the selected id changes.
func (m *Model) SubscribeSelection(fn func(field model.Field, ok bool)) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	cancelDoc := m.doc.Subscribe(func(doc model.Document) {
		fn(SelectedField(doc, m.selected.Get()))
	})
	cancelSel := m.selected.Subscribe(func(id string) {
		fn(SelectedField(m.doc.Get(), id))
	})
	return func() {
		cancelDoc()
		cancelSel()
	}
}
