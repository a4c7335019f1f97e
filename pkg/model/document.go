package model

// Row is an ordered group of fields generated together.
type Row struct {
	id     string
	fields []Field
}

// NewRow builds a row owning a copy of fields.
func NewRow(id string, fields ...Field) Row {
	return Row{id: id, fields: append([]Field(nil), fields...)}
}

// ID returns the row identifier.
func (r Row) ID() string { return r.id }

// Len returns the number of fields in the row.
func (r Row) Len() int { return len(r.fields) }

// Fields returns the row's fields in order.
func (r Row) Fields() []Field { return append([]Field(nil), r.fields...) }

// Field returns the field at index.
func (r Row) Field(index int) (Field, bool) {
	if index < 0 || index >= len(r.fields) {
		return Field{}, false
	}
	return r.fields[index], true
}

// IndexOf returns the position of fieldID or -1.
func (r Row) IndexOf(fieldID string) int {
	for idx, field := range r.fields {
		if field.id == fieldID {
			return idx
		}
	}
	return -1
}

// Document is the ordered row structure representing the form being built.
type Document struct {
	rows []Row
}

// NewDocument builds a document owning a copy of rows.
func NewDocument(rows ...Row) Document {
	return Document{rows: append([]Row(nil), rows...)}
}

// Len returns the number of rows.
func (d Document) Len() int { return len(d.rows) }

// Rows returns the rows in document order.
func (d Document) Rows() []Row { return append([]Row(nil), d.rows...) }

// RowAt returns the row at index.
func (d Document) RowAt(index int) (Row, bool) {
	if index < 0 || index >= len(d.rows) {
		return Row{}, false
	}
	return d.rows[index], true
}

// Row looks up a row by id.
func (d Document) Row(id string) (Row, bool) {
	if idx := d.RowIndex(id); idx >= 0 {
		return d.rows[idx], true
	}
	return Row{}, false
}

// RowIndex returns the position of the row or -1.
func (d Document) RowIndex(id string) int {
	for idx, row := range d.rows {
		if row.id == id {
			return idx
		}
	}
	return -1
}

// FindField returns the first field with id together with its owning row id.
func (d Document) FindField(id string) (Field, string, bool) {
	for _, row := range d.rows {
		if idx := row.IndexOf(id); idx >= 0 {
			return row.fields[idx], row.id, true
		}
	}
	return Field{}, "", false
}

// FieldIDs lists field ids in document order (row by row).
func (d Document) FieldIDs() []string {
	var ids []string
	for _, row := range d.rows {
		for _, field := range row.fields {
			ids = append(ids, field.id)
		}
	}
	return ids
}

// FieldCount returns the number of fields across all rows.
func (d Document) FieldCount() int {
	total := 0
	for _, row := range d.rows {
		total += len(row.fields)
	}
	return total
}

// Validate checks identifier invariants: every row and field has an id, row
// ids are unique and field ids are unique across the whole document.
func (d Document) Validate() error {
	rowIDs := make(map[string]struct{}, len(d.rows))
	fieldIDs := make(map[string]struct{})
	for _, row := range d.rows {
		if row.id == "" {
			return ErrMissingID
		}
		if _, dup := rowIDs[row.id]; dup {
			return &DuplicateIDError{Kind: "row", ID: row.id}
		}
		rowIDs[row.id] = struct{}{}
		for _, field := range row.fields {
			if field.id == "" {
				return ErrMissingID
			}
			if _, dup := fieldIDs[field.id]; dup {
				return &DuplicateIDError{Kind: "field", ID: field.id}
			}
			fieldIDs[field.id] = struct{}{}
		}
	}
	return nil
}
