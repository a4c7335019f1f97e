package form

import (
	"io"
	"log/slog"
	"math"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// End used as an index appends to the target row.
const End = math.MaxInt

// Option configures a Model.
type Option func(*Model)

// WithIDGenerator overrides the generator used for row ids and NewFieldID.
func WithIDGenerator(ids IDGenerator) Option {
	return func(m *Model) {
		if ids != nil {
			m.ids = ids
		}
	}
}

// WithLogger receives debug logs for operations that resolve to no-ops.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// Model owns the form document. Every operation swaps in a new immutable
// snapshot and publishes it to subscribers; readers observe either the
// previous or the next snapshot, never a partial update.
//
// Ids referencing rows or fields that no longer exist turn operations into
// no-ops reported by a false return. Field ids must be unique across the
// document; inserting a duplicate id is a caller bug the model does not
// detect, and operations addressing that id then affect every copy.
type Model struct {
	doc      *Observable[model.Document]
	selected *Observable[string]
	ids      IDGenerator
	logger   *slog.Logger
}

// New creates a model holding one empty seed row.
func New(options ...Option) *Model {
	m := &Model{
		ids:      UUIDGenerator{},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		selected: NewObservable(""),
	}
	for _, opt := range options {
		if opt != nil {
			opt(m)
		}
	}
	m.doc = NewObservable(model.NewDocument(model.NewRow(m.ids.NewID())))
	return m
}

// Document returns the current snapshot.
func (m *Model) Document() model.Document {
	return m.doc.Get()
}

// Subscribe publishes each new snapshot to fn until cancel is called.
func (m *Model) Subscribe(fn func(model.Document)) (cancel func()) {
	return m.doc.Subscribe(fn)
}

// NewFieldID returns a fresh id suitable for a new field.
func (m *Model) NewFieldID() string {
	return m.ids.NewID()
}

// AddField appends field to the row.
func (m *Model) AddField(field model.Field, rowID string) bool {
	return m.InsertField(field, rowID, End)
}

// InsertField inserts field into the row at index, clamped to [0, len].
func (m *Model) InsertField(field model.Field, rowID string, index int) bool {
	return m.mutate("insert field", func(rows []model.Row) bool {
		idx := rowIndex(rows, rowID)
		if idx < 0 {
			return false
		}
		rows[idx] = model.NewRow(rowID, insertField(rows[idx].Fields(), index, field)...)
		return true
	}, "row", rowID, "field", field.ID())
}

// UpdateField merges partial into the attributes of the field. The `id` key is
// ignored; a non-empty string `type` retypes the field.
func (m *Model) UpdateField(fieldID string, partial map[string]any) bool {
	return m.mutateField("update field", fieldID, func(field model.Field) (model.Field, bool) {
		return field.Merge(partial), true
	})
}

// DeleteField removes the field from whichever row holds it, every copy
// included.
func (m *Model) DeleteField(fieldID string) bool {
	return m.mutate("delete field", func(rows []model.Row) bool {
		changed := false
		for idx, row := range rows {
			kept := make([]model.Field, 0, row.Len())
			for _, field := range row.Fields() {
				if field.ID() != fieldID {
					kept = append(kept, field)
				}
			}
			if len(kept) == row.Len() {
				continue
			}
			rows[idx] = model.NewRow(row.ID(), kept...)
			changed = true
		}
		return changed
	}, "field", fieldID)
}

// AddRow appends an empty row and returns its id.
func (m *Model) AddRow() string {
	id := m.ids.NewID()
	m.doc.Update(func(doc model.Document) (model.Document, bool) {
		return model.NewDocument(append(doc.Rows(), model.NewRow(id))...), true
	})
	return id
}

// DeleteRow removes the row, refusing to delete the last remaining row.
func (m *Model) DeleteRow(rowID string) bool {
	return m.mutateRows("delete row", func(rows []model.Row) ([]model.Row, bool) {
		if len(rows) <= 1 {
			return nil, false
		}
		idx := rowIndex(rows, rowID)
		if idx < 0 {
			return nil, false
		}
		return append(rows[:idx], rows[idx+1:]...), true
	}, "row", rowID)
}

// MoveRowUp swaps the row with its predecessor.
func (m *Model) MoveRowUp(rowID string) bool {
	return m.mutate("move row up", func(rows []model.Row) bool {
		idx := rowIndex(rows, rowID)
		if idx <= 0 {
			return false
		}
		rows[idx-1], rows[idx] = rows[idx], rows[idx-1]
		return true
	}, "row", rowID)
}

// MoveRowDown swaps the row with its successor.
func (m *Model) MoveRowDown(rowID string) bool {
	return m.mutate("move row down", func(rows []model.Row) bool {
		idx := rowIndex(rows, rowID)
		if idx < 0 || idx >= len(rows)-1 {
			return false
		}
		rows[idx], rows[idx+1] = rows[idx+1], rows[idx]
		return true
	}, "row", rowID)
}

// MoveField moves the field out of sourceRowID and into targetRowID at index
// (clamped; End appends). The index addresses the target row after the field
// has left its old slot, which is what drag-and-drop reports when reordering
// within a row. Nothing happens unless the field is in the source row and the
// target row exists.
func (m *Model) MoveField(fieldID, sourceRowID, targetRowID string, index int) bool {
	return m.mutate("move field", func(rows []model.Row) bool {
		src := rowIndex(rows, sourceRowID)
		dst := rowIndex(rows, targetRowID)
		if src < 0 || dst < 0 {
			return false
		}
		pos := rows[src].IndexOf(fieldID)
		if pos < 0 {
			return false
		}
		field, _ := rows[src].Field(pos)

		remaining := removeField(rows[src].Fields(), pos)
		if src == dst {
			if clamp(index, len(remaining)) == pos {
				return false
			}
			rows[src] = model.NewRow(sourceRowID, insertField(remaining, index, field)...)
			return true
		}
		rows[src] = model.NewRow(sourceRowID, remaining...)
		rows[dst] = model.NewRow(targetRowID, insertField(rows[dst].Fields(), index, field)...)
		return true
	}, "field", fieldID, "source", sourceRowID, "target", targetRowID, "index", index)
}

// Load replaces the document. A document without rows receives a seed row so
// the at-least-one-row invariant holds.
func (m *Model) Load(doc model.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	if doc.Len() == 0 {
		doc = model.NewDocument(model.NewRow(m.ids.NewID()))
	}
	m.doc.Set(doc)
	return nil
}

// Reset returns the model to a single empty row and clears the selection.
func (m *Model) Reset() {
	m.doc.Set(model.NewDocument(model.NewRow(m.ids.NewID())))
	m.selected.Set("")
}

func (m *Model) mutate(op string, fn func(rows []model.Row) bool, attrs ...any) bool {
	return m.mutateRows(op, func(rows []model.Row) ([]model.Row, bool) {
		return rows, fn(rows)
	}, attrs...)
}

func (m *Model) mutateRows(op string, fn func(rows []model.Row) ([]model.Row, bool), attrs ...any) bool {
	changed := m.doc.Update(func(doc model.Document) (model.Document, bool) {
		rows, ok := fn(doc.Rows())
		if !ok {
			return doc, false
		}
		return model.NewDocument(rows...), true
	})
	if !changed {
		m.logger.Debug("form: "+op+" skipped", attrs...)
	}
	return changed
}

func (m *Model) mutateField(op, fieldID string, fn func(model.Field) (model.Field, bool)) bool {
	return m.mutate(op, func(rows []model.Row) bool {
		changed := false
		for idx, row := range rows {
			fields := row.Fields()
			touched := false
			for pos, field := range fields {
				if field.ID() != fieldID {
					continue
				}
				if next, ok := fn(field); ok {
					fields[pos] = next
					touched = true
				}
			}
			if touched {
				rows[idx] = model.NewRow(row.ID(), fields...)
				changed = true
			}
		}
		return changed
	}, "field", fieldID)
}

func rowIndex(rows []model.Row, id string) int {
	for idx, row := range rows {
		if row.ID() == id {
			return idx
		}
	}
	return -1
}

func clamp(index, length int) int {
	switch {
	case index < 0:
		return 0
	case index > length:
		return length
	default:
		return index
	}
}

func insertField(fields []model.Field, index int, field model.Field) []model.Field {
	at := clamp(index, len(fields))
	out := make([]model.Field, 0, len(fields)+1)
	out = append(out, fields[:at]...)
	out = append(out, field)
	return append(out, fields[at:]...)
}

func removeField(fields []model.Field, pos int) []model.Field {
	out := make([]model.Field, 0, len(fields)-1)
	out = append(out, fields[:pos]...)
	return append(out, fields[pos+1:]...)
}
