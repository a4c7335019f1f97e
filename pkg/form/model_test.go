package form

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	return New(WithIDGenerator(NewSequenceGenerator("row")))
}

func textField(id string) model.Field {
	return model.NewField(id, "text", map[string]any{"label": "Text Field", "required": false})
}

func layout(doc model.Document) [][]string {
	out := make([][]string, 0, doc.Len())
	for _, row := range doc.Rows() {
		ids := []string{}
		for _, field := range row.Fields() {
			ids = append(ids, field.ID())
		}
		out = append(out, ids)
	}
	return out
}

func rowIDs(doc model.Document) []string {
	var out []string
	for _, row := range doc.Rows() {
		out = append(out, row.ID())
	}
	return out
}

func assertLayout(t *testing.T, m *Model, want [][]string) {
	t.Helper()
	if diff := cmp.Diff(want, layout(m.Document())); diff != "" {
		t.Fatalf("layout mismatch (-want +got):\n%s", diff)
	}
}

func TestNew_SeedsSingleEmptyRow(t *testing.T) {
	m := newTestModel(t)

	doc := m.Document()
	if doc.Len() != 1 {
		t.Fatalf("expected one seed row, got %d", doc.Len())
	}
	if got := rowIDs(doc); got[0] != "row-1" {
		t.Fatalf("unexpected seed row id %q", got[0])
	}
	if doc.FieldCount() != 0 {
		t.Fatalf("expected seed row to be empty")
	}
}

func TestInsertField_ClampsIndex(t *testing.T) {
	m := newTestModel(t)

	if !m.AddField(textField("a"), "row-1") {
		t.Fatalf("expected add to succeed")
	}
	m.InsertField(textField("b"), "row-1", -5)
	m.InsertField(textField("c"), "row-1", 99)
	m.InsertField(textField("d"), "row-1", 1)

	assertLayout(t, m, [][]string{{"b", "d", "a", "c"}})
}

func TestInsertField_UnknownRowIsNoop(t *testing.T) {
	m := newTestModel(t)
	before := m.Document()

	if m.AddField(textField("a"), "missing") {
		t.Fatalf("expected add to report no change")
	}
	if diff := cmp.Diff(layout(before), layout(m.Document())); diff != "" {
		t.Fatalf("document changed:\n%s", diff)
	}
}

func TestUpdateField_MergesAttributes(t *testing.T) {
	m := newTestModel(t)
	m.AddField(textField("a"), "row-1")

	if !m.UpdateField("a", map[string]any{"label": "Email", "id": "hijack", "placeholder": "you@example.com"}) {
		t.Fatalf("expected update to succeed")
	}

	field, _, ok := m.Document().FindField("a")
	if !ok {
		t.Fatalf("field a should survive an update that tries to rename it")
	}
	want := map[string]any{"label": "Email", "required": false, "placeholder": "you@example.com"}
	if diff := cmp.Diff(want, field.Attrs()); diff != "" {
		t.Fatalf("attrs mismatch (-want +got):\n%s", diff)
	}

	if m.UpdateField("missing", map[string]any{"label": "x"}) {
		t.Fatalf("expected update of unknown field to be a no-op")
	}
}

func TestUpdateField_RetypesField(t *testing.T) {
	m := newTestModel(t)
	m.AddField(textField("a"), "row-1")

	m.UpdateField("a", map[string]any{"type": "checkbox"})

	field, _, _ := m.Document().FindField("a")
	if field.Type() != "checkbox" {
		t.Fatalf("expected type checkbox, got %q", field.Type())
	}
}

func TestDeleteField(t *testing.T) {
	m := newTestModel(t)
	m.AddField(textField("a"), "row-1")
	m.AddField(textField("b"), "row-1")

	if !m.DeleteField("a") {
		t.Fatalf("expected delete to succeed")
	}
	if m.DeleteField("a") {
		t.Fatalf("second delete should be a no-op")
	}
	assertLayout(t, m, [][]string{{"b"}})
}

func TestDuplicateIDs_AffectEveryCopy(t *testing.T) {
	m := newTestModel(t)
	second := m.AddRow()
	m.AddField(textField("dup"), "row-1")
	m.AddField(textField("keep"), "row-1")
	m.AddField(textField("dup"), "row-1")
	m.AddField(textField("dup"), second)

	if !m.UpdateField("dup", map[string]any{"label": "Twin"}) {
		t.Fatalf("expected update to apply")
	}
	for _, row := range m.Document().Rows() {
		for _, field := range row.Fields() {
			if field.ID() == "dup" && field.String("label") != "Twin" {
				t.Fatalf("copy in %s not updated: %q", row.ID(), field.String("label"))
			}
		}
	}

	if !m.DeleteField("dup") {
		t.Fatalf("expected delete to apply")
	}
	assertLayout(t, m, [][]string{{"keep"}, {}})
}

func TestAddRow_ReturnsFreshID(t *testing.T) {
	m := newTestModel(t)

	id := m.AddRow()
	if id != "row-2" {
		t.Fatalf("unexpected row id %q", id)
	}
	if diff := cmp.Diff([]string{"row-1", "row-2"}, rowIDs(m.Document())); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestDeleteRow_RefusesLastRow(t *testing.T) {
	m := newTestModel(t)
	m.AddField(textField("a"), "row-1")

	if m.DeleteRow("row-1") {
		t.Fatalf("deleting the only row must be refused")
	}
	assertLayout(t, m, [][]string{{"a"}})

	second := m.AddRow()
	if !m.DeleteRow("row-1") {
		t.Fatalf("expected delete to succeed with two rows")
	}
	if diff := cmp.Diff([]string{second}, rowIDs(m.Document())); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
	if m.DeleteRow(second) {
		t.Fatalf("the remaining row must not be deleted")
	}
	if m.Document().Len() != 1 {
		t.Fatalf("document must keep at least one row")
	}
}

func TestDeleteRow_UnknownRowIsNoop(t *testing.T) {
	m := newTestModel(t)
	m.AddRow()

	if m.DeleteRow("missing") {
		t.Fatalf("expected no-op for unknown row")
	}
	if m.Document().Len() != 2 {
		t.Fatalf("expected rows to be untouched")
	}
}

func TestMoveRowUpDown(t *testing.T) {
	m := newTestModel(t)
	m.AddRow()
	m.AddRow()

	if m.MoveRowUp("row-1") {
		t.Fatalf("first row cannot move up")
	}
	if m.MoveRowDown("row-3") {
		t.Fatalf("last row cannot move down")
	}

	if !m.MoveRowDown("row-1") {
		t.Fatalf("expected move down")
	}
	if diff := cmp.Diff([]string{"row-2", "row-1", "row-3"}, rowIDs(m.Document())); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}

	m.MoveRowUp("row-1")
	if diff := cmp.Diff([]string{"row-1", "row-2", "row-3"}, rowIDs(m.Document())); diff != "" {
		t.Fatalf("up after down should restore order (-want +got):\n%s", diff)
	}
}

func TestMoveRowUpThenDown_RestoresOrder(t *testing.T) {
	m := newTestModel(t)
	m.AddRow()
	m.AddRow()
	original := rowIDs(m.Document())

	for _, id := range original[1:] {
		m.MoveRowUp(id)
		m.MoveRowDown(id)
		if diff := cmp.Diff(original, rowIDs(m.Document())); diff != "" {
			t.Fatalf("round trip for %s changed order (-want +got):\n%s", id, diff)
		}
	}
}

func TestMoveField_AcrossRows(t *testing.T) {
	m := newTestModel(t)
	row2 := m.AddRow()
	m.AddField(textField("a"), "row-1")
	m.AddField(textField("b"), "row-1")
	m.AddField(textField("c"), row2)

	if !m.MoveField("a", "row-1", row2, 0) {
		t.Fatalf("expected move")
	}
	assertLayout(t, m, [][]string{{"b"}, {"a", "c"}})

	m.MoveField("b", "row-1", row2, End)
	assertLayout(t, m, [][]string{{}, {"a", "c", "b"}})
}

func TestMoveField_WithinRowUsesPostRemovalIndex(t *testing.T) {
	tests := []struct {
		name  string
		field string
		index int
		want  []string
		moved bool
	}{
		{name: "first to last", field: "a", index: 2, want: []string{"b", "c", "a"}, moved: true},
		{name: "last to first", field: "c", index: 0, want: []string{"c", "a", "b"}, moved: true},
		{name: "middle forward", field: "a", index: 1, want: []string{"b", "a", "c"}, moved: true},
		{name: "overlong appends", field: "a", index: 10, want: []string{"b", "c", "a"}, moved: true},
		{name: "negative prepends", field: "c", index: -1, want: []string{"c", "a", "b"}, moved: true},
		{name: "same slot", field: "b", index: 1, want: []string{"a", "b", "c"}, moved: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := newTestModel(t)
			for _, id := range []string{"a", "b", "c"} {
				m.AddField(textField(id), "row-1")
			}

			if got := m.MoveField(tc.field, "row-1", "row-1", tc.index); got != tc.moved {
				t.Fatalf("moved = %v, want %v", got, tc.moved)
			}
			assertLayout(t, m, [][]string{tc.want})
		})
	}
}

func TestMoveField_MissingTargetRowKeepsField(t *testing.T) {
	m := newTestModel(t)
	m.AddField(textField("f1"), "row-1")

	if m.MoveField("f1", "row-1", "row-missing", 0) {
		t.Fatalf("expected no-op when target row is missing")
	}
	assertLayout(t, m, [][]string{{"f1"}})
}

func TestMoveField_FieldNotInSourceRow(t *testing.T) {
	m := newTestModel(t)
	row2 := m.AddRow()
	m.AddField(textField("a"), "row-1")

	if m.MoveField("a", row2, "row-1", 0) {
		t.Fatalf("expected no-op when field is not in the source row")
	}
	assertLayout(t, m, [][]string{{"a"}, {}})
}

func TestMoveField_RoundTripRestoresIndex(t *testing.T) {
	m := newTestModel(t)
	row2 := m.AddRow()
	for _, id := range []string{"a", "b", "c"} {
		m.AddField(textField(id), "row-1")
	}
	m.AddField(textField("x"), row2)

	for _, j := range []int{0, 1, 2, 7} {
		m.MoveField("b", "row-1", row2, 0)
		m.MoveField("b", row2, "row-1", j)

		row, _ := m.Document().Row("row-1")
		want := j
		if want > row.Len()-1 {
			want = row.Len() - 1
		}
		if got := row.IndexOf("b"); got != want {
			t.Fatalf("j=%d: index = %d, want %d", j, got, want)
		}
	}
}

func TestSnapshotsAreImmutable(t *testing.T) {
	m := newTestModel(t)
	m.AddField(textField("a"), "row-1")
	before := m.Document()

	m.UpdateField("a", map[string]any{"label": "Changed"})
	m.AddField(textField("b"), "row-1")
	m.AddRow()

	if diff := cmp.Diff([][]string{{"a"}}, layout(before)); diff != "" {
		t.Fatalf("old snapshot changed (-want +got):\n%s", diff)
	}
	field, _, _ := before.FindField("a")
	if field.String("label") != "Text Field" {
		t.Fatalf("old snapshot field mutated: %q", field.String("label"))
	}

	rows := before.Rows()
	rows[0] = model.NewRow("hijack")
	if first, _ := before.RowAt(0); first.ID() != "row-1" {
		t.Fatalf("Rows must return a copy")
	}
}

func TestSubscribe_PublishesEachChange(t *testing.T) {
	m := newTestModel(t)
	var seen []int
	cancel := m.Subscribe(func(doc model.Document) {
		seen = append(seen, doc.FieldCount())
	})

	m.AddField(textField("a"), "row-1")
	m.AddField(textField("b"), "row-1")
	m.DeleteField("missing")
	m.DeleteField("a")
	cancel()
	m.DeleteField("b")

	if diff := cmp.Diff([]int{1, 2, 1}, seen); diff != "" {
		t.Fatalf("notifications mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_ValidatesAndSeeds(t *testing.T) {
	m := newTestModel(t)

	dup := model.NewDocument(
		model.NewRow("r1", textField("a")),
		model.NewRow("r2", textField("a")),
	)
	if err := m.Load(dup); err == nil {
		t.Fatalf("expected duplicate id error")
	}

	if err := m.Load(model.NewDocument()); err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if m.Document().Len() != 1 {
		t.Fatalf("empty document should receive a seed row")
	}

	doc := model.NewDocument(model.NewRow("r1", textField("a")))
	if err := m.Load(doc); err != nil {
		t.Fatalf("load: %v", err)
	}
	assertLayout(t, m, [][]string{{"a"}})
}

func TestReset(t *testing.T) {
	m := newTestModel(t)
	m.AddField(textField("a"), "row-1")
	m.SetSelectedField("a")

	m.Reset()

	assertLayout(t, m, [][]string{{}})
	if m.SelectedFieldID() != "" {
		t.Fatalf("reset should clear the selection")
	}
}

func TestNoopsAreLoggedAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	m := New(WithIDGenerator(NewSequenceGenerator("row")), WithLogger(logger))

	m.DeleteRow("row-1")

	if !strings.Contains(buf.String(), "form: delete row skipped") {
		t.Fatalf("expected debug log, got %q", buf.String())
	}
}
