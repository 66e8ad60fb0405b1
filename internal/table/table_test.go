package table

import (
	"testing"
)

func TestTableAddRow(t *testing.T) {
	tbl := New("A", "B", "C")

	if err := tbl.AddRow("1", "2"); err != nil {
		t.Fatalf("AddRow short row: %v", err)
	}
	if got := tbl.Row(0); got[2] != "" {
		t.Errorf("short row should be padded, got %q", got)
	}

	if err := tbl.AddRow("1", "2", "3", "4"); err == nil {
		t.Error("AddRow with too many fields should fail")
	}
	if tbl.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tbl.Len())
	}
}

func TestTableLookup(t *testing.T) {
	tbl := New("Task", " start ", "Task")
	_ = tbl.AddRow("a", "b", "c")

	if tbl.Index("Task") != 0 {
		t.Errorf("Index should return the first match")
	}
	if tbl.IndexFold("START") != 1 {
		t.Errorf("IndexFold should ignore case and surrounding space")
	}
	if tbl.Index("missing") != -1 {
		t.Errorf("Index of missing column should be -1")
	}
	if got := tbl.Cell(0, "missing"); got != "" {
		t.Errorf("Cell of missing column = %q, want empty", got)
	}
	if col, ok := tbl.Column("Task"); !ok || col[0] != "a" {
		t.Errorf("Column(Task) = %v, %v", col, ok)
	}
}

func TestTableCloneIsDeep(t *testing.T) {
	tbl := New("A")
	_ = tbl.AddRow("x")

	clone := tbl.Clone()
	clone.rows[0][0] = "changed"
	clone.columns[0] = "Z"

	if tbl.Row(0)[0] != "x" || tbl.Columns()[0] != "A" {
		t.Error("Clone should not share storage with the original")
	}
}

func TestTableSelect(t *testing.T) {
	tbl := New("A", "B")
	_ = tbl.AddRow("1", "2")
	_ = tbl.AddRow("3", "4")

	out, err := tbl.Select([]string{"B", "A", "Empty"}, []int{1, 0, -1})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	want := [][]string{{"B", "A", "Empty"}, {"2", "1", ""}, {"4", "3", ""}}
	got := out.Records()
	for i := range want {
		for j := range want[i] {
			if got[i][j] != want[i][j] {
				t.Fatalf("Records() = %v, want %v", got, want)
			}
		}
	}

	if _, err := tbl.Select([]string{"X"}, []int{5}); err == nil {
		t.Error("Select with out-of-range index should fail")
	}
}
