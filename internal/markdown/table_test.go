package markdown

import (
	"reflect"
	"testing"
)

func TestIsTableLine(t *testing.T) {
	cases := []struct {
		line string
		want bool
	}{
		{"| a | b |", true},
		{"|---|", true},
		{"||", true},
		{"|", true},
		{"", false},
		{"| unterminated", false},
		{"terminated |", false},
	}
	for _, tc := range cases {
		if got := isTableLine(tc.line); got != tc.want {
			t.Errorf("isTableLine(%q) = %v, want %v", tc.line, got, tc.want)
		}
	}
}

func TestIsSeparatorRow(t *testing.T) {
	cases := []struct {
		cells []string
		want  bool
	}{
		{[]string{"---", "---"}, true},
		{[]string{":--", "--:", ":-:"}, true},
		{[]string{"---", "data"}, false},
		{[]string{""}, false},
		{nil, false},
	}
	for _, tc := range cases {
		if got := isSeparatorRow(tc.cells); got != tc.want {
			t.Errorf("isSeparatorRow(%v) = %v, want %v", tc.cells, got, tc.want)
		}
	}
}

func TestParseTableRows(t *testing.T) {
	lines := []string{"| A | B |", "|---|---|", "| 1 | 2 |", "not a table"}
	rows, consumed := parseTableRows(lines)
	if consumed != 3 {
		t.Fatalf("consumed = %d, want 3", consumed)
	}
	want := [][]string{{"A", "B"}, {"1", "2"}}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("rows = %#v, want %#v", rows, want)
	}
}

func TestSplitCellsTrims(t *testing.T) {
	got := splitCells("|  a  | b|| c |")
	want := []string{"a", "b", "", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("splitCells = %#v, want %#v", got, want)
	}
}

// A lone "|" is a one-cell row whose single cell is empty.
func TestLonePipeIsOneCellRow(t *testing.T) {
	if got := splitCells("|"); !reflect.DeepEqual(got, []string{""}) {
		t.Fatalf("splitCells(%q) = %#v, want one empty cell", "|", got)
	}

	blocks := Segment("|\n")
	want := []Block{TableBlock{Rows: [][]string{{""}}}}
	if !reflect.DeepEqual(blocks, want) {
		t.Fatalf("Segment(%q) = %#v, want %#v", "|\n", blocks, want)
	}
}

func TestHasContent(t *testing.T) {
	empty := TableRegion{Rows: [][]string{{"", ""}}, RowCount: 1, ColCount: 2}
	if empty.HasContent() {
		t.Fatal("empty region reported content")
	}

	filled := TableRegion{Rows: [][]string{{"", "x"}}, RowCount: 1, ColCount: 2}
	if !filled.HasContent() {
		t.Fatal("filled region reported no content")
	}

	// Content only beyond the declared bounds does not count.
	overflow := TableRegion{Rows: [][]string{{"", "", "x"}}, RowCount: 1, ColCount: 2}
	if overflow.HasContent() {
		t.Fatal("out-of-bounds content counted")
	}
}
