package markdown

import (
	"reflect"
	"testing"
)

func TestSegmentClassifiesLines(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []Block
	}{
		{"heading1", "# Title\n", []Block{Heading{Level: 1, Text: "Title"}}},
		{"heading2", "## Sub\n", []Block{Heading{Level: 2, Text: "Sub"}}},
		{"heading3", "### Deep\n", []Block{Heading{Level: 3, Text: "Deep"}}},
		{"hash4 is paragraph", "#### Nope\n", []Block{Paragraph{Text: "#### Nope"}}},
		{"unchecked dash", "- [ ] task\n", []Block{CheckboxItem{Checked: false, Text: "task"}}},
		{"unchecked star", "* [ ] task\n", []Block{CheckboxItem{Checked: false, Text: "task"}}},
		{"checked lower", "- [x] done\n", []Block{CheckboxItem{Checked: true, Text: "done"}}},
		{"checked upper star", "* [X] done\n", []Block{CheckboxItem{Checked: true, Text: "done"}}},
		{"bullet dash", "- item\n", []Block{BulletItem{Text: "item"}}},
		{"bullet star", "* item\n", []Block{BulletItem{Text: "item"}}},
		{"numbered", "12. step\n", []Block{NumberedItem{Ordinal: "12", Text: "step"}}},
		{"rule", "---\n", []Block{HorizontalRule{}}},
		{"blank", "\n", []Block{BlankLine{}}},
		{"paragraph", "plain text\n", []Block{Paragraph{Text: "plain text"}}},
		{"trailing spaces trimmed", "- item   \n", []Block{BulletItem{Text: "item"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Segment(tc.src)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Segment(%q) = %#v, want %#v", tc.src, got, tc.want)
			}
		})
	}
}

func TestSegmentEmptySource(t *testing.T) {
	if got := Segment(""); len(got) != 0 {
		t.Fatalf("Segment(\"\") = %#v, want empty", got)
	}
}

func TestSegmentTableConsumesRun(t *testing.T) {
	src := "before\n| A | B |\n|---|---|\n| 1 | 2 |\nafter\n"
	got := Segment(src)
	want := []Block{
		Paragraph{Text: "before"},
		TableBlock{Rows: [][]string{{"A", "B"}, {"1", "2"}}},
		Paragraph{Text: "after"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Segment = %#v, want %#v", got, want)
	}
}

func TestSegmentAllSeparatorTableDropped(t *testing.T) {
	got := Segment("|---|---|\nafter\n")
	want := []Block{Paragraph{Text: "after"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Segment = %#v, want %#v", got, want)
	}
}

func TestParseNumberedItem(t *testing.T) {
	cases := []struct {
		line    string
		ordinal string
		rest    string
		ok      bool
	}{
		{"1. one", "1", "one", true},
		{"10. ten", "10", "ten", true},
		{"1.no space", "", "", false},
		{". leading dot", "", "", false},
		{"a. letters", "", "", false},
		{"1a. mixed", "", "", false},
		{"no dot at all", "", "", false},
	}
	for _, tc := range cases {
		ordinal, rest, ok := parseNumberedItem(tc.line)
		if ordinal != tc.ordinal || rest != tc.rest || ok != tc.ok {
			t.Errorf("parseNumberedItem(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tc.line, ordinal, rest, ok, tc.ordinal, tc.rest, tc.ok)
		}
	}
}

func TestSplitLinesNoPhantomTrailingLine(t *testing.T) {
	got := splitLines("a\nb\n")
	want := []string{"a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("splitLines = %#v, want %#v", got, want)
	}

	got = splitLines("a\n\n")
	want = []string{"a", ""}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("splitLines with blank = %#v, want %#v", got, want)
	}
}
