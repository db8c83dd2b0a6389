package docs

import (
	"reflect"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/plexiform/gdocs-cli/internal/markdown"
)

const documentFixture = `{
  "documentId": "doc123",
  "title": "Fixture",
  "revisionId": "rev1",
  "body": {
    "content": [
      {"startIndex": 1, "endIndex": 7, "paragraph": {
        "paragraphStyle": {"namedStyleType": "HEADING_1"},
        "elements": [{"textRun": {"content": "Title\n"}}]
      }},
      {"startIndex": 7, "endIndex": 13, "paragraph": {
        "paragraphStyle": {"namedStyleType": "NORMAL_TEXT"},
        "elements": [
          {"textRun": {"content": "Hello"}},
          {"textRun": {"content": "!\n"}}
        ]
      }},
      {"startIndex": 13, "endIndex": 20, "paragraph": {
        "paragraphStyle": {"namedStyleType": "HEADING_2"},
        "elements": [{"textRun": {"content": "Detail\n"}}]
      }},
      {"startIndex": 20, "endIndex": 32, "table": {
        "tableRows": [
          {"tableCells": [
            {"content": [{"startIndex": 22, "paragraph": {"elements": [{"textRun": {"content": "a\n"}}]}}]},
            {"content": [{"startIndex": 24, "paragraph": {"elements": [{"textRun": {"content": "b\n"}}]}}]}
          ]},
          {"tableCells": [
            {"content": [{"startIndex": 27, "paragraph": {"elements": [{"textRun": {"content": "c\n"}}]}}]},
            {"content": [{"startIndex": 29, "paragraph": {"elements": [{"textRun": {"content": "d\n"}}]}}]}
          ]}
        ]
      }},
      {"startIndex": 32, "endIndex": 33, "paragraph": {
        "elements": [{"textRun": {"content": "\n"}}]
      }}
    ]
  }
}`

func TestExtractTextContent(t *testing.T) {
	doc := gjson.Parse(documentFixture)
	got := extractTextContent(doc.Get("body.content"))
	want := "Title\n\nHello!\n\nDetail\n\na\n | b\n\nc\n | d\n\n\n"
	if got != want {
		t.Fatalf("content = %q, want %q", got, want)
	}
}

func TestLastBodyEndIndex(t *testing.T) {
	doc := gjson.Parse(documentFixture)
	if got := lastBodyEndIndex(doc); got != 33 {
		t.Fatalf("lastBodyEndIndex = %d, want 33", got)
	}
	if got := lastBodyEndIndex(gjson.Parse(`{"body":{"content":[]}}`)); got != 1 {
		t.Fatalf("empty document end index = %d, want 1", got)
	}
}

func TestFindTableAt(t *testing.T) {
	doc := gjson.Parse(documentFixture)

	table, ok := findTableAt(doc, 20)
	if !ok {
		t.Fatal("table at its own start index not found")
	}
	if rows := len(table.Get("tableRows").Array()); rows != 2 {
		t.Fatalf("tableRows = %d, want 2", rows)
	}

	if _, ok := findTableAt(doc, 5); !ok {
		t.Fatal("table after a lower anchor not found")
	}
	if _, ok := findTableAt(doc, 25); ok {
		t.Fatal("found a table past the last table's start")
	}
}

// A table that cannot be located in the re-read document yields no fill
// requests: the structural insert stands and the command continues.
func TestTableFillSkippedWhenTableMissing(t *testing.T) {
	region := markdown.TableRegion{
		Rows:     [][]string{{"a", "b"}},
		RowCount: 1,
		ColCount: 2,
		Anchor:   3,
	}

	noTables := gjson.Parse(`{"body": {"content": [
		{"startIndex": 1, "endIndex": 5, "paragraph": {"elements": []}}
	]}}`)
	if reqs := tableFillRequests(noTables, region); len(reqs) != 0 {
		t.Fatalf("fill planned against a document with no tables: %#v", reqs)
	}

	// A table that starts before the anchor does not match either.
	tableTooEarly := gjson.Parse(`{"body": {"content": [
		{"startIndex": 1, "endIndex": 2, "table": {"tableRows": []}}
	]}}`)
	region.Anchor = 10
	if reqs := tableFillRequests(tableTooEarly, region); len(reqs) != 0 {
		t.Fatalf("fill planned against a table before the anchor: %#v", reqs)
	}
}

func TestTableFillRequestsForLocatedTable(t *testing.T) {
	doc := gjson.Parse(documentFixture)
	region := markdown.TableRegion{
		Rows:     [][]string{{"x", ""}, {"", "y"}},
		RowCount: 2,
		ColCount: 2,
		Anchor:   20,
	}

	reqs := tableFillRequests(doc, region)
	want := []markdown.Request{
		markdown.InsertCellText{Index: 29, Text: "y"},
		markdown.InsertCellText{Index: 22, Text: "x"},
	}
	if !reflect.DeepEqual(reqs, want) {
		t.Fatalf("reqs = %#v, want %#v", reqs, want)
	}
}

func TestCellAnchorFunc(t *testing.T) {
	doc := gjson.Parse(documentFixture)
	table, ok := findTableAt(doc, 20)
	if !ok {
		t.Fatal("fixture table not found")
	}
	anchor := cellAnchorFunc(table)

	cases := []struct {
		row, col int
		want     int64
		ok       bool
	}{
		{0, 0, 22, true},
		{0, 1, 24, true},
		{1, 0, 27, true},
		{1, 1, 29, true},
		{2, 0, 0, false},
		{0, 2, 0, false},
	}
	for _, tc := range cases {
		got, ok := anchor(tc.row, tc.col)
		if got != tc.want || ok != tc.ok {
			t.Errorf("anchor(%d, %d) = (%d, %v), want (%d, %v)",
				tc.row, tc.col, got, ok, tc.want, tc.ok)
		}
	}
}
