package markdown

import "sort"

// Request is a single positional mutation against the destination document,
// serializable to one Docs batchUpdate request object.
//
// Every request that inserts content shifts the index of everything after
// its target position, so requests batched against the same document must
// be ordered from highest target index to lowest: an already-applied
// request then never invalidates the precomputed index of a pending one.
// Style updates do not change document length but follow the same
// descending convention.
type Request interface {
	Body() map[string]any
	request()
}

// InsertText inserts the flattened text at Index.
type InsertText struct {
	Index int64
	Text  string
}

// UpdateTextStyle applies character styling over [Start, End).
type UpdateTextStyle struct {
	Start  int64
	End    int64
	Style  map[string]any
	Fields string
}

// UpdateParagraphStyle applies a named paragraph style over [Start, End).
type UpdateParagraphStyle struct {
	Start      int64
	End        int64
	NamedStyle string
}

// InsertTable creates an empty Rows x Cols table at Index.
type InsertTable struct {
	Index int64
	Rows  int64
	Cols  int64
}

// InsertCellText inserts one cell's text at the cell's content anchor.
type InsertCellText struct {
	Index int64
	Text  string
}

func (InsertText) request()           {}
func (UpdateTextStyle) request()      {}
func (UpdateParagraphStyle) request() {}
func (InsertTable) request()          {}
func (InsertCellText) request()       {}

func (r InsertText) Body() map[string]any {
	return map[string]any{
		"insertText": map[string]any{
			"location": map[string]any{"index": r.Index},
			"text":     r.Text,
		},
	}
}

func (r UpdateTextStyle) Body() map[string]any {
	return map[string]any{
		"updateTextStyle": map[string]any{
			"range":     map[string]any{"startIndex": r.Start, "endIndex": r.End},
			"textStyle": r.Style,
			"fields":    r.Fields,
		},
	}
}

func (r UpdateParagraphStyle) Body() map[string]any {
	return map[string]any{
		"updateParagraphStyle": map[string]any{
			"range":          map[string]any{"startIndex": r.Start, "endIndex": r.End},
			"paragraphStyle": map[string]any{"namedStyleType": r.NamedStyle},
			"fields":         "namedStyleType",
		},
	}
}

func (r InsertTable) Body() map[string]any {
	return map[string]any{
		"insertTable": map[string]any{
			"rows":     r.Rows,
			"columns":  r.Cols,
			"location": map[string]any{"index": r.Index},
		},
	}
}

func (r InsertCellText) Body() map[string]any {
	return map[string]any{
		"insertText": map[string]any{
			"location": map[string]any{"index": r.Index},
			"text":     r.Text,
		},
	}
}

// TextRequest returns the single bulk insert for the flattened text, or
// false when there is nothing to insert.
func (c Compiled) TextRequest() (Request, bool) {
	if c.Text == "" {
		return nil, false
	}
	return InsertText{Index: c.Base, Text: c.Text}, true
}

// StyleRequests returns one style request per span, ordered by descending
// start index.
func (c Compiled) StyleRequests() []Request {
	spans := make([]Span, len(c.Spans))
	copy(spans, c.Spans)
	sort.SliceStable(spans, func(i, j int) bool { return spans[i].Start > spans[j].Start })

	reqs := make([]Request, 0, len(spans))
	for _, s := range spans {
		reqs = append(reqs, spanRequest(s))
	}
	return reqs
}

func spanRequest(s Span) Request {
	switch s.Kind {
	case Heading1:
		return UpdateParagraphStyle{Start: s.Start, End: s.End, NamedStyle: "HEADING_1"}
	case Heading2:
		return UpdateParagraphStyle{Start: s.Start, End: s.End, NamedStyle: "HEADING_2"}
	case Heading3:
		return UpdateParagraphStyle{Start: s.Start, End: s.End, NamedStyle: "HEADING_3"}
	case Italic:
		return UpdateTextStyle{
			Start: s.Start, End: s.End,
			Style:  map[string]any{"italic": true},
			Fields: "italic",
		}
	case Code:
		return UpdateTextStyle{
			Start: s.Start, End: s.End,
			Style: map[string]any{
				"fontFamily": "Courier New",
				"backgroundColor": map[string]any{
					"color": map[string]any{
						"rgbColor": map[string]any{"red": 0.95, "green": 0.95, "blue": 0.95},
					},
				},
			},
			Fields: "fontFamily,backgroundColor",
		}
	default:
		return UpdateTextStyle{
			Start: s.Start, End: s.End,
			Style:  map[string]any{"bold": true},
			Fields: "bold",
		}
	}
}

// TablesDescending returns the table regions ordered by descending anchor,
// the order their structural inserts must be issued in.
func (c Compiled) TablesDescending() []TableRegion {
	tables := make([]TableRegion, len(c.Tables))
	copy(tables, c.Tables)
	sort.SliceStable(tables, func(i, j int) bool { return tables[i].Anchor > tables[j].Anchor })
	return tables
}

// InsertRequest returns the structural insert for the region.
func (t TableRegion) InsertRequest() Request {
	return InsertTable{Index: t.Anchor, Rows: t.RowCount, Cols: t.ColCount}
}

// CellRequests builds the per-cell text inserts for a freshly inserted
// table. anchor resolves a (row, col) pair to the cell's content start
// index in the updated document; cells it cannot resolve are skipped, as
// are empty cells and cells beyond the declared bounds. Iteration is last
// row first, last column first, so every insert lands at or after the
// target of the next one.
func (t TableRegion) CellRequests(anchor func(row, col int) (int64, bool)) []Request {
	var reqs []Request
	for row := len(t.Rows) - 1; row >= 0; row-- {
		if int64(row) >= t.RowCount {
			continue
		}
		cells := t.Rows[row]
		for col := len(cells) - 1; col >= 0; col-- {
			if int64(col) >= t.ColCount {
				continue
			}
			if cells[col] == "" {
				continue
			}
			index, ok := anchor(row, col)
			if !ok {
				continue
			}
			reqs = append(reqs, InsertCellText{Index: index, Text: cells[col]})
		}
	}
	return reqs
}

// Bodies serializes requests in order for one batchUpdate call.
func Bodies(reqs []Request) []map[string]any {
	bodies := make([]map[string]any, 0, len(reqs))
	for _, r := range reqs {
		bodies = append(bodies, r.Body())
	}
	return bodies
}
