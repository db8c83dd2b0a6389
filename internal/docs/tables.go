package docs

import (
	"context"

	"github.com/tidwall/gjson"

	"github.com/plexiform/gdocs-cli/internal/markdown"
)

// InsertTable inserts a rows x cols table, appending when index is nil.
// Data, when present, fills cells row-major; short rows leave trailing
// cells empty.
func (s *Service) InsertTable(ctx context.Context, documentID string, rows, cols int64, index *int64, data [][]string) (map[string]any, error) {
	insertionIndex, err := s.resolveIndex(ctx, documentID, index)
	if err != nil {
		return nil, err
	}

	region := markdown.TableRegion{
		Rows:     data,
		RowCount: rows,
		ColCount: cols,
		Anchor:   insertionIndex,
	}
	if err := s.insertTableRegion(ctx, documentID, region); err != nil {
		return nil, err
	}

	return map[string]any{
		"status":      "success",
		"operation":   "insert_table",
		"document_id": documentID,
		"inserted_at": insertionIndex,
		"rows":        rows,
		"columns":     cols,
		"data_filled": len(data) > 0,
	}, nil
}

// insertTableRegion performs the structural insert, then re-reads the
// document to learn the cell start indices before filling content. Cell
// inserts run in descending row/column order so earlier anchors stay
// valid.
func (s *Service) insertTableRegion(ctx context.Context, documentID string, region markdown.TableRegion) error {
	if _, err := s.batchUpdate(ctx, documentID, []map[string]any{region.InsertRequest().Body()}); err != nil {
		return err
	}
	if !region.HasContent() {
		return nil
	}

	doc, err := s.get(ctx, documentID)
	if err != nil {
		return err
	}
	cellReqs := tableFillRequests(doc, region)
	if len(cellReqs) == 0 {
		return nil
	}
	_, err = s.batchUpdate(ctx, documentID, markdown.Bodies(cellReqs))
	return err
}

// tableFillRequests plans the cell inserts for a freshly inserted table.
// When the table cannot be located in the re-read document (concurrent
// mutation, unexpected structure) the fill is skipped: no requests, the
// structural insert stands, later tables proceed.
func tableFillRequests(doc gjson.Result, region markdown.TableRegion) []markdown.Request {
	table, ok := findTableAt(doc, region.Anchor)
	if !ok {
		return nil
	}
	return region.CellRequests(cellAnchorFunc(table))
}

// findTableAt locates the first table element at or after the insertion
// index in the freshly-read document.
func findTableAt(doc gjson.Result, index int64) (gjson.Result, bool) {
	for _, element := range doc.Get("body.content").Array() {
		if !element.Get("table").Exists() {
			continue
		}
		if element.Get("startIndex").Int() >= index {
			return element.Get("table"), true
		}
	}
	return gjson.Result{}, false
}

// cellAnchorFunc resolves a cell to the start index of its first content
// element, where text inserts must land.
func cellAnchorFunc(table gjson.Result) func(row, col int) (int64, bool) {
	tableRows := table.Get("tableRows").Array()
	return func(row, col int) (int64, bool) {
		if row >= len(tableRows) {
			return 0, false
		}
		cells := tableRows[row].Get("tableCells").Array()
		if col >= len(cells) {
			return 0, false
		}
		content := cells[col].Get("content").Array()
		if len(content) == 0 {
			return 0, false
		}
		start := content[0].Get("startIndex")
		if !start.Exists() {
			return 0, false
		}
		return start.Int(), true
	}
}
