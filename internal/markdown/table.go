package markdown

import "strings"

// TableRegion is a table destined for a structural insert. Anchor is the
// absolute index of the placeholder newline left in the flattened text at
// the table's position; the cell content itself never enters the flattened
// stream.
type TableRegion struct {
	Rows     [][]string
	RowCount int64
	ColCount int64
	Anchor   int64
}

// HasContent reports whether any in-bounds cell carries text, i.e. whether
// a fill pass is needed after the structural insert.
func (t TableRegion) HasContent() bool {
	for row, cells := range t.Rows {
		if int64(row) >= t.RowCount {
			continue
		}
		for col, cell := range cells {
			if int64(col) >= t.ColCount {
				continue
			}
			if cell != "" {
				return true
			}
		}
	}
	return false
}

// isTableLine reports whether a (right-trimmed) line opens or continues a
// pipe table. A lone "|" counts: it is a one-cell row with empty content.
func isTableLine(line string) bool {
	return strings.HasPrefix(line, "|") && strings.HasSuffix(line, "|")
}

// parseTableRows consumes the leading run of pipe-delimited lines, dropping
// the header/body separator row, and returns the data rows plus the number
// of source lines consumed.
func parseTableRows(lines []string) (rows [][]string, consumed int) {
	for consumed < len(lines) {
		line := strings.TrimRight(lines[consumed], " \t\r")
		if !isTableLine(line) {
			break
		}
		cells := splitCells(line)
		if !isSeparatorRow(cells) {
			rows = append(rows, cells)
		}
		consumed++
	}
	return rows, consumed
}

// splitCells strips the outer pipes and trims each cell.
func splitCells(line string) []string {
	inner := strings.TrimSuffix(strings.TrimPrefix(line, "|"), "|")
	parts := strings.Split(inner, "|")
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}

// isSeparatorRow reports whether every cell is a non-empty run of '-' and
// ':' characters, i.e. the markdown header separator.
func isSeparatorRow(cells []string) bool {
	if len(cells) == 0 {
		return false
	}
	for _, cell := range cells {
		if cell == "" {
			return false
		}
		for _, c := range cell {
			if c != '-' && c != ':' {
				return false
			}
		}
	}
	return true
}
