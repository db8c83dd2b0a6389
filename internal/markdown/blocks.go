package markdown

import (
	"strings"
	"unicode"
)

// Block is one segmented unit of markdown source. Implementations are the
// only block kinds the renderer understands; everything else falls back to
// Paragraph.
type Block interface {
	block()
}

// Heading is a #/##/### line. Level is 1-3.
type Heading struct {
	Level int
	Text  string
}

// CheckboxItem is a task-list item ("- [ ]" or "- [x]", star variants too).
type CheckboxItem struct {
	Checked bool
	Text    string
}

// BulletItem is a "-" or "*" list item.
type BulletItem struct {
	Text string
}

// NumberedItem is an ordered-list item. Ordinal keeps the source digits so
// the rendered prefix width matches ("9. " vs "10. ").
type NumberedItem struct {
	Ordinal string
	Text    string
}

// HorizontalRule is a "---" line.
type HorizontalRule struct{}

// TableBlock is a run of pipe-delimited lines with the separator row
// already removed. Rows is never empty.
type TableBlock struct {
	Rows [][]string
}

// BlankLine is an empty source line.
type BlankLine struct{}

// Paragraph is any line no other classifier claimed.
type Paragraph struct {
	Text string
}

func (Heading) block()        {}
func (CheckboxItem) block()   {}
func (BulletItem) block()     {}
func (NumberedItem) block()   {}
func (HorizontalRule) block() {}
func (TableBlock) block()     {}
func (BlankLine) block()      {}
func (Paragraph) block()      {}

// Segment splits markdown source into an ordered block sequence. Table
// blocks consume every contiguous pipe-delimited line; a table whose rows
// are all separator rows produces no block at all.
func Segment(src string) []Block {
	lines := splitLines(src)
	var blocks []Block

	for i := 0; i < len(lines); i++ {
		line := strings.TrimRightFunc(lines[i], unicode.IsSpace)

		switch {
		case strings.HasPrefix(line, "# "):
			blocks = append(blocks, Heading{Level: 1, Text: line[2:]})
		case strings.HasPrefix(line, "## "):
			blocks = append(blocks, Heading{Level: 2, Text: line[3:]})
		case strings.HasPrefix(line, "### "):
			blocks = append(blocks, Heading{Level: 3, Text: line[4:]})
		case strings.HasPrefix(line, "- [ ] ") || strings.HasPrefix(line, "* [ ] "):
			blocks = append(blocks, CheckboxItem{Checked: false, Text: line[6:]})
		case strings.HasPrefix(line, "- [x] ") || strings.HasPrefix(line, "* [x] ") ||
			strings.HasPrefix(line, "- [X] ") || strings.HasPrefix(line, "* [X] "):
			blocks = append(blocks, CheckboxItem{Checked: true, Text: line[6:]})
		case strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* "):
			blocks = append(blocks, BulletItem{Text: line[2:]})
		case line == "---":
			blocks = append(blocks, HorizontalRule{})
		case isTableLine(line):
			rows, consumed := parseTableRows(lines[i:])
			// Rewind to the last consumed line; the loop increment moves
			// past it.
			i += consumed - 1
			if len(rows) > 0 {
				blocks = append(blocks, TableBlock{Rows: rows})
			}
		case line == "":
			blocks = append(blocks, BlankLine{})
		default:
			if ordinal, rest, ok := parseNumberedItem(line); ok {
				blocks = append(blocks, NumberedItem{Ordinal: ordinal, Text: rest})
			} else {
				blocks = append(blocks, Paragraph{Text: line})
			}
		}
	}

	return blocks
}

// parseNumberedItem matches a leading run of ASCII digits followed by ". ".
func parseNumberedItem(line string) (ordinal, rest string, ok bool) {
	dot := strings.IndexByte(line, '.')
	if dot <= 0 {
		return "", "", false
	}
	for _, c := range line[:dot] {
		if c < '0' || c > '9' {
			return "", "", false
		}
	}
	if !strings.HasPrefix(line[dot:], ". ") {
		return "", "", false
	}
	return line[:dot], line[dot+2:], true
}

// splitLines splits on newlines without yielding a phantom empty line for a
// trailing terminator.
func splitLines(src string) []string {
	if src == "" {
		return nil
	}
	src = strings.TrimSuffix(src, "\n")
	return strings.Split(src, "\n")
}
