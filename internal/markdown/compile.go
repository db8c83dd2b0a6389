// Package markdown compiles a limited markdown dialect into the flattened
// text, formatting spans, and table regions needed to drive positional
// edits against a Docs-style document. All offsets are absolute codepoint
// indexes in the destination document, where index 1 is the first
// character.
package markdown

import (
	"strings"
	"unicode/utf8"
)

// horizontalRule is the rendered form of a "---" line.
var horizontalRule = strings.Repeat("—", 27) + "\n"

// Compiled is the result of one compilation: the flattened text to bulk
// insert, the spans and tables positioned within it, and the cursor value
// one past the last appended codepoint.
type Compiled struct {
	Text   string
	Spans  []Span
	Tables []TableRegion
	Base   int64
	Cursor int64
}

// Compile renders markdown into destination index space starting at base
// (1 for a fresh document). The returned cursor always satisfies
// cursor == base + codepoint length of Text.
func Compile(src string, base int64) Compiled {
	c := Compiled{Base: base, Cursor: base}
	var text strings.Builder

	for _, blk := range Segment(src) {
		switch blk := blk.(type) {
		case Heading:
			line := blk.Text + "\n"
			n := runeLen(line)
			kind := Heading1
			switch blk.Level {
			case 2:
				kind = Heading2
			case 3:
				kind = Heading3
			}
			c.Spans = append(c.Spans, Span{Kind: kind, Start: c.Cursor, End: c.Cursor + n - 1})
			text.WriteString(line)
			c.Cursor += n

		case CheckboxItem:
			prefix := "☐ "
			if blk.Checked {
				prefix = "☑ "
			}
			c.appendItem(&text, prefix, blk.Text)

		case BulletItem:
			c.appendItem(&text, "• ", blk.Text)

		case NumberedItem:
			c.appendItem(&text, blk.Ordinal+". ", blk.Text)

		case HorizontalRule:
			text.WriteString(horizontalRule)
			c.Cursor += runeLen(horizontalRule)

		case TableBlock:
			c.Tables = append(c.Tables, TableRegion{
				Rows:     blk.Rows,
				RowCount: int64(len(blk.Rows)),
				ColCount: int64(len(blk.Rows[0])),
				Anchor:   c.Cursor,
			})
			// Single placeholder newline; cells are filled in a later pass.
			text.WriteByte('\n')
			c.Cursor++

		case BlankLine:
			text.WriteByte('\n')
			c.Cursor++

		case Paragraph:
			rendered := renderInline(blk.Text, c.Cursor, &c.Spans) + "\n"
			text.WriteString(rendered)
			c.Cursor += runeLen(rendered)
		}
	}

	c.Text = text.String()
	return c
}

// appendItem renders a prefixed list line. The prefix glyph advances the
// cursor before inline content is positioned, so variable-width prefixes
// ("9. " vs "10. ") stay consistent.
func (c *Compiled) appendItem(text *strings.Builder, prefix, content string) {
	rendered := prefix + renderInline(content, c.Cursor+runeLen(prefix), &c.Spans) + "\n"
	text.WriteString(rendered)
	c.Cursor += runeLen(rendered)
}

// Length returns the flattened text length in codepoints.
func (c Compiled) Length() int64 {
	return runeLen(c.Text)
}

func runeLen(s string) int64 {
	return int64(utf8.RuneCountInString(s))
}
