package markdown

// SpanKind identifies the formatting a Span applies.
type SpanKind int

const (
	Heading1 SpanKind = iota
	Heading2
	Heading3
	Bold
	Italic
	Code
)

func (k SpanKind) String() string {
	switch k {
	case Heading1:
		return "heading1"
	case Heading2:
		return "heading2"
	case Heading3:
		return "heading3"
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case Code:
		return "code"
	}
	return "unknown"
}

// Span is a formatting directive over an absolute codepoint range in the
// destination document (1-based, half-open: Start inclusive, End exclusive).
// Heading spans cover the rendered line up to but not including its newline;
// inline spans cover the de-delimited content only.
type Span struct {
	Kind  SpanKind
	Start int64
	End   int64
}

// renderInline strips bold/italic/code delimiters from one line of text,
// appending a Span per matched pair. base is the absolute index of the
// line's first rendered codepoint. Delimiters with no matching close are
// emitted as literal text. All arithmetic is in codepoints.
func renderInline(line string, base int64, spans *[]Span) string {
	src := []rune(line)
	out := make([]rune, 0, len(src))
	pos := 0

	for pos < len(src) {
		if runesAt(src, pos, '*', '*') {
			if end := runeIndex(src, pos+2, '*', '*'); end >= 0 {
				appendSpan(spans, Bold, base+int64(len(out)), src[pos+2:end])
				out = append(out, src[pos+2:end]...)
				pos = end + 2
				continue
			}
		}

		if src[pos] == '*' && !runesAt(src, pos, '*', '*') {
			// A close immediately followed by another '*' belongs to a bold
			// pair; treat this '*' as literal instead.
			if end := runeIndex(src, pos+1, '*'); end >= 0 && !runesAt(src, end, '*', '*') {
				appendSpan(spans, Italic, base+int64(len(out)), src[pos+1:end])
				out = append(out, src[pos+1:end]...)
				pos = end + 1
				continue
			}
		}

		if src[pos] == '`' {
			if end := runeIndex(src, pos+1, '`'); end >= 0 {
				appendSpan(spans, Code, base+int64(len(out)), src[pos+1:end])
				out = append(out, src[pos+1:end]...)
				pos = end + 1
				continue
			}
		}

		out = append(out, src[pos])
		pos++
	}

	return string(out)
}

// appendSpan records a span over content, dropping zero-length spans so
// every emitted range satisfies start < end.
func appendSpan(spans *[]Span, kind SpanKind, start int64, content []rune) {
	if len(content) == 0 {
		return
	}
	*spans = append(*spans, Span{Kind: kind, Start: start, End: start + int64(len(content))})
}

// runesAt reports whether src[i:] begins with the given runes.
func runesAt(src []rune, i int, want ...rune) bool {
	if i+len(want) > len(src) {
		return false
	}
	for j, w := range want {
		if src[i+j] != w {
			return false
		}
	}
	return true
}

// runeIndex returns the first position >= from where src matches want, or -1.
func runeIndex(src []rune, from int, want ...rune) int {
	for i := from; i+len(want) <= len(src); i++ {
		if runesAt(src, i, want...) {
			return i
		}
	}
	return -1
}
