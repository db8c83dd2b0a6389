package markdown

import (
	"reflect"
	"testing"
)

func render(t *testing.T, line string, base int64) (string, []Span) {
	t.Helper()
	var spans []Span
	out := renderInline(line, base, &spans)
	return out, spans
}

func TestRenderInlineBold(t *testing.T) {
	out, spans := render(t, "Hello **world**!", 8)
	if out != "Hello world!" {
		t.Fatalf("out = %q, want %q", out, "Hello world!")
	}
	want := []Span{{Kind: Bold, Start: 14, End: 19}}
	if !reflect.DeepEqual(spans, want) {
		t.Fatalf("spans = %#v, want %#v", spans, want)
	}
}

func TestRenderInlineItalic(t *testing.T) {
	out, spans := render(t, "an *emphatic* word", 1)
	if out != "an emphatic word" {
		t.Fatalf("out = %q", out)
	}
	want := []Span{{Kind: Italic, Start: 4, End: 12}}
	if !reflect.DeepEqual(spans, want) {
		t.Fatalf("spans = %#v, want %#v", spans, want)
	}
}

func TestRenderInlineCode(t *testing.T) {
	out, spans := render(t, "run `go doc` now", 1)
	if out != "run go doc now" {
		t.Fatalf("out = %q", out)
	}
	want := []Span{{Kind: Code, Start: 5, End: 11}}
	if !reflect.DeepEqual(spans, want) {
		t.Fatalf("spans = %#v, want %#v", spans, want)
	}
}

func TestRenderInlineMixed(t *testing.T) {
	out, spans := render(t, "**a** *b* `c`", 1)
	if out != "a b c" {
		t.Fatalf("out = %q", out)
	}
	want := []Span{
		{Kind: Bold, Start: 1, End: 2},
		{Kind: Italic, Start: 3, End: 4},
		{Kind: Code, Start: 5, End: 6},
	}
	if !reflect.DeepEqual(spans, want) {
		t.Fatalf("spans = %#v, want %#v", spans, want)
	}
}

// A lone '*' whose only closing candidate opens a bold pair stays literal.
func TestRenderInlineItalicDoesNotStealBoldOpen(t *testing.T) {
	out, spans := render(t, "*a**b**", 1)
	if out != "*ab" {
		t.Fatalf("out = %q, want %q", out, "*ab")
	}
	want := []Span{{Kind: Bold, Start: 3, End: 4}}
	if !reflect.DeepEqual(spans, want) {
		t.Fatalf("spans = %#v, want %#v", spans, want)
	}
}

func TestRenderInlineUnclosedDelimitersAreLiteral(t *testing.T) {
	cases := []string{"**never closed", "*never closed", "`never closed"}
	for _, line := range cases {
		out, spans := render(t, line, 1)
		if out != line {
			t.Errorf("out = %q, want %q", out, line)
		}
		if len(spans) != 0 {
			t.Errorf("spans for %q = %#v, want none", line, spans)
		}
	}
}

// Offsets count codepoints, not bytes.
func TestRenderInlineMultibyteOffsets(t *testing.T) {
	out, spans := render(t, "héllo **wörld**", 1)
	if out != "héllo wörld" {
		t.Fatalf("out = %q", out)
	}
	want := []Span{{Kind: Bold, Start: 7, End: 12}}
	if !reflect.DeepEqual(spans, want) {
		t.Fatalf("spans = %#v, want %#v", spans, want)
	}
}

// Empty delimiter pairs are stripped but produce no zero-length span.
func TestRenderInlineEmptyBold(t *testing.T) {
	out, spans := render(t, "a****b", 1)
	if out != "ab" {
		t.Fatalf("out = %q", out)
	}
	if len(spans) != 0 {
		t.Fatalf("spans = %#v, want none", spans)
	}
}
