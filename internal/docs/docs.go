// Package docs implements the Google Docs operations: plain positional
// edits, document reads, and the markdown import pipeline.
package docs

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/plexiform/gdocs-cli/internal/google"
)

const endpoint = "https://docs.googleapis.com/v1/documents"

// Service wraps the transport with Docs-specific calls.
type Service struct {
	client *google.Client
}

func NewService(client *google.Client) *Service {
	return &Service{client: client}
}

func (s *Service) get(ctx context.Context, documentID string) (gjson.Result, error) {
	raw, err := s.client.GetJSON(ctx, endpoint+"/"+documentID, nil)
	if err != nil {
		return gjson.Result{}, err
	}
	return gjson.ParseBytes(raw), nil
}

func (s *Service) batchUpdate(ctx context.Context, documentID string, requests []map[string]any) (gjson.Result, error) {
	raw, err := s.client.PostJSON(ctx, endpoint+"/"+documentID+":batchUpdate", nil,
		map[string]any{"requests": requests})
	if err != nil {
		return gjson.Result{}, err
	}
	return gjson.ParseBytes(raw), nil
}

// Read returns the document's flattened text content.
func (s *Service) Read(ctx context.Context, documentID string) (map[string]any, error) {
	doc, err := s.get(ctx, documentID)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"status":      "success",
		"operation":   "read",
		"document_id": doc.Get("documentId").String(),
		"title":       doc.Get("title").String(),
		"content":     extractTextContent(doc.Get("body.content")),
		"revision_id": doc.Get("revisionId").String(),
	}, nil
}

// Structure returns the document's heading outline with index ranges.
func (s *Service) Structure(ctx context.Context, documentID string) (map[string]any, error) {
	doc, err := s.get(ctx, documentID)
	if err != nil {
		return nil, err
	}

	structure := []map[string]any{}
	for _, element := range doc.Get("body.content").Array() {
		paragraph := element.Get("paragraph")
		if !paragraph.Exists() {
			continue
		}
		style := paragraph.Get("paragraphStyle.namedStyleType").String()
		if !strings.HasPrefix(style, "HEADING_") {
			continue
		}
		level, _ := strconv.ParseInt(style[strings.LastIndexByte(style, '_')+1:], 10, 64)
		structure = append(structure, map[string]any{
			"level":       level,
			"text":        extractParagraphText(paragraph),
			"start_index": element.Get("startIndex").Int(),
			"end_index":   element.Get("endIndex").Int(),
		})
	}

	return map[string]any{
		"status":      "success",
		"operation":   "structure",
		"document_id": doc.Get("documentId").String(),
		"title":       doc.Get("title").String(),
		"structure":   structure,
	}, nil
}

// Insert inserts text at a specific index.
func (s *Service) Insert(ctx context.Context, documentID, text string, index int64) (map[string]any, error) {
	result, err := s.batchUpdate(ctx, documentID, []map[string]any{insertTextRequest(index, text)})
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"status":      "success",
		"operation":   "insert",
		"document_id": documentID,
		"inserted_at": index,
		"text_length": runeCount(text),
		"revision_id": result.Get("documentId").String(),
	}, nil
}

// Append inserts text just before the document's final newline.
func (s *Service) Append(ctx context.Context, documentID, text string) (map[string]any, error) {
	doc, err := s.get(ctx, documentID)
	if err != nil {
		return nil, err
	}
	endIndex := lastBodyEndIndex(doc) - 1
	result, err := s.batchUpdate(ctx, documentID, []map[string]any{insertTextRequest(endIndex, text)})
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"status":      "success",
		"operation":   "append",
		"document_id": documentID,
		"appended_at": endIndex,
		"text_length": runeCount(text),
		"revision_id": result.Get("documentId").String(),
	}, nil
}

// Replace runs a find/replace over the whole document.
func (s *Service) Replace(ctx context.Context, documentID, find, replace string, matchCase bool) (map[string]any, error) {
	result, err := s.batchUpdate(ctx, documentID, []map[string]any{{
		"replaceAllText": map[string]any{
			"containsText": map[string]any{"text": find, "matchCase": matchCase},
			"replaceText":  replace,
		},
	}})
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"status":      "success",
		"operation":   "replace",
		"document_id": documentID,
		"find":        find,
		"replace":     replace,
		"occurrences": result.Get("replies.0.replaceAllText.occurrencesChanged").Int(),
	}, nil
}

// Format applies bold/italic/underline over a range. Nil means leave that
// attribute alone.
func (s *Service) Format(ctx context.Context, documentID string, startIndex, endIndex int64, bold, italic, underline *bool) (map[string]any, error) {
	style := map[string]any{}
	var fields []string
	if bold != nil {
		style["bold"] = *bold
		fields = append(fields, "bold")
	}
	if italic != nil {
		style["italic"] = *italic
		fields = append(fields, "italic")
	}
	if underline != nil {
		style["underline"] = *underline
		fields = append(fields, "underline")
	}

	_, err := s.batchUpdate(ctx, documentID, []map[string]any{{
		"updateTextStyle": map[string]any{
			"range":     map[string]any{"startIndex": startIndex, "endIndex": endIndex},
			"textStyle": style,
			"fields":    strings.Join(fields, ","),
		},
	}})
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"status":      "success",
		"operation":   "format",
		"document_id": documentID,
		"range":       map[string]any{"start": startIndex, "end": endIndex},
		"formatting":  style,
	}, nil
}

// PageBreak inserts a page break at index.
func (s *Service) PageBreak(ctx context.Context, documentID string, index int64) (map[string]any, error) {
	_, err := s.batchUpdate(ctx, documentID, []map[string]any{{
		"insertPageBreak": map[string]any{
			"location": map[string]any{"index": index},
		},
	}})
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"status":      "success",
		"operation":   "page_break",
		"document_id": documentID,
		"inserted_at": index,
	}, nil
}

// Delete removes the content range [startIndex, endIndex).
func (s *Service) Delete(ctx context.Context, documentID string, startIndex, endIndex int64) (map[string]any, error) {
	_, err := s.batchUpdate(ctx, documentID, []map[string]any{{
		"deleteContentRange": map[string]any{
			"range": map[string]any{"startIndex": startIndex, "endIndex": endIndex},
		},
	}})
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"status":        "success",
		"operation":     "delete",
		"document_id":   documentID,
		"deleted_range": map[string]any{"start": startIndex, "end": endIndex},
	}, nil
}

// InsertImage inserts an inline image from a URL, appending when index is
// nil. Width/height are points.
func (s *Service) InsertImage(ctx context.Context, documentID, imageURL string, index *int64, width, height *float64) (map[string]any, error) {
	insertionIndex, err := s.resolveIndex(ctx, documentID, index)
	if err != nil {
		return nil, err
	}

	image := map[string]any{
		"location": map[string]any{"index": insertionIndex},
		"uri":      imageURL,
	}
	if width != nil || height != nil {
		size := map[string]any{}
		if width != nil {
			size["width"] = map[string]any{"magnitude": *width, "unit": "PT"}
		}
		if height != nil {
			size["height"] = map[string]any{"magnitude": *height, "unit": "PT"}
		}
		image["objectSize"] = size
	}

	result, err := s.batchUpdate(ctx, documentID, []map[string]any{{"insertInlineImage": image}})
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"status":      "success",
		"operation":   "insert_image",
		"document_id": documentID,
		"inserted_at": insertionIndex,
		"image_url":   imageURL,
		"revision_id": result.Get("documentId").String(),
	}, nil
}

// Create makes a new document, optionally seeding it with plain text.
func (s *Service) Create(ctx context.Context, title, content string) (map[string]any, error) {
	raw, err := s.client.PostJSON(ctx, endpoint, nil, map[string]any{"title": title})
	if err != nil {
		return nil, err
	}
	result := gjson.ParseBytes(raw)
	documentID := result.Get("documentId").String()
	if documentID == "" {
		return nil, fmt.Errorf("failed to parse documentId from create response")
	}

	if content != "" {
		if _, err := s.batchUpdate(ctx, documentID, []map[string]any{insertTextRequest(1, content)}); err != nil {
			return nil, err
		}
	}

	return map[string]any{
		"status":      "success",
		"operation":   "create",
		"document_id": documentID,
		"title":       result.Get("title").String(),
		"revision_id": result.Get("revisionId").String(),
	}, nil
}

// resolveIndex returns the explicit index, or end-of-body when nil.
func (s *Service) resolveIndex(ctx context.Context, documentID string, index *int64) (int64, error) {
	if index != nil {
		return *index, nil
	}
	doc, err := s.get(ctx, documentID)
	if err != nil {
		return 0, err
	}
	return lastBodyEndIndex(doc) - 1, nil
}

func insertTextRequest(index int64, text string) map[string]any {
	return map[string]any{
		"insertText": map[string]any{
			"location": map[string]any{"index": index},
			"text":     text,
		},
	}
}

// lastBodyEndIndex is the endIndex of the final body element, 1 for an
// empty document.
func lastBodyEndIndex(doc gjson.Result) int64 {
	content := doc.Get("body.content").Array()
	if len(content) == 0 {
		return 1
	}
	end := content[len(content)-1].Get("endIndex").Int()
	if end == 0 {
		return 1
	}
	return end
}

func extractTextContent(content gjson.Result) string {
	var blocks []string
	for _, element := range content.Array() {
		if paragraph := element.Get("paragraph"); paragraph.Exists() {
			blocks = append(blocks, extractParagraphText(paragraph))
		} else if table := element.Get("table"); table.Exists() {
			blocks = append(blocks, extractTableText(table))
		}
	}
	return strings.Join(blocks, "\n")
}

func extractParagraphText(paragraph gjson.Result) string {
	var b strings.Builder
	for _, el := range paragraph.Get("elements").Array() {
		b.WriteString(el.Get("textRun.content").String())
	}
	return b.String()
}

func extractTableText(table gjson.Result) string {
	var rows []string
	for _, row := range table.Get("tableRows").Array() {
		var cells []string
		for _, cell := range row.Get("tableCells").Array() {
			cells = append(cells, extractTextContent(cell.Get("content")))
		}
		rows = append(rows, strings.Join(cells, " | "))
	}
	return strings.Join(rows, "\n")
}

func runeCount(s string) int {
	return len([]rune(s))
}
