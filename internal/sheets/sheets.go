// Package sheets implements the Google Sheets value operations.
package sheets

import (
	"context"
	"fmt"
	"net/url"

	"github.com/tidwall/gjson"

	"github.com/plexiform/gdocs-cli/internal/google"
)

const endpoint = "https://sheets.googleapis.com/v4/spreadsheets"

// Service wraps the transport with Sheets-specific calls.
type Service struct {
	client *google.Client
}

func NewService(client *google.Client) *Service {
	return &Service{client: client}
}

func valuesURL(spreadsheetID, valueRange string) string {
	return endpoint + "/" + spreadsheetID + "/values/" + url.PathEscape(valueRange)
}

// Create makes a new spreadsheet.
func (s *Service) Create(ctx context.Context, title string) (map[string]any, error) {
	raw, err := s.client.PostJSON(ctx, endpoint, nil, map[string]any{
		"properties": map[string]any{"title": title},
	})
	if err != nil {
		return nil, err
	}
	result := gjson.ParseBytes(raw)
	spreadsheetID := result.Get("spreadsheetId").String()
	if spreadsheetID == "" {
		return nil, fmt.Errorf("failed to parse spreadsheetId from create response")
	}

	return map[string]any{
		"status":          "success",
		"operation":       "create",
		"spreadsheet_id":  spreadsheetID,
		"title":           result.Get("properties.title").String(),
		"spreadsheet_url": result.Get("spreadsheetUrl").String(),
	}, nil
}

// Read returns the values in an A1-notation range.
func (s *Service) Read(ctx context.Context, spreadsheetID, valueRange string) (map[string]any, error) {
	raw, err := s.client.GetJSON(ctx, valuesURL(spreadsheetID, valueRange), nil)
	if err != nil {
		return nil, err
	}
	result := gjson.ParseBytes(raw)

	values := result.Get("values").Value()
	if values == nil {
		values = []any{}
	}

	return map[string]any{
		"status":         "success",
		"operation":      "read",
		"spreadsheet_id": spreadsheetID,
		"range":          result.Get("range").String(),
		"values":         values,
	}, nil
}

// inputOption picks how the API interprets values: USER_ENTERED parses
// them like typing into a cell, RAW stores them verbatim.
func inputOption(raw bool) string {
	if raw {
		return "RAW"
	}
	return "USER_ENTERED"
}

// Write overwrites a range with values.
func (s *Service) Write(ctx context.Context, spreadsheetID, valueRange string, values [][]any, raw bool) (map[string]any, error) {
	body, err := s.client.PutJSON(ctx, valuesURL(spreadsheetID, valueRange),
		url.Values{"valueInputOption": {inputOption(raw)}},
		map[string]any{"range": valueRange, "values": values})
	if err != nil {
		return nil, err
	}
	result := gjson.ParseBytes(body)

	return map[string]any{
		"status":          "success",
		"operation":       "write",
		"spreadsheet_id":  spreadsheetID,
		"updated_range":   result.Get("updatedRange").String(),
		"updated_rows":    result.Get("updatedRows").Int(),
		"updated_columns": result.Get("updatedColumns").Int(),
		"updated_cells":   result.Get("updatedCells").Int(),
	}, nil
}

// Append adds rows after the last data row of the range's table.
func (s *Service) Append(ctx context.Context, spreadsheetID, valueRange string, values [][]any, raw bool) (map[string]any, error) {
	body, err := s.client.PostJSON(ctx, valuesURL(spreadsheetID, valueRange)+":append",
		url.Values{
			"valueInputOption": {inputOption(raw)},
			"insertDataOption": {"INSERT_ROWS"},
		},
		map[string]any{"range": valueRange, "values": values})
	if err != nil {
		return nil, err
	}
	result := gjson.ParseBytes(body)

	return map[string]any{
		"status":         "success",
		"operation":      "append",
		"spreadsheet_id": spreadsheetID,
		"updated_range":  result.Get("updates.updatedRange").String(),
		"updated_rows":   result.Get("updates.updatedRows").Int(),
		"updated_cells":  result.Get("updates.updatedCells").Int(),
	}, nil
}

// Clear empties a range, leaving formatting alone.
func (s *Service) Clear(ctx context.Context, spreadsheetID, valueRange string) (map[string]any, error) {
	raw, err := s.client.PostJSON(ctx, valuesURL(spreadsheetID, valueRange)+":clear", nil, map[string]any{})
	if err != nil {
		return nil, err
	}
	result := gjson.ParseBytes(raw)

	return map[string]any{
		"status":         "success",
		"operation":      "clear",
		"spreadsheet_id": spreadsheetID,
		"cleared_range":  result.Get("clearedRange").String(),
	}, nil
}

// GetMetadata returns the spreadsheet's properties and sheet list.
func (s *Service) GetMetadata(ctx context.Context, spreadsheetID string) (map[string]any, error) {
	raw, err := s.client.GetJSON(ctx, endpoint+"/"+spreadsheetID,
		url.Values{"fields": {"spreadsheetId,properties,sheets.properties,spreadsheetUrl"}})
	if err != nil {
		return nil, err
	}
	result := gjson.ParseBytes(raw)

	sheetList := []map[string]any{}
	for _, sheet := range result.Get("sheets").Array() {
		props := sheet.Get("properties")
		sheetList = append(sheetList, map[string]any{
			"sheet_id": props.Get("sheetId").Int(),
			"title":    props.Get("title").String(),
			"index":    props.Get("index").Int(),
			"rows":     props.Get("gridProperties.rowCount").Int(),
			"columns":  props.Get("gridProperties.columnCount").Int(),
		})
	}

	return map[string]any{
		"status":          "success",
		"operation":       "get_metadata",
		"spreadsheet_id":  result.Get("spreadsheetId").String(),
		"title":           result.Get("properties.title").String(),
		"spreadsheet_url": result.Get("spreadsheetUrl").String(),
		"sheets":          sheetList,
	}, nil
}
