// Package drive implements the Google Drive file operations: listing,
// search, metadata, upload/download, folders, and deletion.
package drive

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/plexiform/gdocs-cli/internal/google"
)

const (
	filesEndpoint  = "https://www.googleapis.com/drive/v3/files"
	uploadEndpoint = "https://www.googleapis.com/upload/drive/v3/files"

	fileFields = "id,name,mimeType,webViewLink,webContentLink,parents,createdTime,modifiedTime,size"
	listFields = "files(id,name,mimeType,webViewLink,modifiedTime,size),nextPageToken"
)

// exportMimeTypes maps Google Workspace document types to the export
// format used when downloading them.
var exportMimeTypes = map[string]string{
	"application/vnd.google-apps.document":     "application/pdf",
	"application/vnd.google-apps.spreadsheet":  "text/csv",
	"application/vnd.google-apps.presentation": "application/pdf",
	"application/vnd.google-apps.drawing":      "image/png",
}

// Service wraps the transport with Drive-specific calls.
type Service struct {
	client *google.Client
}

func NewService(client *google.Client) *Service {
	return &Service{client: client}
}

// List returns non-trashed files, optionally restricted to one folder.
func (s *Service) List(ctx context.Context, folderID string, pageSize int64) (map[string]any, error) {
	q := "trashed = false"
	if folderID != "" {
		q = fmt.Sprintf("'%s' in parents and trashed = false", folderID)
	}

	query := url.Values{
		"q":        {q},
		"pageSize": {fmt.Sprintf("%d", pageSize)},
		"fields":   {listFields},
		"orderBy":  {"modifiedTime desc"},
	}
	raw, err := s.client.GetJSON(ctx, filesEndpoint, query)
	if err != nil {
		return nil, err
	}
	result := gjson.ParseBytes(raw)

	return map[string]any{
		"status":    "success",
		"operation": "list",
		"files":     fileList(result.Get("files")),
		"count":     len(result.Get("files").Array()),
	}, nil
}

// Search runs a Drive query. Unless the query already mentions trashed
// state, trashed files are excluded.
func (s *Service) Search(ctx context.Context, query string, pageSize int64) (map[string]any, error) {
	q := query
	if !strings.Contains(strings.ToLower(q), "trashed") {
		q += " and trashed = false"
	}

	params := url.Values{
		"q":        {q},
		"pageSize": {fmt.Sprintf("%d", pageSize)},
		"fields":   {listFields},
	}
	raw, err := s.client.GetJSON(ctx, filesEndpoint, params)
	if err != nil {
		return nil, err
	}
	result := gjson.ParseBytes(raw)

	return map[string]any{
		"status":    "success",
		"operation": "search",
		"query":     query,
		"files":     fileList(result.Get("files")),
		"count":     len(result.Get("files").Array()),
	}, nil
}

// GetMetadata fetches a file's metadata.
func (s *Service) GetMetadata(ctx context.Context, fileID string) (map[string]any, error) {
	raw, err := s.client.GetJSON(ctx, filesEndpoint+"/"+fileID, url.Values{"fields": {fileFields}})
	if err != nil {
		return nil, err
	}
	file := gjson.ParseBytes(raw)

	return map[string]any{
		"status":    "success",
		"operation": "get_metadata",
		"file":      fileEntry(file),
	}, nil
}

// Upload sends a local file via the multipart endpoint, optionally into a
// folder. The MIME type is detected from the file extension.
func (s *Service) Upload(ctx context.Context, localPath, name, folderID string) (map[string]any, error) {
	if name == "" {
		name = filepath.Base(localPath)
	}
	mimeType := google.DetectMimeType(localPath)

	metadata := map[string]any{"name": name}
	if folderID != "" {
		metadata["parents"] = []string{folderID}
	}

	query := url.Values{
		"uploadType": {"multipart"},
		"fields":     {fileFields},
	}
	raw, err := s.client.PostMultipart(ctx, uploadEndpoint, query, metadata, localPath, mimeType, name)
	if err != nil {
		return nil, err
	}
	file := gjson.ParseBytes(raw)

	return map[string]any{
		"status":    "success",
		"operation": "upload",
		"file":      fileEntry(file),
	}, nil
}

// Update replaces an existing file's content with a local file, keeping
// the Drive name unless a new one is given.
func (s *Service) Update(ctx context.Context, fileID, localPath, name string) (map[string]any, error) {
	mimeType := google.DetectMimeType(localPath)

	metadata := map[string]any{}
	if name != "" {
		metadata["name"] = name
	}

	query := url.Values{
		"uploadType": {"multipart"},
		"fields":     {fileFields},
	}
	raw, err := s.client.PatchMultipart(ctx, uploadEndpoint+"/"+fileID, query,
		metadata, localPath, mimeType, filepath.Base(localPath))
	if err != nil {
		return nil, err
	}
	file := gjson.ParseBytes(raw)

	return map[string]any{
		"status":    "success",
		"operation": "update",
		"file":      fileEntry(file),
	}, nil
}

// Download saves a file's content to outputPath. Google Workspace types
// cannot be fetched raw and are exported to a portable format instead.
func (s *Service) Download(ctx context.Context, fileID, outputPath string) (map[string]any, error) {
	raw, err := s.client.GetJSON(ctx, filesEndpoint+"/"+fileID, url.Values{"fields": {"id,name,mimeType"}})
	if err != nil {
		return nil, err
	}
	file := gjson.ParseBytes(raw)
	mimeType := file.Get("mimeType").String()

	if exportType, ok := exportMimeTypes[mimeType]; ok {
		err = s.client.GetBytesToPath(ctx, filesEndpoint+"/"+fileID+"/export",
			url.Values{"mimeType": {exportType}}, outputPath)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"status":      "success",
			"operation":   "download",
			"file_id":     fileID,
			"name":        file.Get("name").String(),
			"output_path": outputPath,
			"exported_as": exportType,
		}, nil
	}

	err = s.client.GetBytesToPath(ctx, filesEndpoint+"/"+fileID,
		url.Values{"alt": {"media"}}, outputPath)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"status":      "success",
		"operation":   "download",
		"file_id":     fileID,
		"name":        file.Get("name").String(),
		"output_path": outputPath,
		"mime_type":   mimeType,
	}, nil
}

// CreateFolder makes a folder, optionally inside a parent folder.
func (s *Service) CreateFolder(ctx context.Context, name, parentID string) (map[string]any, error) {
	metadata := map[string]any{
		"name":     name,
		"mimeType": "application/vnd.google-apps.folder",
	}
	if parentID != "" {
		metadata["parents"] = []string{parentID}
	}

	raw, err := s.client.PostJSON(ctx, filesEndpoint, url.Values{"fields": {fileFields}}, metadata)
	if err != nil {
		return nil, err
	}
	folder := gjson.ParseBytes(raw)

	return map[string]any{
		"status":    "success",
		"operation": "create_folder",
		"folder":    fileEntry(folder),
	}, nil
}

// Delete trashes a file, or removes it permanently when permanent is set.
func (s *Service) Delete(ctx context.Context, fileID string, permanent bool) (map[string]any, error) {
	if permanent {
		if err := s.client.DeleteNoContent(ctx, filesEndpoint+"/"+fileID, nil); err != nil {
			return nil, err
		}
		return map[string]any{
			"status":    "success",
			"operation": "delete",
			"file_id":   fileID,
			"permanent": true,
		}, nil
	}

	_, err := s.client.PatchJSON(ctx, filesEndpoint+"/"+fileID, nil, map[string]any{"trashed": true})
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"status":    "success",
		"operation": "delete",
		"file_id":   fileID,
		"permanent": false,
	}, nil
}

func fileList(files gjson.Result) []map[string]any {
	entries := []map[string]any{}
	for _, f := range files.Array() {
		entries = append(entries, fileEntry(f))
	}
	return entries
}

func fileEntry(file gjson.Result) map[string]any {
	entry := map[string]any{}
	file.ForEach(func(key, value gjson.Result) bool {
		entry[key.String()] = value.Value()
		return true
	})
	return entry
}
