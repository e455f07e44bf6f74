package guideapi

import (
	"strings"
	"time"
)

// DriveFile is a Drive text file as the backend and the picker report it.
// ID is the identity; Name is what the user sees.
type DriveFile struct {
	ID           string `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	FolderName   string `json:"folderName,omitempty" yaml:"folder,omitempty"`
	ModifiedTime string `json:"modifiedTime,omitempty" yaml:"modified,omitempty"`
}

// ParsedModifiedTime returns the modification timestamp, or the zero time when
// it is missing or malformed.
func (f DriveFile) ParsedModifiedTime() time.Time {
	return parseTime(f.ModifiedTime)
}

// Folder returns the parent folder label used in listings.
func (f DriveFile) Folder() string {
	if name := strings.TrimSpace(f.FolderName); name != "" {
		return name
	}
	return "My Drive (Root)"
}

// ListFilesResponse mirrors GET /api/list-files.
type ListFilesResponse struct {
	Success bool        `json:"success"`
	Files   []DriveFile `json:"files"`
	Detail  string      `json:"detail,omitempty"`
}

// AccessTokenResponse mirrors GET /api/access-token.
type AccessTokenResponse struct {
	AccessToken string `json:"access_token"`
}

// GenerateRequest is the multipart form sent to POST /api/generate.
type GenerateRequest struct {
	SeriesTitle    string
	TargetAudience string
	Model          string
	FileIDs        []string
}

// JoinedFileIDs renders the ids the way the backend splits them.
func (r GenerateRequest) JoinedFileIDs() string {
	return strings.Join(r.FileIDs, ",")
}

// GenerateResponse mirrors POST /api/generate.
type GenerateResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	FileURL  string `json:"file_url,omitempty"`
	Filename string `json:"filename,omitempty"`
	Detail   string `json:"detail,omitempty"`
}

// HealthResponse mirrors GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// Healthy reports whether the backend declared itself healthy.
func (h HealthResponse) Healthy() bool {
	return strings.EqualFold(strings.TrimSpace(h.Status), "healthy")
}

// errorBody is FastAPI's HTTPException payload.
type errorBody struct {
	Detail any `json:"detail"`
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
