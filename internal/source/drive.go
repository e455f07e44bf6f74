package source

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/five82/lectio/internal/guideapi"
)

const (
	textFilesQuery   = "mimeType='text/plain' and trashed=false"
	drivePageSize    = 200
	driveMaxFiles    = 1000
	folderLookups    = 8
	rootFolderLabel  = "My Drive (Root)"
	unknownFolderTag = "Unknown"
)

type driveLister struct {
	files *drive.FilesService
	key   string
}

// NewDriveLister is the default DriveFactory: a Drive v3 client authorised with
// a static bearer token. The developer key is sent with every call.
func NewDriveLister(ctx context.Context, token, developerKey string) (DriveLister, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	return newDriveLister(ctx, developerKey, option.WithTokenSource(ts))
}

func newDriveLister(ctx context.Context, developerKey string, opts ...option.ClientOption) (*driveLister, error) {
	srv, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return &driveLister{files: srv.Files, key: developerKey}, nil
}

func (d *driveLister) callOpts() []googleapi.CallOption {
	if d.key == "" {
		return nil
	}
	return []googleapi.CallOption{googleapi.QueryParameter("key", d.key)}
}

// ListTextFiles returns recent text files, most recently modified first, with
// their parent folder names resolved.
func (d *driveLister) ListTextFiles(ctx context.Context) ([]guideapi.DriveFile, error) {
	var found []*drive.File
	pageToken := ""
	for len(found) < driveMaxFiles {
		call := d.files.List().
			Q(textFilesQuery).
			PageSize(drivePageSize).
			OrderBy("modifiedTime desc").
			Fields("nextPageToken, files(id, name, parents, modifiedTime)").
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		page, err := call.Do(d.callOpts()...)
		if err != nil {
			return nil, err
		}
		found = append(found, page.Files...)
		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}
	if len(found) > driveMaxFiles {
		found = found[:driveMaxFiles]
	}

	folders := d.folderNames(ctx, found)
	out := make([]guideapi.DriveFile, 0, len(found))
	for _, f := range found {
		folder := rootFolderLabel
		if len(f.Parents) > 0 {
			folder = folders[f.Parents[0]]
		}
		out = append(out, guideapi.DriveFile{
			ID:           f.Id,
			Name:         f.Name,
			FolderName:   folder,
			ModifiedTime: f.ModifiedTime,
		})
	}
	return out, nil
}

// folderNames resolves each distinct parent id. Lookup failures are labelled
// rather than failing the listing.
func (d *driveLister) folderNames(ctx context.Context, files []*drive.File) map[string]string {
	names := make(map[string]string)
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(folderLookups)
	seen := make(map[string]bool)
	for _, f := range files {
		if len(f.Parents) == 0 || seen[f.Parents[0]] {
			continue
		}
		id := f.Parents[0]
		seen[id] = true
		g.Go(func() error {
			name := unknownFolderTag
			parent, err := d.files.Get(id).Fields("name").Context(gctx).Do(d.callOpts()...)
			if err == nil && parent.Name != "" {
				name = parent.Name
			}
			mu.Lock()
			names[id] = name
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return names
}
