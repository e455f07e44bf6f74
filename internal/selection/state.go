package selection

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/five82/lectio/internal/guideapi"
)

// MaxFiles caps how many transcripts a single guide can be built from.
const MaxFiles = 8

// Placeholder is rendered instead of an empty chip list.
const Placeholder = "No files selected"

// State is the ordered set of files chosen for submission. The zero value is
// an empty selection. It is owned by a single event loop and is not safe for
// concurrent use.
type State struct {
	files []guideapi.DriveFile
}

// Len returns the number of selected files.
func (s *State) Len() int { return len(s.files) }

// Empty reports whether nothing is selected.
func (s *State) Empty() bool { return len(s.files) == 0 }

// Files returns a copy of the selection in display order.
func (s *State) Files() []guideapi.DriveFile {
	return slices.Clone(s.files)
}

// Contains reports whether a file with id is selected.
func (s *State) Contains(id string) bool {
	return lo.ContainsBy(s.files, func(f guideapi.DriveFile) bool { return f.ID == id })
}

// IDs returns the selected file ids in display order.
func (s *State) IDs() []string {
	return lo.Map(s.files, func(f guideapi.DriveFile, _ int) string { return f.ID })
}

// Joined returns the comma-joined ids sent to the backend.
func (s *State) Joined() string {
	return strings.Join(s.IDs(), ",")
}

// Replace swaps the whole selection for files. Duplicates (by id) keep their
// first occurrence. More than MaxFiles distinct files is rejected with a
// *CapacityError and leaves the state untouched.
func (s *State) Replace(files []guideapi.DriveFile) error {
	unique := lo.UniqBy(files, func(f guideapi.DriveFile) string { return f.ID })
	if len(unique) > MaxFiles {
		return &CapacityError{Picked: len(unique), Kept: MaxFiles}
	}
	SortByName(unique)
	s.files = unique
	return nil
}

// Remove drops the file at index.
func (s *State) Remove(index int) error {
	if index < 0 || index >= len(s.files) {
		return fmt.Errorf("remove: index %d out of range [0,%d)", index, len(s.files))
	}
	s.files = slices.Delete(s.files, index, index+1)
	return nil
}

// Clear empties the selection.
func (s *State) Clear() {
	s.files = nil
}

// Truncate keeps the first limit files in the order given. The second result
// is non-nil when anything was dropped.
func Truncate(files []guideapi.DriveFile, limit int) ([]guideapi.DriveFile, *CapacityError) {
	if limit < 0 {
		limit = 0
	}
	if len(files) <= limit {
		return slices.Clone(files), nil
	}
	return slices.Clone(files[:limit]), &CapacityError{Picked: len(files), Kept: limit}
}

// SortByName orders files by display name using locale collation, falling
// back to the id so the order is total.
func SortByName(files []guideapi.DriveFile) {
	c := collate.New(language.Und)
	slices.SortStableFunc(files, func(a, b guideapi.DriveFile) int {
		if n := c.CompareString(a.Name, b.Name); n != 0 {
			return n
		}
		return strings.Compare(a.ID, b.ID)
	})
}
