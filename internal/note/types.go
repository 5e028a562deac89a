// Package note defines the workspace data model: an ordered list of folders,
// each holding an ordered list of note files, plus the serializer that maps
// the tree to and from the flat path namespace used by the remote store.
package note

// Kind tags a file's content type. The set is closed; anything else is
// treated as KindMarkdown when read back from the remote side.
type Kind string

const (
	KindMarkdown Kind = "markdown"
	KindDiagram  Kind = "diagram"
)

// File is a single note within a folder.
type File struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Kind    Kind   `json:"kind"`
	Content string `json:"content"`
}

// Folder groups files under a display title.
type Folder struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Expanded bool   `json:"expanded"`
	Files    []File `json:"files"`
}

// Workspace is the full in-memory note tree.
type Workspace struct {
	Folders []Folder `json:"folders"`
}

// FileCount returns the total number of files across all folders.
func (w *Workspace) FileCount() int {
	n := 0
	for _, f := range w.Folders {
		n += len(f.Files)
	}
	return n
}

// FindFolder returns the folder with the given title, or nil.
func (w *Workspace) FindFolder(title string) *Folder {
	for i := range w.Folders {
		if w.Folders[i].Title == title {
			return &w.Folders[i]
		}
	}
	return nil
}

// FindFile returns the file with the given title inside folder, or nil.
func (f *Folder) FindFile(title string) *File {
	for i := range f.Files {
		if f.Files[i].Title == title {
			return &f.Files[i]
		}
	}
	return nil
}
