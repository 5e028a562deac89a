package note

import (
	"path"
	"regexp"
	"sort"
	"strings"
)

// Separator joins the folder part and the file part of a flattened path.
// Titles containing the separator sequence produce ambiguous round trips;
// no escaping is applied.
const Separator = "___"

// placeholder replaces whitespace runs in titles when flattening.
const placeholder = "_"

var whitespaceRun = regexp.MustCompile(`\s+`)

// extByKind is the closed kind → extension mapping. Unknown kinds fall back
// to the generic ".txt" extension.
var extByKind = map[Kind]string{
	KindMarkdown: ".md",
	KindDiagram:  ".mmd",
}

// kindByExt is the reverse mapping. Unrecognized extensions default to
// KindMarkdown, the primary kind.
var kindByExt = map[string]Kind{
	".md":  KindMarkdown,
	".mmd": KindDiagram,
}

// fallbackFolderTitle groups remote files whose path carries no separator.
const fallbackFolderTitle = "Notes"

func sanitizeTitle(title string) string {
	return whitespaceRun.ReplaceAllString(title, placeholder)
}

func desanitizeTitle(title string) string {
	return strings.ReplaceAll(title, placeholder, " ")
}

func extFor(kind Kind) string {
	if ext, ok := extByKind[kind]; ok {
		return ext
	}
	return ".txt"
}

func kindFor(ext string) Kind {
	if kind, ok := kindByExt[ext]; ok {
		return kind
	}
	return KindMarkdown
}

// Flatten maps the workspace tree to the remote store's flat name → content
// namespace. Paths are folder-title + separator + file-title + extension with
// whitespace runs replaced by the placeholder. Uniqueness of the resulting
// paths is the caller's concern.
func Flatten(w *Workspace) map[string]string {
	flat := make(map[string]string, w.FileCount())
	for _, folder := range w.Folders {
		for _, file := range folder.Files {
			p := sanitizeTitle(folder.Title) + Separator + sanitizeTitle(file.Title) + extFor(file.Kind)
			flat[p] = file.Content
		}
	}
	return flat
}

// Rebuild reconstructs a workspace from a flat path → content map. Each path
// is split on the first separator occurrence; the extension recovers the
// content kind; folders are created per distinct recovered title in sorted
// path order. All identifiers are freshly generated.
func Rebuild(flat map[string]string) *Workspace {
	paths := make([]string, 0, len(flat))
	for p := range flat {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	w := &Workspace{}
	folderIdx := make(map[string]int)

	for _, p := range paths {
		folderTitle := fallbackFolderTitle
		rest := p
		if i := strings.Index(p, Separator); i >= 0 {
			folderTitle = desanitizeTitle(p[:i])
			rest = p[i+len(Separator):]
		}

		ext := path.Ext(rest)
		fileTitle := desanitizeTitle(strings.TrimSuffix(rest, ext))

		idx, ok := folderIdx[folderTitle]
		if !ok {
			w.Folders = append(w.Folders, Folder{
				ID:       NewID(),
				Title:    folderTitle,
				Expanded: true,
			})
			idx = len(w.Folders) - 1
			folderIdx[folderTitle] = idx
		}

		w.Folders[idx].Files = append(w.Folders[idx].Files, File{
			ID:      NewID(),
			Title:   fileTitle,
			Kind:    kindFor(ext),
			Content: flat[p],
		})
	}

	return w
}
