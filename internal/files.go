package internal

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ConversationsFile is the export document every dataset carries
const ConversationsFile = "conversations.json"

// RelPath normalizes the reference to a forward-slash relative path, preferring
// the explicit path over the bare name.
func (f FileRef) RelPath() string {
	p := f.Path
	if p == "" {
		p = f.Name
	}
	return strings.ReplaceAll(p, "\\", "/")
}

// ListDatasetFiles enumerates regular files under root, at most maxDepth
// directories deep (0 means unbounded). Hidden entries are skipped.
func ListDatasetFiles(root string, maxDepth int) ([]FileRef, error) {
	var files []FileRef
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if path == root {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if maxDepth > 0 && strings.Count(rel, "/")+1 > maxDepth {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		files = append(files, FileRef{Name: d.Name(), Path: rel})
		return nil
	})
	if err != nil {
		return nil, &LoadError{Path: root, Op: "list", Err: err}
	}
	return files, nil
}

// FindFileByName returns the first file whose basename equals name, ignoring case
func FindFileByName(files []FileRef, name string) (FileRef, bool) {
	for _, f := range files {
		if strings.EqualFold(basename(f.RelPath()), name) {
			return f, true
		}
	}
	return FileRef{}, false
}

// ConfinedPath joins rel onto root, refusing anything that escapes root
func ConfinedPath(root, rel string) (string, error) {
	clean := filepath.Clean("/" + filepath.FromSlash(rel))
	if clean == string(filepath.Separator) {
		return "", errors.Errorf("empty path")
	}
	full := filepath.Join(root, clean)
	if _, err := os.Stat(full); err != nil {
		return "", &NotFoundError{Kind: "file", ID: rel}
	}
	return full, nil
}
