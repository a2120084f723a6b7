package mode

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/monochromegane/go-gitignore"
)

// Files lists the file tree under a root directory, honoring the
// root's .gitignore.
type Files struct {
	root  string
	paths []string
}

// NewFiles walks root and returns a Files mode over the result.
func NewFiles(root string) (*Files, error) {
	f := &Files{root: root}
	if err := f.Reload(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Files) Name() string            { return "files" }
func (f *Files) Prompt() string          { return "file" }
func (f *Files) Count() int              { return len(f.paths) }
func (f *Files) Searchable(i int) string { return f.paths[i] }
func (f *Files) Display(i int) string    { return f.paths[i] }

// Reload re-walks the tree.
func (f *Files) Reload() error {
	paths, err := walk(f.root)
	if err != nil {
		return err
	}
	f.paths = paths
	return nil
}

// walk traverses the file tree rooted at root and returns relative
// paths. It respects .gitignore if found in the root directory and
// skips hidden and vendored directories.
func walk(root string) ([]string, error) {
	var paths []string
	var ignoreMatcher gitignore.IgnoreMatcher

	gitignorePath := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(gitignorePath); err == nil {
		ignoreMatcher, _ = gitignore.NewGitIgnore(gitignorePath)
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Skip errors (permission denied, etc.) to keep partial results
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		if relPath == "." {
			return nil
		}

		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if d.Name() == "node_modules" || d.Name() == "vendor" {
				return filepath.SkipDir
			}
		}

		if ignoreMatcher != nil {
			if ignoreMatcher.Match(path, d.IsDir()) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if !d.IsDir() {
			paths = append(paths, relPath)
		}
		return nil
	})

	return paths, err
}
