// Package scanner lists the regular files under a directory tree.
package scanner

import (
	"io/fs"
	"path/filepath"
)

// Scan walks root recursively and returns every regular file it finds,
// directories excluded. A root that does not exist or cannot be read yields
// an empty list; unreadable subdirectories are skipped. The order is the
// lexical walk order of the filesystem.
func Scan(root string) []string {
	var files []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable root or subtree: skip it, keep walking the rest.
			return nil
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	return files
}
