// Package naming maps arbitrary paths to storage-safe collection names.
package naming

import (
	"crypto/sha1"
	"encoding/hex"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	invalidNameRe = regexp.MustCompile(`[^a-zA-Z0-9_]`)
	invalidExtRe  = regexp.MustCompile(`[^a-zA-Z0-9]`)
	underscoresRe = regexp.MustCompile(`_+`)
)

// Sanitize maps an arbitrary name to one containing only [A-Za-z0-9_], an
// optionally preserved leading dot and at most one dot separating an
// alphanumeric extension. Runs of invalid characters collapse to a single
// underscore; leading and trailing underscores are trimmed. The function is
// pure: no I/O, identical input gives identical output.
func Sanitize(name string) string {
	if name == "" {
		return name
	}

	// Keep the leading dot of dotfile-style names (.gitignore).
	leadingDot := ""
	if strings.HasPrefix(name, ".") {
		leadingDot = "."
		name = name[1:]
	}

	base, ext := name, ""
	if i := strings.LastIndex(name, "."); i >= 0 {
		base, ext = name[:i], name[i+1:]
	}

	base = invalidNameRe.ReplaceAllString(base, "_")
	base = underscoresRe.ReplaceAllString(base, "_")
	base = strings.Trim(base, "_")
	ext = invalidExtRe.ReplaceAllString(ext, "")

	if ext != "" {
		return leadingDot + base + "." + ext
	}
	return leadingDot + base
}

// Collection derives a collection name for a folder path: the sanitized base
// name plus a short hash of the cleaned absolute path. The hash keeps two
// distinct folders apart even when their base names sanitize identically.
func Collection(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	sum := sha1.Sum([]byte(abs))
	suffix := hex.EncodeToString(sum[:4])

	base := strings.TrimPrefix(Sanitize(filepath.Base(abs)), ".")
	base = strings.ReplaceAll(base, ".", "_")
	if base == "" {
		base = "folder"
	}
	return base + "_" + suffix
}
