package project

import (
	"path/filepath"
	"strings"
)

// HasExtension reports whether path ends in one of the configured extensions.
func (f FilesConfig) HasExtension(path string) bool {
	ext := filepath.Ext(path)
	for _, want := range f.Extensions {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}

// Excluded reports whether rel, a path relative to the walk root, matches
// an exclude pattern either as a whole or through one of its elements.
func (f FilesConfig) Excluded(rel string) bool {
	rel = filepath.ToSlash(rel)
	if rel == "." || rel == "" {
		return false
	}
	for _, pat := range f.Exclude {
		if ok, _ := filepath.Match(pat, rel); ok {
			return true
		}
		for elem := range strings.SplitSeq(rel, "/") {
			if ok, _ := filepath.Match(pat, elem); ok {
				return true
			}
		}
	}
	return false
}
