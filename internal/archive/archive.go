package archive

import (
	"context"
	"path/filepath"
	"strings"
)

// Archiver packs the contents of workDir into dest, skipping files whose
// base name matches one of the exclude patterns.
type Archiver interface {
	Archive(ctx context.Context, workDir, dest string, exclude []string) error
}

// excluded reports whether the slash-separated relative path matches any pattern,
// either on its base name or on the whole path.
func excluded(rel string, patterns []string) bool {
	base := rel
	if i := strings.LastIndex(rel, "/"); i >= 0 {
		base = rel[i+1:]
	}

	for _, pattern := range patterns {
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}

		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
	}

	return false
}
