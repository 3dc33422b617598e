package compare

import (
	"path/filepath"
	"strings"

	"github.com/sdejongh/tablediff/pkg/storage"
)

// shouldExclude checks if a directory entry should be excluded based on the
// given patterns. Entries are immediate children, so patterns match names:
//   - Simple glob patterns: *.bak, .*
//   - Directory patterns: archive/ (matches directories only)
//   - Negation: !keep.yaml re-includes a name excluded by an earlier pattern
func shouldExclude(entry storage.FileInfo, patterns []string) bool {
	excluded := false

	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}

		negate := strings.HasPrefix(pattern, "!")
		if negate {
			pattern = pattern[1:]
		}

		// Check if it's a directory pattern (ends with /)
		if strings.HasSuffix(pattern, "/") {
			if !entry.IsDir {
				continue
			}
			pattern = strings.TrimSuffix(pattern, "/")
		}

		if matchGlob(entry.Name, pattern) {
			excluded = !negate
		}
	}

	return excluded
}

// matchGlob performs glob matching on a single name. Malformed patterns
// never match.
func matchGlob(name, pattern string) bool {
	matched, _ := filepath.Match(pattern, name)
	return matched
}
