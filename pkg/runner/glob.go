package runner

import (
	"path"
	"path/filepath"
	"strings"
)

func matchesAny(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchGlob(relPath, pattern) {
			return true
		}
	}
	return false
}

// matchGlob matches a slash-separated path against a glob. Patterns without
// a slash also match the base name; "**" matches any number of directories.
func matchGlob(name, pattern string) bool {
	name = filepath.ToSlash(name)
	pattern = filepath.ToSlash(pattern)

	if strings.Contains(pattern, "**") {
		return matchSegments(strings.Split(name, "/"), strings.Split(pattern, "/"))
	}
	if ok, err := path.Match(pattern, name); err == nil && ok {
		return true
	}
	if strings.Contains(pattern, "/") {
		return false
	}
	ok, err := path.Match(pattern, path.Base(name))
	return err == nil && ok
}

// matchSegments matches path segments against pattern segments where a
// "**" segment consumes zero or more path segments. A trailing "**" also
// matches the directory itself.
func matchSegments(names, patterns []string) bool {
	for len(patterns) > 0 {
		head := patterns[0]
		if head == "**" {
			rest := patterns[1:]
			if len(rest) == 0 {
				return true
			}
			for skip := 0; skip <= len(names); skip++ {
				if matchSegments(names[skip:], rest) {
					return true
				}
			}
			return false
		}
		if len(names) == 0 {
			return false
		}
		if ok, err := path.Match(head, names[0]); err != nil || !ok {
			return false
		}
		names = names[1:]
		patterns = patterns[1:]
	}
	return len(names) == 0
}
