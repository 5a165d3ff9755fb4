// Package stacktrace shortens goroutine stacks to the frames of this module.
package stacktrace

import "strings"

const marker = "/internal/"

// InternalPaths returns the "internal/pkg/file.go:line" locations found in a
// stack produced by runtime/debug.Stack, outermost call last.
func InternalPaths(stack []byte) []string {
	var paths []string

	for line := range strings.Lines(string(stack)) {
		line = strings.TrimSpace(line)

		idx := strings.Index(line, marker)
		if idx == -1 || !strings.Contains(line, ".go:") {
			continue
		}

		loc := line[idx+1:]
		if sp := strings.IndexByte(loc, ' '); sp != -1 {
			loc = loc[:sp]
		}
		paths = append(paths, loc)
	}

	return paths
}
