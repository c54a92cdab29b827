package treekv

import "strings"

// Delimiter separates segments in a fully qualified node path
const Delimiter = "/"

// NameFromPath returns the name part of a fully qualified path: the
// substring after the last delimiter, or the whole path if it contains
// no delimiter
func NameFromPath(path string) string {
	return path[strings.LastIndex(path, Delimiter)+1:]
}

// ParentFromPath returns the fully qualified path of the parental node:
// the substring before the last delimiter. A path without a delimiter
// has the root as parent, reported as the empty string
func ParentFromPath(path string) string {
	idx := strings.LastIndex(path, Delimiter)
	if idx < 0 {
		return ""
	}
	return path[:idx]
}

// JoinPath builds a fully qualified path from a parent path and a name
func JoinPath(parent, name string) string {
	return parent + Delimiter + name
}
