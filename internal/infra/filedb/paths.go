package filedb

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

var pathPartReplacer = strings.NewReplacer("/", "!", "?", "!", ":", "!")

// NormalizePathPart normalizes one path segment the way stored paths
// are keyed: Unicode-normalized, with characters that cannot appear in
// a file name replaced by "!". Callers must apply it to every
// user-derived segment before a lookup.
func NormalizePathPart(part string) string {
	return pathPartReplacer.Replace(norm.NFC.String(part))
}
