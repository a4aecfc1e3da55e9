package exporter

import (
	"net/url"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var markdown = goldmark.New()

// linkedPaths parses Markdown content and returns the repository paths
// referenced by inline links and images, resolved against the source
// file's directory. Percent-encoded targets are decoded before
// resolution. External targets (anything with a scheme) are skipped.
func linkedPaths(content []byte, sourcePath string) []string {
	root := markdown.Parser().Parse(text.NewReader(content))

	var out []string
	_ = ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		var dest string
		switch n := node.(type) {
		case *ast.Link:
			dest = string(n.Destination)
		case *ast.Image:
			dest = string(n.Destination)
		default:
			return ast.WalkContinue, nil
		}
		if dest == "" || strings.Contains(dest, "://") || strings.HasPrefix(dest, "mailto:") {
			return ast.WalkContinue, nil
		}
		if decoded, err := url.PathUnescape(dest); err == nil {
			dest = decoded
		}
		out = append(out, resolveRepoPath(sourcePath, dest))
		return ast.WalkContinue, nil
	})
	return out
}

// resolveRepoPath resolves a link target relative to the directory of
// the source file, applying "." and ".." segments. Popping past the
// root is a no-op rather than an error; link targets come from user
// documents and must never abort an export.
func resolveRepoPath(sourcePath, target string) string {
	var segments []string
	if idx := strings.LastIndex(sourcePath, "/"); idx >= 0 {
		segments = strings.Split(sourcePath[:idx], "/")
	}
	for _, segment := range strings.Split(target, "/") {
		switch segment {
		case "", ".":
		case "..":
			if len(segments) > 0 {
				segments = segments[:len(segments)-1]
			}
		default:
			segments = append(segments, segment)
		}
	}
	return strings.Join(segments, "/")
}

// classifyLinkedPath buckets a resolved link target: an asset (a
// whiteboard "-assets" subdirectory or a PDF), a document under Card
// Library or Journal, or something the exporter does not follow.
type linkClass int

const (
	linkAsset linkClass = iota
	linkDocument
	linkOther
)

func classifyLinkedPath(path string) linkClass {
	parts := strings.Split(path, "/")
	dir := parts[0]
	subdir := ""
	if len(parts) > 2 {
		subdir = parts[1]
	}
	leaf := parts[len(parts)-1]

	if strings.HasSuffix(subdir, "-assets") || strings.HasSuffix(leaf, ".pdf") {
		return linkAsset
	}
	if dir == "Card Library" || dir == "Journal" {
		return linkDocument
	}
	return linkOther
}
