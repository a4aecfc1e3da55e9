package exporter

import (
	"encoding/json"
	"strings"

	"heptabundle/internal/infra/filedb"
)

type docNode struct {
	Type    string    `json:"type"`
	Text    string    `json:"text"`
	Content []docNode `json:"content"`
}

// docTextLeaves walks a serialized document tree depth-first and
// collects its text leaves in document order.
func docTextLeaves(node docNode, out []string) []string {
	if node.Type == "text" && node.Text != "" {
		out = append(out, node.Text)
	}
	for _, child := range node.Content {
		out = docTextLeaves(child, out)
	}
	return out
}

// bestMatchedFiles narrows title-matched candidates using the card's
// stored document body. Each text leaf must appear in a candidate's
// decoded content at or after the previous leaf's match position; a
// candidate that misses a leaf is rejected. Every candidate that
// survives the scan is kept: with repeated or boilerplate text the
// heuristic cannot prove uniqueness, so ties stay ties.
func bestMatchedFiles(files []filedb.FileEntity, content string) []filedb.FileEntity {
	if len(files) <= 1 {
		return files
	}
	var doc docNode
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		return files
	}
	leaves := docTextLeaves(doc, nil)
	if len(leaves) == 0 {
		return files
	}

	texts := make([]string, len(files))
	for i, file := range files {
		texts[i] = string(file.Content)
	}
	cursors := make([]int, len(files))

	for _, leaf := range leaves {
		undecided := 0
		for _, cursor := range cursors {
			if cursor != -1 {
				undecided++
			}
		}
		for i := range files {
			if cursors[i] == -1 {
				continue
			}
			idx := strings.Index(texts[i][cursors[i]:], leaf)
			if idx == -1 {
				cursors[i] = -1
				undecided--
				// One candidate left: nothing more to tell apart.
				if undecided == 1 {
					break
				}
				continue
			}
			cursors[i] += idx + len(leaf)
		}
	}

	var out []filedb.FileEntity
	for i, file := range files {
		if cursors[i] != -1 {
			out = append(out, file)
		}
	}
	return out
}
