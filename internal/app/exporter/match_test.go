package exporter

import (
	"testing"

	"heptabundle/internal/infra/filedb"
)

func TestBestMatchedFilesSingleCandidate(t *testing.T) {
	files := []filedb.FileEntity{mdFile("Card Library/Plan.md", "anything")}
	out := bestMatchedFiles(files, "not json at all")
	if len(out) != 1 {
		t.Fatalf("expected single candidate kept, got %d", len(out))
	}
}

func TestBestMatchedFilesUnparseableContentKeepsAll(t *testing.T) {
	files := []filedb.FileEntity{
		mdFile("Card Library/Plan.md", "first"),
		mdFile("Card Library/Plan 2.md", "second"),
	}
	out := bestMatchedFiles(files, "{broken")
	if len(out) != 2 {
		t.Fatalf("expected all candidates kept, got %d", len(out))
	}
}

func TestBestMatchedFilesRejectsMissingLeaf(t *testing.T) {
	files := []filedb.FileEntity{
		mdFile("Card Library/Plan.md", "alpha then beta"),
		mdFile("Card Library/Plan 2.md", "alpha only"),
	}
	content := `{"type":"doc","content":[{"type":"text","text":"alpha"},{"type":"text","text":"beta"}]}`

	out := bestMatchedFiles(files, content)
	if len(out) != 1 || out[0].Path != "Card Library/Plan.md" {
		t.Fatalf("expected only the full match, got %+v", out)
	}
}

func TestBestMatchedFilesLeavesMustAppearInOrder(t *testing.T) {
	// Both files contain both words, but only one in document order.
	files := []filedb.FileEntity{
		mdFile("Card Library/Plan.md", "beta before alpha"),
		mdFile("Card Library/Plan 2.md", "alpha before beta"),
	}
	content := `{"type":"doc","content":[{"type":"text","text":"alpha"},{"type":"text","text":"beta"}]}`

	out := bestMatchedFiles(files, content)
	if len(out) != 1 || out[0].Path != "Card Library/Plan 2.md" {
		t.Fatalf("expected the in-order match, got %+v", out)
	}
}

func TestBestMatchedFilesNoOverlappingMatches(t *testing.T) {
	// After matching "aa" the scan resumes past it, so a single "aaa"
	// cannot satisfy "aa" twice.
	files := []filedb.FileEntity{
		mdFile("Card Library/Plan.md", "aaa"),
		mdFile("Card Library/Plan 2.md", "aa aa"),
	}
	content := `{"type":"doc","content":[{"type":"text","text":"aa"},{"type":"text","text":"aa"}]}`

	out := bestMatchedFiles(files, content)
	if len(out) != 1 || out[0].Path != "Card Library/Plan 2.md" {
		t.Fatalf("expected only the non-overlapping match, got %+v", out)
	}
}

func TestBestMatchedFilesTiesKept(t *testing.T) {
	files := []filedb.FileEntity{
		mdFile("Card Library/Plan.md", "shared words"),
		mdFile("Card Library/Plan 2.md", "shared words too"),
	}
	content := `{"type":"doc","content":[{"type":"text","text":"shared"}]}`

	out := bestMatchedFiles(files, content)
	if len(out) != 2 {
		t.Fatalf("expected ambiguous candidates kept, got %+v", out)
	}
}

func TestDocTextLeavesDepthFirst(t *testing.T) {
	doc := docNode{
		Type: "doc",
		Content: []docNode{
			{Type: "paragraph", Content: []docNode{
				{Type: "text", Text: "one"},
				{Type: "text", Text: "two"},
			}},
			{Type: "text", Text: "three"},
			{Type: "text", Text: ""},
		},
	}
	leaves := docTextLeaves(doc, nil)
	if len(leaves) != 3 || leaves[0] != "one" || leaves[1] != "two" || leaves[2] != "three" {
		t.Fatalf("unexpected leaves: %v", leaves)
	}
}
