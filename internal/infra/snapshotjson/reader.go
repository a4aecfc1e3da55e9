package snapshotjson

import (
	"encoding/json"
	"fmt"
	"os"

	"heptabundle/internal/domain/hb"
)

// ManifestName is the root manifest every exported backup directory
// carries. An import or export without it cannot proceed.
const ManifestName = "All-Data.json"

// Decode parses one All-Data.json payload. A decode failure is fatal for
// the session; there is no partial recovery from a corrupt manifest.
func Decode(raw []byte) (*hb.Data, error) {
	var data hb.Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode %s: %w", ManifestName, err)
	}
	return &data, nil
}

// ReadFile loads and decodes a manifest from disk.
func ReadFile(path string) (*hb.Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Decode(raw)
}
